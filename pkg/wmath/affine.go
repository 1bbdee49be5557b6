package wmath

// Vectors and matrices for polynomial color mapping, plus the affine
// isometries needed to undo EXIF orientations.

import(
	"fmt"
	"math"

	"golang.org/x/image/math/f64"  // Will be "image/math/f64" at some point, hopefully make this file redundant
)

// Use a local type so we can hang methods off it
type Aff3 f64.Aff3

// Cut-n-pasted from image@0.7.0/draw/scale:matMul
func (p Aff3)Mult(q Aff3) Aff3 {
	return Aff3{
		p[3*0+0]*q[3*0+0] + p[3*0+1]*q[3*1+0],
		p[3*0+0]*q[3*0+1] + p[3*0+1]*q[3*1+1],
		p[3*0+0]*q[3*0+2] + p[3*0+1]*q[3*1+2] + p[3*0+2],
		p[3*1+0]*q[3*0+0] + p[3*1+1]*q[3*1+0],
		p[3*1+0]*q[3*0+1] + p[3*1+1]*q[3*1+1],
		p[3*1+0]*q[3*0+2] + p[3*1+1]*q[3*1+2] + p[3*1+2],
	}
}

// The isometries below map source coords into the destination frame,
// as wanted by x/image/draw Transform. They compose back to front -
// p.Mult(q) applies q first. Integer coefficients, so nearest-neighbor
// transforms land exactly on pixel centers.

func FlipH(w float64) Aff3     { return Aff3{-1, 0, w,   0, 1, 0} }
func FlipV(h float64) Aff3     { return Aff3{ 1, 0, 0,   0,-1, h} }
func Rot180(w, h float64) Aff3 { return Aff3{-1, 0, w,   0,-1, h} }
func Transpose() Aff3          { return Aff3{ 0, 1, 0,   1, 0, 0} }
func Rot90CW(h float64) Aff3   { return Aff3{ 0,-1, h,   1, 0, 0} }
func Rot270CW(w float64) Aff3  { return Aff3{ 0, 1, 0,  -1, 0, w} }

type Vec3 f64.Vec3
type Vec9 [9]float64

func (v Vec3)String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", v[0], v[1], v[2])
}

func (v *Vec3)FloorAt(min float64) {
	if v[0] < min { v[0] = min }
	if v[1] < min { v[1] = min }
	if v[2] < min { v[2] = min }
}

func (v *Vec3)CeilingAt(max float64) {
	if v[0] > max { v[0] = max }
	if v[1] > max { v[1] = max }
	if v[2] > max { v[2] = max }
}

// A Mat9x3 maps a 9-term polynomial color kernel down to an RGB
// triple. Stored column-major: entry (i,j) is m[j*9+i], so the first
// nine values are the column that produces the red channel. This is
// the exact layout the trained mapping rows arrive in, which makes
// building one from a blended row a straight copy.
type Mat9x3 [27]float64

func NewMat9x3(vals []float64) Mat9x3 {
	m := Mat9x3{}
	copy(m[:], vals)
	return m
}

func (m Mat9x3)Apply(k Vec9) Vec3 {
	v := Vec3{}
	for j:=0; j<3; j++ {
		dot := 0.0
		for i:=0; i<9; i++ {
			dot += k[i] * m[j*9+i]
		}
		v[j] = dot
	}
	return v
}

func (m Mat9x3)String() string {
	str := ""
	for i:=0; i<9; i++ {
		str += fmt.Sprintf("[%10f, %10f, %10f]\n", m[0*9+i], m[1*9+i], m[2*9+i])
	}
	return str
}

// Largest absolute entry; handy when eyeballing whether a blended
// mapping has gone off the rails.
func (m Mat9x3)MaxAbs() float64 {
	max := 0.0
	for i:=0; i<len(m); i++ {
		if v := math.Abs(m[i]); v > max { max = v }
	}
	return max
}
