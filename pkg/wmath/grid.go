package wmath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
)

// A Grid is a grid of floats, with some operations. Used for the
// per-channel chromaticity histogram planes.
type Grid struct {
	stride int
	values []float64
}

func NewGrid(w, h int) Grid {
	return Grid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g *Grid)Set(x, y int, v float64) { g.values[g.stride*y + x] = v }
func (g *Grid)Get(x, y int) float64    { return g.values[g.stride*y + x] }
func (g *Grid)Add(x, y int, v float64) { g.values[g.stride*y + x] += v }
func (g *Grid)Dx() int                 { return g.stride }
func (g *Grid)Dy() int                 { return len(g.values) / g.stride }

func (g *Grid)Sum() float64 {
	sum := 0.0
	for i:=0; i<len(g.values); i++ {
		sum += g.values[i]
	}
	return sum
}

func (g *Grid)Scale(f float64) {
	for i:=0; i<len(g.values); i++ {
		g.values[i] *= f
	}
}

// Sqrt replaces every cell with its square root. Applied after
// normalization, it tames the huge mass that neutral-ish scenes dump
// into the central bins.
func (g *Grid)Sqrt() {
	for i:=0; i<len(g.values); i++ {
		g.values[i] = math.Sqrt(g.values[i])
	}
}

func (g *Grid)Stats() string {
	min := math.MaxFloat64
	max := -1.0 * min

	for i:=0 ; i<len(g.values) ; i++ {
		if g.values[i] > max { max = g.values[i] }
		if g.values[i] < min { min = g.values[i] }
	}
	return fmt.Sprintf("g[%dx%d, vals{%f,%f}]", g.Dx(), g.Dy(), min, max)
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision
func (g *Grid)ToImg(title, filename string) {
	min, max := 1000.0, -1000.0
	for i:=0; i<len(g.values); i++ {
		if g.values[i] > max { max = g.values[i] }
		if g.values[i] < min { min = g.values[i] }
	}

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{g.Dx(), g.Dy()}})
	for x:=0; x<g.Dx(); x++ {
		for y:=0; y<g.Dy(); y++ {
			lum := g.Get(x,y)
			gray := GammaExpand_F64((lum - min) / (max - min))
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 5, 10)
	dc.SavePNG(filename)
}

// A HistCube is one histogram plane per RGB channel. Plane x is the
// log-ratio against the higher-indexed other channel, plane y against
// the lower-indexed one.
type HistCube [3]Grid

func NewHistCube(edge int) *HistCube {
	return &HistCube{NewGrid(edge, edge), NewGrid(edge, edge), NewGrid(edge, edge)}
}

func (hc *HistCube)Edge() int { return hc[0].Dx() }

func (hc *HistCube)Sum() float64 {
	return hc[0].Sum() + hc[1].Sum() + hc[2].Sum()
}

// Normalize scales each plane into a unit-mass density by its own
// total, then takes the square root of every cell. Returns false when
// any plane has no mass to normalize.
func (hc *HistCube)Normalize() bool {
	for c:=0; c<3; c++ {
		sum := hc[c].Sum()
		if sum <= 0.0 {
			return false
		}
		hc[c].Scale(1.0 / sum)
		hc[c].Sqrt()
	}
	return true
}

// Flatten lays the cube out as one vector: channel-major, then x, then
// y. The trained encoder bias and weights are ordered against exactly
// this layout, so don't get creative here.
func (hc *HistCube)Flatten() []float64 {
	h := hc.Edge()
	flat := make([]float64, 3*h*h)
	for c:=0; c<3; c++ {
		for x:=0; x<h; x++ {
			for y:=0; y<h; y++ {
				flat[c*h*h + x*h + y] = hc[c].Get(x, y)
			}
		}
	}
	return flat
}
