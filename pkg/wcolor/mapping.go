package wcolor

import(
	"github.com/abworrall/wb-emulator/pkg/wmath"
)

// Kernel9 is the polynomial expansion of an RGB triple:
// (r, g, b, r^2, g^2, b^2, rg, rb, gb). Projecting these nine terms
// through a 9x3 matrix gives a color mapping that can bend channels
// towards each other, which a plain 3x3 matrix can't.
func Kernel9(r, g, b float64) wmath.Vec9 {
	return wmath.Vec9{r, g, b, r*r, g*g, b*b, r*g, r*b, g*b}
}

// MapColors applies a polynomial color mapping to every pixel. The
// receiver is left untouched; the result has identical dimensions and
// pixel ordering. Out-of-gamut results are clipped back into [0,1].
func (li *Linear)MapColors(m wmath.Mat9x3) *Linear {
	out := NewLinear(li.W, li.H)

	for i:=0; i<len(li.Pix); i+=3 {
		v := m.Apply(Kernel9(li.Pix[i], li.Pix[i+1], li.Pix[i+2]))
		v.FloorAt(0.0)
		v.CeilingAt(1.0)
		out.Pix[i+0] = v[0]
		out.Pix[i+1] = v[1]
		out.Pix[i+2] = v[2]
	}

	return out
}
