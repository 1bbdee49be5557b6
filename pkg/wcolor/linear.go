package wcolor

import(
	"fmt"
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"
)

// A Linear is the working representation of an image: linear-light
// RGB with each channel in [0.0, 1.0], one float64 triple per pixel,
// interleaved row by row. Every stage of the pipeline reads and
// writes these, so we only pay for quantization at the edges.
type Linear struct {
	W, H int
	Pix  []float64 // len = W*H*3, R then G then B per pixel
}

func NewLinear(w, h int) *Linear {
	return &Linear{W:w, H:h, Pix:make([]float64, w*h*3)}
}

// Treats the input RGB channels as [0, 0xFFFF]
func NewLinearFromImage(img image.Image) *Linear {
	bounds := img.Bounds()
	li := NewLinear(bounds.Dx(), bounds.Dy())

	i := 0
	for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
		for x:=bounds.Min.X; x<bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			li.Pix[i+0] = float64(r) / float64(0xFFFF)
			li.Pix[i+1] = float64(g) / float64(0xFFFF)
			li.Pix[i+2] = float64(b) / float64(0xFFFF)
			i += 3
		}
	}

	return li
}

func (li *Linear)RGBAt(x, y int) (float64, float64, float64) {
	i := (y*li.W + x) * 3
	return li.Pix[i], li.Pix[i+1], li.Pix[i+2]
}

func (li *Linear)SetRGB(x, y int, r, g, b float64) {
	i := (y*li.W + x) * 3
	li.Pix[i], li.Pix[i+1], li.Pix[i+2] = r, g, b
}

// Implement golang's image.Image interface
func (li *Linear)ColorModel() color.Model { return hdrcolor.RGBModel }
func (li *Linear)Bounds() image.Rectangle { return image.Rectangle{Max:image.Point{li.W, li.H}} }
func (li *Linear)At(x, y int) color.Color { return li.HDRAt(x, y) }

// Implement hdr.Image interface (a superset of image.Image)
func (li *Linear)HDRAt(x, y int) hdrcolor.Color {
	r, g, b := li.RGBAt(x, y)
	return hdrcolor.RGB{R:r, G:g, B:b}
}
func (li *Linear)Size() int { return li.W * li.H }

func (li *Linear)String() string {
	return fmt.Sprintf("linear[%dx%d]", li.W, li.H)
}
