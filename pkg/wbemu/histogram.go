package wbemu

import(
	"math"

	"github.com/mdouchement/hdr"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/abworrall/wb-emulator/pkg/wcolor"
	"github.com/abworrall/wb-emulator/pkg/wmath"
)

// ChromaHistogram summarizes an image as three log-chromaticity
// histogram planes, one per channel. Each pixel with all channels
// strictly positive contributes its vector magnitude as mass; where
// that mass lands is set by the log ratios against the other two
// channels, so the whole thing is invariant to uniform exposure
// scaling. Each plane is normalized to unit total mass and
// square-rooted.
//
// Images beyond MaxHistPixels are nearest-neighbor downsampled first;
// histogram statistics don't need every pixel, and nearest-neighbor
// keeps the surviving values untouched.
func ChromaHistogram(img hdr.Image) (*wmath.HistCube, error) {
	img = downsampleForHistogram(img)
	hc := wmath.NewHistCube(HistEdge)

	bounds := img.Bounds()
	for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
		for x:=bounds.Min.X; x<bounds.Max.X; x++ {
			r, g, b, _ := img.HDRAt(x, y).HDRRGBA()
			if r <= 0.0 || g <= 0.0 || b <= 0.0 {
				continue
			}
			iy := math.Sqrt(r*r + g*g + b*b)
			accumChroma(&hc[0], math.Log(r/b), math.Log(r/g), iy)
			accumChroma(&hc[1], math.Log(g/b), math.Log(g/r), iy)
			accumChroma(&hc[2], math.Log(b/g), math.Log(b/r), iy)
		}
	}

	if !hc.Normalize() {
		return nil, errors.Wrap(ErrDegenerateImage, "chroma histogram plane has zero mass")
	}

	return hc, nil
}

// Encode projects a histogram cube down to the compact feature vector
// the exemplar database is indexed by.
func (m *Model)Encode(hc *wmath.HistCube) []float64 {
	flat := hc.Flatten()
	floats.Sub(flat, m.EncoderBias)

	var out mat.VecDense
	out.MulVec(m.EncoderWeights.T(), mat.NewVecDense(len(flat), flat))
	return out.RawVector().Data
}

func downsampleForHistogram(img hdr.Image) hdr.Image {
	size := img.Size()
	if size <= MaxHistPixels {
		return img
	}

	bounds := img.Bounds()
	factor := math.Sqrt(float64(MaxHistPixels) / float64(size))
	w := uint(float64(bounds.Dx()) * factor)
	h := uint(float64(bounds.Dy()) * factor)

	return wcolor.NewLinearFromImage(resize.Resize(w, h, img, resize.NearestNeighbor))
}

// Bin geometry: HistEdge bins of width eps spanning [-3.2-eps/2,
// 3.2-eps/2], so the middle bin is centered on zero chromaticity. The
// trained encoder is ordered against exactly these edges.
func chromaBin(x float64) (int, bool) {
	eps := 6.4 / float64(HistEdge)
	lo := -3.2 - eps/2

	if x < lo || x > lo+6.4 {
		return 0, false
	}
	bin := int((x - lo) / eps)
	if bin >= HistEdge {
		bin = HistEdge - 1 // the top edge belongs to the last bin
	}
	return bin, true
}

func accumChroma(g *wmath.Grid, u, v, mass float64) {
	ub, uok := chromaBin(u)
	vb, vok := chromaBin(v)
	if uok && vok {
		g.Add(ub, vb, mass)
	}
}
