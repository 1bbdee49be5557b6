package wbemu

import (
	"testing"

	"github.com/pkg/errors"
	assert "github.com/stretchr/testify/require"

	"github.com/abworrall/wb-emulator/pkg/wcolor"
)

func grayImage(w, h int, v float64) *wcolor.Linear {
	li := wcolor.NewLinear(w, h)
	for i := range li.Pix {
		li.Pix[i] = v
	}
	return li
}

func TestChromaHistogramUniformGray(t *testing.T) {
	hc, err := ChromaHistogram(grayImage(8, 8, 0.5))
	assert.NoError(t, err)

	// All log ratios are zero, so after per-plane normalization the
	// whole of each plane's mass sits in the central bin.
	for c := 0; c < 3; c++ {
		for x := 0; x < HistEdge; x++ {
			for y := 0; y < HistEdge; y++ {
				want := 0.0
				if x == HistEdge/2 && y == HistEdge/2 {
					want = 1.0
				}
				assert.InDelta(t, want, hc[c].Get(x, y), 1e-12)
			}
		}
	}
}

func TestChromaHistogramDegenerate(t *testing.T) {
	_, err := ChromaHistogram(grayImage(4, 4, 0.0))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateImage))

	// Still degenerate if only some channels are zero everywhere.
	li := wcolor.NewLinear(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			li.SetRGB(x, y, 0.5, 0.5, 0.0)
		}
	}
	_, err = ChromaHistogram(li)
	assert.True(t, errors.Is(err, ErrDegenerateImage))
}

func TestChromaHistogramSkipsNonPositivePixels(t *testing.T) {
	li := grayImage(4, 4, 0.5)
	li.SetRGB(0, 0, 0.0, 0.9, 0.9) // has a zero channel, must not contribute

	hc, err := ChromaHistogram(li)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, hc[0].Get(HistEdge/2, HistEdge/2), 1e-12)
}

func TestChromaHistogramScaleInvariance(t *testing.T) {
	a := wcolor.NewLinear(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			a.SetRGB(x, y, 0.1+0.02*float64(x), 0.2, 0.3+0.01*float64(y))
		}
	}
	b := wcolor.NewLinear(4, 4)
	for i := range a.Pix {
		b.Pix[i] = a.Pix[i] * 2.5
	}

	ha, err := ChromaHistogram(a)
	assert.NoError(t, err)
	hb, err := ChromaHistogram(b)
	assert.NoError(t, err)

	for c := 0; c < 3; c++ {
		for x := 0; x < HistEdge; x++ {
			for y := 0; y < HistEdge; y++ {
				assert.InDelta(t, ha[c].Get(x, y), hb[c].Get(x, y), 1e-9)
			}
		}
	}
}

func TestChromaHistogramDownsamplesBigImages(t *testing.T) {
	// 600x600 is over the pixel budget; a uniform image histograms
	// identically whether downsampled or not, so this just proves the
	// resize path doesn't disturb anything.
	hc, err := ChromaHistogram(grayImage(600, 600, 0.25))
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, hc[1].Get(HistEdge/2, HistEdge/2), 1e-12)

	small := downsampleForHistogram(grayImage(600, 600, 0.25))
	assert.LessOrEqual(t, small.Size(), MaxHistPixels)
	assert.Equal(t, 450, small.Bounds().Dx())

	// At or under the budget, the image passes through untouched.
	li := grayImage(450, 450, 0.25)
	assert.Equal(t, li.Size(), downsampleForHistogram(li).Size())
}

func TestChromaBinGeometry(t *testing.T) {
	eps := 6.4 / float64(HistEdge)
	lo := -3.2 - eps/2

	bin, ok := chromaBin(0.0)
	assert.True(t, ok)
	assert.Equal(t, HistEdge/2, bin) // the central bin straddles zero

	bin, ok = chromaBin(lo)
	assert.True(t, ok)
	assert.Equal(t, 0, bin)

	bin, ok = chromaBin(lo + 6.4) // the top edge belongs to the last bin
	assert.True(t, ok)
	assert.Equal(t, HistEdge-1, bin)

	_, ok = chromaBin(lo - 0.001)
	assert.False(t, ok)
	_, ok = chromaBin(lo + 6.4 + 0.001)
	assert.False(t, ok)
}

func TestEncodeProjectsHistogram(t *testing.T) {
	m := modelFromFeatures([]float64{0, 0})

	// Weights that just pick out the gray image's central cells.
	center := HistEdge/2*HistEdge + HistEdge/2
	m.EncoderWeights.Set(0*HistEdge*HistEdge+center, 0, 1.0)
	m.EncoderWeights.Set(1*HistEdge*HistEdge+center, 1, 1.0)

	hc, err := ChromaHistogram(grayImage(4, 4, 0.5))
	assert.NoError(t, err)

	feature := m.Encode(hc)
	assert.Len(t, feature, 2)
	assert.InDelta(t, 1.0, feature[0], 1e-12)
	assert.InDelta(t, 1.0, feature[1], 1e-12)

	// The bias is subtracted before projection.
	for i := range m.EncoderBias {
		m.EncoderBias[i] = 0.5
	}
	feature = m.Encode(hc)
	assert.InDelta(t, 0.5, feature[0], 1e-12)
}
