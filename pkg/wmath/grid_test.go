package wmath

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestGridOps(t *testing.T) {
	g := NewGrid(4, 3)
	assert.Equal(t, 4, g.Dx())
	assert.Equal(t, 3, g.Dy())

	g.Set(1, 2, 5.0)
	g.Add(1, 2, 3.0)
	assert.Equal(t, 8.0, g.Get(1, 2))
	assert.Equal(t, 8.0, g.Sum())

	g.Scale(0.5)
	assert.Equal(t, 4.0, g.Get(1, 2))

	g.Sqrt()
	assert.Equal(t, 2.0, g.Get(1, 2))
	assert.Equal(t, 0.0, g.Get(0, 0))
}

func TestHistCubeNormalize(t *testing.T) {
	hc := NewHistCube(4)
	assert.Equal(t, 4, hc.Edge())

	// Different mass per plane; each must normalize by its own total.
	hc[0].Add(0, 0, 2.0)
	hc[0].Add(1, 1, 2.0)
	hc[1].Add(2, 2, 10.0)
	hc[2].Add(3, 3, 0.25)

	assert.True(t, hc.Normalize())

	for c := 0; c < 3; c++ {
		sumSq := 0.0
		for x := 0; x < 4; x++ {
			for y := 0; y < 4; y++ {
				v := hc[c].Get(x, y)
				assert.GreaterOrEqual(t, v, 0.0)
				sumSq += v * v
			}
		}
		assert.InDelta(t, 1.0, sumSq, 1e-12)
	}
}

func TestHistCubeNormalizeEmptyPlane(t *testing.T) {
	hc := NewHistCube(4)
	assert.False(t, hc.Normalize())

	// One empty plane is enough to refuse.
	hc[0].Add(0, 0, 1.0)
	hc[1].Add(0, 0, 1.0)
	assert.False(t, hc.Normalize())
}

func TestHistCubeFlatten(t *testing.T) {
	hc := NewHistCube(3)
	hc[0].Set(1, 2, 7.0) // plane 0, x=1, y=2
	hc[2].Set(0, 1, 9.0) // plane 2, x=0, y=1

	flat := hc.Flatten()
	assert.Len(t, flat, 27)
	// Layout is channel-major, then x, then y: flat[c*h*h + x*h + y]
	assert.Equal(t, 7.0, flat[0*9+1*3+2])
	assert.Equal(t, 9.0, flat[2*9+0*3+1])
	assert.Equal(t, 16.0, sum(flat))
}

func sum(vs []float64) float64 {
	s := 0.0
	for _, v := range vs {
		s += v
	}
	return s
}
