package wbemu

import(
	"gonum.org/v1/gonum/floats"

	"github.com/abworrall/wb-emulator/pkg/wmath"
)

// SynthesizeMapping blends the neighbors' trained mapping rows for one
// style into a single polynomial color mapping. Weights are convex, so
// every entry of the result stays inside the range its contributors
// span.
func (m *Model)SynthesizeMapping(ns NeighborSet, weights []float64, style Style) wmath.Mat9x3 {
	blend := make([]float64, 27)
	for i, nb := range ns {
		floats.AddScaled(blend, weights[i], m.MappingFuncs.RawRowView(nb.Index*len(Styles) + int(style)))
	}
	return wmath.NewMat9x3(blend)
}
