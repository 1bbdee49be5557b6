package wbemu

import(
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// A Neighbor is one training exemplar judged similar to the query
// image, by squared euclidean distance in feature space.
type Neighbor struct {
	Index  int
	DistSq float64
}

// A NeighborSet is sorted ascending by (DistSq, Index).
type NeighborSet []Neighbor

func (nb Neighbor)String() string {
	return fmt.Sprintf("exemplar %4d @%.5f", nb.Index, nb.DistSq)
}

// worseThan orders candidates by distance, then by index, so a run of
// equally-distant exemplars always resolves the same way.
func (nb Neighbor)worseThan(other Neighbor) bool {
	if nb.DistSq != other.DistSq {
		return nb.DistSq > other.DistSq
	}
	return nb.Index > other.Index
}

// Neighbors finds the k nearest exemplars to a feature vector. The
// scan keeps a bounded candidate list rather than sorting all N
// distances; with N in the tens of thousands and k of 25, that's the
// difference that matters. Ties fall to the lowest exemplar index.
// Asking for more neighbors than the database holds gets you the whole
// database.
func (m *Model)Neighbors(feature []float64, k int) NeighborSet {
	n, _ := m.Features.Dims()
	if k > n {
		k = n
	}

	qq := floats.Dot(feature, feature)

	ns := make(NeighborSet, 0, k)
	worst := 0 // position in ns of the worst candidate kept so far

	for i:=0; i<n; i++ {
		// ||f-q||^2 expanded, using the precomputed row norms
		d := m.rowSqNorms[i] + qq - 2.0*floats.Dot(m.Features.RawRowView(i), feature)
		if d < 0 {
			d = 0 // float fuzz on a near-perfect match
		}
		cand := Neighbor{i, d}

		if len(ns) < k {
			ns = append(ns, cand)
			if cand.worseThan(ns[worst]) {
				worst = len(ns) - 1
			}
			continue
		}
		if cand.worseThan(ns[worst]) {
			continue
		}

		ns[worst] = cand
		for j:=0; j<k; j++ {
			if ns[j].worseThan(ns[worst]) {
				worst = j
			}
		}
	}

	sort.Slice(ns, func(i, j int) bool { return ns[j].worseThan(ns[i]) })

	return ns
}

// Weights turns the neighbor distances into a convex blend: a gaussian
// falloff with width BlendSigma, normalized to sum to 1, aligned
// index-for-index with the set. Distances are shifted by the nearest
// one before exponentiating; the normalization cancels the shift, and
// it stops the exponentials all underflowing to zero for an image far
// from every exemplar.
func (ns NeighborSet)Weights(sigma float64) []float64 {
	if len(ns) == 0 {
		return nil
	}

	nearest := ns[0].DistSq
	ws := make([]float64, len(ns))
	sum := 0.0
	for i, nb := range ns {
		ws[i] = math.Exp(-(nb.DistSq - nearest) / (2*sigma*sigma))
		sum += ws[i]
	}
	for i := range ws {
		ws[i] /= sum
	}

	return ws
}
