package wbemu

import(
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// A Model is the trained parameter set: the exemplar feature database,
// the per-exemplar-per-style polynomial mappings, and the histogram
// encoder that projects a flattened chroma histogram down to a feature
// vector. All of it arrives as NumPy .npy files and is read-only from
// here on.
type Model struct {
	Features       *mat.Dense // N x D; one encoded histogram per training exemplar
	MappingFuncs   *mat.Dense // (N*10) x 27; row e*10+s maps exemplar e under style s
	EncoderWeights *mat.Dense // L x D projection, L = 3*HistEdge*HistEdge
	EncoderBias    []float64  // length L, subtracted before projection

	rowSqNorms []float64 // ||feature row||^2, precomputed for the distance expansion
}

func LoadModel(dir string) (*Model, error) {
	m := &Model{}

	var err error
	if m.Features, err = loadMatrix(filepath.Join(dir, "features.npy")); err != nil {
		return nil, err
	}
	if m.MappingFuncs, err = loadMatrix(filepath.Join(dir, "mappingFuncs.npy")); err != nil {
		return nil, err
	}
	if m.EncoderWeights, err = loadMatrix(filepath.Join(dir, "encoderWeights.npy")); err != nil {
		return nil, err
	}
	if m.EncoderBias, err = loadVector(filepath.Join(dir, "encoderBias.npy")); err != nil {
		return nil, err
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	n, _ := m.Features.Dims()
	m.rowSqNorms = make([]float64, n)
	for i:=0; i<n; i++ {
		row := m.Features.RawRowView(i)
		m.rowSqNorms[i] = floats.Dot(row, row)
	}

	return m, nil
}

func (m *Model)NumExemplars() int { n, _ := m.Features.Dims(); return n }
func (m *Model)FeatureDim() int   { _, d := m.Features.Dims(); return d }

func loadMatrix(fname string) (*mat.Dense, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrapf(ErrMissingParameterFile, "%s: %v", fname, err)
	}
	defer f.Close()

	var m mat.Dense
	if err := npyio.Read(f, &m); err != nil {
		return nil, errors.Wrapf(ErrMissingParameterFile, "%s: %v", fname, err)
	}
	return &m, nil
}

func loadVector(fname string) ([]float64, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrapf(ErrMissingParameterFile, "%s: %v", fname, err)
	}
	defer f.Close()

	// Reading into a slice flattens whatever shape the file has, which
	// also accepts a bias saved as Lx1 instead of plain L.
	var v []float64
	if err := npyio.Read(f, &v); err != nil {
		return nil, errors.Wrapf(ErrMissingParameterFile, "%s: %v", fname, err)
	}
	return v, nil
}

func (m *Model)validate() error {
	histLen := 3 * HistEdge * HistEdge
	n, d := m.Features.Dims()
	wr, wc := m.EncoderWeights.Dims()
	mr, mc := m.MappingFuncs.Dims()

	switch {
	case n < 1:
		return errors.Wrapf(ErrShapeMismatch, "features %dx%d is empty", n, d)
	case wr != histLen:
		return errors.Wrapf(ErrShapeMismatch, "encoderWeights %dx%d, want %d rows", wr, wc, histLen)
	case len(m.EncoderBias) != histLen:
		return errors.Wrapf(ErrShapeMismatch, "encoderBias len %d, want %d", len(m.EncoderBias), histLen)
	case wc != d:
		return errors.Wrapf(ErrShapeMismatch, "features %dx%d disagrees with encoderWeights %dx%d", n, d, wr, wc)
	case mr != n*len(Styles):
		return errors.Wrapf(ErrShapeMismatch, "mappingFuncs %dx%d, want %d rows for %d exemplars", mr, mc, n*len(Styles), n)
	case mc != 27:
		return errors.Wrapf(ErrShapeMismatch, "mappingFuncs %dx%d, want 27 cols", mr, mc)
	}

	return nil
}
