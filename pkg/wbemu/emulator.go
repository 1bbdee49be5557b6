package wbemu

import(
	"log"
	"math/rand"
	"sync"

	"github.com/pkg/errors"

	"github.com/abworrall/wb-emulator/pkg/wcolor"
)

// An Emulator re-renders an image as if the camera had been set to a
// different white balance and picture style, by blending the mappings
// of the most similar training exemplars.
type Emulator struct {
	Config Config
	Model  *Model
	Rand   *rand.Rand // style subsets draw from here; nil means the shared source

	mu sync.Mutex // Rand isn't goroutine-safe, and batch workers share us
}

func NewEmulator(cfg Config) (*Emulator, error) {
	m, err := LoadModel(cfg.ModelDir)
	if err != nil {
		return nil, err
	}

	em := &Emulator{Config:cfg, Model:m}
	if cfg.Seed != 0 {
		em.Rand = rand.New(rand.NewSource(cfg.Seed))
	}

	return em, nil
}

// An Analysis is everything derived from one image before any style
// gets rendered: its feature vector, and the exemplar neighborhood
// selected for it.
type Analysis struct {
	Feature   []float64
	Neighbors NeighborSet
	Weights   []float64
}

// A Rendering is one re-rendered output image.
type Rendering struct {
	Style Style
	Image *wcolor.Linear
}

func (em *Emulator)Analyze(img *wcolor.Linear) (*Analysis, error) {
	hist, err := ChromaHistogram(img)
	if err != nil {
		return nil, err
	}

	feature := em.Model.Encode(hist)
	ns := em.Model.Neighbors(feature, NumNeighbors)

	return &Analysis{
		Feature:   feature,
		Neighbors: ns,
		Weights:   ns.Weights(BlendSigma),
	}, nil
}

// Render synthesizes n of the ten styles for one image. The analysis
// happens once, however many styles get rendered; only the final
// per-pixel mapping is per-style work. The returned Analysis is there
// for callers who want diagnostics.
func (em *Emulator)Render(img *wcolor.Linear, n int) ([]Rendering, *Analysis, error) {
	if n < 1 || n > len(Styles) {
		return nil, nil, errors.Wrapf(ErrInvalidRequestedCount, "n=%d, want 1..%d", n, len(Styles))
	}

	a, err := em.Analyze(img)
	if err != nil {
		return nil, nil, err
	}

	out := make([]Rendering, 0, n)
	for _, style := range em.pickStyles(n) {
		mf := em.Model.SynthesizeMapping(a.Neighbors, a.Weights, style)
		if em.Config.Verbosity > 1 {
			log.Printf("style %s mapping (maxabs %.3f):\n%s", style, mf.MaxAbs(), mf)
		}
		out = append(out, Rendering{Style:style, Image:img.MapColors(mf)})
	}

	return out, a, nil
}

// pickStyles returns all ten styles in catalog order, or a uniformly
// random n-subset of them, in the order drawn.
func (em *Emulator)pickStyles(n int) []Style {
	if n >= len(Styles) {
		return Styles
	}

	picked := make([]Style, 0, n)
	for _, i := range em.perm(len(Styles))[:n] {
		picked = append(picked, Styles[i])
	}
	return picked
}

func (em *Emulator)perm(n int) []int {
	if em.Rand == nil {
		return rand.Perm(n)
	}

	em.mu.Lock()
	defer em.mu.Unlock()
	return em.Rand.Perm(n)
}
