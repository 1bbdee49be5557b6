package wbemu

import(
	"log"

	"gopkg.in/yaml.v2"
)

// These are baked into the trained parameter files, so they are
// constants rather than config.
const(
	HistEdge      = 60     // bins per axis of each log-chroma histogram plane
	NumNeighbors  = 25     // exemplars blended per image
	BlendSigma    = 0.25   // radial falloff of the blend weights
	MaxHistPixels = 202500 // bigger images get downsampled before histogramming (~450x450)
)

type Config struct {
	Verbosity            int

	ModelDir             string // dir holding the four .npy parameter files
	OutputDir            string // where renderings land
	RenderCount          int    // how many of the ten styles to render; a random subset when < 10
	WriteOriginal        bool   // also write an untouched copy next to the renderings

	// For augmenting a training set that pairs each image with a
	// ground-truth target file: every rendering gets a matching copy
	// of its source's target.
	GroundTruthDir       string // where the target files live
	GroundTruthExt       string // target extension, e.g. ".png"
	OutputGroundTruthDir string // where target copies land; OutputDir if empty

	Workers              int   // batch parallelism (images in flight)
	Seed                 int64 // non-zero pins the style picker, for reproducible subsets
}

func NewConfig() Config {
	return Config{
		ModelDir:    "params",
		OutputDir:   "results",
		RenderCount: len(Styles),
		Workers:     20,
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}
