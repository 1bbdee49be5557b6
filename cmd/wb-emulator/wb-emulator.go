package main

import(
	"flag"
	"log"

	"github.com/abworrall/wb-emulator/pkg/wbemu"
)

var(
	fVerbosity int
	fModelDir string
	fOutputDir string
	fRenderCount int
	fWriteOriginal bool
	fGtDir string
	fGtExt string
	fOutGtDir string
	fWorkers int
	fSeed int64
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fModelDir, "model", "", "dir holding the trained .npy parameter files")
	flag.StringVar(&fOutputDir, "out", "", "dir the renderings get written into")
	flag.IntVar(&fRenderCount, "n", 0, "how many of the 10 styles to render (<10 picks a random subset)")
	flag.BoolVar(&fWriteOriginal, "writeoriginal", false, "also write an untouched copy of each input")

	flag.StringVar(&fGtDir, "gtdir", "", "dir of ground-truth targets paired with the inputs")
	flag.StringVar(&fGtExt, "gtext", "", "extension of the ground-truth targets, e.g. .png")
	flag.StringVar(&fOutGtDir, "gtout", "", "dir the ground-truth copies get written into")

	flag.IntVar(&fWorkers, "workers", 0, "how many images to process in parallel")
	flag.Int64Var(&fSeed, "seed", 0, "seed the style picker, for reproducible subsets")
	flag.Parse()

	log.Printf("wb-emulator starting\n")
}

func main() {
	cfg := wbemu.NewConfig()
	files, err := wbemu.LoadFilesAndDirs(&cfg, flag.Args()...)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatal("no input images (want image files and/or dirs as args)")
	}

	// Override the config file with command line args, if relevant
	if fModelDir != "" { cfg.ModelDir = fModelDir }
	if fOutputDir != "" { cfg.OutputDir = fOutputDir }
	if fRenderCount > 0 { cfg.RenderCount = fRenderCount }
	if fGtDir != "" { cfg.GroundTruthDir = fGtDir }
	if fGtExt != "" { cfg.GroundTruthExt = fGtExt }
	if fOutGtDir != "" { cfg.OutputGroundTruthDir = fOutGtDir }
	if fWorkers > 0 { cfg.Workers = fWorkers }
	if fSeed != 0 { cfg.Seed = fSeed }
	if fVerbosity > 0 { cfg.Verbosity = fVerbosity }

	// Just set the bool vars
	cfg.WriteOriginal = fWriteOriginal

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	em, err := wbemu.NewEmulator(cfg)
	if err != nil {
		log.Fatalf("load model from '%s': %v\n", cfg.ModelDir, err)
	}
	log.Printf("model loaded: %d exemplars, feature dim %d\n", em.Model.NumExemplars(), em.Model.FeatureDim())

	if err := wbemu.NewBatch(em, files).Run(); err != nil {
		log.Fatalf("batch had failures:\n%v\n", err)
	}
}
