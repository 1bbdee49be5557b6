package wbemu

import(
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/codahale/hdrhistogram"
	"github.com/hashicorp/go-multierror"
	"github.com/skypies/util/histogram"
)

// A Batch runs the emulator over a worklist of image files, writing
// every rendering (and any ground-truth copies) as it goes. Files are
// independent, so they fan out over a worker pool; one bad file
// doesn't sink the rest.
type Batch struct {
	Emu   *Emulator
	Files []string
}

type batchJob struct {
	// Input for the job
	Filename string

	// Outputs
	Written       int
	NearestDistSq float64
	Elapsed       time.Duration
	Err           error
}

func NewBatch(em *Emulator, files []string) *Batch {
	return &Batch{Emu:em, Files:files}
}

func (b *Batch)Run() error {
	cfg := b.Emu.Config

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("mkdir '%s': %v", cfg.OutputDir, err)
	}
	if cfg.GroundTruthDir != "" {
		if err := os.MkdirAll(b.outGtDir(), 0755); err != nil {
			return fmt.Errorf("mkdir '%s': %v", b.outGtDir(), err)
		}
	}

	var wg sync.WaitGroup
	jobsChan    := make(chan batchJob, len(b.Files))
	resultsChan := make(chan batchJob, len(b.Files))

	// Kick off worker pool
	nWorkers := cfg.Workers
	if nWorkers < 1 {
		nWorkers = 1
	}
	for i:=0; i<nWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			for job := range jobsChan {
				start := time.Now()
				job.Written, job.NearestDistSq, job.Err = b.processFile(job.Filename)
				job.Elapsed = time.Since(start)
				resultsChan<- job
			}
		}()
	}

	// Feed in jobs
	for _, fname := range b.Files {
		jobsChan<- batchJob{Filename:fname}
	}

	close(jobsChan)
	wg.Wait()
	close(resultsChan)

	// Results processor. Batches can run for a long time over big
	// image sets, so when asked we summarize the per-image latency and
	// how close the inputs sat to the exemplar database.
	var errs *multierror.Error
	nOK, nWritten := 0, 0
	latencies := hdrhistogram.New(1, 600000, 3) // ms
	distances := histogram.Histogram{NumBuckets:40, ValMin:0, ValMax:4000}

	for result := range resultsChan {
		if result.Err != nil {
			log.Printf("batch: %s failed: %v\n", result.Filename, result.Err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %v", result.Filename, result.Err))
			continue
		}
		nOK++
		nWritten += result.Written
		ms := result.Elapsed.Milliseconds()
		if ms < 1 {
			ms = 1 // tiny images render sub-millisecond
		}
		latencies.RecordValue(ms)
		distances.Add(histogram.ScalarVal(int(result.NearestDistSq * 1000.0)))
	}

	if cfg.Verbosity > 0 {
		log.Printf("batch: %d/%d files rendered, %d images written\n", nOK, len(b.Files), nWritten)
		log.Printf("batch: per-image ms: p50=%d p90=%d max=%d\n",
			latencies.ValueAtQuantile(50), latencies.ValueAtQuantile(90), latencies.Max())
		log.Printf("batch: nearest-exemplar distSq (x1000): %s\n", distances)
	}

	return errs.ErrorOrNil()
}

func (b *Batch)outGtDir() string {
	if b.Emu.Config.OutputGroundTruthDir != "" {
		return b.Emu.Config.OutputGroundTruthDir
	}
	return b.Emu.Config.OutputDir
}

// processFile does the whole job for one input image: load, render
// every requested style, write the outputs, and mirror the ground
// truth file per-output when we're augmenting a paired training set.
func (b *Batch)processFile(fname string) (int, float64, error) {
	cfg := b.Emu.Config

	gtSrc := ""
	if cfg.GroundTruthDir != "" {
		gtSrc = Splice(cfg.GroundTruthDir, fname, "", cfg.GroundTruthExt)
		if _, err := os.Stat(gtSrc); err != nil {
			return 0, 0, fmt.Errorf("ground truth for '%s': %v", fname, err)
		}
	}

	img, err := LoadImage(fname)
	if err != nil {
		return 0, 0, err
	}

	renderings, analysis, err := b.Emu.Render(img, cfg.RenderCount)
	if err != nil {
		return 0, 0, err
	}

	written := 0
	for _, r := range renderings {
		if err := WriteImage(r.Image, Splice(cfg.OutputDir, fname, r.Style.String(), "")); err != nil {
			return written, 0, err
		}
		written++
		if gtSrc != "" {
			if err := CopyFile(gtSrc, Splice(b.outGtDir(), fname, r.Style.String(), cfg.GroundTruthExt)); err != nil {
				return written, 0, err
			}
		}
	}

	if cfg.WriteOriginal {
		if err := WriteImage(img, Splice(cfg.OutputDir, fname, "_original", "")); err != nil {
			return written, 0, err
		}
		written++
		if gtSrc != "" {
			if err := CopyFile(gtSrc, Splice(b.outGtDir(), fname, "_original", cfg.GroundTruthExt)); err != nil {
				return written, 0, err
			}
		}
	}

	if cfg.Verbosity > 0 {
		log.Printf("%s: %d outputs, nearest %s\n", fname, written, analysis.Neighbors[0])
	}

	return written, analysis.Neighbors[0].DistSq, nil
}
