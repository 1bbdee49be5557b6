package wbemu

import (
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func writeTestInput(t *testing.T, fname string) {
	t.Helper()
	assert.NoError(t, WriteImage(grayImage(4, 4, 0.5), fname))
}

func testBatchEmulator(t *testing.T, mutate func(*Config)) *Emulator {
	t.Helper()
	em := testEmulator()
	em.Config.OutputDir = t.TempDir()
	em.Config.Workers = 2
	if mutate != nil {
		mutate(&em.Config)
	}
	return em
}

func TestBatchRun(t *testing.T) {
	inDir := t.TempDir()
	for _, f := range []string{"a.png", "b.png"} {
		writeTestInput(t, filepath.Join(inDir, f))
	}

	em := testBatchEmulator(t, nil)
	files := []string{filepath.Join(inDir, "a.png"), filepath.Join(inDir, "b.png")}
	assert.NoError(t, NewBatch(em, files).Run())

	// RenderCount defaults to 10: every style for every input.
	for _, base := range []string{"a", "b"} {
		for _, s := range Styles {
			_, err := os.Stat(filepath.Join(em.Config.OutputDir, base+s.String()+".png"))
			assert.NoError(t, err)
		}
	}
}

func TestBatchWriteOriginal(t *testing.T) {
	inDir := t.TempDir()
	writeTestInput(t, filepath.Join(inDir, "a.png"))

	em := testBatchEmulator(t, func(c *Config) {
		c.WriteOriginal = true
		c.RenderCount = 10
	})
	assert.NoError(t, NewBatch(em, []string{filepath.Join(inDir, "a.png")}).Run())

	_, err := os.Stat(filepath.Join(em.Config.OutputDir, "a_original.png"))
	assert.NoError(t, err)
}

func TestBatchSurvivesBadFiles(t *testing.T) {
	inDir := t.TempDir()
	writeTestInput(t, filepath.Join(inDir, "good.png"))

	bad := filepath.Join(inDir, "bad.png")
	assert.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))

	em := testBatchEmulator(t, nil)
	err := NewBatch(em, []string{bad, filepath.Join(inDir, "good.png")}).Run()

	// The bad file surfaces as an error, but the good one still renders.
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad.png")
	_, statErr := os.Stat(filepath.Join(em.Config.OutputDir, "good_D_CS.png"))
	assert.NoError(t, statErr)
}

func TestBatchGroundTruthPairing(t *testing.T) {
	inDir, gtDir, gtOut := t.TempDir(), t.TempDir(), t.TempDir()
	writeTestInput(t, filepath.Join(inDir, "a.png"))
	assert.NoError(t, os.WriteFile(filepath.Join(gtDir, "a.txt"), []byte("target"), 0644))

	em := testBatchEmulator(t, func(c *Config) {
		c.GroundTruthDir = gtDir
		c.GroundTruthExt = ".txt"
		c.OutputGroundTruthDir = gtOut
		c.WriteOriginal = true
	})
	assert.NoError(t, NewBatch(em, []string{filepath.Join(inDir, "a.png")}).Run())

	// One ground truth copy alongside every output, originals included.
	for _, s := range Styles {
		b, err := os.ReadFile(filepath.Join(gtOut, "a"+s.String()+".txt"))
		assert.NoError(t, err)
		assert.Equal(t, "target", string(b))
	}
	_, err := os.Stat(filepath.Join(gtOut, "a_original.txt"))
	assert.NoError(t, err)
}

func TestBatchMissingGroundTruthIsPerFile(t *testing.T) {
	inDir := t.TempDir()
	writeTestInput(t, filepath.Join(inDir, "orphan.png"))

	em := testBatchEmulator(t, func(c *Config) {
		c.GroundTruthDir = t.TempDir() // no targets in there
		c.GroundTruthExt = ".txt"
	})
	err := NewBatch(em, []string{filepath.Join(inDir, "orphan.png")}).Run()
	assert.Error(t, err)

	// Nothing rendered for a file whose target is missing.
	entries, readErr := os.ReadDir(em.Config.OutputDir)
	assert.NoError(t, readErr)
	assert.Empty(t, entries)
}
