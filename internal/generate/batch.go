package generate

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/dekarrin/brickgrammar/internal/grammar"
	"github.com/dekarrin/brickgrammar/internal/placement"
)

// RunStats summarizes one grammar's generation run: element and voxel
// counts, wall time, and any error encountered.
type RunStats struct {
	GrammarFile  string
	ElementCount int
	VoxelCount   int
	Duration     time.Duration
	Err          error
}

// BatchRun runs every ".grmr" file in dir through the generator and reports
// per-grammar stats.
func BatchRun(dir string, maxSentenceLen int, rng *rand.Rand) ([]RunStats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading grammar dir: %w", err)
	}

	var stats []RunStats
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".grmr" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		stats = append(stats, runOne(path, maxSentenceLen, rng))
	}
	return stats, nil
}

func runOne(path string, maxSentenceLen int, rng *rand.Rand) RunStats {
	start := time.Now()
	stat := RunStats{GrammarFile: path}

	text, err := os.ReadFile(path)
	if err != nil {
		stat.Err = err
		return stat
	}

	g, err := grammar.Load(string(text))
	if err != nil {
		stat.Err = err
		return stat
	}

	cache := placement.NewCache()
	sentence, err := Generate(g, cache, maxSentenceLen, rng)
	if err != nil {
		stat.Err = err
		return stat
	}

	elements, img, _, err := cache.Parse(terminalsOnly(sentence))
	if err != nil {
		stat.Err = err
		return stat
	}

	stat.ElementCount = len(elements)
	stat.VoxelCount = img.Len()
	stat.Duration = time.Since(start)
	return stat
}
