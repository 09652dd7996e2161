package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LanguageCorpus records one language's contribution to a balanced dataset.
// Immutable once sampled.
type LanguageCorpus struct {
	Language   string `json:"language"`
	Allocation int64  `json:"allocation"`
	Chars      int64  `json:"chars"`
	WikiChars  int64  `json:"wiki_chars"`
	WebChars   int64  `json:"web_chars"`
	File       string `json:"file"`
}

// Dataset is the manifest of one assembled balanced dataset. The combined
// training corpus lives in CorpusFile; per-language samples sit alongside it.
type Dataset struct {
	RunID       string           `json:"run_id"`
	Scale       string           `json:"scale"`
	TotalChars  int64            `json:"total_chars"`
	ShuffleSeed int64            `json:"shuffle_seed"`
	AssembledAt time.Time        `json:"assembled_at"`
	Languages   []LanguageCorpus `json:"languages"`
	CorpusFile  string           `json:"corpus_file"`
}

const manifestName = "manifest.json"

// BalanceTolerance is the maximum relative deviation of a language's actual
// character count from its allocation. Samples cut at document boundaries
// overshoot the allocation by at most one document, so the slack is small
// at the studied scales.
const BalanceTolerance = 0.01

// Validate checks the balance invariant: allocations sum to the declared
// total, and every language's actual count is at least its allocation and
// within BalanceTolerance above it.
func (d *Dataset) Validate() error {
	var sum int64
	for _, lc := range d.Languages {
		sum += lc.Allocation
	}
	if sum != d.TotalChars {
		return fmt.Errorf(
			"dataset %s: allocations sum to %d, declared total %d",
			d.Scale, sum, d.TotalChars,
		)
	}

	for _, lc := range d.Languages {
		if lc.Chars < lc.Allocation {
			return fmt.Errorf(
				"dataset %s: language %s under-filled (%d of %d chars)",
				d.Scale, lc.Language, lc.Chars, lc.Allocation,
			)
		}
		slack := float64(lc.Chars-lc.Allocation) / float64(lc.Allocation)
		if slack > BalanceTolerance {
			return fmt.Errorf(
				"dataset %s: language %s exceeds allocation by %.2f%% (limit %.2f%%)",
				d.Scale, lc.Language, slack*100, BalanceTolerance*100,
			)
		}
	}

	return nil
}

// Save writes the manifest into dir.
func (d *Dataset) Save(dir string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Load reads the manifest of an assembled dataset from dir.
func Load(dir string) (*Dataset, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &d, nil
}

// Dir returns the directory of a dataset at the given scale label.
func Dir(datasetDir, scaleLabel string) string {
	return filepath.Join(datasetDir, scaleLabel)
}
