package tokenizer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Artifact is a trained tokenizer: the vocabulary plus the algorithm's
// segmentation rules. Immutable after training; the evaluator and the
// downstream fine-tuning harness consume it read-only.
type Artifact struct {
	Algorithm string    `json:"algorithm"`
	VocabSize int       `json:"vocab_size"`
	Seed      int64     `json:"seed,omitempty"`
	Dataset   string    `json:"dataset"`
	TrainedAt time.Time `json:"trained_at"`

	// Vocab lists tokens in rank order. Its length never exceeds VocabSize.
	Vocab []string `json:"vocab"`
	// Merges holds BPE/WordPiece merge rules in application order.
	Merges [][2]string `json:"merges,omitempty"`
	// Scores holds Unigram log-probabilities per piece.
	Scores map[string]float64 `json:"scores,omitempty"`
}

// Validate checks the artifact's structural invariants.
func (a *Artifact) Validate() error {
	if len(a.Vocab) == 0 {
		return fmt.Errorf("artifact %s/%d: empty vocabulary", a.Algorithm, a.VocabSize)
	}
	if len(a.Vocab) > a.VocabSize {
		return fmt.Errorf(
			"artifact %s/%d: vocabulary has %d entries, limit %d",
			a.Algorithm, a.VocabSize, len(a.Vocab), a.VocabSize,
		)
	}
	return nil
}

// Save writes the artifact as JSON, creating parent directories as needed.
func (a *Artifact) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads a trained artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
