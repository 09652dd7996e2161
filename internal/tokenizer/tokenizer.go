// Package tokenizer trains subword vocabularies (BPE, WordPiece, Unigram)
// on balanced corpora and encodes text with the trained artifacts. The
// surface is narrow: training turns word counts into an artifact, encoding
// turns text into tokens, and everything else stays internal.
package tokenizer

import (
	"context"
	"fmt"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/config"
)

// UnknownToken stands in for any input piece the vocabulary cannot cover.
const UnknownToken = "<unk>"

// Config selects one training combination.
type Config struct {
	Algorithm string
	VocabSize int
	// Seed fixes Unigram's tie-breaking during pruning; BPE and WordPiece
	// are deterministic regardless.
	Seed int64
}

func (c Config) String() string {
	return fmt.Sprintf("%s/%d", c.Algorithm, c.VocabSize)
}

// Validate reports a ConfigurationError for an unusable combination.
func (c Config) Validate() error {
	if _, err := config.NormalizeAlgorithm(c.Algorithm); err != nil {
		return err
	}
	return config.ValidateVocabSize(c.VocabSize)
}

// Trainer produces a tokenizer artifact from word counts.
type Trainer interface {
	// Train runs the algorithm to convergence or to the vocabulary-size
	// limit, whichever binds first. Identical counts and config produce
	// identical artifacts.
	Train(ctx context.Context, counts WordCounts, cfg Config) (*Artifact, error)
}

// Encoder segments text into subword tokens using a trained artifact.
type Encoder interface {
	// EncodeWord segments a single pretokenized word.
	EncodeWord(word string) []string
	// Encode pretokenizes text on whitespace and segments every word.
	Encode(text string) []string
}

// TrainingError wraps a failure of one (algorithm, vocab-size) combination.
// Other combinations proceed independently of it.
type TrainingError struct {
	Config Config
	Err    error
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("train %s: %v", e.Config, e.Err)
}

func (e *TrainingError) Unwrap() error { return e.Err }

// NewTrainer returns the trainer for a normalized algorithm name.
func NewTrainer(algorithm string) (Trainer, error) {
	algo, err := config.NormalizeAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	switch algo {
	case config.AlgorithmBPE:
		return &BPETrainer{}, nil
	case config.AlgorithmWordPiece:
		return &WordPieceTrainer{}, nil
	default:
		return &UnigramTrainer{}, nil
	}
}

// NewEncoder builds the encoder matching an artifact's algorithm.
func NewEncoder(a *Artifact) (Encoder, error) {
	switch a.Algorithm {
	case config.AlgorithmBPE:
		return newBPEEncoder(a), nil
	case config.AlgorithmWordPiece:
		return newWordPieceEncoder(a), nil
	case config.AlgorithmUnigram:
		return newUnigramEncoder(a), nil
	default:
		return nil, &config.ConfigurationError{
			Setting: "algorithm",
			Value:   a.Algorithm,
			Reason:  "artifact carries unknown algorithm",
		}
	}
}
