package config

import (
	"fmt"
	"strings"
)

const (
	AlgorithmBPE       = "bpe"
	AlgorithmWordPiece = "wordpiece"
	AlgorithmUnigram   = "unigram"
)

const (
	ReferenceWhitespace = "whitespace"
	ReferenceChars      = "chars"
	ReferenceTiktoken   = "tiktoken"
)

// ConfigurationError reports an invalid setting with enough context to
// reproduce the failing configuration.
type ConfigurationError struct {
	Setting string
	Value   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Setting, e.Value, e.Reason)
}

func NormalizeAlgorithm(raw string) (string, error) {
	algo := strings.ToLower(strings.TrimSpace(raw))
	switch algo {
	case AlgorithmBPE, AlgorithmWordPiece, AlgorithmUnigram:
		return algo, nil
	default:
		return "", &ConfigurationError{
			Setting: "algorithm",
			Value:   raw,
			Reason: fmt.Sprintf(
				"expected %s|%s|%s",
				AlgorithmBPE, AlgorithmWordPiece, AlgorithmUnigram,
			),
		}
	}
}

func NormalizeReference(raw string) (string, error) {
	ref := strings.ToLower(strings.TrimSpace(raw))
	if ref == "" {
		ref = ReferenceWhitespace
	}
	switch ref {
	case ReferenceWhitespace, ReferenceChars, ReferenceTiktoken:
		return ref, nil
	default:
		return "", &ConfigurationError{
			Setting: "eval.reference",
			Value:   raw,
			Reason: fmt.Sprintf(
				"expected %s|%s|%s",
				ReferenceWhitespace, ReferenceChars, ReferenceTiktoken,
			),
		}
	}
}

func ValidateVocabSize(size int) error {
	if size < 2 {
		return &ConfigurationError{
			Setting: "vocab_size",
			Value:   fmt.Sprintf("%d", size),
			Reason:  "must be at least 2",
		}
	}
	return nil
}
