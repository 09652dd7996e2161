// Package eval computes intrinsic tokenizer metrics (normalized sequence
// length, subword fertility) over held-out per-language texts and collects
// them into a report table.
package eval

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/config"
)

// Reference produces the baseline segment count NSL is normalized against.
type Reference interface {
	Name() string
	Count(text string) (int, error)
}

// NewReference builds the configured baseline segmenter.
func NewReference(kind string) (Reference, error) {
	ref, err := config.NormalizeReference(kind)
	if err != nil {
		return nil, err
	}
	switch ref {
	case config.ReferenceChars:
		return charReference{}, nil
	case config.ReferenceTiktoken:
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("load cl100k_base encoding: %w", err)
		}
		return &tiktokenReference{enc: enc}, nil
	default:
		return whitespaceReference{}, nil
	}
}

type whitespaceReference struct{}

func (whitespaceReference) Name() string { return config.ReferenceWhitespace }

func (whitespaceReference) Count(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

type charReference struct{}

func (charReference) Name() string { return config.ReferenceChars }

func (charReference) Count(text string) (int, error) {
	return utf8.RuneCountInString(strings.TrimSpace(text)), nil
}

// tiktokenReference normalizes against a pretrained cl100k_base BPE, giving
// NSL relative to an established multilingual baseline rather than raw
// whitespace.
type tiktokenReference struct {
	enc *tiktoken.Tiktoken
}

func (r *tiktokenReference) Name() string { return config.ReferenceTiktoken }

func (r *tiktokenReference) Count(text string) (int, error) {
	return len(r.enc.Encode(text, nil, nil)), nil
}
