// Package dataset assembles balanced multilingual training corpora from
// per-language samples.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Scale is a named total character budget for one balanced dataset
// (e.g. "100M" = 100 000 000 characters across all languages).
type Scale struct {
	Label string
	Chars int64
}

// ParseScale parses a total character budget such as "100M", "50k" or a
// bare digit string.
func ParseScale(raw string) (Scale, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Scale{}, fmt.Errorf("empty scale")
	}

	mult := int64(1)
	switch {
	case strings.HasSuffix(strings.ToUpper(s), "G"):
		mult = 1_000_000_000
		s = s[:len(s)-1]
	case strings.HasSuffix(strings.ToUpper(s), "M"):
		mult = 1_000_000
		s = s[:len(s)-1]
	case strings.HasSuffix(strings.ToUpper(s), "K"):
		mult = 1_000
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return Scale{}, fmt.Errorf("invalid scale %q", raw)
	}

	return Scale{Label: canonicalLabel(n * mult), Chars: n * mult}, nil
}

// canonicalLabel renders a character count in the shortest suffixed form,
// so "100000000" and "100M" name the same dataset directory.
func canonicalLabel(chars int64) string {
	switch {
	case chars%1_000_000_000 == 0:
		return fmt.Sprintf("%dG", chars/1_000_000_000)
	case chars%1_000_000 == 0:
		return fmt.Sprintf("%dM", chars/1_000_000)
	case chars%1_000 == 0:
		return fmt.Sprintf("%dk", chars/1_000)
	default:
		return strconv.FormatInt(chars, 10)
	}
}

func (s Scale) String() string { return s.Label }

// EqualSplit divides total across n languages so the shares sum to exactly
// total; the first total%n shares carry the remainder.
func EqualSplit(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	base := total / int64(n)
	rem := total % int64(n)

	out := make([]int64, n)
	for i := range out {
		out[i] = base
		if int64(i) < rem {
			out[i]++
		}
	}
	return out
}
