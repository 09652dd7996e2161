// Package corpus samples per-language text from raw corpus files up to a
// character budget. Source files hold one document per line, UTF-8.
package corpus

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeDocument prepares one raw document for sampling.
// It normalizes line endings to \n, collapses them into spaces (a document
// must stay on one line), trims surrounding whitespace, and applies Unicode
// NFC so character budgets count composed code points.
func NormalizeDocument(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)

	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}

	return s
}

// CountChars returns the number of Unicode code points in s.
// Budgets are counted in code points, not bytes, so multi-byte scripts
// (zh, ja, bn, ...) are allocated the same amount of text as Latin ones.
func CountChars(s string) int64 {
	return int64(utf8.RuneCountInString(s))
}
