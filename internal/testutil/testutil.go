// Package testutil provides shared corpus fixtures for integration tests.
//
// The helpers lay out the on-disk tree the sampler and evaluator expect: one
// plain-text file per language and source, one document per line, UTF-8.
//
// Typical usage:
//
//	func TestMyIntegration(t *testing.T) {
//	    wiki, web := testutil.WriteSourceTree(t, []string{"sw", "tr"}, "aa bb aa b\n", 6)
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteSourceFile writes one per-language source file holding the given
// documents (one per line) and returns its path.
func WriteSourceFile(tb testing.TB, dir, lang string, docs ...string) string {
	tb.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", dir, err)
	}

	path := filepath.Join(dir, lang+".txt")
	text := strings.Join(docs, "\n")
	if text != "" {
		text += "\n"
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}

	return path
}

// WriteSourceTree lays out wiki/ and web/ directories under a fresh temp
// root, each holding one file per language with doc repeated perSource
// times. It returns the two source directories.
func WriteSourceTree(tb testing.TB, langs []string, doc string, perSource int) (wikiDir, webDir string) {
	tb.Helper()

	root := tb.TempDir()
	wikiDir = filepath.Join(root, "wiki")
	webDir = filepath.Join(root, "web")

	if !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	for _, dir := range []string{wikiDir, webDir} {
		for _, lang := range langs {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				tb.Fatalf("mkdir %s: %v", dir, err)
			}
			path := filepath.Join(dir, lang+".txt")
			text := strings.Repeat(doc, perSource)
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				tb.Fatalf("write %s: %v", path, err)
			}
		}
	}

	return wikiDir, webDir
}

// WriteEvalTexts writes one held-out evaluation file per language into a
// fresh temp directory and returns that directory.
func WriteEvalTexts(tb testing.TB, langs []string, text string) string {
	tb.Helper()

	dir := tb.TempDir()
	for _, lang := range langs {
		if err := os.WriteFile(filepath.Join(dir, lang+".txt"), []byte(text), 0o644); err != nil {
			tb.Fatalf("write eval %s: %v", lang, err)
		}
	}

	return dir
}
