// Package registry stores trained tokenizer artifacts on disk and resolves
// them by (algorithm, vocab-size, scale) for the downstream fine-tuning
// pipelines.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/config"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/tokenizer"
)

// Registry lays artifacts out as <dir>/<scale>/<algorithm>-<vocab>.json.
type Registry struct {
	Dir string
}

// Entry identifies one stored artifact.
type Entry struct {
	Algorithm string
	VocabSize int
	Scale     string
	Path      string
}

// Path returns the canonical location for a combination, whether or not an
// artifact exists there yet.
func (r *Registry) Path(algorithm string, vocabSize int, scale string) string {
	return filepath.Join(r.Dir, scale, fmt.Sprintf("%s-%d.json", algorithm, vocabSize))
}

// Save persists a trained artifact at its canonical location.
func (r *Registry) Save(a *tokenizer.Artifact, scale string) (string, error) {
	path := r.Path(a.Algorithm, a.VocabSize, scale)
	if err := a.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// Lookup resolves one combination to a loaded artifact. A missing
// combination is a configuration problem (the caller asked for something
// never trained), not a bare file error.
func (r *Registry) Lookup(algorithm string, vocabSize int, scale string) (*tokenizer.Artifact, string, error) {
	algo, err := config.NormalizeAlgorithm(algorithm)
	if err != nil {
		return nil, "", err
	}
	if err := config.ValidateVocabSize(vocabSize); err != nil {
		return nil, "", err
	}

	path := r.Path(algo, vocabSize, scale)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, "", &config.ConfigurationError{
				Setting: "artifact",
				Value:   fmt.Sprintf("%s/%d@%s", algo, vocabSize, scale),
				Reason:  "combination has not been trained",
			}
		}
		return nil, "", fmt.Errorf("stat artifact %s: %w", path, err)
	}

	a, err := tokenizer.LoadArtifact(path)
	if err != nil {
		return nil, "", err
	}
	return a, path, nil
}

// List returns all stored artifacts for a scale, sorted by algorithm then
// vocab size.
func (r *Registry) List(scale string) ([]Entry, error) {
	dir := filepath.Join(r.Dir, scale)
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read artifact dir %s: %w", dir, err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(f.Name(), ".json")
		dash := strings.LastIndex(name, "-")
		if dash < 0 {
			continue
		}
		size, err := strconv.Atoi(name[dash+1:])
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Algorithm: name[:dash],
			VocabSize: size,
			Scale:     scale,
			Path:      filepath.Join(dir, f.Name()),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Algorithm != entries[j].Algorithm {
			return entries[i].Algorithm < entries[j].Algorithm
		}
		return entries[i].VocabSize < entries[j].VocabSize
	})
	return entries, nil
}
