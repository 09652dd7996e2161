package eval

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Report is the shared metric table of one evaluation run. Appends from
// concurrent evaluations are serialized; records are sorted on output,
// never mutated.
type Report struct {
	mu      sync.Mutex
	records []MetricRecord
}

// Append adds one record to the table.
func (r *Report) Append(rec MetricRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

// Records returns a sorted copy: language, then algorithm, then vocab size.
func (r *Report) Records() []MetricRecord {
	r.mu.Lock()
	out := append([]MetricRecord(nil), r.records...)
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Language != out[j].Language {
			return out[i].Language < out[j].Language
		}
		if out[i].Algorithm != out[j].Algorithm {
			return out[i].Algorithm < out[j].Algorithm
		}
		return out[i].VocabSize < out[j].VocabSize
	})
	return out
}

// Len returns the number of appended records.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// WriteCSV emits the table with one row per (language, configuration).
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"language", "algorithm", "vocab_size", "scale", "nsl", "fertility"}); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, rec := range r.Records() {
		row := []string{
			rec.Language,
			rec.Algorithm,
			fmt.Sprintf("%d", rec.VocabSize),
			rec.Scale,
			fmt.Sprintf("%.4f", rec.NSL),
			fmt.Sprintf("%.4f", rec.Fertility),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes the report CSV to path, creating parent directories.
func (r *Report) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	if err := r.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
