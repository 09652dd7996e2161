// Package doctor provides corpus preflight checks for tokeval.
package doctor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// AvailabilityFunc reports the total characters available for a language
// across all corpus sources.
type AvailabilityFunc func(lang string) (int64, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Languages is the set of language codes to check.
	Languages []string
	// Availability counts source characters for one language.
	Availability AvailabilityFunc
	// RequiredChars is the per-language allocation of the largest configured
	// dataset scale. Zero disables the budget comparison.
	RequiredChars int64
	// EvalDir holds held-out <lang>.txt evaluation texts. Empty skips the
	// evaluation text checks.
	EvalDir string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- source availability ----------------------------------------------
	for _, lang := range cfg.Languages {
		if cfg.Availability == nil {
			fmt.Fprintf(w, "%s source data %s: skipped\n", PassMark, lang)
			continue
		}
		avail, err := cfg.Availability(lang)
		switch {
		case err != nil:
			res.fail(fmt.Sprintf("source data %s: %v", lang, err))
			fmt.Fprintf(w, "%s source data %s: %v\n", FailMark, lang, err)
		case avail == 0:
			res.fail(fmt.Sprintf("source data %s: no characters in any source", lang))
			fmt.Fprintf(w, "%s source data %s: empty\n", FailMark, lang)
		case cfg.RequiredChars > 0 && avail < cfg.RequiredChars:
			res.fail(fmt.Sprintf("source data %s: %d of %d required characters", lang, avail, cfg.RequiredChars))
			fmt.Fprintf(w, "%s source data %s: %d chars (need %d)\n", FailMark, lang, avail, cfg.RequiredChars)
		default:
			fmt.Fprintf(w, "%s source data %s: %d chars\n", PassMark, lang, avail)
		}
	}

	// ---- evaluation texts -------------------------------------------------
	if cfg.EvalDir != "" {
		for _, lang := range cfg.Languages {
			path := filepath.Join(cfg.EvalDir, lang+".txt")
			info, err := os.Stat(path)
			switch {
			case err != nil:
				res.fail(fmt.Sprintf("evaluation text %q: %v", path, err))
				fmt.Fprintf(w, "%s evaluation text %s: not found\n", FailMark, path)
			case info.Size() == 0:
				res.fail(fmt.Sprintf("evaluation text %q: empty", path))
				fmt.Fprintf(w, "%s evaluation text %s: empty\n", FailMark, path)
			default:
				fmt.Fprintf(w, "%s evaluation text: %s\n", PassMark, path)
			}
		}
	}

	return res
}
