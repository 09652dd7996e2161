package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/corpus"
)

// Assembler builds balanced multilingual datasets by fanning sampling out
// across languages and merging the results. Per-language sampling shares no
// mutable state, so languages run in parallel; any single failure aborts
// the whole assembly (a partially balanced dataset is never persisted).
type Assembler struct {
	Sampler   *corpus.Sampler
	Languages []string
	// OutDir is the dataset root; each assembly lands in OutDir/<scale>.
	OutDir      string
	ShuffleSeed int64
}

const statisticsName = "statistics.csv"

// Assemble samples every configured language at an equal share of
// scale.Chars and persists the balanced dataset atomically: everything is
// staged in a temporary directory and renamed into place only after the
// balance invariant has been verified.
func (a *Assembler) Assemble(ctx context.Context, scale Scale) (*Dataset, error) {
	if len(a.Languages) == 0 {
		return nil, fmt.Errorf("assemble %s: no languages configured", scale)
	}

	runID := uuid.NewString()
	allocs := EqualSplit(scale.Chars, len(a.Languages))

	slog.Info("assembling dataset",
		"run_id", runID,
		"scale", scale.Label,
		"languages", len(a.Languages),
		"per_language", allocs[len(allocs)-1],
	)

	samples := make([]corpus.Sample, len(a.Languages))
	g, gctx := errgroup.WithContext(ctx)
	for i, lang := range a.Languages {
		i, lang := i, lang
		g.Go(func() error {
			s, err := a.Sampler.Sample(gctx, lang, allocs[i])
			if err != nil {
				return fmt.Errorf("assemble %s: sample: %w", scale, err)
			}
			samples[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dataset{
		RunID:       runID,
		Scale:       scale.Label,
		TotalChars:  scale.Chars,
		ShuffleSeed: a.ShuffleSeed,
		AssembledAt: time.Now().UTC(),
		CorpusFile:  "corpus.txt",
	}
	for i, s := range samples {
		d.Languages = append(d.Languages, LanguageCorpus{
			Language:   s.Language,
			Allocation: allocs[i],
			Chars:      s.Chars,
			WikiChars:  s.WikiChars,
			WebChars:   s.WebChars,
			File:       s.Language + ".txt",
		})
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	if err := a.persist(d, samples); err != nil {
		return nil, fmt.Errorf("assemble %s: %w", scale, err)
	}

	slog.Info("assembled dataset", "run_id", runID, "scale", scale.Label, "dir", Dir(a.OutDir, scale.Label))
	return d, nil
}

// AssembleAuto derives the per-language budget from the lowest-resource
// language (ratio of its available characters), the balancing approach the
// study used when a fixed total would exceed the smallest corpus.
func (a *Assembler) AssembleAuto(ctx context.Context, ratio float64) (*Dataset, error) {
	if ratio <= 0 || ratio > 1 {
		return nil, fmt.Errorf("assemble auto: ratio %v out of (0, 1]", ratio)
	}

	min := int64(-1)
	minLang := ""
	for _, lang := range a.Languages {
		avail, err := a.Sampler.Available(lang)
		if err != nil {
			return nil, fmt.Errorf("assemble auto: availability of %s: %w", lang, err)
		}
		if min < 0 || avail < min {
			min = avail
			minLang = lang
		}
	}
	if min <= 0 {
		return nil, fmt.Errorf("assemble auto: no language has any source data")
	}

	perLang := int64(float64(min) * ratio)
	total := perLang * int64(len(a.Languages))
	slog.Info("auto budget from baseline language",
		"baseline", minLang,
		"available", min,
		"per_language", perLang,
	)

	return a.Assemble(ctx, Scale{Label: "auto", Chars: total})
}

// persist stages the dataset in a temp directory and renames it into place.
func (a *Assembler) persist(d *Dataset, samples []corpus.Sample) error {
	if err := os.MkdirAll(a.OutDir, 0o755); err != nil {
		return fmt.Errorf("create dataset root: %w", err)
	}

	staging, err := os.MkdirTemp(a.OutDir, ".staging-"+d.Scale+"-")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	for i, s := range samples {
		path := filepath.Join(staging, d.Languages[i].File)
		if err := os.WriteFile(path, []byte(s.Text), 0o644); err != nil {
			return fmt.Errorf("write sample %s: %w", s.Language, err)
		}
	}

	if err := a.writeCorpus(filepath.Join(staging, d.CorpusFile), samples); err != nil {
		return err
	}
	if err := d.Save(staging); err != nil {
		return err
	}
	if err := writeStatistics(filepath.Join(staging, statisticsName), d); err != nil {
		return err
	}

	final := Dir(a.OutDir, d.Scale)
	if err := os.RemoveAll(final); err != nil {
		return fmt.Errorf("clear previous dataset: %w", err)
	}
	if err := os.Rename(staging, final); err != nil {
		return fmt.Errorf("publish dataset: %w", err)
	}
	return nil
}

// writeCorpus concatenates the language sections into the combined training
// corpus, shuffled with the configured seed so no language systematically
// leads the file.
func (a *Assembler) writeCorpus(path string, samples []corpus.Sample) error {
	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewSource(a.ShuffleSeed))
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	for _, i := range order {
		if _, err := io.WriteString(f, samples[i].Text); err != nil {
			f.Close()
			return fmt.Errorf("write corpus section %s: %w", samples[i].Language, err)
		}
	}
	return f.Close()
}

// writeStatistics emits the per-language assembly breakdown next to the
// dataset, one row per language plus a totals row.
func writeStatistics(path string, d *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create statistics file: %w", err)
	}
	w := csv.NewWriter(f)

	header := []string{"language", "allocation", "wiki_chars", "web_chars", "total_chars", "wiki_pct", "web_pct"}
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write statistics header: %w", err)
	}

	var totWiki, totWeb, totAll int64
	for _, lc := range d.Languages {
		row := []string{
			lc.Language,
			fmt.Sprintf("%d", lc.Allocation),
			fmt.Sprintf("%d", lc.WikiChars),
			fmt.Sprintf("%d", lc.WebChars),
			fmt.Sprintf("%d", lc.Chars),
			pct(lc.WikiChars, lc.Chars),
			pct(lc.WebChars, lc.Chars),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write statistics row %s: %w", lc.Language, err)
		}
		totWiki += lc.WikiChars
		totWeb += lc.WebChars
		totAll += lc.Chars
	}

	total := []string{
		"total", fmt.Sprintf("%d", d.TotalChars),
		fmt.Sprintf("%d", totWiki), fmt.Sprintf("%d", totWeb), fmt.Sprintf("%d", totAll),
		pct(totWiki, totAll), pct(totWeb, totAll),
	}
	if err := w.Write(total); err != nil {
		f.Close()
		return fmt.Errorf("write statistics totals: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush statistics: %w", err)
	}
	return f.Close()
}

func pct(part, whole int64) string {
	if whole == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(part)/float64(whole)*100)
}
