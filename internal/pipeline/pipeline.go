// Package pipeline drives the strictly ordered experiment stages: Sample →
// Assemble → Train → Evaluate. Assembly failures abort the affected
// dataset-scale run; training failures abort only the affected (algorithm,
// vocab-size) combination; nothing propagates partial results forward.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/config"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/corpus"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/dataset"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/eval"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/registry"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/tokenizer"
)

type Pipeline struct {
	cfg       config.Config
	sampler   *corpus.Sampler
	assembler *dataset.Assembler
	reg       *registry.Registry
}

func New(cfg config.Config) *Pipeline {
	sampler := &corpus.Sampler{
		WikiDir:         cfg.Paths.WikiDir,
		WebDir:          cfg.Paths.WebDir,
		InterleaveChars: int64(cfg.Sampling.InterleaveChars),
	}
	return &Pipeline{
		cfg:     cfg,
		sampler: sampler,
		assembler: &dataset.Assembler{
			Sampler:     sampler,
			Languages:   cfg.Sampling.Languages,
			OutDir:      cfg.Paths.DatasetDir,
			ShuffleSeed: cfg.Sampling.ShuffleSeed,
		},
		reg: &registry.Registry{Dir: cfg.Paths.ArtifactDir},
	}
}

// Sampler exposes the corpus sampler for single-language runs.
func (p *Pipeline) Sampler() *corpus.Sampler { return p.sampler }

// Assembler exposes the dataset assembler for stage-level commands.
func (p *Pipeline) Assembler() *dataset.Assembler { return p.assembler }

// Registry exposes artifact lookup for the downstream harness.
func (p *Pipeline) Registry() *registry.Registry { return p.reg }

// Combos expands the configured algorithms × vocab sizes, validating each.
func (p *Pipeline) Combos() ([]tokenizer.Config, error) {
	var combos []tokenizer.Config
	for _, raw := range p.cfg.Training.Algorithms {
		algo, err := config.NormalizeAlgorithm(raw)
		if err != nil {
			return nil, err
		}
		for _, size := range p.cfg.Training.VocabSizes {
			if err := config.ValidateVocabSize(size); err != nil {
				return nil, err
			}
			combos = append(combos, tokenizer.Config{
				Algorithm: algo,
				VocabSize: size,
				Seed:      p.cfg.Training.Seed,
			})
		}
	}
	if len(combos) == 0 {
		return nil, &config.ConfigurationError{
			Setting: "training",
			Value:   "",
			Reason:  "no algorithm/vocab-size combinations configured",
		}
	}
	return combos, nil
}

// AssembleScale builds one balanced dataset.
func (p *Pipeline) AssembleScale(ctx context.Context, label string) (*dataset.Dataset, error) {
	scale, err := dataset.ParseScale(label)
	if err != nil {
		return nil, &config.ConfigurationError{Setting: "scale", Value: label, Reason: err.Error()}
	}
	return p.assembler.Assemble(ctx, scale)
}

// TrainScale trains every combination on an assembled dataset. Word counts
// are computed once and shared read-only across the parallel trainers.
// A failing combination is reported but does not stop the others.
func (p *Pipeline) TrainScale(ctx context.Context, label string, combos []tokenizer.Config) error {
	d, err := dataset.Load(dataset.Dir(p.cfg.Paths.DatasetDir, label))
	if err != nil {
		return fmt.Errorf("scale %s: train: %w", label, err)
	}

	corpusPath := filepath.Join(dataset.Dir(p.cfg.Paths.DatasetDir, label), d.CorpusFile)
	counts, err := tokenizer.CountWordsFile(corpusPath)
	if err != nil {
		return fmt.Errorf("scale %s: train: %w", label, err)
	}

	concurrency := p.cfg.Training.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu       sync.Mutex
		failures []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, combo := range combos {
		combo := combo
		g.Go(func() error {
			start := time.Now()
			slog.Info("training tokenizer", "scale", label, "config", combo.String())

			trainer, err := tokenizer.NewTrainer(combo.Algorithm)
			if err == nil {
				var a *tokenizer.Artifact
				a, err = trainer.Train(gctx, counts, combo)
				if err == nil {
					a.Dataset = d.RunID
					_, err = p.reg.Save(a, label)
				}
			}
			if err != nil {
				slog.Error("training failed", "scale", label, "config", combo.String(), "error", err)
				mu.Lock()
				failures = append(failures, fmt.Errorf("scale %s: %w", label, err))
				mu.Unlock()
				return nil // isolate: other combinations proceed
			}

			slog.Info("trained tokenizer",
				"scale", label,
				"config", combo.String(),
				"took", time.Since(start).Round(time.Millisecond),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("scale %s: train: %w", label, err)
	}

	return errors.Join(failures...)
}

// EvaluateScale computes NSL and fertility for every stored artifact of a
// scale over each language's held-out text, and writes the report CSV.
func (p *Pipeline) EvaluateScale(ctx context.Context, label string) (*eval.Report, error) {
	entries, err := p.reg.List(label)
	if err != nil {
		return nil, fmt.Errorf("scale %s: evaluate: %w", label, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("scale %s: evaluate: no trained artifacts", label)
	}

	ref, err := eval.NewReference(p.cfg.Eval.Reference)
	if err != nil {
		return nil, fmt.Errorf("scale %s: evaluate: %w", label, err)
	}
	evaluator := &eval.Evaluator{Reference: ref}

	report := &eval.Report{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.Training.Concurrency, 1))
	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := tokenizer.LoadArtifact(entry.Path)
			if err != nil {
				return fmt.Errorf("scale %s: evaluate %s/%d: %w", label, entry.Algorithm, entry.VocabSize, err)
			}
			for _, lang := range p.cfg.Sampling.Languages {
				path := filepath.Join(p.cfg.Paths.EvalDir, lang+".txt")
				rec, err := evaluator.EvaluateFile(a, lang, label, path)
				if err != nil {
					return fmt.Errorf("scale %s: evaluate %s/%d: %w", label, entry.Algorithm, entry.VocabSize, err)
				}
				report.Append(rec)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reportPath := filepath.Join(p.cfg.Paths.ReportDir, label+".csv")
	if err := report.Save(reportPath); err != nil {
		return nil, fmt.Errorf("scale %s: evaluate: %w", label, err)
	}

	slog.Info("evaluation report written", "scale", label, "path", reportPath, "records", report.Len())
	return report, nil
}

// Run executes the full ordered pipeline over every configured scale. A
// failure in one scale's assembly skips that scale's later stages but does
// not stop the other scales.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	slog.Info("pipeline run starting",
		"run_id", runID,
		"scales", p.cfg.Training.Scales,
		"languages", len(p.cfg.Sampling.Languages),
	)

	combos, err := p.Combos()
	if err != nil {
		return err
	}

	var failures []error
	for _, label := range p.cfg.Training.Scales {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := p.AssembleScale(ctx, label); err != nil {
			slog.Error("assembly failed, skipping scale", "scale", label, "error", err)
			failures = append(failures, err)
			continue
		}
		if err := p.TrainScale(ctx, label, combos); err != nil {
			// Some combinations failed; the trained remainder still gets
			// evaluated.
			failures = append(failures, err)
		}
		if _, err := p.EvaluateScale(ctx, label); err != nil {
			slog.Error("evaluation failed", "scale", label, "error", err)
			failures = append(failures, err)
		}
	}

	if err := errors.Join(failures...); err != nil {
		return fmt.Errorf("pipeline run %s: %w", runID, err)
	}
	slog.Info("pipeline run complete", "run_id", runID)
	return nil
}
