package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/corpus"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/dataset"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/pipeline"
	"github.com/spf13/cobra"
)

func newSampleCmd() *cobra.Command {
	var (
		lang   string
		target string
		source string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample a character budget of text per language",
		Long: "Sample draws a character budget of normalized text for one language\n" +
			"(--lang) or for every configured language. The all-language mode writes\n" +
			"one <lang>.txt per language into --out, which must be a directory.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			scale, err := dataset.ParseScale(target)
			if err != nil {
				return err
			}

			p := pipeline.New(cfg)

			sampleOne := func(lang string) (corpus.Sample, error) {
				switch source {
				case "both", "":
					return p.Sampler().Sample(cmd.Context(), lang, scale.Chars)
				case "wiki":
					return corpus.SampleFile(cmd.Context(), lang, filepath.Join(cfg.Paths.WikiDir, lang+".txt"), scale.Chars)
				case "web":
					return corpus.SampleFile(cmd.Context(), lang, filepath.Join(cfg.Paths.WebDir, lang+".txt"), scale.Chars)
				default:
					return corpus.Sample{}, fmt.Errorf("--source must be 'both', 'wiki' or 'web'")
				}
			}

			if strings.TrimSpace(lang) == "" {
				if out == "" {
					return fmt.Errorf("--out directory is required when sampling all languages")
				}
				if err := os.MkdirAll(out, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
				for _, lang := range cfg.Sampling.Languages {
					s, err := sampleOne(lang)
					if err != nil {
						return err
					}
					path := filepath.Join(out, lang+".txt")
					if err := os.WriteFile(path, []byte(s.Text), 0o644); err != nil {
						return fmt.Errorf("write sample %s: %w", lang, err)
					}
					fmt.Fprintf(os.Stderr, "sampled %s: %d chars (wiki %d, web %d)\n",
						s.Language, s.Chars, s.WikiChars, s.WebChars)
				}
				return nil
			}

			s, err := sampleOne(lang)
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
				if err := os.WriteFile(out, []byte(s.Text), 0o644); err != nil {
					return fmt.Errorf("write sample: %w", err)
				}
			} else {
				if _, err := fmt.Fprint(os.Stdout, s.Text); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(os.Stderr, "sampled %s: %d chars (wiki %d, web %d)\n",
				s.Language, s.Chars, s.WikiChars, s.WebChars)
			return err
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Language code to sample (default: all configured)")
	cmd.Flags().StringVar(&target, "target", "", "Character budget, e.g. 10M (required)")
	cmd.Flags().StringVar(&source, "source", "both", "Source to draw from: both|wiki|web")
	cmd.Flags().StringVar(&out, "out", "", "Output file, or directory in all-language mode (default: stdout)")

	return cmd
}
