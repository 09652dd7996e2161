package main

import (
	"fmt"
	"os"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/pipeline"
	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	var (
		algorithm string
		vocabSize int
		scale     string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve a trained tokenizer artifact by configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if algorithm == "" || scale == "" {
				return fmt.Errorf("--algorithm and --scale are required for lookup")
			}

			a, path, err := pipeline.New(cfg).Registry().Lookup(algorithm, vocabSize, scale)
			if err != nil {
				return err
			}

			if verbose {
				fmt.Fprintf(os.Stdout, "path: %s\n", path)
				fmt.Fprintf(os.Stdout, "algorithm: %s\n", a.Algorithm)
				fmt.Fprintf(os.Stdout, "vocab: %d/%d\n", len(a.Vocab), a.VocabSize)
				fmt.Fprintf(os.Stdout, "dataset: %s\n", a.Dataset)
				fmt.Fprintf(os.Stdout, "trained: %s\n", a.TrainedAt.Format("2006-01-02 15:04:05"))
				return nil
			}

			// Bare path output for scripting in the downstream harness.
			_, err = fmt.Fprintln(os.Stdout, path)
			return err
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", "", "Tokenizer algorithm: bpe|wordpiece|unigram (required)")
	cmd.Flags().IntVar(&vocabSize, "vocab-size", 0, "Vocabulary size the tokenizer was trained with (required)")
	cmd.Flags().StringVar(&scale, "scale", "", "Dataset scale the tokenizer was trained on (required)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Print artifact details instead of the bare path")

	return cmd
}
