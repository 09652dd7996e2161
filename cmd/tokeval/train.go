package main

import (
	"fmt"
	"os"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/config"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/pipeline"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/tokenizer"
	"github.com/spf13/cobra"
)

func newTrainCmd() *cobra.Command {
	var (
		scale     string
		algorithm string
		vocabSize int
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train tokenizers on an assembled dataset",
		Long: "Train runs every configured algorithm × vocab-size combination on an\n" +
			"assembled dataset, or a single combination when --algorithm and\n" +
			"--vocab-size are given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if scale == "" {
				return fmt.Errorf("--scale is required for train")
			}
			if (algorithm == "") != (vocabSize == 0) {
				return fmt.Errorf("--algorithm and --vocab-size must be given together")
			}

			p := pipeline.New(cfg)

			var combos []tokenizer.Config
			if algorithm != "" {
				algo, err := config.NormalizeAlgorithm(algorithm)
				if err != nil {
					return err
				}
				if err := config.ValidateVocabSize(vocabSize); err != nil {
					return err
				}
				combos = []tokenizer.Config{{
					Algorithm: algo,
					VocabSize: vocabSize,
					Seed:      cfg.Training.Seed,
				}}
			} else {
				combos, err = p.Combos()
				if err != nil {
					return err
				}
			}

			if err := p.TrainScale(cmd.Context(), scale, combos); err != nil {
				return err
			}

			_, err = fmt.Fprintf(os.Stdout, "trained %d tokenizers for scale %s\n", len(combos), scale)
			return err
		},
	}

	cmd.Flags().StringVar(&scale, "scale", "", "Dataset scale to train on, e.g. 100M (required)")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "Train only this algorithm (with --vocab-size)")
	cmd.Flags().IntVar(&vocabSize, "vocab-size", 0, "Train only this vocabulary size (with --algorithm)")

	return cmd
}
