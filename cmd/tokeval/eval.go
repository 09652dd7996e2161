package main

import (
	"fmt"
	"os"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/pipeline"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var (
		scale    string
		printCSV bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate trained tokenizers and write the metric report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if scale == "" {
				return fmt.Errorf("--scale is required for eval")
			}

			report, err := pipeline.New(cfg).EvaluateScale(cmd.Context(), scale)
			if err != nil {
				return err
			}

			if printCSV {
				return report.WriteCSV(os.Stdout)
			}
			_, err = fmt.Fprintf(os.Stdout, "evaluated %d records for scale %s\n", report.Len(), scale)
			return err
		},
	}

	cmd.Flags().StringVar(&scale, "scale", "", "Dataset scale to evaluate, e.g. 100M (required)")
	cmd.Flags().BoolVar(&printCSV, "print", false, "Print the report CSV to stdout")

	return cmd
}
