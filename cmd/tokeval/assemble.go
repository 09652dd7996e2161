package main

import (
	"fmt"
	"os"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/dataset"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/pipeline"
	"github.com/spf13/cobra"
)

func newAssembleCmd() *cobra.Command {
	var (
		scale string
		auto  bool
		ratio float64
	)

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Assemble a balanced multilingual dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if !auto && scale == "" {
				return fmt.Errorf("--scale is required unless --auto is set")
			}

			p := pipeline.New(cfg)

			if auto {
				d, err := p.Assembler().AssembleAuto(cmd.Context(), ratio)
				if err != nil {
					return err
				}
				printDataset(cfg.Paths.DatasetDir, d)
				return nil
			}

			scales := []string{scale}
			if scale == "all" {
				scales = cfg.Training.Scales
			}
			for _, label := range scales {
				d, err := p.AssembleScale(cmd.Context(), label)
				if err != nil {
					return err
				}
				printDataset(cfg.Paths.DatasetDir, d)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scale, "scale", "", "Total character budget, e.g. 100M, or 'all' for every configured scale")
	cmd.Flags().BoolVar(&auto, "auto", false, "Derive the budget from the lowest-resource language")
	cmd.Flags().Float64Var(&ratio, "ratio", 0.9, "Fraction of the baseline language used with --auto")

	return cmd
}

func printDataset(datasetDir string, d *dataset.Dataset) {
	fmt.Fprintf(os.Stdout, "assembled %s (%d chars) into %s\n",
		d.Scale, d.TotalChars, dataset.Dir(datasetDir, d.Scale))
	for _, lc := range d.Languages {
		fmt.Fprintf(os.Stdout, "  %s: %d chars (wiki %d, web %d)\n",
			lc.Language, lc.Chars, lc.WikiChars, lc.WebChars)
	}
}
