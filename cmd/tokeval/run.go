package main

import (
	"fmt"
	"os"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/pipeline"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: sample, assemble, train, evaluate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if err := pipeline.New(cfg).Run(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintln(os.Stdout, "pipeline complete")
			return err
		},
	}

	return cmd
}
