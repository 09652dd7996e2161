package main

import (
	"fmt"
	"os"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/corpus"
	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	var (
		in  string
		out string
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Flatten a raw TITLE/TEXT export into one document per line",
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := requireConfig(); err != nil {
				return err
			}

			if in == "" {
				return corpus.Clean(os.Stdin, os.Stdout)
			}
			if out == "" {
				f, err := os.Open(in)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				return corpus.Clean(f, os.Stdout)
			}
			return corpus.CleanFile(in, out)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Raw export file (default: stdin)")
	cmd.Flags().StringVar(&out, "out", "", "Cleaned output file (default: stdout)")

	return cmd
}
