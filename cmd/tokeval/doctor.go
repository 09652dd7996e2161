package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/dataset"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/doctor"
	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/pipeline"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check corpus sources against the configured scales",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			required, err := largestAllocation(cfg.Training.Scales, len(cfg.Sampling.Languages))
			if err != nil {
				return err
			}

			p := pipeline.New(cfg)
			result := doctor.Run(doctor.Config{
				Languages:     cfg.Sampling.Languages,
				Availability:  p.Sampler().Available,
				RequiredChars: required,
				EvalDir:       cfg.Paths.EvalDir,
			}, os.Stdout)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(os.Stdout, "doctor checks passed")

			return nil
		},
	}

	return cmd
}

// largestAllocation returns the per-language character budget of the biggest
// configured scale.
func largestAllocation(scales []string, langs int) (int64, error) {
	if langs == 0 {
		return 0, fmt.Errorf("no languages configured")
	}

	var biggest int64
	for _, label := range scales {
		s, err := dataset.ParseScale(label)
		if err != nil {
			return 0, err
		}
		if s.Chars > biggest {
			biggest = s.Chars
		}
	}
	if biggest == 0 {
		return 0, nil
	}
	return dataset.EqualSplit(biggest, langs)[0], nil
}
