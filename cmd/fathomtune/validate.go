package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/domtree/fathom/internal/corpus"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Score a coefficient file's accuracy against the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate()
		},
	}
	return cmd
}

func runValidate() error {
	coeffs, err := loadCoefficients(cfg.CoefficientsPath)
	if err != nil {
		return err
	}
	cases, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("corpus at %s has no fixtures", cfg.CorpusPath)
	}

	correct := 0
	for _, c := range cases {
		ok := caseCorrect(c, coeffs)
		mark := "✗"
		if ok {
			mark = "✓"
			correct++
		}
		fmt.Printf("%s %s\n", mark, c.Name)
	}

	fmt.Printf("\naccuracy: %d/%d (%.1f%%)\n", correct, len(cases), 100*float64(correct)/float64(len(cases)))
	return nil
}
