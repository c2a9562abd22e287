package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/domtree/fathom/anneal"
	"github.com/domtree/fathom/dom"
	"github.com/domtree/fathom/internal/corpus"
	"github.com/domtree/fathom/internal/demoruleset"
	"github.com/domtree/fathom/internal/log"
)

func newTuneCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Anneal the demonstration ruleset's coefficients against the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTune(seed)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "PRNG seed for the annealing run")
	return cmd
}

func runTune(seed int64) error {
	cases, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("corpus at %s has no fixtures", cfg.CorpusPath)
	}

	rng := rand.New(rand.NewSource(seed))
	start := demoruleset.DefaultCoefficients()

	sol := anneal.Solution{
		Coefficients: start[:],
		Cost: func(coefficients []float64) float64 {
			return 1 - accuracy(cases, coefficientsFromSlice(coefficients))
		},
		Perturb: func(current []float64, randFloat func() float64) []float64 {
			next := append([]float64(nil), current...)
			i := int(randFloat() * float64(len(next)))
			if i >= len(next) {
				i = len(next) - 1
			}
			next[i] += (randFloat()*2 - 1) * 0.5
			if next[i] < 0 {
				next[i] = 0
			}
			return next
		},
	}

	opts := anneal.DefaultOptions()
	opts.InitialTemperature = cfg.InitialTemperature
	opts.CoolingSteps = cfg.CoolingSteps
	opts.CoolingFraction = cfg.CoolingFraction
	opts.StepsPerTemp = cfg.StepsPerTemp
	opts.RandFloat = rng.Float64
	opts.OnStep = func(step int, temperature, cost float64, accepted bool) {
		if step%1000 == 0 {
			log.Debug(map[string]any{
				"step": step, "temperature": temperature, "cost": cost, "accepted": accepted,
			}, "annealing step")
		}
	}

	result := anneal.Run(sol, opts)
	tuned := coefficientsFromSlice(result.Coefficients)

	log.Info(map[string]any{
		"cost": result.Cost, "accepted": result.Accepted, "rejected": result.Rejected,
	}, "annealing complete")

	out, err := yaml.Marshal(map[string]any{
		"coefficients": tuned[:],
	})
	if err != nil {
		return fmt.Errorf("marshalling coefficients: %w", err)
	}
	if err := os.WriteFile(cfg.CoefficientsPath, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.CoefficientsPath, err)
	}
	fmt.Printf("wrote tuned coefficients to %s (cost %.4f)\n", cfg.CoefficientsPath, result.Cost)
	return nil
}

func coefficientsFromSlice(s []float64) demoruleset.Coefficients {
	var c demoruleset.Coefficients
	copy(c[:], s)
	return c
}

// accuracy returns the fraction of corpus cases for which the ruleset
// built from coeffs includes the case's expected element in its
// "content" outward result.
func accuracy(cases []corpus.Case, coeffs demoruleset.Coefficients) float64 {
	if len(cases) == 0 {
		return 0
	}
	correct := 0
	for _, c := range cases {
		if caseCorrect(c, coeffs) {
			correct++
		}
	}
	return float64(correct) / float64(len(cases))
}

func caseCorrect(c corpus.Case, coeffs demoruleset.Coefficients) bool {
	rs, err := demoruleset.Build(coeffs)
	if err != nil {
		return false
	}
	bound := rs.Against(c.Document)

	expected := c.Document.QuerySelectorAll(c.ExpectedSelector)
	if len(expected) == 0 {
		return false
	}

	result, err := bound.Get("content")
	if err != nil {
		return false
	}
	elements, ok := result.([]dom.Element)
	if !ok {
		return false
	}
	for _, e := range elements {
		if e == expected[0] {
			return true
		}
	}
	return false
}
