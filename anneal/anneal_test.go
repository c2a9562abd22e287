package anneal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRun_FindsMinimumOfParabola anneals a single coefficient toward the
// minimum of (x-7)^2, a simple unimodal cost surface.
func TestRun_FindsMinimumOfParabola(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	sol := Solution{
		Coefficients: []float64{0},
		Cost: func(c []float64) float64 {
			return (c[0] - 7) * (c[0] - 7)
		},
		Perturb: func(current []float64, randFloat func() float64) []float64 {
			return []float64{current[0] + (randFloat()*2 - 1)}
		},
	}

	opts := Options{
		InitialTemperature: 10,
		CoolingSteps:       50,
		CoolingFraction:    0.9,
		StepsPerTemp:       50,
		BoltzmannConstant:  1,
		RandFloat:          rng.Float64,
	}

	result := Run(sol, opts)
	assert.InDelta(t, 7.0, result.Coefficients[0], 1.0)
	assert.Less(t, result.Cost, 1.0)
}

func TestRun_NeverWorseThanStart(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	sol := Solution{
		Coefficients: []float64{100},
		Cost: func(c []float64) float64 {
			return math.Abs(c[0])
		},
		Perturb: func(current []float64, randFloat func() float64) []float64 {
			return []float64{current[0] + (randFloat()*2 - 1) * 10}
		},
	}
	opts := DefaultOptions()
	opts.CoolingSteps = 20
	opts.StepsPerTemp = 20
	opts.RandFloat = rng.Float64

	startCost := sol.Cost(sol.Coefficients)
	result := Run(sol, opts)
	assert.LessOrEqual(t, result.Cost, startCost)
}
