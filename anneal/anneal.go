// Package anneal implements simulated annealing for offline coefficient
// tuning (spec §4.5): given a cost function over a vector of real-valued
// coefficients, it searches for a low-cost assignment by accepting
// worsening moves with a temperature-dependent probability, cooling the
// temperature on a fixed schedule.
package anneal

import "math"

// Options configures a run (spec §4.5's defaults).
type Options struct {
	InitialTemperature float64
	CoolingSteps       int
	CoolingFraction    float64
	StepsPerTemp       int
	BoltzmannConstant  float64

	// RandFloat returns a uniform random float64 in [0,1). Required:
	// the caller supplies the entropy source so runs can be made
	// reproducible in tests.
	RandFloat func() float64

	// OnStep, if non-nil, is called after every accepted or rejected
	// move, for progress logging.
	OnStep func(step int, temperature, cost float64, accepted bool)
}

// DefaultOptions returns spec.md's default cooling schedule. RandFloat
// must still be set by the caller.
func DefaultOptions() Options {
	return Options{
		InitialTemperature: 5000,
		CoolingSteps:       5000,
		CoolingFraction:    0.95,
		StepsPerTemp:       1000,
		BoltzmannConstant:  1.3806485279e-23,
	}
}

// Solution is the state the annealer perturbs and scores: a vector of
// coefficients plus the function that evaluates it.
type Solution struct {
	Coefficients []float64

	// Cost scores a candidate coefficient vector; lower is better.
	Cost func(coefficients []float64) float64

	// Perturb returns a neighboring coefficient vector, derived from
	// current. It must not mutate current.
	Perturb func(current []float64, randFloat func() float64) []float64
}

// Result is the outcome of a completed anneal run.
type Result struct {
	Coefficients []float64
	Cost         float64
	Accepted     int
	Rejected     int
}

// Run performs simulated annealing over sol starting from
// sol.Coefficients, per spec §4.5: at each temperature step, StepsPerTemp
// candidate moves are proposed via Perturb; a move that lowers cost is
// always accepted, a move that raises it is accepted with probability
// exp(-delta/(boltzmann*temperature)). The temperature cools by
// CoolingFraction after each of CoolingSteps rounds.
func Run(sol Solution, opts Options) Result {
	current := append([]float64(nil), sol.Coefficients...)
	currentCost := sol.Cost(current)

	best := append([]float64(nil), current...)
	bestCost := currentCost

	temperature := opts.InitialTemperature
	result := Result{}

	step := 0
	for i := 0; i < opts.CoolingSteps; i++ {
		startCost := currentCost
		for j := 0; j < opts.StepsPerTemp; j++ {
			step++
			candidate := sol.Perturb(current, opts.RandFloat)
			candidateCost := sol.Cost(candidate)
			delta := candidateCost - currentCost

			accept := delta < 0
			if !accept && temperature > 0 {
				probability := math.Exp(-delta / (opts.BoltzmannConstant * temperature))
				accept = opts.RandFloat() < probability
			}

			if accept {
				current = candidate
				currentCost = candidateCost
				result.Accepted++
				if currentCost < bestCost {
					best = append([]float64(nil), current...)
					bestCost = currentCost
				}
			} else {
				result.Rejected++
			}

			if opts.OnStep != nil {
				opts.OnStep(step, temperature, currentCost, accept)
			}
		}
		// A cooling step that moved currentCost not at all means the
		// search has settled; further cooling only shrinks the
		// acceptance probability further without finding anything new,
		// so stop rather than spend the remaining coolingSteps idle. This
		// breaks the outer (cooling) loop rather than the inner one the
		// spec's wording names, matching the original Fathom annealer's
		// behavior, which checks this once per cooling step rather than
		// mid-sweep.
		if currentCost == startCost {
			break
		}
		temperature *= opts.CoolingFraction
	}

	result.Coefficients = best
	result.Cost = bestCost
	return result
}
