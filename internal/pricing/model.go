// Package pricing computes the expected fair value of the final
// oranges-times-lemons product and evolves the noisy tradable quote that
// tracks it.
package pricing

import (
	"math"
	"math/rand"

	"github.com/zappabad/fruitcraft/internal/fruit"
)

// FairValue is the expectation of (final oranges)*(final lemons) given the
// current counts and the expected future increments over the remaining
// ticks: the bilinear expansion of (current+future)*(current+future) under
// independent Bernoulli increments. Always >= 0; with zero ticks remaining
// it reduces to the realized product exactly.
func FairValue(c fruit.Counts, p fruit.Probabilities, remaining int) float64 {
	if remaining < 0 {
		remaining = 0
	}
	eo := p.ExpectedOranges(remaining)
	el := p.ExpectedLemons(remaining)
	o := float64(c.Oranges())
	l := float64(c.Lemons())
	return o*l + o*el + l*eo + eo*el
}

// Params tunes the quote process.
type Params struct {
	// Revert in (0,1] pulls the quote toward fair value each tick.
	Revert float64
	// SigmaBase is the volatility at the start of the game.
	SigmaBase float64
	// SigmaFloor keeps noise alive near the end of the game.
	SigmaFloor float64
}

// DefaultParams returns the standard quote parameters.
func DefaultParams() Params {
	return Params{Revert: 0.4, SigmaBase: 1.8, SigmaFloor: 1.0}
}

// Quote is the mean-reverting noisy price process anchored to fair value.
// It is stateful: each step depends on the previous quote. The random
// source is injected so the transition is testable in isolation.
type Quote struct {
	params  Params
	horizon int
	rng     *rand.Rand
	value   float64
}

// NewQuote creates a quote process for the given horizon, seeded at the
// initial fair value so the quote is tradable before the first tick.
func NewQuote(params Params, horizon int, initial float64, rng *rand.Rand) *Quote {
	return &Quote{params: params, horizon: horizon, rng: rng, value: initial}
}

// Step advances the quote one tick. Volatility decays as the square root
// of the remaining-time fraction, floored. The result is clamped at zero.
func (q *Quote) Step(fair float64, remaining int) float64 {
	if remaining < 0 {
		remaining = 0
	}

	sigma := q.params.SigmaBase * math.Sqrt(float64(remaining)/float64(q.horizon))
	if sigma < q.params.SigmaFloor {
		sigma = q.params.SigmaFloor
	}

	noise := q.rng.NormFloat64() * sigma
	q.value += q.params.Revert*(fair-q.value) + noise
	if q.value < 0 {
		q.value = 0
	}
	return q.value
}

// Value returns the current quote.
func (q *Quote) Value() float64 { return q.value }
