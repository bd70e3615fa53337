package fruit

import (
	"errors"
	"fmt"
	"math/rand"
)

var ErrInvalidProbability = errors.New("invalid probability")

// Counts holds the four event counters: oranges and lemons for each team.
// Counters only ever increase.
type Counts struct {
	Team1Oranges int
	Team1Lemons  int
	Team2Oranges int
	Team2Lemons  int
}

// Oranges returns the combined orange count across both teams.
func (c Counts) Oranges() int { return c.Team1Oranges + c.Team2Oranges }

// Lemons returns the combined lemon count across both teams.
func (c Counts) Lemons() int { return c.Team1Lemons + c.Team2Lemons }

// FairProduct is the settlement value of the underlying:
// total oranges times total lemons.
func (c Counts) FairProduct() int { return c.Oranges() * c.Lemons() }

// Add sums two count sets componentwise.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Team1Oranges: c.Team1Oranges + o.Team1Oranges,
		Team1Lemons:  c.Team1Lemons + o.Team1Lemons,
		Team2Oranges: c.Team2Oranges + o.Team2Oranges,
		Team2Lemons:  c.Team2Lemons + o.Team2Lemons,
	}
}

// Float returns the counters as float64s, in counter order.
func (c Counts) Float() (o1, l1, o2, l2 float64) {
	return float64(c.Team1Oranges), float64(c.Team1Lemons),
		float64(c.Team2Oranges), float64(c.Team2Lemons)
}

// Probabilities holds the per-tick Bernoulli probability for each counter.
// A set is rolled once at session start and never re-sampled.
type Probabilities struct {
	Team1Oranges float64
	Team1Lemons  float64
	Team2Oranges float64
	Team2Lemons  float64
}

// NewProbabilities validates and returns a probability set.
// Each probability must lie in [0, 1].
func NewProbabilities(o1, l1, o2, l2 float64) (Probabilities, error) {
	p := Probabilities{Team1Oranges: o1, Team1Lemons: l1, Team2Oranges: o2, Team2Lemons: l2}
	for _, v := range []float64{o1, l1, o2, l2} {
		if v < 0 || v > 1 {
			return Probabilities{}, fmt.Errorf("%w: %v not in [0,1]", ErrInvalidProbability, v)
		}
	}
	return p, nil
}

// ExpectedOranges is the expected number of future orange events across
// both teams over the remaining ticks.
func (p Probabilities) ExpectedOranges(remaining int) float64 {
	return float64(remaining) * (p.Team1Oranges + p.Team2Oranges)
}

// ExpectedLemons is the expected number of future lemon events across
// both teams over the remaining ticks.
func (p Probabilities) ExpectedLemons(remaining int) float64 {
	return float64(remaining) * (p.Team1Lemons + p.Team2Lemons)
}

// Forward holds counts extrapolated to the end of the horizon.
type Forward struct {
	Team1Oranges float64
	Team1Lemons  float64
	Team2Oranges float64
	Team2Lemons  float64
}

// Extrapolate adds the expected future increments to each counter.
// With zero ticks remaining the counts pass through unchanged.
func (p Probabilities) Extrapolate(c Counts, remaining int) Forward {
	t := float64(remaining)
	return Forward{
		Team1Oranges: float64(c.Team1Oranges) + t*p.Team1Oranges,
		Team1Lemons:  float64(c.Team1Lemons) + t*p.Team1Lemons,
		Team2Oranges: float64(c.Team2Oranges) + t*p.Team2Oranges,
		Team2Lemons:  float64(c.Team2Lemons) + t*p.Team2Lemons,
	}
}

// Rates configures the expected event totals over a full game, from which
// per-tick probabilities are rolled. Team 1 rates are fixed; team 2 rates
// are drawn from the configured ranges once per session.
type Rates struct {
	Team1Oranges    float64
	Team1Lemons     float64
	Team2OrangesMin int
	Team2OrangesMax int
	Team2LemonsMin  float64
	Team2LemonsMax  float64
	// Jitter is a one-shot uniform perturbation applied to each
	// probability after scaling by the horizon.
	Jitter float64
}

// DefaultRates returns the standard game rates.
func DefaultRates() Rates {
	return Rates{
		Team1Oranges:    6.0,
		Team1Lemons:     7.5,
		Team2OrangesMin: 4,
		Team2OrangesMax: 8,
		Team2LemonsMin:  6.5,
		Team2LemonsMax:  14.5,
		Jitter:          0.0003,
	}
}

// Roll draws a probability set for one session. Team 2 totals are sampled
// from their ranges, every counter gets an independent jitter, and the
// result is validated.
func (r Rates) Roll(horizon int, rng *rand.Rand) (Probabilities, error) {
	if horizon <= 0 {
		return Probabilities{}, fmt.Errorf("%w: horizon %d", ErrInvalidProbability, horizon)
	}

	h := float64(horizon)
	o2 := float64(r.Team2OrangesMin + rng.Intn(r.Team2OrangesMax-r.Team2OrangesMin+1))
	l2 := r.Team2LemonsMin + rng.Float64()*(r.Team2LemonsMax-r.Team2LemonsMin)

	jitter := func() float64 { return (rng.Float64()*2 - 1) * r.Jitter }

	return NewProbabilities(
		r.Team1Oranges/h+jitter(),
		r.Team1Lemons/h+jitter(),
		o2/h+jitter(),
		l2/h+jitter(),
	)
}
