package fruit

import "math/rand"

// Generator owns the counter state and advances it one Bernoulli draw per
// counter per tick. It is deterministic given its random source and has no
// goroutines, locks, or time calls; the caller serializes access.
type Generator struct {
	probs  Probabilities
	counts Counts
	rng    *rand.Rand
}

// NewGenerator creates a generator with all counters at zero. The random
// source must not be shared with any other component, so that a headless
// run can never perturb a live one.
func NewGenerator(probs Probabilities, rng *rand.Rand) *Generator {
	return &Generator{probs: probs, rng: rng}
}

// Tick draws each counter once and returns the updated counts.
func (g *Generator) Tick() Counts {
	if g.rng.Float64() < g.probs.Team1Oranges {
		g.counts.Team1Oranges++
	}
	if g.rng.Float64() < g.probs.Team1Lemons {
		g.counts.Team1Lemons++
	}
	if g.rng.Float64() < g.probs.Team2Oranges {
		g.counts.Team2Oranges++
	}
	if g.rng.Float64() < g.probs.Team2Lemons {
		g.counts.Team2Lemons++
	}
	return g.counts
}

// Counts returns the current counter snapshot.
func (g *Generator) Counts() Counts { return g.counts }

// Probabilities returns the immutable probability set in use.
func (g *Generator) Probabilities() Probabilities { return g.probs }
