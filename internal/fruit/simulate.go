package fruit

import "math/rand"

// SimulateRun plays a full horizon with no trading and returns the final
// counts. State is fully isolated: a fresh generator per call, fed only by
// the immutable probability set and the supplied random source.
func SimulateRun(probs Probabilities, horizon int, rng *rand.Rand) Counts {
	g := NewGenerator(probs, rng)
	for t := 0; t < horizon; t++ {
		g.Tick()
	}
	return g.Counts()
}

// Preview holds the results of a batch of headless runs shown before the
// interactive session starts.
type Preview struct {
	Runs  []Counts
	Total Counts
}

// SimulatePreview produces n independent full-horizon runs and their
// aggregate totals.
func SimulatePreview(probs Probabilities, horizon, n int, rng *rand.Rand) Preview {
	p := Preview{Runs: make([]Counts, 0, n)}
	for i := 0; i < n; i++ {
		final := SimulateRun(probs, horizon, rng)
		p.Runs = append(p.Runs, final)
		p.Total = p.Total.Add(final)
	}
	return p
}
