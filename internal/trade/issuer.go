package trade

import (
	"math/rand"

	"github.com/zappabad/fruitcraft/internal/fruit"
)

const minExpiryTicks = 10

// Issuer emits batches of new instruments on a randomized schedule. It is
// driven from the tick pipeline and is deterministic given its random
// source; the caller serializes access.
type Issuer struct {
	probs   fruit.Probabilities
	horizon int
	rng     *rand.Rand

	idSeq  int64
	nextAt int
}

// NewIssuer creates an issuer and schedules the first batch.
func NewIssuer(probs fruit.Probabilities, horizon int, rng *rand.Rand) *Issuer {
	is := &Issuer{probs: probs, horizon: horizon, rng: rng}
	is.nextAt = is.delay()
	return is
}

// delay draws the gap to the next batch: roughly horizon/15 ticks with a
// one-sided jitter of up to 4 ticks, never below the base.
func (is *Issuer) delay() int {
	base := is.horizon / 15
	if base < 1 {
		base = 1
	}
	jitter := is.rng.Intn(9) - 4
	if jitter < 0 {
		jitter = 0
	}
	return base + jitter
}

// expiry picks an expiry from the fixed set of horizon fractions, each
// floored at the minimum.
func (is *Issuer) expiry() int {
	options := [4]int{
		is.horizon / 45,
		is.horizon / 30,
		is.horizon * 2 / 15,
		is.horizon / 15,
	}
	e := options[is.rng.Intn(len(options))]
	if e < minExpiryTicks {
		e = minExpiryTicks
	}
	return e
}

// Tick returns the batch of instruments issued at this tick, or nil if the
// schedule has not elapsed. Prices are the payoff evaluated on counts
// forward-adjusted over the remaining ticks, truncated to an integer.
func (is *Issuer) Tick(now int, c fruit.Counts, remaining int) []Instrument {
	if now < is.nextAt {
		return nil
	}
	is.nextAt = now + is.delay()

	fw := is.probs.Extrapolate(c, remaining)
	n := 1 + is.rng.Intn(3)
	batch := make([]Instrument, 0, n)
	for i := 0; i < n; i++ {
		f := catalog[is.rng.Intn(len(catalog))]
		is.idSeq++
		batch = append(batch, Instrument{
			ID:          InstrumentID(is.idSeq),
			Formula:     f,
			Price:       int(f.EvaluateForward(fw)),
			ListedAt:    now,
			ExpiryTicks: is.expiry(),
			Side:        SideNone,
		})
	}
	return batch
}

// NextAt returns the tick of the next scheduled batch.
func (is *Issuer) NextAt() int { return is.nextAt }
