package fruit

import (
	"math/rand"
	"testing"
)

func mustProbs(t *testing.T, o1, l1, o2, l2 float64) Probabilities {
	t.Helper()
	p, err := NewProbabilities(o1, l1, o2, l2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestCountersNonDecreasing(t *testing.T) {
	probs := mustProbs(t, 0.3, 0.5, 0.1, 0.7)
	g := NewGenerator(probs, rand.New(rand.NewSource(42)))

	prev := g.Counts()
	for i := 0; i < 500; i++ {
		cur := g.Tick()
		if cur.Team1Oranges < prev.Team1Oranges ||
			cur.Team1Lemons < prev.Team1Lemons ||
			cur.Team2Oranges < prev.Team2Oranges ||
			cur.Team2Lemons < prev.Team2Lemons {
			t.Fatalf("counter decreased at tick %d: %+v -> %+v", i, prev, cur)
		}
		prev = cur
	}
}

func TestDeterministicProbabilities(t *testing.T) {
	// p=1 increments every tick, p=0 never does.
	probs := mustProbs(t, 1, 1, 0, 0)
	g := NewGenerator(probs, rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		g.Tick()
	}

	got := g.Counts()
	want := Counts{Team1Oranges: 10, Team1Lemons: 10}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestNewProbabilitiesValidation(t *testing.T) {
	tests := []struct {
		name           string
		o1, l1, o2, l2 float64
	}{
		{"negative", -0.1, 0.5, 0.5, 0.5},
		{"above one", 0.5, 1.1, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewProbabilities(tt.o1, tt.l1, tt.o2, tt.l2); err == nil {
				t.Error("expected error")
			}
		})
	}

	// boundaries are allowed
	if _, err := NewProbabilities(0, 1, 0.5, 0.5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRollWithinRanges(t *testing.T) {
	const horizon = 900
	rates := DefaultRates()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		p, err := rates.Roll(horizon, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// recover expected totals, allowing for the jitter
		slack := rates.Jitter * horizon
		if got := p.Team1Oranges * horizon; got < rates.Team1Oranges-slack || got > rates.Team1Oranges+slack {
			t.Fatalf("team 1 oranges total %v out of range", got)
		}
		if got := p.Team2Oranges * horizon; got < float64(rates.Team2OrangesMin)-slack || got > float64(rates.Team2OrangesMax)+slack {
			t.Fatalf("team 2 oranges total %v out of range", got)
		}
		if got := p.Team2Lemons * horizon; got < rates.Team2LemonsMin-slack || got > rates.Team2LemonsMax+slack {
			t.Fatalf("team 2 lemons total %v out of range", got)
		}
	}
}

func TestRollRejectsBadHorizon(t *testing.T) {
	if _, err := DefaultRates().Roll(0, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for zero horizon")
	}
}

func TestExtrapolate(t *testing.T) {
	probs := mustProbs(t, 0.5, 0.25, 0, 1)
	c := Counts{Team1Oranges: 2, Team1Lemons: 3, Team2Oranges: 4, Team2Lemons: 5}

	fw := probs.Extrapolate(c, 8)
	if fw.Team1Oranges != 6 || fw.Team1Lemons != 5 || fw.Team2Oranges != 4 || fw.Team2Lemons != 13 {
		t.Fatalf("unexpected forward counts: %+v", fw)
	}

	// zero remaining passes counts through unchanged
	fw = probs.Extrapolate(c, 0)
	if fw.Team1Oranges != 2 || fw.Team1Lemons != 3 || fw.Team2Oranges != 4 || fw.Team2Lemons != 5 {
		t.Fatalf("unexpected forward counts at T=0: %+v", fw)
	}
}

func TestFairProduct(t *testing.T) {
	c := Counts{Team1Oranges: 3, Team1Lemons: 2, Team2Oranges: 1, Team2Lemons: 4}
	if got := c.FairProduct(); got != 24 {
		t.Fatalf("expected 24, got %d", got)
	}
}
