package fruit

import (
	"math/rand"
	"testing"
)

func TestSimulateRunDeterministic(t *testing.T) {
	probs := mustProbs(t, 1, 0, 1, 0)
	final := SimulateRun(probs, 25, rand.New(rand.NewSource(3)))

	want := Counts{Team1Oranges: 25, Team2Oranges: 25}
	if final != want {
		t.Fatalf("expected %+v, got %+v", want, final)
	}
}

func TestSimulateRunIsolation(t *testing.T) {
	// a headless run must not advance a live generator sharing the same
	// probability set
	probs := mustProbs(t, 0.5, 0.5, 0.5, 0.5)
	live := NewGenerator(probs, rand.New(rand.NewSource(10)))
	live.Tick()
	before := live.Counts()

	SimulateRun(probs, 200, rand.New(rand.NewSource(11)))

	if live.Counts() != before {
		t.Fatalf("live counts changed: %+v -> %+v", before, live.Counts())
	}
}

func TestSimulatePreviewTotals(t *testing.T) {
	probs := mustProbs(t, 0.2, 0.4, 0.6, 0.8)
	p := SimulatePreview(probs, 100, 10, rand.New(rand.NewSource(5)))

	if len(p.Runs) != 10 {
		t.Fatalf("expected 10 runs, got %d", len(p.Runs))
	}

	var total Counts
	for _, run := range p.Runs {
		total = total.Add(run)
	}
	if total != p.Total {
		t.Fatalf("totals mismatch: summed %+v, reported %+v", total, p.Total)
	}
}
