package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/internal/trade"
)

func formula(t *testing.T, id trade.FormulaID) trade.Formula {
	t.Helper()
	f, ok := trade.Lookup(id)
	if !ok {
		t.Fatalf("missing formula %d", id)
	}
	return f
}

func TestQuoteRoundTrip(t *testing.T) {
	l := New()

	l.BuyQuote(50.0)
	l.SellQuote(70.0)

	if got := l.Balance(); got != 20.0 {
		t.Fatalf("expected balance 20.0, got %v", got)
	}
	if got := l.NetPosition(); got != 0 {
		t.Fatalf("expected flat position, got %d", got)
	}

	// position nets to zero, so the score is the balance regardless of
	// final counts
	final := fruit.Counts{Team1Oranges: 3, Team1Lemons: 4}
	if got := l.Score(final); got != 20.0 {
		t.Fatalf("expected score 20.0, got %v", got)
	}
}

func TestNetPositionSettlement(t *testing.T) {
	l := New()

	l.BuyQuote(10.0)
	l.BuyQuote(10.0)

	final := fruit.Counts{Team1Oranges: 5, Team2Lemons: 5} // fair product 25
	if got := l.Score(final); got != -20.0+2*25 {
		t.Fatalf("expected 30.0, got %v", got)
	}
}

func TestFillExactlyOnce(t *testing.T) {
	l := New()
	inst := trade.Instrument{ID: 1, Formula: formula(t, trade.FormulaOrangesSum), Price: 8}

	if err := l.Fill(&inst, trade.SideBuy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Side != trade.SideBuy {
		t.Fatalf("expected side BUY, got %v", inst.Side)
	}

	if err := l.Fill(&inst, trade.SideSell); !errors.Is(err, ErrAlreadyFilled) {
		t.Fatalf("expected ErrAlreadyFilled, got %v", err)
	}
	if got := len(l.Trades()); got != 1 {
		t.Fatalf("expected 1 filled trade, got %d", got)
	}
}

func TestFillRejectsInvalidSide(t *testing.T) {
	l := New()
	inst := trade.Instrument{ID: 1, Formula: formula(t, trade.FormulaOrangesSum), Price: 8}

	if err := l.Fill(&inst, trade.SideNone); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
	if inst.Filled() {
		t.Fatal("instrument must stay open after a rejected fill")
	}
}

func TestSellSettlesPriceMinusPayoff(t *testing.T) {
	l := New()

	// priced off the same counts it settles against: the net is exactly
	// quoted price minus realized payoff
	final := fruit.Counts{Team1Oranges: 3, Team2Oranges: 5}
	f := formula(t, trade.FormulaOrangesSum)
	inst := trade.Instrument{ID: 1, Formula: f, Price: 12}

	if err := l.Fill(&inst, trade.SideSell); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := float64(inst.Price) - f.Evaluate(final) // 12 - 8
	if got := l.Score(final); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuySettlesPayoffMinusPrice(t *testing.T) {
	l := New()

	final := fruit.Counts{Team1Lemons: 6, Team2Lemons: 2}
	f := formula(t, trade.FormulaLemonsProduct)
	inst := trade.Instrument{ID: 1, Formula: f, Price: 9}

	if err := l.Fill(&inst, trade.SideBuy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := f.Evaluate(final) - float64(inst.Price) // 12 - 9
	if got := l.Score(final); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScoreIsPure(t *testing.T) {
	l := New()
	l.BuyQuote(33.25)
	l.SellQuote(41.5)
	l.BuyQuote(12.75)

	inst := trade.Instrument{ID: 1, Formula: formula(t, trade.FormulaOrange2Lemon1Product), Price: 15}
	if err := l.Fill(&inst, trade.SideSell); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	final := fruit.Counts{Team1Oranges: 4, Team1Lemons: 3, Team2Oranges: 2, Team2Lemons: 6}
	first := l.Score(final)
	second := l.Score(final)
	if first != second {
		t.Fatalf("score not idempotent: %v vs %v", first, second)
	}

	if got := len(l.Trades()); got != 1 {
		t.Fatalf("scoring mutated the trade list: %d entries", got)
	}
}

func TestScoreCapsOverflowingPayoff(t *testing.T) {
	l := New()

	// 2^1100 overflows float64; the score must cap it, not panic
	inst := trade.Instrument{ID: 1, Formula: formula(t, trade.FormulaTeam1OrangesExp), Price: 50}
	if err := l.Fill(&inst, trade.SideSell); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := l.Score(fruit.Counts{Team1Oranges: 1100})
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("expected a finite score, got %v", got)
	}
	if got >= 0 {
		t.Fatalf("selling below an overflowing payoff must lose, got %v", got)
	}
}

func TestBalanceExactOverManyTrades(t *testing.T) {
	l := New()
	for i := 0; i < 1000; i++ {
		l.BuyQuote(0.1)
	}
	for i := 0; i < 1000; i++ {
		l.SellQuote(0.1)
	}
	if got := l.Balance(); got != 0 {
		t.Fatalf("expected exactly 0, got %v", got)
	}
}
