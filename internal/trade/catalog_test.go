package trade

import (
	"testing"

	"github.com/zappabad/fruitcraft/internal/fruit"
)

func TestCatalogShape(t *testing.T) {
	cat := Catalog()
	if len(cat) != 20 {
		t.Fatalf("expected 20 formulas, got %d", len(cat))
	}

	labels := make(map[string]bool)
	for i, f := range cat {
		if int(f.ID) != i {
			t.Errorf("formula %d has ID %d", i, f.ID)
		}
		if f.Label == "" {
			t.Errorf("formula %d has empty label", i)
		}
		if labels[f.Label] {
			t.Errorf("duplicate label %q", f.Label)
		}
		labels[f.Label] = true
		if f.Payoff == nil {
			t.Errorf("formula %d has nil payoff", i)
		}
	}
}

func TestLookup(t *testing.T) {
	f, ok := Lookup(FormulaOrangesSum)
	if !ok {
		t.Fatal("expected formula")
	}
	if f.Label != "team 1 oranges + team 2 oranges" {
		t.Fatalf("unexpected label %q", f.Label)
	}

	if _, ok := Lookup(FormulaID(200)); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestPayoffs(t *testing.T) {
	c := fruit.Counts{Team1Oranges: 2, Team1Lemons: 3, Team2Oranges: 5, Team2Lemons: 7}

	tests := []struct {
		id   FormulaID
		want float64
	}{
		{FormulaTeam1OrangesExp, 4},
		{FormulaTeam2OrangesExp, 32},
		{FormulaTeam1LemonsExp, 8},
		{FormulaTeam2LemonsExp, 128},
		{FormulaOrangesSum, 7},
		{FormulaOrangesDiff, -3},
		{FormulaOrangesDiffRev, 3},
		{FormulaOrangesProduct, 10},
		{FormulaLemonsSum, 10},
		{FormulaLemonsProduct, 21},
		{FormulaLemonsDiff, -4},
		{FormulaLemonsDiffRev, 4},
		{FormulaOrange1Lemon2Sum, 9},
		{FormulaOrange1Lemon2Diff, -5},
		{FormulaLemon2Orange1Diff, 5},
		{FormulaOrange1Lemon2Product, 14},
		{FormulaOrange2Lemon1Sum, 8},
		{FormulaOrange2Lemon1Diff, 2},
		{FormulaLemon1Orange2Diff, -2},
		{FormulaOrange2Lemon1Product, 15},
	}

	for _, tt := range tests {
		f, ok := Lookup(tt.id)
		if !ok {
			t.Fatalf("missing formula %d", tt.id)
		}
		if got := f.Evaluate(c); got != tt.want {
			t.Errorf("%s: expected %v, got %v", f.Label, tt.want, got)
		}
	}
}

func TestEvaluateForward(t *testing.T) {
	f, _ := Lookup(FormulaOrangesSum)
	fw := fruit.Forward{Team1Oranges: 2.5, Team2Oranges: 4.25}
	if got := f.EvaluateForward(fw); got != 6.75 {
		t.Fatalf("expected 6.75, got %v", got)
	}
}
