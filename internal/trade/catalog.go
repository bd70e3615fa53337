package trade

import (
	"math"

	"github.com/zappabad/fruitcraft/internal/fruit"
)

// FormulaID identifies a payoff formula in the catalog.
type FormulaID uint8

const (
	FormulaTeam1OrangesExp FormulaID = iota
	FormulaTeam2OrangesExp
	FormulaTeam1LemonsExp
	FormulaTeam2LemonsExp

	FormulaOrangesSum
	FormulaOrangesDiff
	FormulaOrangesDiffRev
	FormulaOrangesProduct

	FormulaLemonsSum
	FormulaLemonsProduct
	FormulaLemonsDiff
	FormulaLemonsDiffRev

	FormulaOrange1Lemon2Sum
	FormulaOrange1Lemon2Diff
	FormulaLemon2Orange1Diff
	FormulaOrange1Lemon2Product

	FormulaOrange2Lemon1Sum
	FormulaOrange2Lemon1Diff
	FormulaLemon1Orange2Diff
	FormulaOrange2Lemon1Product
)

// PayoffFunc is a pure function of the four counters. It takes floats so
// the same formula prices forward-adjusted (fractional) counts and settles
// realized (integer) ones. Exponential payoffs are evaluated in float64;
// their range is the documented limit on extreme counter values.
type PayoffFunc func(o1, l1, o2, l2 float64) float64

// Formula pairs a payoff with its display label.
type Formula struct {
	ID     FormulaID
	Label  string
	Payoff PayoffFunc
}

// Evaluate applies the payoff to realized counts.
func (f Formula) Evaluate(c fruit.Counts) float64 {
	o1, l1, o2, l2 := c.Float()
	return f.Payoff(o1, l1, o2, l2)
}

// EvaluateForward applies the payoff to forward-adjusted counts.
func (f Formula) EvaluateForward(fw fruit.Forward) float64 {
	return f.Payoff(fw.Team1Oranges, fw.Team1Lemons, fw.Team2Oranges, fw.Team2Lemons)
}

var catalog = []Formula{
	{FormulaTeam1OrangesExp, "2 ^ (team 1 oranges)", func(o1, l1, o2, l2 float64) float64 { return math.Pow(2, o1) }},
	{FormulaTeam2OrangesExp, "2 ^ (team 2 oranges)", func(o1, l1, o2, l2 float64) float64 { return math.Pow(2, o2) }},
	{FormulaTeam1LemonsExp, "2 ^ (team 1 lemons)", func(o1, l1, o2, l2 float64) float64 { return math.Pow(2, l1) }},
	{FormulaTeam2LemonsExp, "2 ^ (team 2 lemons)", func(o1, l1, o2, l2 float64) float64 { return math.Pow(2, l2) }},

	{FormulaOrangesSum, "team 1 oranges + team 2 oranges", func(o1, l1, o2, l2 float64) float64 { return o1 + o2 }},
	{FormulaOrangesDiff, "team 1 oranges - team 2 oranges", func(o1, l1, o2, l2 float64) float64 { return o1 - o2 }},
	{FormulaOrangesDiffRev, "team 2 oranges - team 1 oranges", func(o1, l1, o2, l2 float64) float64 { return o2 - o1 }},
	{FormulaOrangesProduct, "team 1 oranges * team 2 oranges", func(o1, l1, o2, l2 float64) float64 { return o1 * o2 }},

	{FormulaLemonsSum, "team 1 lemons + team 2 lemons", func(o1, l1, o2, l2 float64) float64 { return l1 + l2 }},
	{FormulaLemonsProduct, "team 1 lemons * team 2 lemons", func(o1, l1, o2, l2 float64) float64 { return l1 * l2 }},
	{FormulaLemonsDiff, "team 1 lemons - team 2 lemons", func(o1, l1, o2, l2 float64) float64 { return l1 - l2 }},
	{FormulaLemonsDiffRev, "team 2 lemons - team 1 lemons", func(o1, l1, o2, l2 float64) float64 { return l2 - l1 }},

	{FormulaOrange1Lemon2Sum, "team 1 oranges + team 2 lemons", func(o1, l1, o2, l2 float64) float64 { return o1 + l2 }},
	{FormulaOrange1Lemon2Diff, "team 1 oranges - team 2 lemons", func(o1, l1, o2, l2 float64) float64 { return o1 - l2 }},
	{FormulaLemon2Orange1Diff, "team 2 lemons - team 1 oranges", func(o1, l1, o2, l2 float64) float64 { return l2 - o1 }},
	{FormulaOrange1Lemon2Product, "team 1 oranges * team 2 lemons", func(o1, l1, o2, l2 float64) float64 { return o1 * l2 }},

	{FormulaOrange2Lemon1Sum, "team 2 oranges + team 1 lemons", func(o1, l1, o2, l2 float64) float64 { return o2 + l1 }},
	{FormulaOrange2Lemon1Diff, "team 2 oranges - team 1 lemons", func(o1, l1, o2, l2 float64) float64 { return o2 - l1 }},
	{FormulaLemon1Orange2Diff, "team 1 lemons - team 2 oranges", func(o1, l1, o2, l2 float64) float64 { return l1 - o2 }},
	{FormulaOrange2Lemon1Product, "team 2 oranges * team 1 lemons", func(o1, l1, o2, l2 float64) float64 { return o2 * l1 }},
}

// Catalog returns the fixed payoff catalog. Callers must not mutate it.
func Catalog() []Formula { return catalog }

// Lookup returns the formula for an ID.
func Lookup(id FormulaID) (Formula, bool) {
	if int(id) >= len(catalog) {
		return Formula{}, false
	}
	return catalog[id], true
}
