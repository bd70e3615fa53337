// Package ledger tracks the player's balance, net quote position, and
// filled instruments, and settles them against realized final counts.
package ledger

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/internal/trade"
)

var (
	ErrAlreadyFilled = errors.New("instrument already filled")
	ErrInvalidSide   = errors.New("invalid fill side")
)

// Ledger is a pure accounting core: no goroutines, locks, or time calls.
// The session loop serializes all access. Balance arithmetic runs on
// decimals so repeated quote trades never accumulate float drift.
type Ledger struct {
	balance     decimal.Decimal
	netPosition int
	trades      []trade.Instrument
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{balance: decimal.Zero}
}

// BuyQuote buys one unit of the quote at the given price and returns the
// new balance.
func (l *Ledger) BuyQuote(price float64) float64 {
	l.netPosition++
	l.balance = l.balance.Sub(decimal.NewFromFloat(price))
	return l.Balance()
}

// SellQuote sells one unit of the quote at the given price and returns the
// new balance.
func (l *Ledger) SellQuote(price float64) float64 {
	l.netPosition--
	l.balance = l.balance.Add(decimal.NewFromFloat(price))
	return l.Balance()
}

// Fill records the player taking a side on an instrument, exactly once.
// A second fill attempt is a programming error and is rejected. The
// balance is untouched: the quoted price settles against the realized
// payoff in Score, not at fill time.
func (l *Ledger) Fill(inst *trade.Instrument, side trade.Side) error {
	if side != trade.SideBuy && side != trade.SideSell {
		return ErrInvalidSide
	}
	if inst.Filled() {
		return ErrAlreadyFilled
	}
	inst.Side = side
	l.trades = append(l.trades, *inst)
	return nil
}

// Balance returns the current cash balance.
func (l *Ledger) Balance() float64 {
	f, _ := l.balance.Float64()
	return f
}

// NetPosition returns the signed count of quote buys minus sells.
func (l *Ledger) NetPosition() int { return l.netPosition }

// Trades returns a copy of the filled instruments in fill order.
func (l *Ledger) Trades() []trade.Instrument {
	out := make([]trade.Instrument, len(l.trades))
	copy(out, l.trades)
	return out
}

// Score settles the ledger against the realized final counts. It is pure:
// no mutation, same inputs always give the same result. Each SELL nets the
// quoted price minus the realized payoff, each BUY the reverse, and the
// net quote position settles at the realized fair product.
func (l *Ledger) Score(final fruit.Counts) float64 {
	result := l.balance
	for _, t := range l.trades {
		price := decimal.NewFromInt(int64(t.Price))
		payoff := payoffDecimal(t.Formula.Evaluate(final))
		switch t.Side {
		case trade.SideSell:
			result = result.Add(price).Sub(payoff)
		case trade.SideBuy:
			result = result.Sub(price).Add(payoff)
		}
	}

	settle := decimal.NewFromInt(int64(final.FairProduct()))
	result = result.Add(settle.Mul(decimal.NewFromInt(int64(l.netPosition))))

	f, _ := result.Float64()
	return f
}

// payoffDecimal converts a realized payoff, capping the non-finite values
// an exponential formula can overflow into at the float64 range.
func payoffDecimal(v float64) decimal.Decimal {
	switch {
	case math.IsNaN(v):
		return decimal.Zero
	case math.IsInf(v, 1):
		return decimal.NewFromFloat(math.MaxFloat64)
	case math.IsInf(v, -1):
		return decimal.NewFromFloat(-math.MaxFloat64)
	}
	return decimal.NewFromFloat(v)
}
