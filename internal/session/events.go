package session

import (
	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/internal/trade"
)

// Event is the interface for all session events.
type Event interface {
	isEvent()
}

// TimeChangedEvent is emitted once per tick with the elapsed seconds.
type TimeChangedEvent struct {
	Tick int
}

func (TimeChangedEvent) isEvent() {}

// CountsChangedEvent carries the counter snapshot after a tick.
type CountsChangedEvent struct {
	Tick   int
	Counts fruit.Counts
}

func (CountsChangedEvent) isEvent() {}

// QuoteChangedEvent carries the new quote and the fair value it reverts
// toward. The fair value is display-only; only the quote is tradable.
type QuoteChangedEvent struct {
	Tick      int
	Quote     float64
	FairValue float64
}

func (QuoteChangedEvent) isEvent() {}

// BalanceChangedEvent is emitted whenever a trade moves the balance.
type BalanceChangedEvent struct {
	Balance float64
}

func (BalanceChangedEvent) isEvent() {}

// QuoteTradedEvent is emitted when the player buys or sells the quote.
type QuoteTradedEvent struct {
	Side  trade.Side
	Price float64
}

func (QuoteTradedEvent) isEvent() {}

// InstrumentListedEvent is emitted when the issuer lists a new instrument.
type InstrumentListedEvent struct {
	Instrument trade.Instrument
}

func (InstrumentListedEvent) isEvent() {}

// InstrumentFilledEvent is emitted when the player takes a side on an
// instrument. Instrument.Side carries the side taken.
type InstrumentFilledEvent struct {
	Instrument trade.Instrument
}

func (InstrumentFilledEvent) isEvent() {}

// InstrumentExpiredEvent is emitted when an unfilled instrument reaches
// its expiry and is discarded.
type InstrumentExpiredEvent struct {
	ID trade.InstrumentID
}

func (InstrumentExpiredEvent) isEvent() {}

// GameOverEvent is emitted once, on the horizon tick.
type GameOverEvent struct {
	Counts fruit.Counts
	Score  float64
}

func (GameOverEvent) isEvent() {}
