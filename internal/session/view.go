package session

import (
	"sync"

	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/internal/trade"
)

// HistoryEntry is one line of the trade history tape.
type HistoryEntry struct {
	Label string
	Side  trade.Side
	Price float64
}

// Snapshot is a read-only view of the session for UIs.
type Snapshot struct {
	Tick        int
	Horizon     int
	Counts      fruit.Counts
	Quote       float64
	FairValue   float64
	Balance     float64
	NetPosition int
	Open        []trade.Instrument
	Over        bool
	Score       float64
}

// View is the query model the dispatcher keeps up to date from the event
// stream. The lock exists only for external readers; all writes come from
// the dispatcher goroutine.
type View struct {
	mu       sync.RWMutex
	tapeSize int
	history  []HistoryEntry
	snap     Snapshot
}

// NewView creates a view with a bounded history tape.
func NewView(horizon, tapeSize int) *View {
	return &View{
		tapeSize: tapeSize,
		snap:     Snapshot{Horizon: horizon},
	}
}

// quoteLabel is how the tradable underlying appears on the tape.
const quoteLabel = "total oranges * total lemons"

// Apply folds one event into the view.
func (v *View) Apply(ev Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch e := ev.(type) {
	case TimeChangedEvent:
		v.snap.Tick = e.Tick
	case CountsChangedEvent:
		v.snap.Counts = e.Counts
	case QuoteChangedEvent:
		v.snap.Quote = e.Quote
		v.snap.FairValue = e.FairValue
	case BalanceChangedEvent:
		v.snap.Balance = e.Balance
	case QuoteTradedEvent:
		if e.Side == trade.SideBuy {
			v.snap.NetPosition++
		} else {
			v.snap.NetPosition--
		}
		v.pushHistory(HistoryEntry{Label: quoteLabel, Side: e.Side, Price: e.Price})
	case InstrumentListedEvent:
		v.snap.Open = append(v.snap.Open, e.Instrument)
	case InstrumentFilledEvent:
		v.removeOpen(e.Instrument.ID)
		v.pushHistory(HistoryEntry{
			Label: e.Instrument.Formula.Label,
			Side:  e.Instrument.Side,
			Price: float64(e.Instrument.Price),
		})
	case InstrumentExpiredEvent:
		v.removeOpen(e.ID)
	case GameOverEvent:
		v.snap.Over = true
		v.snap.Score = e.Score
		v.snap.Counts = e.Counts
	}
}

func (v *View) removeOpen(id trade.InstrumentID) {
	for i, inst := range v.snap.Open {
		if inst.ID == id {
			v.snap.Open = append(v.snap.Open[:i], v.snap.Open[i+1:]...)
			return
		}
	}
}

// pushHistory prepends an entry, trimming to the tape size.
func (v *View) pushHistory(e HistoryEntry) {
	v.history = append([]HistoryEntry{e}, v.history...)
	if len(v.history) > v.tapeSize {
		v.history = v.history[:v.tapeSize]
	}
}

// Snapshot returns a copy of the current snapshot.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	snap := v.snap
	snap.Open = make([]trade.Instrument, len(v.snap.Open))
	copy(snap.Open, v.snap.Open)
	return snap
}

// History returns up to n most recent tape entries, newest first.
func (v *View) History(n int) []HistoryEntry {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if n > len(v.history) {
		n = len(v.history)
	}
	out := make([]HistoryEntry, n)
	copy(out, v.history[:n])
	return out
}
