package trade

// Side represents what the player did with an instrument.
type Side uint8

const (
	SideNone Side = iota
	SideBuy
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideNone:
		return "NONE"
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// InstrumentID uniquely identifies an issued instrument within a session.
type InstrumentID int64

// Instrument is a time-limited contract whose payoff is a fixed function
// of the final counter values. Side is set exactly once when the player
// fills it; an instrument that reaches expiry with SideNone is discarded
// and never scored.
type Instrument struct {
	ID          InstrumentID
	Formula     Formula
	Price       int // forward-adjusted payoff, truncated
	ListedAt    int // tick of issuance
	ExpiryTicks int
	Side        Side
}

// ExpiresAt returns the tick at which an unfilled instrument is discarded.
func (i Instrument) ExpiresAt() int { return i.ListedAt + i.ExpiryTicks }

// Filled reports whether the player has taken a side.
func (i Instrument) Filled() bool { return i.Side != SideNone }
