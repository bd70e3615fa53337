package session

import (
	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/internal/pricing"
)

// Config holds configuration for a session.
type Config struct {
	// Horizon is the game length in ticks (seconds).
	Horizon int
	// Probabilities is the immutable per-tick probability set, rolled
	// once before the session starts.
	Probabilities fruit.Probabilities
	// Pricing tunes the quote process.
	Pricing pricing.Params
	// Seed drives all session randomness; 0 means derive from the clock.
	Seed int64

	CommandBuffer int // inbound command queue
	EventBuffer   int // internal engine->dispatcher event queue
	TapeSize      int // history tape capacity

	// If true, external Events() is best-effort (drops if consumer is slow).
	// If false, slow consumers can stall the dispatcher and eventually the engine.
	DropExternalEvents  bool
	ExternalEventBuffer int
}

func (c Config) withDefaults() Config {
	if c.Horizon <= 0 {
		c.Horizon = 900
	}
	if c.Pricing == (pricing.Params{}) {
		c.Pricing = pricing.DefaultParams()
	}
	if c.CommandBuffer <= 0 {
		c.CommandBuffer = 256
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = 1024
	}
	if c.TapeSize <= 0 {
		c.TapeSize = 200
	}
	if c.ExternalEventBuffer <= 0 {
		c.ExternalEventBuffer = 1024
	}
	return c
}
