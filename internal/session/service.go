// Package session runs one game on a single serialized timeline: ticks and
// player actions are posted as commands to one loop that owns all mutable
// state, so no action ever interleaves with an in-progress tick.
package session

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/internal/ledger"
	"github.com/zappabad/fruitcraft/internal/metrics"
	"github.com/zappabad/fruitcraft/internal/pricing"
	"github.com/zappabad/fruitcraft/internal/trade"
)

var (
	ErrClosed            = errors.New("session closed")
	ErrGameOver          = errors.New("game is over")
	ErrGameRunning       = errors.New("game still running")
	ErrUnknownInstrument = errors.New("unknown or expired instrument")
)

// Session drives one game.
type Session struct {
	cfg Config
	id  uuid.UUID
	log zerolog.Logger

	// engine state, owned by engineLoop
	gen         *fruit.Generator
	probs       fruit.Probabilities
	quote       *pricing.Quote
	issuer      *trade.Issuer
	led         *ledger.Ledger
	open        []*trade.Instrument
	tick        int
	over        bool
	finalCounts fruit.Counts
	finalScore  float64

	view *View

	cmdCh   chan any
	evBus   chan Event
	pubEvCh chan Event

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	droppedEvCnt atomic.Int64
}

// New wires up a session. The probability set in cfg must already be
// rolled; the session derives independent random sources for the
// generator, the quote process, and the issuer from cfg.Seed.
func New(cfg Config, log zerolog.Logger) *Session {
	cfg = cfg.withDefaults()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fair0 := pricing.FairValue(fruit.Counts{}, cfg.Probabilities, cfg.Horizon)

	s := &Session{
		cfg:     cfg,
		id:      uuid.New(),
		log:     log,
		probs:   cfg.Probabilities,
		gen:     fruit.NewGenerator(cfg.Probabilities, rand.New(rand.NewSource(seed))),
		quote:   pricing.NewQuote(cfg.Pricing, cfg.Horizon, fair0, rand.New(rand.NewSource(seed+1))),
		issuer:  trade.NewIssuer(cfg.Probabilities, cfg.Horizon, rand.New(rand.NewSource(seed+2))),
		led:     ledger.New(),
		view:    NewView(cfg.Horizon, cfg.TapeSize),
		cmdCh:   make(chan any, cfg.CommandBuffer),
		evBus:   make(chan Event, cfg.EventBuffer),
		pubEvCh: make(chan Event, cfg.ExternalEventBuffer),
		closed:  make(chan struct{}),
	}

	s.log.Info().
		Str("session_id", s.id.String()).
		Int("horizon", cfg.Horizon).
		Msg("session started")

	s.wg.Add(2)
	go s.engineLoop()
	go s.dispatcherLoop()
	return s
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID { return s.id }

// Horizon returns the game length in ticks.
func (s *Session) Horizon() int { return s.cfg.Horizon }

// Probabilities returns the immutable probability set, for preview runs.
func (s *Session) Probabilities() fruit.Probabilities { return s.probs }

// Events returns the external event channel for subscribers.
func (s *Session) Events() <-chan Event { return s.pubEvCh }

// DroppedExternalEvents returns the count of dropped external events.
func (s *Session) DroppedExternalEvents() int64 { return s.droppedEvCnt.Load() }

// Snapshot returns the current read model.
func (s *Session) Snapshot() Snapshot { return s.view.Snapshot() }

// History returns up to n most recent trade tape entries, newest first.
func (s *Session) History(n int) []HistoryEntry { return s.view.History(n) }

// Close shuts the session down and waits for its goroutines to finish.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
	s.wg.Wait()
}

type tickCmd struct {
	reply chan error
}

type quoteTradeCmd struct {
	side  trade.Side
	reply chan quoteTradeResp
}

type quoteTradeResp struct {
	price float64
	err   error
}

type fillCmd struct {
	id    trade.InstrumentID
	side  trade.Side
	reply chan fillResp
}

type fillResp struct {
	inst trade.Instrument
	err  error
}

type scoreCmd struct {
	reply chan scoreResp
}

type scoreResp struct {
	score float64
	err   error
}

// Tick advances the game one second. Returns ErrGameOver once the horizon
// has completed.
func (s *Session) Tick(ctx context.Context) error {
	reply := make(chan error, 1)
	if err := s.sendCmd(ctx, tickCmd{reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closed:
		return ErrClosed
	}
}

// BuyQuote buys one unit of the quote at the current price and returns the
// price paid.
func (s *Session) BuyQuote(ctx context.Context) (float64, error) {
	return s.tradeQuote(ctx, trade.SideBuy)
}

// SellQuote sells one unit of the quote at the current price and returns
// the price received.
func (s *Session) SellQuote(ctx context.Context) (float64, error) {
	return s.tradeQuote(ctx, trade.SideSell)
}

func (s *Session) tradeQuote(ctx context.Context, side trade.Side) (float64, error) {
	reply := make(chan quoteTradeResp, 1)
	if err := s.sendCmd(ctx, quoteTradeCmd{side: side, reply: reply}); err != nil {
		return 0, err
	}
	select {
	case r := <-reply:
		return r.price, r.err
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-s.closed:
		return 0, ErrClosed
	}
}

// FillInstrument takes a side on an open instrument and returns it as
// filled. Unknown or already-expired instruments return
// ErrUnknownInstrument.
func (s *Session) FillInstrument(ctx context.Context, id trade.InstrumentID, side trade.Side) (trade.Instrument, error) {
	reply := make(chan fillResp, 1)
	if err := s.sendCmd(ctx, fillCmd{id: id, side: side, reply: reply}); err != nil {
		return trade.Instrument{}, err
	}
	select {
	case r := <-reply:
		return r.inst, r.err
	case <-ctx.Done():
		return trade.Instrument{}, ctx.Err()
	case <-s.closed:
		return trade.Instrument{}, ErrClosed
	}
}

// FinalScore returns the realized profit and loss. Calling it before the
// horizon completes is a contract violation and returns ErrGameRunning.
func (s *Session) FinalScore(ctx context.Context) (float64, error) {
	reply := make(chan scoreResp, 1)
	if err := s.sendCmd(ctx, scoreCmd{reply: reply}); err != nil {
		return 0, err
	}
	select {
	case r := <-reply:
		return r.score, r.err
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-s.closed:
		return 0, ErrClosed
	}
}

func (s *Session) sendCmd(ctx context.Context, cmd any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closed:
		return ErrClosed
	case s.cmdCh <- cmd:
		return nil
	}
}

// engineLoop owns all game state; produces the internal event bus.
func (s *Session) engineLoop() {
	defer s.wg.Done()

	for {
		var cmd any
		select {
		case <-s.closed:
			return
		case cmd = <-s.cmdCh:
		}
		switch c := cmd.(type) {
		case tickCmd:
			c.reply <- s.handleTick()
		case quoteTradeCmd:
			price, err := s.handleQuoteTrade(c.side)
			c.reply <- quoteTradeResp{price: price, err: err}
		case fillCmd:
			inst, err := s.handleFill(c.id, c.side)
			c.reply <- fillResp{inst: inst, err: err}
		case scoreCmd:
			if !s.over {
				c.reply <- scoreResp{err: ErrGameRunning}
			} else {
				c.reply <- scoreResp{score: s.finalScore}
			}
		}
	}
}

func (s *Session) handleTick() error {
	if s.over {
		return ErrGameOver
	}
	s.tick++
	remaining := s.cfg.Horizon - s.tick

	counts := s.gen.Tick()
	fair := pricing.FairValue(counts, s.probs, remaining)
	quote := s.quote.Step(fair, remaining)

	metrics.TicksTotal.Inc()
	s.emit(TimeChangedEvent{Tick: s.tick})
	s.emit(CountsChangedEvent{Tick: s.tick, Counts: counts})
	s.emit(QuoteChangedEvent{Tick: s.tick, Quote: quote, FairValue: fair})

	s.expireInstruments()

	for _, inst := range s.issuer.Tick(s.tick, counts, remaining) {
		s.open = append(s.open, &inst)
		metrics.InstrumentsListed.Inc()
		s.emit(InstrumentListedEvent{Instrument: inst})
	}

	if s.tick >= s.cfg.Horizon {
		s.over = true
		s.finalCounts = counts
		s.finalScore = s.led.Score(counts)
		s.emit(GameOverEvent{Counts: counts, Score: s.finalScore})
		s.log.Info().
			Str("session_id", s.id.String()).
			Float64("score", s.finalScore).
			Int("oranges", counts.Oranges()).
			Int("lemons", counts.Lemons()).
			Msg("game over")
	}
	return nil
}

// expireInstruments discards unfilled instruments whose expiry has passed.
// They never reach the ledger.
func (s *Session) expireInstruments() {
	kept := s.open[:0]
	for _, inst := range s.open {
		if s.tick >= inst.ExpiresAt() {
			metrics.InstrumentsExpired.Inc()
			s.emit(InstrumentExpiredEvent{ID: inst.ID})
			continue
		}
		kept = append(kept, inst)
	}
	s.open = kept
}

func (s *Session) handleQuoteTrade(side trade.Side) (float64, error) {
	if s.over {
		return 0, ErrGameOver
	}
	price := s.quote.Value()

	var balance float64
	if side == trade.SideBuy {
		balance = s.led.BuyQuote(price)
	} else {
		balance = s.led.SellQuote(price)
	}

	metrics.QuoteTrades.WithLabelValues(side.String()).Inc()
	s.emit(QuoteTradedEvent{Side: side, Price: price})
	s.emit(BalanceChangedEvent{Balance: balance})
	return price, nil
}

func (s *Session) handleFill(id trade.InstrumentID, side trade.Side) (trade.Instrument, error) {
	if s.over {
		return trade.Instrument{}, ErrGameOver
	}

	idx := -1
	for i, inst := range s.open {
		if inst.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return trade.Instrument{}, ErrUnknownInstrument
	}

	inst := s.open[idx]
	if err := s.led.Fill(inst, side); err != nil {
		return trade.Instrument{}, err
	}
	s.open = append(s.open[:idx], s.open[idx+1:]...)

	metrics.InstrumentFills.WithLabelValues(side.String()).Inc()
	s.emit(InstrumentFilledEvent{Instrument: *inst})
	return *inst, nil
}

func (s *Session) emit(ev Event) {
	select {
	case s.evBus <- ev:
	case <-s.closed:
	}
}

// dispatcherLoop applies events to the view, then publishes externally.
func (s *Session) dispatcherLoop() {
	defer s.wg.Done()
	defer close(s.pubEvCh)

	for {
		var ev Event
		select {
		case <-s.closed:
			return
		case ev = <-s.evBus:
		}

		// view is the authoritative query model for Snapshot/History
		s.view.Apply(ev)

		if s.cfg.DropExternalEvents {
			select {
			case s.pubEvCh <- ev:
			default:
				s.droppedEvCnt.Add(1)
			}
		} else {
			// NOTE: a slow consumer can eventually stall the engine.
			select {
			case s.pubEvCh <- ev:
			case <-s.closed:
				return
			}
		}
	}
}
