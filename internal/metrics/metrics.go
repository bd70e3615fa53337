package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "game_ticks_total", Help: "Count of game ticks processed"},
	)
	InstrumentsListed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "instruments_listed_total", Help: "Instruments issued"},
	)
	InstrumentsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "instruments_expired_total", Help: "Instruments discarded unfilled"},
	)
	InstrumentFills = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "instrument_fills_total", Help: "Instruments filled by the player"},
		[]string{"side"},
	)
	QuoteTrades = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quote_trades_total", Help: "Quote buys and sells"},
		[]string{"side"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, InstrumentsListed, InstrumentsExpired, InstrumentFills, QuoteTrades)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
