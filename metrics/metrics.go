package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignalsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hlhb_signals_total",
			Help: "Total number of entry/exit markers set (by strategy and signal).",
		},
		[]string{"strategy", "signal"},
	)

	Analyses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hlhb_analyses_total",
			Help: "Total number of candle frames analysed (by strategy).",
		},
		[]string{"strategy"},
	)

	StoplossUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hlhb_stoploss_updates_total",
			Help: "Custom stop-loss evaluations by outcome (kept, tightened, disabled).",
		},
		[]string{"strategy", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(SignalsEmitted, Analyses, StoplossUpdates)
}
