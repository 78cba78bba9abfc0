// Package host is the host-side adapter for a strategy plug-in. It calls the
// strategy callbacks directly and applies the rules the host owns: warm-up
// discard, short/exit gating, stop-loss tightening and leverage clamping.
package host

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/evdnx/hlhb/config"
	"github.com/evdnx/hlhb/logger"
	"github.com/evdnx/hlhb/metrics"
	"github.com/evdnx/hlhb/risk"
	"github.com/evdnx/hlhb/strategy"
	"github.com/evdnx/hlhb/types"
)

var (
	ErrNilStrategy = errors.New("nil strategy")
	ErrNilTrade    = errors.New("nil trade")
)

// StopOutcome describes what UpdateStoploss did with a trade's stop.
type StopOutcome string

const (
	StopDisabled  StopOutcome = "disabled"  // custom stop-loss is off
	StopKept      StopOutcome = "kept"      // sentinel, or not tighter than the current stop
	StopTightened StopOutcome = "tightened" // stop moved towards the price
)

// Host drives one strategy. The configuration is read once, at construction.
type Host struct {
	strat strategy.Strategy
	cfg   config.StrategyConfig
	log   logger.Logger
}

// New loads the strategy configuration and returns a host for it.
func New(s strategy.Strategy, log logger.Logger) (*Host, error) {
	if s == nil {
		return nil, ErrNilStrategy
	}
	if log == nil {
		log = logger.NewNop()
	}
	cfg := s.Config()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	h := &Host{strat: s, cfg: cfg, log: log}
	log.Info("strategy_loaded",
		logger.String("strategy", s.Name()),
		logger.String("timeframe", cfg.Timeframe),
		logger.Int("startup_candle_count", cfg.StartupCandleCount),
		logger.Bool("can_short", cfg.CanShort),
	)
	return h, nil
}

// Config returns the configuration read at load time.
func (h *Host) Config() config.StrategyConfig { return h.cfg }

// Analyze populates indicators, entry and exit signals, then clears every
// signal inside the warm-up window and any the configuration disables.
func (h *Host) Analyze(f *types.Frame, md types.Metadata) error {
	if f == nil {
		return types.ErrNilFrame
	}
	name := h.strat.Name()
	if err := h.strat.PopulateIndicators(f, md); err != nil {
		return fmt.Errorf("%s populate indicators for %s: %w", name, md.Pair, err)
	}
	if err := h.strat.PopulateEntryTrend(f, md); err != nil {
		return fmt.Errorf("%s populate entry trend for %s: %w", name, md.Pair, err)
	}
	if err := h.strat.PopulateExitTrend(f, md); err != nil {
		return fmt.Errorf("%s populate exit trend for %s: %w", name, md.Pair, err)
	}

	fields := []logger.Field{
		logger.String("strategy", name),
		logger.String("pair", md.Pair),
		logger.Int("rows", f.Len()),
	}
	for _, sig := range types.Signals {
		values := append([]bool(nil), f.Signal(sig)...)
		if !h.enabled(sig) {
			clear(values)
		}
		for i := 0; i < h.cfg.StartupCandleCount && i < len(values); i++ {
			values[i] = false
		}
		if err := f.SetSignal(sig, values); err != nil {
			return err
		}
		n := count(values)
		metrics.SignalsEmitted.WithLabelValues(name, string(sig)).Add(float64(n))
		fields = append(fields, logger.Int(string(sig), n))
	}
	metrics.Analyses.WithLabelValues(name).Inc()
	h.log.Debug("analysis_complete", fields...)
	return nil
}

func (h *Host) enabled(sig types.Signal) bool {
	switch sig {
	case types.EnterShort, types.ExitShort:
		if !h.cfg.CanShort {
			return false
		}
	}
	switch sig {
	case types.ExitLong, types.ExitShort:
		return h.cfg.UseExitSignal
	}
	return true
}

// LastSignals returns the markers on the most recent candle.
func LastSignals(f *types.Frame) (types.Candle, map[types.Signal]bool, bool) {
	if f.Len() == 0 {
		return types.Candle{}, nil, false
	}
	last := f.Len() - 1
	out := make(map[types.Signal]bool, len(types.Signals))
	for _, sig := range types.Signals {
		out[sig] = f.Signal(sig)[last]
	}
	return f.Candles()[last], out, true
}

// InitialStop returns the stop price a new trade starts with, from the
// static stoploss ratio.
func (h *Host) InitialStop(rate float64, side types.Side) float64 {
	return risk.StopPrice(rate, h.cfg.Stoploss, side == types.Short)
}

// UpdateStoploss asks the strategy for a new stop distance and moves the
// trade's stop only when that tightens it. The sentinel (-1) or any
// distance of 100% or more keeps the current stop; it never closes the
// trade.
func (h *Host) UpdateStoploss(trade *types.Trade, now time.Time, rate, profit float64) (StopOutcome, error) {
	if trade == nil {
		return "", ErrNilTrade
	}
	outcome := h.updateStoploss(trade, now, rate, profit)
	metrics.StoplossUpdates.WithLabelValues(h.strat.Name(), string(outcome)).Inc()
	if outcome == StopTightened {
		h.log.Debug("stoploss_tightened",
			logger.String("pair", trade.Pair),
			logger.Float64("stop", trade.StopLoss),
			logger.Float64("rate", rate),
			logger.Float64("profit", profit),
		)
	}
	return outcome, nil
}

func (h *Host) updateStoploss(trade *types.Trade, now time.Time, rate, profit float64) StopOutcome {
	if !h.cfg.UseCustomStoploss {
		return StopDisabled
	}
	d := h.strat.CustomStoploss(trade.Pair, trade, now, rate, profit)
	if d == risk.KeepStop || math.IsNaN(d) || math.Abs(d) >= 1 {
		return StopKept
	}
	candidate := risk.StopPrice(rate, d, trade.IsShort())
	tighter := candidate > trade.StopLoss
	if trade.IsShort() {
		tighter = trade.StopLoss == 0 || candidate < trade.StopLoss
	}
	if !tighter {
		return StopKept
	}
	trade.StopLoss = candidate
	return StopTightened
}

// Leverage asks the strategy for a leverage and clamps it to [1, max].
func (h *Host) Leverage(pair string, now time.Time, rate, proposed, max float64,
	entryTag string, side types.Side) float64 {
	return risk.ClampLeverage(h.strat.Leverage(pair, now, rate, proposed, max, entryTag, side), max)
}

// ROIReached reports whether the trade should be closed by the minimal ROI
// ladder at time now.
func (h *Host) ROIReached(trade *types.Trade, now time.Time, profit float64) bool {
	if trade == nil {
		return false
	}
	return h.cfg.MinimalROI.Reached(now.Sub(trade.OpenTime), profit)
}

func count(values []bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}
