package strategy

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/evdnx/hlhb/config"
	"github.com/evdnx/hlhb/logger"
	"github.com/evdnx/hlhb/types"
)

// Strategy is the contract between a trading host and a strategy plug-in.
// The host calls these methods directly; no reflection or naming
// conventions are involved.
//
// The three Populate methods receive a fresh frame per call and write
// columns into it. CustomStoploss and Leverage must be pure: the host may
// call them on every price update for every open position.
type Strategy interface {
	Name() string
	Config() config.StrategyConfig
	InformativePairs() []types.PairTimeframe

	PopulateIndicators(f *types.Frame, md types.Metadata) error
	PopulateEntryTrend(f *types.Frame, md types.Metadata) error
	PopulateExitTrend(f *types.Frame, md types.Metadata) error

	// CustomStoploss returns the stop distance as a ratio of currentRate.
	// -1 means "keep the current stop"; it never requests an exit.
	CustomStoploss(pair string, trade *types.Trade, currentTime time.Time,
		currentRate, currentProfit float64) float64

	// Leverage returns the leverage for a new trade. The host clamps the
	// result against its own maximum.
	Leverage(pair string, currentTime time.Time, currentRate,
		proposedLeverage, maxLeverage float64, entryTag string, side types.Side) float64
}

// ErrUnknownStrategy is returned by New for an unregistered name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Constructor builds a strategy from a configuration and logger.
type Constructor func(cfg config.StrategyConfig, log logger.Logger) (Strategy, error)

var registry = map[string]Constructor{
	HLHBName: func(cfg config.StrategyConfig, log logger.Logger) (Strategy, error) {
		return NewHLHB(cfg, log)
	},
}

// New builds a registered strategy by name.
func New(name string, cfg config.StrategyConfig, log logger.Logger) (Strategy, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return ctor(cfg, log)
}

// Names lists the registered strategies.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
