package strategy

import (
	"fmt"
	"time"

	"github.com/evdnx/hlhb/config"
	"github.com/evdnx/hlhb/indicators"
	"github.com/evdnx/hlhb/logger"
	"github.com/evdnx/hlhb/risk"
	"github.com/evdnx/hlhb/types"
)

const (
	// HLHBName is the registry name of the strategy.
	HLHBName        = "hlhb"
	hlhbDescription = `The HLHB ("Huck loves her bucks!") system aims to catch short-term trends: ` +
		`enter when RSI crosses its midline together with a fast/slow EMA crossover while ADX confirms ` +
		`a trending market, and close on the opposite signal.`

	ColHL2   = "hl2"
	ColRSI   = "rsi"
	ColEMA5  = "ema5"
	ColEMA10 = "ema10"
	ColADX   = "adx"

	rsiPeriod     = 10
	rsiMidline    = 50.0
	fastEMAPeriod = 5
	slowEMAPeriod = 10
	adxPeriod     = 28
	adxThreshold  = 25.0

	// ETH/USDT gets a wider profit threshold and more leverage than every
	// other pair.
	featuredPair         = "ETH/USDT"
	featuredPairProfit   = 0.08
	baseProfit           = 0.04
	featuredPairLeverage = 5.0
	baseLeverage         = 2.0
)

// HLHB trades RSI midline crossovers confirmed by an EMA(5)/EMA(10)
// crossover on the same candle and an ADX(28) above 25. An entry signal in
// one direction doubles as the exit signal for the other.
type HLHB struct {
	*BaseStrategy
}

// NewHLHB validates cfg and returns the strategy.
func NewHLHB(cfg config.StrategyConfig, log logger.Logger) (*HLHB, error) {
	base, err := NewBaseStrategy(HLHBName, cfg, log)
	if err != nil {
		return nil, err
	}
	return &HLHB{BaseStrategy: base}, nil
}

// Description provides an overview of the strategy.
func (h *HLHB) Description() string { return hlhbDescription }

// PopulateIndicators writes hl2, rsi, ema5, ema10 and adx into the frame.
// Rows without enough history hold NaN.
func (h *HLHB) PopulateIndicators(f *types.Frame, md types.Metadata) error {
	if f == nil {
		return types.ErrNilFrame
	}
	closes := f.Close()

	hl2, err := indicators.Midpoint(closes, f.Open())
	if err != nil {
		return err
	}
	rsi, err := indicators.RSI(hl2, rsiPeriod)
	if err != nil {
		return err
	}
	emaFast, err := indicators.EMA(closes, fastEMAPeriod)
	if err != nil {
		return err
	}
	emaSlow, err := indicators.EMA(closes, slowEMAPeriod)
	if err != nil {
		return err
	}
	adx, err := indicators.ADX(f.High(), f.Low(), closes, adxPeriod)
	if err != nil {
		return err
	}

	for _, c := range []struct {
		name   string
		values []float64
	}{
		{ColHL2, hl2},
		{ColRSI, rsi},
		{ColEMA5, emaFast},
		{ColEMA10, emaSlow},
		{ColADX, adx},
	} {
		if err := h.setColumn(f, md, c.name, c.values); err != nil {
			return err
		}
	}
	h.Log.Debug("indicators_populated",
		logger.String("pair", md.Pair),
		logger.Int("rows", f.Len()),
	)
	return nil
}

// PopulateEntryTrend marks enter_long and enter_short.
func (h *HLHB) PopulateEntryTrend(f *types.Frame, md types.Metadata) error {
	long, short, err := h.predicates(f)
	if err != nil {
		return err
	}
	if err := h.setSignal(f, md, types.EnterLong, long); err != nil {
		return err
	}
	return h.setSignal(f, md, types.EnterShort, short)
}

// PopulateExitTrend closes a position on the opposite entry signal:
// exit_long follows the short predicate and exit_short the long one.
func (h *HLHB) PopulateExitTrend(f *types.Frame, md types.Metadata) error {
	long, short, err := h.predicates(f)
	if err != nil {
		return err
	}
	if err := h.setSignal(f, md, types.ExitLong, short); err != nil {
		return err
	}
	return h.setSignal(f, md, types.ExitShort, long)
}

// CustomStoploss keeps the initial stop until profit reaches the pair's
// threshold, then trails by half the profit within
// [threshold/2, threshold*2].
func (h *HLHB) CustomStoploss(pair string, _ *types.Trade, _ time.Time, _, currentProfit float64) float64 {
	return risk.TrailingDistance(currentProfit, profitThreshold(pair))
}

// Leverage is fixed per pair; the proposed and maximum leverage are ignored.
func (h *HLHB) Leverage(pair string, _ time.Time, _, _, _ float64, _ string, _ types.Side) float64 {
	if pair == featuredPair {
		return featuredPairLeverage
	}
	return baseLeverage
}

func profitThreshold(pair string) float64 {
	if pair == featuredPair {
		return featuredPairProfit
	}
	return baseProfit
}

// predicates evaluates the long and short entry conditions on every row.
func (h *HLHB) predicates(f *types.Frame) (long, short []bool, err error) {
	if f == nil {
		return nil, nil, types.ErrNilFrame
	}
	cols := make(map[string][]float64, 4)
	for _, name := range []string{ColRSI, ColEMA5, ColEMA10, ColADX} {
		v, err := f.Column(name)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: populate indicators first: %w", h.Name(), err)
		}
		cols[name] = v
	}
	rsi, fast, slow, adx := cols[ColRSI], cols[ColEMA5], cols[ColEMA10], cols[ColADX]

	emaUp, err := indicators.CrossedAbove(fast, slow)
	if err != nil {
		return nil, nil, err
	}
	emaDown, err := indicators.CrossedBelow(fast, slow)
	if err != nil {
		return nil, nil, err
	}
	rsiUp := indicators.CrossedAboveValue(rsi, rsiMidline)
	rsiDown := indicators.CrossedBelowValue(rsi, rsiMidline)
	volume := f.Volume()

	long = make([]bool, f.Len())
	short = make([]bool, f.Len())
	for i := range long {
		confirmed := adx[i] > adxThreshold && volume[i] > 0
		long[i] = confirmed && rsiUp[i] && emaUp[i]
		short[i] = confirmed && rsiDown[i] && emaDown[i]
	}
	return long, short, nil
}
