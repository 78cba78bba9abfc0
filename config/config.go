package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/evdnx/hlhb/types"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ROITable maps trade age in minutes to the minimal profit ratio at which
// the host should take profit.
type ROITable map[int]float64

// Threshold returns the ratio that applies to a trade of the given age:
// the entry with the largest key not exceeding the age in minutes.
func (r ROITable) Threshold(elapsed time.Duration) (float64, bool) {
	minutes := int(elapsed / time.Minute)
	best, found := -1, false
	for k := range r {
		if k <= minutes && k > best {
			best, found = k, true
		}
	}
	if !found {
		return 0, false
	}
	return r[best], true
}

// Reached reports whether profit exceeds the ROI threshold for the age.
func (r ROITable) Reached(elapsed time.Duration, profit float64) bool {
	th, ok := r.Threshold(elapsed)
	return ok && profit > th
}

// Keys returns the ladder steps in ascending order.
func (r ROITable) Keys() []int {
	keys := make([]int, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// UnmarshalYAML accepts both quoted ("30") and bare (30) minute keys and
// replaces the whole table rather than merging into it.
func (r *ROITable) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]float64
	if err := value.Decode(&raw); err != nil {
		return err
	}
	out := make(ROITable, len(raw))
	for k, v := range raw {
		m, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return fmt.Errorf("minimal_roi key %q: %w", k, err)
		}
		out[m] = v
	}
	*r = out
	return nil
}

// OrderTypes tells the host which order kind to use per action.
type OrderTypes struct {
	Entry              types.OrderType `yaml:"entry"`
	Exit               types.OrderType `yaml:"exit"`
	Stoploss           types.OrderType `yaml:"stoploss"`
	StoplossOnExchange bool            `yaml:"stoploss_on_exchange"`
}

// OrderTimeInForce tells the host the time in force per action.
type OrderTimeInForce struct {
	Entry types.TimeInForce `yaml:"entry"`
	Exit  types.TimeInForce `yaml:"exit"`
}

// PlotSeries is a single plotted column.
type PlotSeries struct {
	Color string `yaml:"color,omitempty"`
}

// PlotConfig is a charting hint: main-plot columns and named subplots.
type PlotConfig struct {
	MainPlot map[string]PlotSeries            `yaml:"main_plot"`
	Subplots map[string]map[string]PlotSeries `yaml:"subplots"`
}

// StrategyConfig is everything the host reads from the strategy at load
// time. Build it once with Default (or Load) and treat it as immutable.
type StrategyConfig struct {
	InterfaceVersion int `yaml:"-"`

	MinimalROI        ROITable `yaml:"minimal_roi"`
	Stoploss          float64  `yaml:"stoploss"` // -1 = disabled
	UseCustomStoploss bool     `yaml:"use_custom_stoploss"`

	Timeframe             string `yaml:"timeframe"`
	StartupCandleCount    int    `yaml:"startup_candle_count"`
	ProcessOnlyNewCandles bool   `yaml:"process_only_new_candles"`

	CanShort       bool `yaml:"can_short"`
	UseExitSignal  bool `yaml:"use_exit_signal"`
	ExitProfitOnly bool `yaml:"exit_profit_only"`

	OrderTypes       OrderTypes       `yaml:"order_types"`
	OrderTimeInForce OrderTimeInForce `yaml:"order_time_in_force"`
	PlotConfig       PlotConfig       `yaml:"plot_config"`
}

// Default returns the HLHB configuration.
func Default() StrategyConfig {
	return StrategyConfig{
		InterfaceVersion: 3,
		MinimalROI: ROITable{
			0:   0.32,
			30:  0.16,
			60:  0.08,
			480: -1,
		},
		Stoploss:              -1,
		UseCustomStoploss:     true,
		Timeframe:             "3m",
		StartupCandleCount:    30,
		ProcessOnlyNewCandles: true,
		CanShort:              true,
		UseExitSignal:         true,
		ExitProfitOnly:        false,
		OrderTypes: OrderTypes{
			Entry:              types.Limit,
			Exit:               types.Limit,
			Stoploss:           types.Market,
			StoplossOnExchange: true,
		},
		OrderTimeInForce: OrderTimeInForce{
			Entry: types.GTC,
			Exit:  types.GTC,
		},
		PlotConfig: PlotConfig{
			MainPlot: map[string]PlotSeries{
				"ema5":  {},
				"ema10": {},
			},
			Subplots: map[string]map[string]PlotSeries{
				"RSI": {"rsi": {Color: "red"}},
				"ADX": {"adx": {}},
			},
		},
	}
}

// TimeframeDuration returns the candle interval.
func (c StrategyConfig) TimeframeDuration() (time.Duration, error) {
	return ParseTimeframe(c.Timeframe)
}

// Validate checks every field and reports all violations at once.
func (c *StrategyConfig) Validate() error {
	var err error
	if len(c.MinimalROI) == 0 {
		err = multierr.Append(err, errors.New("minimal_roi must not be empty"))
	}
	for k, v := range c.MinimalROI {
		if k < 0 {
			err = multierr.Append(err, fmt.Errorf("minimal_roi key %d must not be negative", k))
		}
		if v < -1 {
			err = multierr.Append(err, fmt.Errorf("minimal_roi[%d] (%f) must be >= -1", k, v))
		}
	}
	if c.Stoploss < -1 || c.Stoploss >= 0 {
		err = multierr.Append(err, fmt.Errorf("stoploss (%f) must be in [-1, 0)", c.Stoploss))
	}
	if _, tfErr := ParseTimeframe(c.Timeframe); tfErr != nil {
		err = multierr.Append(err, tfErr)
	}
	if c.StartupCandleCount < 0 {
		err = multierr.Append(err, errors.New("startup_candle_count cannot be negative"))
	}
	for name, ot := range map[string]types.OrderType{
		"entry":    c.OrderTypes.Entry,
		"exit":     c.OrderTypes.Exit,
		"stoploss": c.OrderTypes.Stoploss,
	} {
		if ot != types.Limit && ot != types.Market {
			err = multierr.Append(err, fmt.Errorf("order_types.%s %q is not limit or market", name, ot))
		}
	}
	for name, tif := range map[string]types.TimeInForce{
		"entry": c.OrderTimeInForce.Entry,
		"exit":  c.OrderTimeInForce.Exit,
	} {
		switch tif {
		case types.GTC, types.FOK, types.IOC, types.PO:
		default:
			err = multierr.Append(err, fmt.Errorf("order_time_in_force.%s %q is unknown", name, tif))
		}
	}
	return err
}

// ParseTimeframe converts an exchange-style interval ("3m", "1h", "1d",
// "1w") into a duration.
func ParseTimeframe(tf string) (time.Duration, error) {
	tf = strings.TrimSpace(tf)
	if len(tf) < 2 {
		return 0, fmt.Errorf("invalid timeframe %q", tf)
	}
	n, err := strconv.Atoi(tf[:len(tf)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid timeframe %q", tf)
	}
	var unit time.Duration
	switch tf[len(tf)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	case 'w':
		unit = 7 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("invalid timeframe unit in %q", tf)
	}
	return time.Duration(n) * unit, nil
}
