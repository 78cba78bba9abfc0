package strategy

import (
	"github.com/evdnx/hlhb/config"
	"github.com/evdnx/hlhb/logger"
	"github.com/evdnx/hlhb/types"
)

// BaseStrategy bundles the common dependencies and helpers.
type BaseStrategy struct {
	Log  logger.Logger
	Cfg  config.StrategyConfig
	name string
}

// NewBaseStrategy validates the config. All concrete strategies should call
// this from their own constructors.
func NewBaseStrategy(name string, cfg config.StrategyConfig, log logger.Logger) (*BaseStrategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &BaseStrategy{
		Log:  log,
		Cfg:  cfg,
		name: name,
	}, nil
}

// Name returns the strategy name.
func (b *BaseStrategy) Name() string { return b.name }

// Config returns the strategy configuration. Maps are copied so the host
// cannot alter the strategy's view of it.
func (b *BaseStrategy) Config() config.StrategyConfig {
	cfg := b.Cfg
	cfg.MinimalROI = make(config.ROITable, len(b.Cfg.MinimalROI))
	for k, v := range b.Cfg.MinimalROI {
		cfg.MinimalROI[k] = v
	}
	cfg.PlotConfig.MainPlot = make(map[string]config.PlotSeries, len(b.Cfg.PlotConfig.MainPlot))
	for k, v := range b.Cfg.PlotConfig.MainPlot {
		cfg.PlotConfig.MainPlot[k] = v
	}
	cfg.PlotConfig.Subplots = make(map[string]map[string]config.PlotSeries, len(b.Cfg.PlotConfig.Subplots))
	for k, sub := range b.Cfg.PlotConfig.Subplots {
		cp := make(map[string]config.PlotSeries, len(sub))
		for col, s := range sub {
			cp[col] = s
		}
		cfg.PlotConfig.Subplots[k] = cp
	}
	return cfg
}

// InformativePairs requests no extra data series by default.
func (b *BaseStrategy) InformativePairs() []types.PairTimeframe { return nil }

// setColumn stores a derived column, logging failures with the pair.
func (b *BaseStrategy) setColumn(f *types.Frame, md types.Metadata, name string, values []float64) error {
	if err := f.SetColumn(name, values); err != nil {
		b.Log.Error("set_column_failed",
			logger.String("strategy", b.name),
			logger.String("pair", md.Pair),
			logger.String("column", name),
			logger.Err(err),
		)
		return err
	}
	return nil
}

// setSignal stores a marker column, logging failures with the pair.
func (b *BaseStrategy) setSignal(f *types.Frame, md types.Metadata, sig types.Signal, values []bool) error {
	if err := f.SetSignal(sig, values); err != nil {
		b.Log.Error("set_signal_failed",
			logger.String("strategy", b.name),
			logger.String("pair", md.Pair),
			logger.String("signal", string(sig)),
			logger.Err(err),
		)
		return err
	}
	return nil
}
