// Command hlhb inspects the HLHB strategy offline: it evaluates signals on a
// candle CSV and prints the stop-loss and leverage callbacks for a pair.
package main

import (
	"fmt"
	"os"

	"github.com/evdnx/hlhb/config"
	"github.com/evdnx/hlhb/logger"
	"github.com/evdnx/hlhb/strategy"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

type options struct {
	configPath string
	verbose    bool
	newLogger  func(zapcore.Level) (logger.Logger, error)
}

func (o *options) config() (config.StrategyConfig, error) {
	if o.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.configPath)
}

func (o *options) logger() (logger.Logger, error) {
	level := zapcore.WarnLevel
	if o.verbose {
		level = zapcore.DebugLevel
	}
	if o.newLogger != nil {
		return o.newLogger(level)
	}
	return logger.NewZapLoggerAt(level)
}

func (o *options) strategy(log logger.Logger) (strategy.Strategy, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	return strategy.New(strategy.HLHBName, cfg, log)
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&options{})
}

func newRootCmdWith(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "hlhb",
		Short:         "Inspect the HLHB trading strategy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML file overriding strategy settings")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		newSignalsCmd(opts),
		newStoplossCmd(opts),
		newLeverageCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
