package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/evdnx/hlhb/host"
	"github.com/evdnx/hlhb/strategy"
	"github.com/evdnx/hlhb/types"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newSignalsCmd(opts *options) *cobra.Command {
	var (
		candlesPath string
		pair        string
		all         bool
		outPath     string
	)
	cmd := &cobra.Command{
		Use:   "signals",
		Short: "Evaluate entry/exit signals on a candle CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if candlesPath == "" {
				return errors.New("--candles is required")
			}
			log, err := opts.logger()
			if err != nil {
				return err
			}
			// stderr may not support fsync
			defer func() { _ = log.Sync() }()
			s, err := opts.strategy(log)
			if err != nil {
				return err
			}
			h, err := host.New(s, log)
			if err != nil {
				return err
			}
			candles, err := loadCandlesFile(candlesPath)
			if err != nil {
				return err
			}
			f, err := types.NewFrame(candles)
			if err != nil {
				return err
			}
			md := types.Metadata{Pair: pair, Timeframe: h.Config().Timeframe}
			if err := h.Analyze(f, md); err != nil {
				return err
			}
			if outPath != "" {
				if err := exportFrame(outPath, f); err != nil {
					return err
				}
			}
			return renderSignals(cmd.OutOrStdout(), f, all)
		},
	}
	cmd.Flags().StringVar(&candlesPath, "candles", "", "CSV with date,open,high,low,close,volume")
	cmd.Flags().StringVar(&pair, "pair", "ETH/USDT", "pair the candles belong to")
	cmd.Flags().BoolVar(&all, "all", false, "print every row, not only rows with a signal")
	cmd.Flags().StringVar(&outPath, "out", "", "also write every row, indicator and signal to this CSV file")
	return cmd
}

func renderSignals(w io.Writer, f *types.Frame, all bool) error {
	cols := make(map[string][]float64)
	for _, name := range []string{strategy.ColRSI, strategy.ColEMA5, strategy.ColEMA10, strategy.ColADX} {
		v, err := f.Column(name)
		if err != nil {
			return err
		}
		cols[name] = v
	}

	table := tablewriter.NewWriter(w)
	header := []string{"time", "close", "rsi", "ema5", "ema10", "adx"}
	for _, sig := range types.Signals {
		header = append(header, string(sig))
	}
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)

	rows := 0
	for i, c := range f.Candles() {
		marks := make([]string, 0, len(types.Signals))
		hit := false
		for _, sig := range types.Signals {
			v := f.Signal(sig)[i]
			hit = hit || v
			marks = append(marks, mark(v))
		}
		if !all && !hit {
			continue
		}
		row := []string{
			c.Time.Format(time.RFC3339),
			num(c.Close),
			num(cols[strategy.ColRSI][i]),
			num(cols[strategy.ColEMA5][i]),
			num(cols[strategy.ColEMA10][i]),
			num(cols[strategy.ColADX][i]),
		}
		table.Append(append(row, marks...))
		rows++
	}
	table.Render()
	_, err := fmt.Fprintf(w, "%d of %d candles shown\n", rows, f.Len())
	return err
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func mark(v bool) string {
	if v {
		return "1"
	}
	return ""
}
