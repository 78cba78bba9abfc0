package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/evdnx/hlhb/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// toDataFrame lays the analysed frame out as columns: date, the OHLCV
// prices, every derived column in name order, then the four signals.
func toDataFrame(f *types.Frame) (dataframe.DataFrame, error) {
	candles := f.Candles()
	dates := make([]string, len(candles))
	for i, c := range candles {
		dates[i] = c.Time.Format(time.RFC3339)
	}

	cols := []series.Series{
		series.New(dates, series.String, "date"),
		series.New(f.Open(), series.Float, "open"),
		series.New(f.High(), series.Float, "high"),
		series.New(f.Low(), series.Float, "low"),
		series.New(f.Close(), series.Float, "close"),
		series.New(f.Volume(), series.Float, "volume"),
	}
	for _, name := range f.ColumnNames() {
		v, err := f.Column(name)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		cols = append(cols, series.New(v, series.Float, name))
	}
	for _, sig := range types.Signals {
		cols = append(cols, series.New(f.Signal(sig), series.Bool, string(sig)))
	}

	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build export frame: %w", df.Err)
	}
	return df, nil
}

func writeFrameCSV(w io.Writer, f *types.Frame) error {
	df, err := toDataFrame(f)
	if err != nil {
		return err
	}
	return df.WriteCSV(w)
}

func exportFrame(path string, f *types.Frame) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return writeFrameCSV(out, f)
}
