package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/evdnx/hlhb/types"
	"github.com/gocarina/gocsv"
)

// candleRow is one line of a candle CSV: date,open,high,low,close,volume.
// date is RFC 3339 or unix milliseconds.
type candleRow struct {
	Date   string  `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

func loadCandlesFile(path string) ([]types.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loadCandles(f)
}

func loadCandles(r io.Reader) ([]types.Candle, error) {
	var rows []*candleRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse candles: %w", err)
	}
	out := make([]types.Candle, 0, len(rows))
	for i, row := range rows {
		ts, err := parseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, types.Candle{
			Time:   ts,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return ts.UTC(), nil
}
