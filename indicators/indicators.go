// Package indicators computes whole-series technical indicators for a candle
// frame. Every function returns one value per input row; rows without enough
// history are NaN.
package indicators

import (
	"errors"
	"fmt"
	"math"

	"github.com/evdnx/goti"
	ta "github.com/thrasher-corp/gct-ta/indicators"
)

var (
	ErrInvalidPeriod         = errors.New("invalid period")
	ErrInvalidDataSetLengths = errors.New("invalid data set lengths")
)

// RSI returns the relative strength index of in over period.
func RSI(in []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("rsi %w: %d", ErrInvalidPeriod, period)
	}
	return compute(in, period, func() []float64 { return ta.RSI(in, period) }), nil
}

// EMA returns the exponential moving average of in over period, seeded with
// the simple average of the first period values. NaN or infinite inputs are
// rejected.
func EMA(in []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("ema %w: %d", ErrInvalidPeriod, period)
	}
	ma, err := goti.NewMovingAverage(goti.EMAMovingAverage, period)
	if err != nil {
		return nil, fmt.Errorf("ema: %w", err)
	}
	out := nanSlice(len(in))
	for i, v := range in {
		if err := ma.AddValue(v); err != nil {
			return nil, fmt.Errorf("ema row %d: %w", i, err)
		}
		if i < period-1 {
			continue
		}
		if out[i], err = ma.Calculate(); err != nil {
			return nil, fmt.Errorf("ema row %d: %w", i, err)
		}
	}
	return out, nil
}

// Midpoint returns (a[i]+b[i])/2 for every row.
func Midpoint(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("midpoint %w: %d != %d", ErrInvalidDataSetLengths, len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = (a[i] + b[i]) / 2
	}
	return out, nil
}

// compute runs calc only when the input is longer than the lookback and
// blanks the leading rows the library fills with zeros.
func compute(in []float64, lookback int, calc func() []float64) []float64 {
	if len(in) <= lookback {
		return nanSlice(len(in))
	}
	out := calc()
	switch {
	case len(out) > len(in):
		out = out[len(out)-len(in):]
	case len(out) < len(in):
		// output without the lookback rows; right-align it
		padded := nanSlice(len(in))
		copy(padded[len(in)-len(out):], out)
		out = padded
	}
	for i := 0; i < lookback && i < len(out); i++ {
		out[i] = math.NaN()
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
