package types

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNilFrame        = errors.New("nil frame")
	ErrColumnLength    = errors.New("column length does not match candle count")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrUnorderedCandle = errors.New("candle is not newer than the previous one")
)

// Signal names a boolean marker column.
type Signal string

const (
	EnterLong  Signal = "enter_long"
	EnterShort Signal = "enter_short"
	ExitLong   Signal = "exit_long"
	ExitShort  Signal = "exit_short"
)

// Signals lists every marker column in a stable order.
var Signals = []Signal{EnterLong, EnterShort, ExitLong, ExitShort}

// Frame is a chronologically ordered candle series with named derived
// columns. Missing (warm-up) values in a derived column are NaN.
type Frame struct {
	candles []Candle
	columns map[string][]float64
	signals map[Signal][]bool
}

// NewFrame copies the candles into a new frame. The candles must be ordered
// by time.
func NewFrame(candles []Candle) (*Frame, error) {
	f := &Frame{}
	if err := f.Append(candles...); err != nil {
		return nil, err
	}
	return f, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.candles)
}

// Candles returns the underlying rows. Callers must not modify them.
func (f *Frame) Candles() []Candle { return f.candles }

// Append adds newer candles to the end of the frame. Derived columns and
// signals are dropped since they no longer cover every row; the next
// indicator pass recomputes them. On error the frame is left unchanged.
func (f *Frame) Append(candles ...Candle) error {
	if f == nil {
		return ErrNilFrame
	}
	if len(candles) == 0 {
		return nil
	}
	if n := len(f.candles); n > 0 {
		if err := checkOrder(f.candles[n-1], candles[0]); err != nil {
			return err
		}
	}
	for i := 1; i < len(candles); i++ {
		if err := checkOrder(candles[i-1], candles[i]); err != nil {
			return err
		}
	}
	f.candles = append(f.candles, candles...)
	f.columns = nil
	f.signals = nil
	return nil
}

func checkOrder(prev, next Candle) error {
	if !next.Time.After(prev.Time) {
		return fmt.Errorf("%w: %v after %v", ErrUnorderedCandle, next.Time, prev.Time)
	}
	return nil
}

// Open returns the open prices as a new slice.
func (f *Frame) Open() []float64 { return f.extract(func(c Candle) float64 { return c.Open }) }

// High returns the high prices as a new slice.
func (f *Frame) High() []float64 { return f.extract(func(c Candle) float64 { return c.High }) }

// Low returns the low prices as a new slice.
func (f *Frame) Low() []float64 { return f.extract(func(c Candle) float64 { return c.Low }) }

// Close returns the close prices as a new slice.
func (f *Frame) Close() []float64 { return f.extract(func(c Candle) float64 { return c.Close }) }

// Volume returns the traded volume as a new slice.
func (f *Frame) Volume() []float64 { return f.extract(func(c Candle) float64 { return c.Volume }) }

func (f *Frame) extract(get func(Candle) float64) []float64 {
	out := make([]float64, len(f.candles))
	for i := range f.candles {
		out[i] = get(f.candles[i])
	}
	return out
}

// SetColumn stores (or replaces) a derived column.
func (f *Frame) SetColumn(name string, values []float64) error {
	if f == nil {
		return ErrNilFrame
	}
	if len(values) != len(f.candles) {
		return fmt.Errorf("%w: %s has %d values, frame has %d rows",
			ErrColumnLength, name, len(values), len(f.candles))
	}
	if f.columns == nil {
		f.columns = make(map[string][]float64)
	}
	f.columns[name] = values
	return nil
}

// Column returns a derived column.
func (f *Frame) Column(name string) ([]float64, error) {
	if f == nil {
		return nil, ErrNilFrame
	}
	v, ok := f.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	return v, nil
}

// HasColumn reports whether a derived column has been computed.
func (f *Frame) HasColumn(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.columns[name]
	return ok
}

// ColumnNames returns the derived column names in sorted order.
func (f *Frame) ColumnNames() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.columns))
	for k := range f.columns {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetSignal stores (or replaces) a marker column.
func (f *Frame) SetSignal(sig Signal, values []bool) error {
	if f == nil {
		return ErrNilFrame
	}
	if len(values) != len(f.candles) {
		return fmt.Errorf("%w: %s has %d values, frame has %d rows",
			ErrColumnLength, sig, len(values), len(f.candles))
	}
	if f.signals == nil {
		f.signals = make(map[Signal][]bool)
	}
	f.signals[sig] = values
	return nil
}

// Signal returns a marker column. A column that was never set reads as all
// false.
func (f *Frame) Signal(sig Signal) []bool {
	if f == nil {
		return nil
	}
	if v, ok := f.signals[sig]; ok {
		return v
	}
	return make([]bool, len(f.candles))
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	out := &Frame{candles: append([]Candle(nil), f.candles...)}
	if f.columns != nil {
		out.columns = make(map[string][]float64, len(f.columns))
		for k, v := range f.columns {
			out.columns[k] = append([]float64(nil), v...)
		}
	}
	if f.signals != nil {
		out.signals = make(map[Signal][]bool, len(f.signals))
		for k, v := range f.signals {
			out.signals[k] = append([]bool(nil), v...)
		}
	}
	return out
}
