package indicators

import (
	"fmt"

	talib "github.com/markcheno/go-talib"
)

// ADX returns Wilder's average directional index over period. The first
// value is available at row 2*period-1.
func ADX(high, low, close []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("adx %w: %d", ErrInvalidPeriod, period)
	}
	if len(high) != len(close) || len(low) != len(close) {
		return nil, fmt.Errorf("adx %w: high %d low %d close %d",
			ErrInvalidDataSetLengths, len(high), len(low), len(close))
	}
	return compute(close, 2*period-1, func() []float64 {
		return talib.Adx(high, low, close, period)
	}), nil
}
