package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/evdnx/hlhb/config"
	"github.com/evdnx/hlhb/testutils"
	"github.com/evdnx/hlhb/types"
)

var nan = math.NaN()

// buildHLHB creates the strategy wired to a mock logger.
func buildHLHB(t *testing.T) (*HLHB, *testutils.MockLogger) {
	t.Helper()
	mockLog := testutils.NewMockLogger()
	h, err := NewHLHB(config.Default(), mockLog)
	if err != nil {
		t.Fatalf("NewHLHB failed: %v", err)
	}
	return h, mockLog
}

// flatCandles returns n three-minute candles at a constant price with the
// given volume.
func flatCandles(n int, volume float64) []types.Candle {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]types.Candle, n)
	for i := range out {
		out[i] = types.Candle{
			Time:   start.Add(time.Duration(i) * 3 * time.Minute),
			Open:   100,
			High:   101,
			Low:    99,
			Close:  100,
			Volume: volume,
		}
	}
	return out
}

// wavyCandles returns a slow swing with a faster ripple on top. Past the
// warm-up it produces real-indicator entries in both directions: the first
// long entry is on row 73 and the first short entry on row 90.
func wavyCandles(n int) []types.Candle {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]types.Candle, n)
	prev := 100.0
	for i := range out {
		x := float64(i)
		close := 100 + 8*math.Sin(x/40) + 3*math.Sin(x/6)
		out[i] = types.Candle{
			Time:   start.Add(time.Duration(i) * 3 * time.Minute),
			Open:   prev,
			High:   math.Max(prev, close) + 0.3,
			Low:    math.Min(prev, close) - 0.3,
			Close:  close,
			Volume: 50 + float64(i%7),
		}
		prev = close
	}
	return out
}

// syntheticFrame builds a frame of len(rsi) flat candles and installs the
// indicator columns directly, so tests control every crossover.
func syntheticFrame(t *testing.T, rsi, fast, slow, adx, volume []float64) *types.Frame {
	t.Helper()
	candles := flatCandles(len(rsi), 1)
	for i := range candles {
		candles[i].Volume = volume[i]
	}
	f, err := types.NewFrame(candles)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	for name, col := range map[string][]float64{
		ColRSI:   rsi,
		ColEMA5:  fast,
		ColEMA10: slow,
		ColADX:   adx,
	} {
		if err := f.SetColumn(name, col); err != nil {
			t.Fatalf("SetColumn(%s) failed: %v", name, err)
		}
	}
	return f
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
