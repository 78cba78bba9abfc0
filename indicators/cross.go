package indicators

import "fmt"

// CrossedAbove marks rows where a moves above b: a[i] > b[i] while
// a[i-1] <= b[i-1]. Rows touching a NaN never cross, and row 0 has no
// previous row to compare against.
func CrossedAbove(a, b []float64) ([]bool, error) {
	return crossed(a, b, func(cur, prev float64) bool { return cur > 0 && prev <= 0 })
}

// CrossedBelow marks rows where a moves below b: a[i] < b[i] while
// a[i-1] >= b[i-1].
func CrossedBelow(a, b []float64) ([]bool, error) {
	return crossed(a, b, func(cur, prev float64) bool { return cur < 0 && prev >= 0 })
}

// CrossedAboveValue is CrossedAbove against a constant level.
func CrossedAboveValue(a []float64, level float64) []bool {
	out, _ := CrossedAbove(a, constant(len(a), level))
	return out
}

// CrossedBelowValue is CrossedBelow against a constant level.
func CrossedBelowValue(a []float64, level float64) []bool {
	out, _ := CrossedBelow(a, constant(len(a), level))
	return out
}

// crossed compares the signed spread a-b on consecutive rows. NaN spreads
// fail every comparison, so undefined rows never produce a crossing.
func crossed(a, b []float64, hit func(cur, prev float64) bool) ([]bool, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("crossover %w: %d != %d", ErrInvalidDataSetLengths, len(a), len(b))
	}
	out := make([]bool, len(a))
	for i := 1; i < len(a); i++ {
		out[i] = hit(a[i]-b[i], a[i-1]-b[i-1])
	}
	return out, nil
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
