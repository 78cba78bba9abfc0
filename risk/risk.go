package risk

import "math"

// KeepStop is returned by TrailingDistance while the position has not yet
// earned enough to start trailing. Hosts must keep the existing stop when
// they see it.
const KeepStop = -1.0

// TrailingDistance trails the stop by half the current profit once profit
// reaches threshold, bounded to [threshold/2, threshold*2].
func TrailingDistance(currentProfit, threshold float64) float64 {
	if currentProfit < threshold {
		return KeepStop
	}
	desired := currentProfit / 2
	return math.Max(math.Min(desired, threshold*2), threshold/2)
}

// ClampLeverage bounds a requested leverage to [1, max]. A non-positive or
// NaN max leaves only the lower bound.
func ClampLeverage(lev, max float64) float64 {
	if math.IsNaN(lev) || lev < 1 {
		lev = 1
	}
	if max >= 1 && lev > max {
		lev = max
	}
	return lev
}

// StopPrice converts a stop distance (a ratio of the current rate) into a
// stop price for the given direction.
func StopPrice(rate, distance float64, short bool) float64 {
	d := math.Abs(distance)
	if short {
		return rate * (1 + d)
	}
	return rate * (1 - d)
}
