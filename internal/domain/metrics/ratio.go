// Package metrics holds the pure aggregation engine of the dashboard:
// window calculations, entity aggregation, classification, ranking and trends.
// Nothing here performs I/O or reads the wall clock; "today" is always passed in.
package metrics

import "math"

func safeDiv(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}

// CPA is spend per fulfilled order, 0 without orders.
func CPA(spend float64, conversions int64) float64 {
	if conversions <= 0 {
		return 0
	}
	return spend / float64(conversions)
}

// ROAS is revenue per unit of spend, 0 without spend.
func ROAS(revenue, spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	return revenue / spend
}

// CTR is clicks over impressions as a percentage.
func CTR(clicks, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return float64(clicks) / float64(impressions) * 100
}

// ConversionRate is orders over clicks as a percentage.
func ConversionRate(conversions, clicks int64) float64 {
	if clicks <= 0 {
		return 0
	}
	return float64(conversions) / float64(clicks) * 100
}

// PercentChange returns (current-previous)/previous*100, or 0 when previous is 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Variance is the distance of value from target as a percentage of target.
// A zero target yields 0.
func Variance(value, target float64) float64 {
	if target == 0 {
		return 0
	}
	return (value - target) / target * 100
}

// Round2 rounds to cents for display and export.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
