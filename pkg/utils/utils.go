package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds a value to 2 decimal places
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite reports whether value is neither NaN nor infinite
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// Money converts a full-precision amount into a 2-decimal presentation value.
// It panics on NaN or ±Inf, as decimal.NewFromFloat does; check IsFinite first.
func Money(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(2)
}

// Percent is Money for percentages; kept separate so call sites read clearly.
func Percent(value float64) decimal.Decimal {
	return Money(value)
}
