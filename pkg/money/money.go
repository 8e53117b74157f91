// Package money holds the cent arithmetic used across pricing and
// payroll. All stored amounts are integer cents; floats only appear at
// the API boundary.
package money

import (
	"fmt"
	"math"
)

// ToCents converts a decimal amount to cents, rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Round rounds a fractional cent amount to whole cents.
func Round(cents float64) int64 {
	return int64(math.Round(cents))
}

// Percent returns pct percent of the given cents, rounded to whole cents.
func Percent(cents int64, pct float64) int64 {
	return Round(float64(cents) * pct / 100)
}

// CeilToUnit rounds cents up to the next whole currency unit. Negative
// amounts clamp to zero; a charge is never negative.
func CeilToUnit(cents int64) int64 {
	if cents <= 0 {
		return 0
	}
	return ((cents + 99) / 100) * 100
}

// Dollars converts cents to a decimal amount.
func Dollars(cents int64) float64 {
	return float64(cents) / 100
}

// Format renders cents as a dollar string, e.g. "$12.50".
func Format(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
