// Package progress computes spent-versus-allocated percentages.
//
// The raw percentage is deliberately unclamped so that callers can
// derive an "exceeded" state from values above 100. Display paths that
// render a progress bar use Clamped instead.
package progress

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percentage returns spent as a percentage of allocated, rounded
// half-up to two decimal places. A non-positive allocation always
// yields zero.
func Percentage(spent, allocated decimal.Decimal) decimal.Decimal {
	if !allocated.IsPositive() {
		return decimal.Zero
	}

	return spent.Div(allocated).Mul(hundred).Round(2)
}

// Clamped returns the same percentage as Percentage, limited to the
// range [0, 100].
func Clamped(spent, allocated decimal.Decimal) decimal.Decimal {
	percentage := Percentage(spent, allocated)

	if percentage.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if percentage.GreaterThan(hundred) {
		return hundred
	}

	return percentage
}
