// Package money centralises monetary conventions: decimal arithmetic, the
// one-cent comparison epsilon, NULL-column handling, and display formatting.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Epsilon is the smallest currency unit. Two amounts within Epsilon of each
// other are considered equal.
var Epsilon = decimal.New(1, -2)

// FromNull converts a nullable database amount to a concrete value. A NULL
// column yields zero and missing=true; callers count the absence instead of
// coercing it away silently.
func FromNull(d decimal.NullDecimal) (value decimal.Decimal, missing bool) {
	if !d.Valid {
		return decimal.Zero, true
	}
	return d.Decimal, false
}

// Equalish reports whether two amounts agree within Epsilon.
func Equalish(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().Cmp(Epsilon) <= 0
}

var printer = message.NewPrinter(language.English)

// Format renders an amount as a grouped dollar string, e.g. "$1,234.56".
// The whole and fractional parts are printed separately so amounts stay
// exact well past float64's integer range.
func Format(d decimal.Decimal) string {
	cents := d.Round(2)
	sign := ""
	if cents.IsNegative() {
		sign = "-"
		cents = cents.Neg()
	}
	units := cents.Truncate(0)
	frac := cents.Sub(units).Shift(2).IntPart()
	return printer.Sprintf("$%s%v.%02d", sign, number.Decimal(units.IntPart()), frac)
}
