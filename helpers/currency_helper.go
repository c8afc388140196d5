package helpers

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var centsPerDollar = decimal.NewFromInt(100)

// DollarsToCents converts a decimal dollar amount from the order record into
// minor units, rounding to the nearest cent. Opportunity inputs carry
// dollars; everything the engine emits is cents.
func DollarsToCents(dollars float64) int64 {
	return decimal.NewFromFloat(dollars).Mul(centsPerDollar).Round(0).IntPart()
}

// CentsToDollars converts minor units back to a decimal dollar amount for
// display.
func CentsToDollars(cents int64) float64 {
	f, _ := decimal.NewFromInt(cents).Div(centsPerDollar).Float64()
	return f
}

// FormatCents renders a minor-unit amount as a dollar string for
// descriptions and review output, e.g. 123456 -> "$1234.56".
func FormatCents(cents int64) string {
	d := decimal.NewFromInt(cents).Div(centsPerDollar)
	return fmt.Sprintf("$%s", d.StringFixed(2))
}

// LineItemAmountCents computes quantity x unit price in minor units using
// exact decimal arithmetic.
func LineItemAmountCents(unitPrice float64, quantity int64) int64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(quantity)).
		Mul(centsPerDollar).
		Round(0).
		IntPart()
}
