// Package money holds the single rounding policy applied when a quote is shown
// to a customer. The pricing engine never rounds currency.
package money

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	symbol      = "₹"
	plainSymbol = "Rs. "
)

// Round rounds v to whole rupees, halves away from zero.
func Round(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// Format renders v as whole rupees with the rupee sign, e.g. "₹3008".
func Format(v float64) string {
	return symbol + strconv.FormatInt(Round(v), 10)
}

// FormatPlain renders v for outputs limited to Latin-1, e.g. "Rs. 3008".
func FormatPlain(v float64) string {
	return plainSymbol + strconv.FormatInt(Round(v), 10)
}
