// Package yen formats whole-yen amounts for display.
package yen

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     = message.NewPrinter(language.Japanese)
	tenThousand = decimal.NewFromInt(10000)
)

// Format renders an amount with a yen sign and digit grouping, e.g. ¥1,234,567.
// Fractions are truncated toward negative infinity.
func Format(d decimal.Decimal) string {
	v := d.Floor().IntPart()
	if v < 0 {
		return printer.Sprintf("-¥%d", -v)
	}
	return printer.Sprintf("¥%d", v)
}

// FormatSigned is Format with an explicit sign for non-negative values.
func FormatSigned(d decimal.Decimal) string {
	if d.IsNegative() {
		return Format(d)
	}
	return "+" + Format(d)
}

// Number renders grouped digits without a currency sign.
func Number(d decimal.Decimal) string {
	return printer.Sprintf("%d", d.Floor().IntPart())
}

// Man renders an amount in units of 10,000 yen with one decimal, e.g. 123.4万円.
func Man(d decimal.Decimal) string {
	return d.Div(tenThousand).StringFixed(1) + "万円"
}
