package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

const currencySymbols = "€$£"

// NormalizePrice converts a locale-formatted price string to a decimal
// value. CardMarket renders prices in European format ("265,00",
// "1.234,56") but stored sheets occasionally carry plain dot-decimal
// values, so the separator rules are ordered:
//
//	both dot and comma present: dot is a thousands separator, comma the
//	decimal separator
//	comma only: comma is the decimal separator
//	otherwise: parse as-is
//
// Whitespace and currency symbols are stripped first. Missing or
// unparseable input yields zero, never an error.
func NormalizePrice(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, string(sym), "")
	}
	s = strings.TrimSpace(s)

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	value, err := decimal.NewFromString(s)
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value
}
