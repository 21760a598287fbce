// Package currencyutils parses amounts from loosely formatted text and
// renders them for display.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyNoise = regexp.MustCompile(`[€$£¥\s]|CHF|EUR|USD|GBP`)

// ParseAmount parses "1234.56", "1,234.56", "1.234,56", "1'234.56" or
// "$12" into a decimal. An empty string is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	normalized := NormalizeAmount(s)
	if normalized == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", s, err)
	}
	return amount, nil
}

// NormalizeAmount strips currency markers and thousands separators and
// turns a decimal comma into a point.
func NormalizeAmount(s string) string {
	s = currencyNoise.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "'", "")

	comma := strings.LastIndex(s, ",")
	point := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && point >= 0 && comma > point:
		// 1.234,56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && point >= 0:
		// 1,234.56
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0 && len(s)-comma-1 <= 2 && strings.Count(s, ",") == 1:
		// 1234,56
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		// 1,234
		s = strings.ReplaceAll(s, ",", "")
	}
	return s
}

// FormatAmount renders amount with two decimals and a currency marker:
// "$12.50", "€3.00", "CHF 7.25". An empty currency renders the bare number.
func FormatAmount(amount decimal.Decimal, currency string) string {
	fixed := amount.StringFixed(2)
	switch strings.ToUpper(currency) {
	case "":
		return fixed
	case "USD":
		return "$" + fixed
	case "EUR":
		return "€" + fixed
	case "GBP":
		return "£" + fixed
	case "JPY":
		return "¥" + fixed
	default:
		return currency + " " + fixed
	}
}
