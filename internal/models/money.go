package models

import (
	"github.com/shopspring/decimal"
)

// CentPlaces is the number of decimal places used for displayed amounts.
const CentPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundCents rounds an amount to two decimal places, half away from zero.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CentPlaces)
}

// Sum adds up amounts. An empty call returns zero.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Percent returns part as a percentage of total, formatted with the given
// number of decimal places. A zero total yields zero rather than dividing.
func Percent(part, total decimal.Decimal, places int32) string {
	if total.IsZero() {
		return decimal.Zero.StringFixed(places)
	}
	return part.Div(total).Mul(hundred).StringFixed(places)
}
