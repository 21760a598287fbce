// Package timeseries buckets dated amounts into the trailing twelve
// calendar months.
package timeseries

import (
	"time"

	"fintrack/internal/dateutils"
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Months is the number of buckets in a monthly series.
const Months = 12

// LabelLayout renders a month as "Jan/24".
const LabelLayout = "Jan/06"

// Point is one month of a series.
type Point struct {
	Month  string          `json:"month" yaml:"month" csv:"month"`
	Amount decimal.Decimal `json:"amount" yaml:"amount" csv:"amount"`
}

// MonthLabel formats t's calendar month.
func MonthLabel(t time.Time) string {
	return dateutils.FormatDate(t, LabelLayout)
}

// Labels returns the labels of the month containing now and the eleven
// months before it, oldest first. Months are stepped from the first of the
// month so that a reference date such as March 31st never skips February.
func Labels(now time.Time) []string {
	first := dateutils.StartOfMonth(now)
	labels := make([]string, Months)
	for i := 0; i < Months; i++ {
		labels[Months-1-i] = MonthLabel(first.AddDate(0, -i, 0))
	}
	return labels
}

// Window returns the inclusive range of record dates that count toward a
// series ending at now: from the same instant one year earlier up to now.
func Window(now time.Time) (from, to time.Time) {
	return now.AddDate(-1, 0, 0), now
}

// Monthly sums amount per calendar month for the twelve months ending with
// the month of now, oldest first. A record counts when its date lies in
// Window(now) and its month is one of the twelve buckets; anything else is
// dropped. Dates are labelled in now's location. Amounts are rounded to two
// decimals. The result always has exactly twelve points.
func Monthly[T any](records []T, amount func(T) decimal.Decimal, date func(T) time.Time, now time.Time) []Point {
	labels := Labels(now)
	index := make(map[string]int, Months)
	totals := make([]decimal.Decimal, Months)
	for i, label := range labels {
		index[label] = i
		totals[i] = decimal.Zero
	}

	from, to := Window(now)
	for _, r := range records {
		d := date(r)
		if d.Before(from) || d.After(to) {
			continue
		}
		i, ok := index[MonthLabel(d.In(now.Location()))]
		if !ok {
			continue
		}
		totals[i] = totals[i].Add(amount(r))
	}

	points := make([]Point, Months)
	for i, label := range labels {
		points[i] = Point{Month: label, Amount: models.RoundCents(totals[i])}
	}
	return points
}

// MonthlyExpenses is Monthly over expenses.
func MonthlyExpenses(expenses []models.Expense, now time.Time) []Point {
	return Monthly(expenses,
		func(e models.Expense) decimal.Decimal { return e.Amount },
		func(e models.Expense) time.Time { return e.Date },
		now,
	)
}

// MonthlyIncomes is Monthly over incomes.
func MonthlyIncomes(incomes []models.Income, now time.Time) []Point {
	return Monthly(incomes,
		func(i models.Income) decimal.Decimal { return i.Amount },
		func(i models.Income) time.Time { return i.Date },
		now,
	)
}

// Net subtracts b from a point by point. Both series must come from the
// same reference date.
func Net(a, b []Point) []Point {
	out := make([]Point, len(a))
	for i := range a {
		out[i] = a[i]
		if i < len(b) && b[i].Month == a[i].Month {
			out[i].Amount = a[i].Amount.Sub(b[i].Amount)
		}
	}
	return out
}
