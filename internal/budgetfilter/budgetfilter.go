// Package budgetfilter selects budgets by period or category and shapes
// them into amount-versus-spent chart series.
package budgetfilter

import (
	"time"

	"fintrack/internal/dateutils"
	"fintrack/internal/joiner"
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryLabelLayout renders a budget start date as "03/24".
const CategoryLabelLayout = "01/06"

// ByMonth returns the budgets whose start date falls in the same calendar
// year and month as ref, compared in ref's location. Input order is kept.
func ByMonth(budgets []models.Budget, ref time.Time) []models.Budget {
	year, month, _ := ref.Date()
	out := []models.Budget{}
	for _, b := range budgets {
		y, m, _ := b.StartDate.In(ref.Location()).Date()
		if y == year && m == month {
			out = append(out, b)
		}
	}
	return out
}

// ByCategory returns the budgets of one category in input order.
func ByCategory(budgets []models.Budget, categoryID int64) []models.Budget {
	out := []models.Budget{}
	for _, b := range budgets {
		if b.CategoryID == categoryID {
			out = append(out, b)
		}
	}
	return out
}

// Series is a grouped bar chart: one label per budget with its planned
// amount and what was spent.
type Series struct {
	Labels []string          `json:"labels" yaml:"labels"`
	Amount []decimal.Decimal `json:"amount" yaml:"amount"`
	Spent  []decimal.Decimal `json:"spent" yaml:"spent"`
}

// Len returns the number of bars.
func (s Series) Len() int {
	return len(s.Labels)
}

func seriesOf(budgets []models.Budget, label func(models.Budget) string) Series {
	s := Series{
		Labels: make([]string, len(budgets)),
		Amount: make([]decimal.Decimal, len(budgets)),
		Spent:  make([]decimal.Decimal, len(budgets)),
	}
	for i, b := range budgets {
		s.Labels[i] = label(b)
		s.Amount[i] = b.Amount
		s.Spent[i] = b.Spent
	}
	return s
}

// MonthSeries charts the budgets of ref's month, labelled by category name.
// Categories that do not resolve are labelled "Unknown".
func MonthSeries(budgets []models.Budget, ref time.Time, categories []models.Category) Series {
	j := joiner.NewCategories(categories, joiner.FallbackUnknown)
	return seriesOf(ByMonth(budgets, ref), func(b models.Budget) string {
		return j.Name(b.CategoryID)
	})
}

// CategorySeries charts every budget of one category, labelled by the
// month and year of its start date ("03/24") in loc, the location ByMonth
// compares in. A nil loc keeps each date's own location.
func CategorySeries(budgets []models.Budget, categoryID int64, loc *time.Location) Series {
	return seriesOf(ByCategory(budgets, categoryID), func(b models.Budget) string {
		start := b.StartDate
		if loc != nil {
			start = start.In(loc)
		}
		return dateutils.FormatDate(start, CategoryLabelLayout)
	})
}
