package budgetfilter

import (
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// SpentIn sums the expenses of categoryID dated within b's inclusive range.
func SpentIn(b models.Budget, expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.CategoryID == b.CategoryID && b.Covers(e.Date) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// DeriveSpent returns copies of budgets whose Spent is recomputed from
// expenses.
func DeriveSpent(budgets []models.Budget, expenses []models.Expense) []models.Budget {
	out := make([]models.Budget, len(budgets))
	for i, b := range budgets {
		b.Spent = SpentIn(b, expenses)
		out[i] = b
	}
	return out
}

// Overlap is a pair of budgets of the same category whose date ranges
// intersect.
type Overlap struct {
	First  models.Budget
	Second models.Budget
}

// Overlaps reports every overlapping pair, in input order. Two ranges
// overlap when each one starts no later than the other ends.
func Overlaps(budgets []models.Budget) []Overlap {
	var out []Overlap
	for i := 0; i < len(budgets); i++ {
		for j := i + 1; j < len(budgets); j++ {
			a, b := budgets[i], budgets[j]
			if a.CategoryID != b.CategoryID {
				continue
			}
			if !a.StartDate.After(b.EndDate) && !a.EndDate.Before(b.StartDate) {
				out = append(out, Overlap{First: a, Second: b})
			}
		}
	}
	return out
}

// OverBudget returns the budgets whose spent amount exceeds the planned
// amount.
func OverBudget(budgets []models.Budget) []models.Budget {
	out := []models.Budget{}
	for _, b := range budgets {
		if b.Spent.GreaterThan(b.Amount) {
			out = append(out, b)
		}
	}
	return out
}
