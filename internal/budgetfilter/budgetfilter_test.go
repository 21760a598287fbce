package budgetfilter

import (
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func budget(id, categoryID int64, amount, spent string, start, end time.Time) models.Budget {
	return models.Budget{
		ID:         id,
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Spent:      decimal.RequireFromString(spent),
		StartDate:  start,
		EndDate:    end,
	}
}

func budgetIDs(budgets []models.Budget) []int64 {
	out := make([]int64, len(budgets))
	for i, b := range budgets {
		out[i] = b.ID
	}
	return out
}

func sampleBudgets() []models.Budget {
	return []models.Budget{
		budget(1, 1, "300", "120", d(2024, time.March, 1), d(2024, time.March, 31)),
		budget(2, 2, "900", "900", d(2024, time.April, 1), d(2024, time.April, 30)),
		budget(3, 2, "900", "450", d(2024, time.March, 1), d(2024, time.March, 31)),
		budget(4, 1, "250", "300", d(2023, time.March, 1), d(2023, time.March, 31)),
	}
}

func TestByMonth(t *testing.T) {
	budgets := sampleBudgets()

	march := ByMonth(budgets, d(2024, time.March, 15))
	assert.Equal(t, []int64{1, 3}, budgetIDs(march))

	april := ByMonth(budgets, d(2024, time.April, 1))
	assert.Equal(t, []int64{2}, budgetIDs(april))

	// Same month, other year.
	assert.Equal(t, []int64{4}, budgetIDs(ByMonth(budgets, d(2023, time.March, 2))))
}

func TestByMonth_MarchVersusApril(t *testing.T) {
	budgets := []models.Budget{
		budget(1, 1, "100", "0", d(2024, time.March, 1), d(2024, time.March, 31)),
		budget(2, 1, "100", "0", d(2024, time.April, 1), d(2024, time.April, 30)),
	}

	got := ByMonth(budgets, d(2024, time.March, 1))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestByMonth_Empty(t *testing.T) {
	got := ByMonth(nil, d(2024, time.March, 1))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestByMonth_ComparesInReferenceLocation(t *testing.T) {
	plus2 := time.FixedZone("EET", 2*3600)
	// Midnight April 1st at +2 is still March 31st in UTC.
	b := budget(1, 1, "1", "0", time.Date(2024, time.April, 1, 0, 0, 0, 0, plus2), d(2024, time.April, 30))

	assert.Len(t, ByMonth([]models.Budget{b}, time.Date(2024, time.April, 5, 0, 0, 0, 0, plus2)), 1)
	assert.Empty(t, ByMonth([]models.Budget{b}, d(2024, time.April, 5)))
}

func TestByCategory(t *testing.T) {
	budgets := sampleBudgets()

	assert.Equal(t, []int64{2, 3}, budgetIDs(ByCategory(budgets, 2)))
	assert.Equal(t, []int64{1, 4}, budgetIDs(ByCategory(budgets, 1)))
	assert.Empty(t, ByCategory(budgets, 9999))
}

func TestMonthSeries(t *testing.T) {
	categories := []models.Category{{ID: 1, Name: "Food"}}
	budgets := append(sampleBudgets(),
		budget(5, 9999, "10", "1", d(2024, time.March, 5), d(2024, time.March, 20)))

	s := MonthSeries(budgets, d(2024, time.March, 1), categories)

	assert.Equal(t, []string{"Food", "Unknown", "Unknown"}, s.Labels)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, "300", s.Amount[0].String())
	assert.Equal(t, "120", s.Spent[0].String())
	assert.Equal(t, "900", s.Amount[1].String())
	assert.Equal(t, "450", s.Spent[1].String())
}

func TestCategorySeries(t *testing.T) {
	s := CategorySeries(sampleBudgets(), 1, time.UTC)

	assert.Equal(t, []string{"03/24", "03/23"}, s.Labels)
	assert.Equal(t, "300", s.Amount[0].String())
	assert.Equal(t, "300", s.Spent[1].String())
}

func TestCategorySeries_LabelsInLocation(t *testing.T) {
	zurich, err := time.LoadLocation("Europe/Zurich")
	require.NoError(t, err)
	// Midnight April 1st in Zurich is still March 31st in UTC.
	start := time.Date(2024, time.April, 1, 0, 0, 0, 0, zurich).UTC()
	budgets := []models.Budget{budget(1, 1, "100", "0", start, start.AddDate(0, 1, -1))}

	assert.Equal(t, []int64{1}, budgetIDs(ByMonth(budgets, time.Date(2024, time.April, 15, 0, 0, 0, 0, zurich))))
	assert.Equal(t, []string{"04/24"}, CategorySeries(budgets, 1, zurich).Labels)
	assert.Equal(t, []string{"03/24"}, CategorySeries(budgets, 1, nil).Labels)
}

func TestSeries_Empty(t *testing.T) {
	s := CategorySeries(nil, 1, nil)
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Labels)
	assert.NotNil(t, s.Amount)
	assert.NotNil(t, s.Spent)
}

func TestDeriveSpent(t *testing.T) {
	budgets := []models.Budget{
		budget(1, 1, "300", "0", d(2024, time.March, 1), d(2024, time.March, 31)),
		budget(2, 2, "900", "999", d(2024, time.March, 1), d(2024, time.March, 31)),
	}
	expenses := []models.Expense{
		{CategoryID: 1, Amount: decimal.RequireFromString("12.50"), Date: d(2024, time.March, 1)},
		{CategoryID: 1, Amount: decimal.RequireFromString("7.50"), Date: d(2024, time.March, 31)},
		{CategoryID: 1, Amount: decimal.NewFromInt(100), Date: d(2024, time.April, 1)},
		{CategoryID: 3, Amount: decimal.NewFromInt(50), Date: d(2024, time.March, 10)},
	}

	derived := DeriveSpent(budgets, expenses)

	require.Len(t, derived, 2)
	assert.Equal(t, "20.00", derived[0].Spent.StringFixed(2))
	assert.True(t, derived[1].Spent.IsZero())
	assert.Equal(t, "999", budgets[1].Spent.String(), "input must not change")
}

func TestOverlaps(t *testing.T) {
	budgets := []models.Budget{
		budget(1, 1, "1", "0", d(2024, time.March, 1), d(2024, time.March, 31)),
		budget(2, 1, "1", "0", d(2024, time.March, 31), d(2024, time.April, 30)),
		budget(3, 1, "1", "0", d(2024, time.May, 1), d(2024, time.May, 31)),
		budget(4, 2, "1", "0", d(2024, time.March, 1), d(2024, time.March, 31)),
	}

	overlaps := Overlaps(budgets)

	require.Len(t, overlaps, 1)
	assert.Equal(t, int64(1), overlaps[0].First.ID)
	assert.Equal(t, int64(2), overlaps[0].Second.ID)
	assert.Empty(t, Overlaps(budgets[2:]))
}

func TestOverBudget(t *testing.T) {
	assert.Equal(t, []int64{4}, budgetIDs(OverBudget(sampleBudgets())))
}
