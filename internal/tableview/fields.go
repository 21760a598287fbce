package tableview

import (
	"time"

	"fintrack/internal/joiner"
	"fintrack/internal/models"
	"fintrack/internal/sorter"

	"github.com/shopspring/decimal"
)

// Sortable column names.
const (
	FieldName        = "name"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldDate        = "date"
	FieldSource      = "source"
	FieldSpent       = "spent"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldID          = "id"
	FieldDescription = "description"
)

// categoryKey sorts by resolved category name. Unresolved ids sort as the
// empty string, ahead of every named category; the display fallback is not
// used as a sort key.
func categoryKey(categories *joiner.Joiner, id int64) string {
	name, _ := categories.Lookup(id)
	return name
}

// ExpenseFields are the sortable columns of the expense table.
func ExpenseFields(categories *joiner.Joiner, c *sorter.Collator) sorter.Fields[models.Expense] {
	return sorter.Fields[models.Expense]{
		sorter.ByString(FieldName, func(e models.Expense) string { return e.Name }, c),
		sorter.ByString(FieldCategory, func(e models.Expense) string { return categoryKey(categories, e.CategoryID) }, c),
		sorter.ByDecimal(FieldAmount, func(e models.Expense) decimal.Decimal { return e.Amount }),
		sorter.ByTime(FieldDate, func(e models.Expense) time.Time { return e.Date }),
	}
}

// IncomeFields are the sortable columns of the income table. Incomes carry
// their source inline, so no joiner is needed.
func IncomeFields(c *sorter.Collator) sorter.Fields[models.Income] {
	return sorter.Fields[models.Income]{
		sorter.ByString(FieldSource, func(i models.Income) string { return i.Source }, c),
		sorter.ByDecimal(FieldAmount, func(i models.Income) decimal.Decimal { return i.Amount }),
		sorter.ByTime(FieldDate, func(i models.Income) time.Time { return i.Date }),
	}
}

// BudgetFields are the sortable columns of the budget table.
func BudgetFields(categories *joiner.Joiner, c *sorter.Collator) sorter.Fields[models.Budget] {
	return sorter.Fields[models.Budget]{
		sorter.ByString(FieldCategory, func(b models.Budget) string { return categoryKey(categories, b.CategoryID) }, c),
		sorter.ByDecimal(FieldAmount, func(b models.Budget) decimal.Decimal { return b.Amount }),
		sorter.ByDecimal(FieldSpent, func(b models.Budget) decimal.Decimal { return b.Spent }),
		sorter.ByTime(FieldStartDate, func(b models.Budget) time.Time { return b.StartDate }),
		sorter.ByTime(FieldEndDate, func(b models.Budget) time.Time { return b.EndDate }),
	}
}

// CategoryFields are the sortable columns of the category table.
func CategoryFields(c *sorter.Collator) sorter.Fields[models.Category] {
	return sorter.Fields[models.Category]{
		sorter.ByString(FieldName, func(cat models.Category) string { return cat.Name }, c),
		sorter.ByString(FieldDescription, func(cat models.Category) string { return cat.Description }, c),
		sorter.ByInt(FieldID, func(cat models.Category) int64 { return cat.ID }),
	}
}
