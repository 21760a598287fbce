package export

import (
	"strconv"

	"fintrack/internal/aggregate"
	"fintrack/internal/budgetfilter"
	"fintrack/internal/currencyutils"
	"fintrack/internal/dateutils"
	"fintrack/internal/joiner"
	"fintrack/internal/models"
	"fintrack/internal/timeseries"

	"github.com/shopspring/decimal"
)

// Row types flatten records for display: category ids are replaced by
// names, dates are ISO and amounts carry two decimals.

// ExpenseRow is one line of the expense table.
type ExpenseRow struct {
	ID       int64  `json:"id" yaml:"id" csv:"id"`
	Name     string `json:"name" yaml:"name" csv:"name"`
	Category string `json:"category" yaml:"category" csv:"category"`
	Amount   string `json:"amount" yaml:"amount" csv:"amount"`
	Date     string `json:"date" yaml:"date" csv:"date"`
}

// IncomeRow is one line of the income table.
type IncomeRow struct {
	ID     int64  `json:"id" yaml:"id" csv:"id"`
	Source string `json:"source" yaml:"source" csv:"source"`
	Amount string `json:"amount" yaml:"amount" csv:"amount"`
	Date   string `json:"date" yaml:"date" csv:"date"`
}

// BudgetRow is one line of the budget table; Remaining is amount minus spent.
type BudgetRow struct {
	ID        int64  `json:"id" yaml:"id" csv:"id"`
	Category  string `json:"category" yaml:"category" csv:"category"`
	Amount    string `json:"amount" yaml:"amount" csv:"amount"`
	Spent     string `json:"spent" yaml:"spent" csv:"spent"`
	Remaining string `json:"remaining" yaml:"remaining" csv:"remaining"`
	StartDate string `json:"start_date" yaml:"start_date" csv:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date" csv:"end_date"`
}

// CategoryRow is one line of the category table.
type CategoryRow struct {
	ID          int64  `json:"id" yaml:"id" csv:"id"`
	Name        string `json:"name" yaml:"name" csv:"name"`
	Description string `json:"description" yaml:"description" csv:"description"`
}

// GroupRow is one slice of a pie chart.
type GroupRow struct {
	Label      string `json:"label" yaml:"label" csv:"label"`
	Total      string `json:"total" yaml:"total" csv:"total"`
	Percentage string `json:"percentage" yaml:"percentage" csv:"percentage"`
}

// PointRow is one month of a line chart.
type PointRow struct {
	Month  string `json:"month" yaml:"month" csv:"month"`
	Amount string `json:"amount" yaml:"amount" csv:"amount"`
}

// BarRow is one bar pair of a budget chart.
type BarRow struct {
	Label  string `json:"label" yaml:"label" csv:"label"`
	Amount string `json:"amount" yaml:"amount" csv:"amount"`
	Spent  string `json:"spent" yaml:"spent" csv:"spent"`
}

// Rows builds display rows. Currency is passed to
// currencyutils.FormatAmount; leave it empty for bare numbers.
type Rows struct {
	Names    *joiner.Joiner
	Currency string
}

func (r Rows) amount(a decimal.Decimal) string {
	return currencyutils.FormatAmount(a, r.Currency)
}

// category names id, or prints the bare id when no joiner is set.
func (r Rows) category(id int64) string {
	if r.Names == nil {
		return strconv.FormatInt(id, 10)
	}
	if name, ok := r.Names.Lookup(id); ok {
		return name
	}
	return r.Names.Fallback()
}

// Expenses builds expense rows in the given order.
func (r Rows) Expenses(expenses []models.Expense) []ExpenseRow {
	rows := make([]ExpenseRow, len(expenses))
	for i, e := range expenses {
		rows[i] = ExpenseRow{
			ID:       e.ID,
			Name:     e.Name,
			Category: r.category(e.CategoryID),
			Amount:   r.amount(e.Amount),
			Date:     dateutils.ToISODate(e.Date),
		}
	}
	return rows
}

// Incomes builds income rows in the given order.
func (r Rows) Incomes(incomes []models.Income) []IncomeRow {
	rows := make([]IncomeRow, len(incomes))
	for i, in := range incomes {
		rows[i] = IncomeRow{
			ID:     in.ID,
			Source: in.Source,
			Amount: r.amount(in.Amount),
			Date:   dateutils.ToISODate(in.Date),
		}
	}
	return rows
}

// Budgets builds budget rows in the given order.
func (r Rows) Budgets(budgets []models.Budget) []BudgetRow {
	rows := make([]BudgetRow, len(budgets))
	for i, b := range budgets {
		rows[i] = BudgetRow{
			ID:        b.ID,
			Category:  r.category(b.CategoryID),
			Amount:    r.amount(b.Amount),
			Spent:     r.amount(b.Spent),
			Remaining: r.amount(b.Remaining()),
			StartDate: dateutils.ToISODate(b.StartDate),
			EndDate:   dateutils.ToISODate(b.EndDate),
		}
	}
	return rows
}

// Categories builds category rows in the given order.
func (r Rows) Categories(categories []models.Category) []CategoryRow {
	rows := make([]CategoryRow, len(categories))
	for i, c := range categories {
		rows[i] = CategoryRow{ID: c.ID, Name: c.Name, Description: c.Description}
	}
	return rows
}

// Groups renders pie slices; the percentage gets a "%" suffix.
func (r Rows) Groups(groups []aggregate.Group) []GroupRow {
	rows := make([]GroupRow, len(groups))
	for i, g := range groups {
		rows[i] = GroupRow{Label: g.Key, Total: r.amount(g.Total), Percentage: g.Percentage + "%"}
	}
	return rows
}

// Points renders a monthly series.
func (r Rows) Points(points []timeseries.Point) []PointRow {
	rows := make([]PointRow, len(points))
	for i, p := range points {
		rows[i] = PointRow{Month: p.Month, Amount: r.amount(p.Amount)}
	}
	return rows
}

// Bars renders a budget series as label, amount and spent.
func (r Rows) Bars(s budgetfilter.Series) []BarRow {
	rows := make([]BarRow, s.Len())
	for i := range rows {
		rows[i] = BarRow{Label: s.Labels[i], Amount: r.amount(s.Amount[i]), Spent: r.amount(s.Spent[i])}
	}
	return rows
}
