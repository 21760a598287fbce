// Package charts assembles the dashboard chart payloads from loaded
// records: breakdown pies, rolling monthly lines and budget bars.
package charts

import (
	"time"

	"fintrack/internal/aggregate"
	"fintrack/internal/budgetfilter"
	"fintrack/internal/joiner"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/source"
	"fintrack/internal/timeseries"
)

// Chart kinds accepted by the chart command.
const (
	KindCategories     = "categories"
	KindSources        = "sources"
	KindMonthly        = "monthly"
	KindMonthlyIncome  = "monthly-income"
	KindBudgetMonth    = "budget-month"
	KindBudgetCategory = "budget-category"
)

// Kinds lists every chart kind.
var Kinds = []string{KindCategories, KindSources, KindMonthly, KindMonthlyIncome, KindBudgetMonth, KindBudgetCategory}

// Service builds charts and logs what it could not resolve.
type Service struct {
	logger logging.Logger
}

// NewService creates a new chart service.
func NewService(logger logging.Logger) *Service {
	return &Service{logger: logger}
}

func (s *Service) reportUnresolved(chart string, ids []int64, names *joiner.Joiner) {
	missing := joiner.Unresolved(ids, names)
	if len(missing) == 0 {
		return
	}
	s.logger.Debug("Unresolved category ids",
		logging.F(logging.FieldChart, chart),
		logging.F(logging.FieldUnresolved, missing))
}

// CategoryExpenses breaks expenses down by category name. Expenses whose
// category is unknown are grouped under "Unknown Category".
func (s *Service) CategoryExpenses(expenses []models.Expense, categories []models.Category) []aggregate.Group {
	names := joiner.NewCategories(categories, joiner.FallbackUnknownCategory)
	ids := make([]int64, len(expenses))
	for i, e := range expenses {
		ids[i] = e.CategoryID
	}
	s.reportUnresolved(KindCategories, ids, names)

	groups := aggregate.ByCategory(expenses, names)
	s.logger.Debug("Built category chart",
		logging.F(logging.FieldCount, len(groups)))
	return groups
}

// IncomeSources breaks incomes down by source.
func (s *Service) IncomeSources(incomes []models.Income) []aggregate.Group {
	groups := aggregate.BySource(incomes)
	s.logger.Debug("Built source chart",
		logging.F(logging.FieldCount, len(groups)))
	return groups
}

// MonthlyExpenses totals expenses over the twelve months ending with now.
func (s *Service) MonthlyExpenses(expenses []models.Expense, now time.Time) []timeseries.Point {
	return timeseries.MonthlyExpenses(expenses, now)
}

// MonthlyIncomes totals incomes over the twelve months ending with now.
func (s *Service) MonthlyIncomes(incomes []models.Income, now time.Time) []timeseries.Point {
	return timeseries.MonthlyIncomes(incomes, now)
}

// BudgetsByMonth charts the budgets active in ref's month, labelled by
// category name or "Unknown".
func (s *Service) BudgetsByMonth(budgets []models.Budget, categories []models.Category, ref time.Time) budgetfilter.Series {
	series := budgetfilter.MonthSeries(budgets, ref, categories)

	matched := budgetfilter.ByMonth(budgets, ref)
	ids := make([]int64, len(matched))
	for i, b := range matched {
		ids[i] = b.CategoryID
	}
	s.reportUnresolved(KindBudgetMonth, ids, joiner.NewCategories(categories, joiner.FallbackUnknown))

	s.logger.Debug("Built monthly budget chart",
		logging.F(logging.FieldMonth, ref.Format("2006-01")),
		logging.F(logging.FieldCount, series.Len()))
	return series
}

// BudgetsByCategory charts every budget of one category by start month,
// labelled in loc.
func (s *Service) BudgetsByCategory(budgets []models.Budget, categoryID int64, loc *time.Location) budgetfilter.Series {
	series := budgetfilter.CategorySeries(budgets, categoryID, loc)
	s.logger.Debug("Built category budget chart",
		logging.F(logging.FieldCategoryID, categoryID),
		logging.F(logging.FieldCount, series.Len()))
	return series
}

// Dashboard is every chart of the dashboard page at once.
type Dashboard struct {
	CategoryExpenses []aggregate.Group   `json:"category_expenses" yaml:"category_expenses"`
	IncomeSources    []aggregate.Group   `json:"income_sources" yaml:"income_sources"`
	MonthlyExpenses  []timeseries.Point  `json:"monthly_expenses" yaml:"monthly_expenses"`
	MonthlyIncomes   []timeseries.Point  `json:"monthly_incomes" yaml:"monthly_incomes"`
	Budgets          budgetfilter.Series `json:"budgets" yaml:"budgets"`
}

// Dashboard builds every chart from snap. Budgets are those of now's month.
func (s *Service) Dashboard(snap *source.Snapshot, now time.Time) Dashboard {
	return Dashboard{
		CategoryExpenses: s.CategoryExpenses(snap.Expenses, snap.Categories),
		IncomeSources:    s.IncomeSources(snap.Incomes),
		MonthlyExpenses:  s.MonthlyExpenses(snap.Expenses, now),
		MonthlyIncomes:   s.MonthlyIncomes(snap.Incomes, now),
		Budgets:          s.BudgetsByMonth(snap.Budgets, snap.Categories, now),
	}
}
