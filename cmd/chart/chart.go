// Package chart implements the chart series command
package chart

import (
	"context"
	"fmt"
	"time"

	"fintrack/cmd/common"
	"fintrack/cmd/root"
	"fintrack/internal/aggregate"
	"fintrack/internal/budgetfilter"
	"fintrack/internal/charts"
	"fintrack/internal/container"
	"fintrack/internal/dateutils"
	"fintrack/internal/joiner"
	"fintrack/internal/logging"

	"github.com/spf13/cobra"
)

// Options selects and shapes one chart.
type Options struct {
	Kind        string
	Now         time.Time
	Month       string
	CategoryID  int64
	DeriveSpent bool
	// ByTotal orders pie slices by total, largest first, instead of
	// first-seen order.
	ByTotal bool
}

var opts Options

// Cmd represents the chart command
var Cmd = &cobra.Command{
	Use:   "chart KIND",
	Short: "Print the data series behind a dashboard chart",
	Long: `Print the data series behind a dashboard chart. KIND is one of:

  categories       expense totals and shares per category
  sources          income totals and shares per source
  monthly          expense totals for the last twelve months
  monthly-income   income totals for the last twelve months
  budget-month     budget amount and spent per category for --month
  budget-category  budget amount and spent per month for --category`,
	ValidArgs: charts.Kinds,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.AppContainer
		now, err := root.Now(c.GetLocation())
		if err != nil {
			return err
		}
		o := opts
		o.Kind = args[0]
		o.Now = now
		return Run(cmd.Context(), c, common.TargetFor(cmd, root.SharedFlags.Output), o)
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Month, "month", "m", "", "Month of the budget-month chart (YYYY-MM, default the --now month)")
	Cmd.Flags().Int64VarP(&opts.CategoryID, "category", "c", 0, "Category id of the budget-category chart")
	Cmd.Flags().BoolVar(&opts.DeriveSpent, "derive-spent", false, "Recompute budget spent from expenses")
	Cmd.Flags().BoolVar(&opts.ByTotal, "by-total", false, "Order pie slices by total, largest first")
}

// Run computes one chart and writes its rows.
func Run(ctx context.Context, c *container.Container, target common.Target, o Options) error {
	snap, err := common.Load(ctx, c)
	if err != nil {
		return err
	}
	svc := c.GetCharts()
	_, rows := common.Rows(c, snap, joiner.FallbackUnknown)
	c.GetLogger().Debug("Building chart", logging.F(logging.FieldChart, o.Kind))

	pie := func(groups []aggregate.Group) error {
		if o.ByTotal {
			groups = aggregate.SortByTotal(groups, true)
		}
		return common.Emit(c, target, rows.Groups(groups))
	}

	budgets := snap.Budgets
	if o.DeriveSpent {
		budgets = budgetfilter.DeriveSpent(budgets, snap.Expenses)
	}

	switch o.Kind {
	case charts.KindCategories:
		return pie(svc.CategoryExpenses(snap.Expenses, snap.Categories))
	case charts.KindSources:
		return pie(svc.IncomeSources(snap.Incomes))
	case charts.KindMonthly:
		return common.Emit(c, target, rows.Points(svc.MonthlyExpenses(snap.Expenses, o.Now)))
	case charts.KindMonthlyIncome:
		return common.Emit(c, target, rows.Points(svc.MonthlyIncomes(snap.Incomes, o.Now)))
	case charts.KindBudgetMonth:
		ref := o.Now
		if o.Month != "" {
			ref, err = dateutils.ParseMonth(o.Month, o.Now.Location())
			if err != nil {
				return err
			}
		}
		return common.Emit(c, target, rows.Bars(svc.BudgetsByMonth(budgets, snap.Categories, ref)))
	case charts.KindBudgetCategory:
		if o.CategoryID == 0 {
			return fmt.Errorf("the budget-category chart needs --category")
		}
		return common.Emit(c, target, rows.Bars(svc.BudgetsByCategory(budgets, o.CategoryID, o.Now.Location())))
	default:
		return fmt.Errorf("unknown chart %q (expected one of %v)", o.Kind, charts.Kinds)
	}
}
