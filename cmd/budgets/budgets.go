// Package budgets implements the budget table command
package budgets

import (
	"context"

	"fintrack/cmd/common"
	"fintrack/cmd/root"
	"fintrack/internal/budgetfilter"
	"fintrack/internal/container"
	"fintrack/internal/dateutils"
	"fintrack/internal/joiner"
	"fintrack/internal/logging"
	"fintrack/internal/tableview"

	"github.com/spf13/cobra"
)

// Options narrows and enriches the budget table.
type Options struct {
	Sort        []string
	Month       string
	CategoryID  int64
	DeriveSpent bool
	OverBudget  bool
}

var opts Options

// Cmd represents the budgets command
var Cmd = &cobra.Command{
	Use:   "budgets",
	Short: "List budgets with planned, spent and remaining amounts",
	Long: `List budgets with their category names. --month keeps the budgets starting
in that month, --category those of one category. --derive-spent recomputes
the spent column from the expenses dated within each budget's range.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.AppContainer, common.TargetFor(cmd, root.SharedFlags.Output), opts)
	},
}

func init() {
	common.AddSortFlag(Cmd, &opts.Sort, tableview.NewBudgetMemo(nil).FieldNames())
	Cmd.Flags().StringVarP(&opts.Month, "month", "m", "", "Only budgets starting in this month (YYYY-MM)")
	Cmd.Flags().Int64VarP(&opts.CategoryID, "category", "c", 0, "Only budgets of this category id")
	Cmd.Flags().BoolVar(&opts.DeriveSpent, "derive-spent", false, "Recompute spent from expenses")
	Cmd.Flags().BoolVar(&opts.OverBudget, "over-budget", false, "Only budgets whose spent exceeds the amount")
}

// Run renders the budget table.
func Run(ctx context.Context, c *container.Container, target common.Target, o Options) error {
	snap, err := common.Load(ctx, c)
	if err != nil {
		return err
	}
	logger := c.GetLogger()
	names, rows := common.Rows(c, snap, joiner.FallbackUnknown)

	budgets := snap.Budgets
	if o.DeriveSpent {
		budgets = budgetfilter.DeriveSpent(budgets, snap.Expenses)
	}
	for _, overlap := range budgetfilter.Overlaps(budgets) {
		logger.Warn("Budgets of the same category overlap",
			logging.F(logging.FieldCategoryID, overlap.First.CategoryID),
			logging.F("budget_ids", []int64{overlap.First.ID, overlap.Second.ID}))
	}
	if o.Month != "" {
		ref, err := dateutils.ParseMonth(o.Month, c.GetLocation())
		if err != nil {
			return err
		}
		budgets = budgetfilter.ByMonth(budgets, ref)
	}
	if o.CategoryID != 0 {
		budgets = budgetfilter.ByCategory(budgets, o.CategoryID)
	}
	if o.OverBudget {
		budgets = budgetfilter.OverBudget(budgets)
	}

	view, err := c.GetViews().Budgets.View(budgets, common.SortState(o.Sort, logger), names)
	if err != nil {
		return err
	}
	return common.Emit(c, target, rows.Budgets(view))
}
