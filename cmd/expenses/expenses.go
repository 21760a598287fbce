// Package expenses implements the expense table command
package expenses

import (
	"context"

	"fintrack/cmd/common"
	"fintrack/cmd/root"
	"fintrack/internal/container"
	"fintrack/internal/joiner"
	"fintrack/internal/tableview"

	"github.com/spf13/cobra"
)

var sortFields []string

// Cmd represents the expenses command
var Cmd = &cobra.Command{
	Use:   "expenses",
	Short: "List expenses with their category names",
	Long: `List every expense with its category name. Each --sort activation cycles
the column through ascending, descending and back to the loaded order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.AppContainer, common.TargetFor(cmd, root.SharedFlags.Output), sortFields)
	},
}

func init() {
	common.AddSortFlag(Cmd, &sortFields, tableview.NewExpenseMemo(nil).FieldNames())
}

// Run renders the expense table sorted by the replayed activations.
func Run(ctx context.Context, c *container.Container, target common.Target, fields []string) error {
	snap, err := common.Load(ctx, c)
	if err != nil {
		return err
	}
	names, rows := common.Rows(c, snap, joiner.FallbackUnknownCategory)

	view, err := c.GetViews().Expenses.View(snap.Expenses, common.SortState(fields, c.GetLogger()), names)
	if err != nil {
		return err
	}
	return common.Emit(c, target, rows.Expenses(view))
}
