// Package categories implements the category table command
package categories

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

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.AppContainer, common.TargetFor(cmd, root.SharedFlags.Output), sortFields)
	},
}

func init() {
	common.AddSortFlag(Cmd, &sortFields, tableview.NewCategoryMemo(nil).FieldNames())
}

// Run renders the category table sorted by the replayed activations.
func Run(ctx context.Context, c *container.Container, target common.Target, fields []string) error {
	snap, err := common.Load(ctx, c)
	if err != nil {
		return err
	}
	_, rows := common.Rows(c, snap, joiner.FallbackUnknown)

	view, err := c.GetViews().Categories.View(snap.Categories, common.SortState(fields, c.GetLogger()), nil)
	if err != nil {
		return err
	}
	return common.Emit(c, target, rows.Categories(view))
}
