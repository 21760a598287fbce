// Package dashboard implements the dashboard report command
package dashboard

import (
	"context"
	"time"

	"fintrack/cmd/common"
	"fintrack/cmd/root"
	"fintrack/internal/container"
	"fintrack/internal/export"
	"fintrack/internal/joiner"

	"github.com/spf13/cobra"
)

// Cmd represents the dashboard command
var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print every dashboard chart in one report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.AppContainer
		now, err := root.Now(c.GetLocation())
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c, common.TargetFor(cmd, root.SharedFlags.Output), now)
	},
}

// Run builds the dashboard for now and writes one section per chart.
func Run(ctx context.Context, c *container.Container, target common.Target, now time.Time) error {
	snap, err := common.Load(ctx, c)
	if err != nil {
		return err
	}
	_, rows := common.Rows(c, snap, joiner.FallbackUnknown)
	dash := c.GetCharts().Dashboard(snap, now)

	return common.EmitSections(c, target, []export.Section{
		{Title: "category_expenses", Rows: rows.Groups(dash.CategoryExpenses)},
		{Title: "income_sources", Rows: rows.Groups(dash.IncomeSources)},
		{Title: "monthly_expenses", Rows: rows.Points(dash.MonthlyExpenses)},
		{Title: "monthly_incomes", Rows: rows.Points(dash.MonthlyIncomes)},
		{Title: "budgets", Rows: rows.Bars(dash.Budgets)},
	})
}
