// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/container"
	"fintrack/internal/export"
	"fintrack/internal/joiner"
	"fintrack/internal/logging"
	"fintrack/internal/sorter"
	"fintrack/internal/source"

	"github.com/spf13/cobra"
)

// Target says where command output goes: Path when set, Out otherwise.
type Target struct {
	Out  io.Writer
	Path string
}

// Emit writes rows to the target with the container's writer.
func Emit(c *container.Container, target Target, rows any) error {
	w := c.GetWriter()
	if target.Path != "" {
		return w.WriteFile(target.Path, rows)
	}
	return w.Write(target.Out, rows)
}

// EmitSections writes a multi-part report to the target.
func EmitSections(c *container.Container, target Target, sections []export.Section) error {
	w := c.GetWriter()
	if target.Path != "" {
		return w.WriteSectionsFile(target.Path, sections)
	}
	return w.WriteSections(target.Out, sections)
}

// Load fetches every collection, logging how long it took.
func Load(ctx context.Context, c *container.Container) (*source.Snapshot, error) {
	start := time.Now()
	snap, err := c.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading records from %s: %w", c.GetSource().Name(), err)
	}
	c.GetLogger().Debug("Records loaded",
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return snap, nil
}

// SortState replays one activation of the tri-state controller per
// --sort occurrence.
func SortState(fields []string, logger logging.Logger) sorter.State {
	state := sorter.Replay(fields...)
	if state.Active() {
		logger.Debug("Sorting table",
			logging.F(logging.FieldSortField, state.Field),
			logging.F(logging.FieldDirection, string(state.Direction)))
	}
	return state
}

// Rows returns a row builder labelling categories with fallback.
func Rows(c *container.Container, snap *source.Snapshot, fallback string) (*joiner.Joiner, export.Rows) {
	names := joiner.NewCategories(snap.Categories, fallback)
	currency := ""
	if c.GetWriter().Format() == config.OutputTable {
		currency = c.GetConfig().View.Currency
	}
	return names, export.Rows{Names: names, Currency: currency}
}

// AddSortFlag registers the repeatable --sort flag listing fields.
func AddSortFlag(cmd *cobra.Command, target *[]string, fields []string) {
	cmd.Flags().StringArrayVar(target, "sort", nil,
		fmt.Sprintf("Activate sorting on a column; repeat to cycle asc, desc, none (%v)", fields))
}

// TargetFor builds the output target of cmd.
func TargetFor(cmd *cobra.Command, path string) Target {
	return Target{Out: cmd.OutOrStdout(), Path: path}
}
