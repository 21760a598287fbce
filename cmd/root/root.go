// Package root contains the root command for the application
package root

import (
	"fmt"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/container"
	"fintrack/internal/dateutils"
	"fintrack/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Source   string
	DataDir  string
	Format   string
	Output   string
	Now      string
	LogLevel string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer is built before any subcommand runs.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fintrack",
		Short: "Browse personal finance records as sorted tables and chart series.",
		Long: `fintrack loads categories, incomes, expenses and budgets from the finance
backend (REST API, exported files or its database) and prints sortable tables
and the dashboard chart series.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to fintrack!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			// Flags win over file and environment; the container validates.
			ApplyFlags(cfg, SharedFlags)

			c, err := container.NewContainer(cfg)
			if err != nil {
				return err
			}
			AppContainer = c
			Log = c.GetLogger()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close data source")
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Source, "source", "s", "", "Data source: http, file or sql")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataDir, "dir", "d", "", "Data directory for the file source")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: table, csv, json or yaml")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Write to this file instead of stdout")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Now, "now", "", "Reference date for monthly charts (default today)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn or error")
}

// ApplyFlags overrides cfg with the flags that were set.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.Source != "" {
		cfg.Source.Kind = flags.Source
	}
	if flags.DataDir != "" {
		cfg.Source.Dir = flags.DataDir
	}
	if flags.Format != "" {
		cfg.Output.Format = flags.Format
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
}

// Now returns the reference date: --now when given, otherwise the current
// time. Both are expressed in loc.
func Now(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if SharedFlags.Now == "" {
		return time.Now().In(loc), nil
	}
	t, err := dateutils.ParseDate(SharedFlags.Now, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	return t, nil
}
