// Package container provides dependency injection for the fintrack CLI.
// It centralizes the creation and wiring of the data source, the view
// builders and the chart service, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/charts"
	"fintrack/internal/config"
	"fintrack/internal/export"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/sorter"
	"fintrack/internal/source"
	"fintrack/internal/tableview"
)

// Views holds one memoized table view per collection.
type Views struct {
	Expenses   *tableview.Memo[models.Expense]
	Incomes    *tableview.Memo[models.Income]
	Budgets    *tableview.Memo[models.Budget]
	Categories *tableview.Memo[models.Category]
}

// Container holds all application dependencies and provides methods to access them.
// Container is immutable after creation; fields are reached through getters.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	location *time.Location
	source   source.Source
	loader   *source.Loader
	collator *sorter.Collator
	views    Views
	charts   *charts.Service
	writer   *export.Writer
}

// NewContainer creates and wires all application dependencies, logging
// through a logrus adapter configured from cfg.Log.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loc, err := cfg.View.Location()
	if err != nil {
		return nil, err
	}

	collator, err := sorter.NewCollatorForLocale(cfg.View.Locale)
	if err != nil {
		return nil, err
	}

	comma := ','
	if r := []rune(cfg.Output.Delimiter); len(r) > 0 {
		comma = r[0]
	}
	writer, err := export.NewWriter(cfg.Output.Format, comma, logger)
	if err != nil {
		return nil, err
	}

	src, err := source.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("creating %s source: %w", cfg.Source.Kind, err)
	}

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldSource, src.Name()),
		logging.F(logging.FieldFormat, writer.Format()),
		logging.F("locale", collator.Locale()))

	return &Container{
		logger:   logger,
		config:   cfg,
		location: loc,
		source:   src,
		loader:   source.NewLoader(src, loc, logger),
		collator: collator,
		views: Views{
			Expenses:   tableview.NewExpenseMemo(collator),
			Incomes:    tableview.NewIncomeMemo(collator),
			Budgets:    tableview.NewBudgetMemo(collator),
			Categories: tableview.NewCategoryMemo(collator),
		},
		charts: charts.NewService(logger),
		writer: writer,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLocation returns the time zone dates are read and bucketed in.
func (c *Container) GetLocation() *time.Location {
	return c.location
}

// GetSource returns the configured data source.
func (c *Container) GetSource() source.Source {
	return c.source
}

// GetLoader returns the loader decoding the source's records.
func (c *Container) GetLoader() *source.Loader {
	return c.loader
}

// GetCollator returns the collator for the configured locale.
func (c *Container) GetCollator() *sorter.Collator {
	return c.collator
}

// GetViews returns the memoized table views.
func (c *Container) GetViews() Views {
	return c.views
}

// GetCharts returns the chart service.
func (c *Container) GetCharts() *charts.Service {
	return c.charts
}

// GetWriter returns the writer for the configured output format.
func (c *Container) GetWriter() *export.Writer {
	return c.writer
}

// Load fetches every collection from the source.
func (c *Container) Load(ctx context.Context) (*source.Snapshot, error) {
	return c.loader.LoadAll(ctx)
}

// Close releases the data source.
func (c *Container) Close() error {
	if err := c.source.Close(); err != nil {
		return fmt.Errorf("closing %s source: %w", c.source.Name(), err)
	}
	c.logger.Debug("Container closed")
	return nil
}
