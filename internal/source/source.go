// Package source loads the four record collections (categories, incomes,
// expenses and budgets) from the finance backend's REST API, from exported
// files, or straight from its database.
package source

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/sourceerror"

	"golang.org/x/sync/errgroup"
)

// Collection names a record collection. The names double as REST paths,
// file base names and, capitalized, SQL table names.
type Collection string

const (
	Categories Collection = "categories"
	Incomes    Collection = "incomes"
	Expenses   Collection = "expenses"
	Budgets    Collection = "budgets"
)

// AllCollections lists every collection in load order.
var AllCollections = []Collection{Categories, Incomes, Expenses, Budgets}

// Source fetches undecoded records.
type Source interface {
	// Name identifies the backend in logs and errors.
	Name() string
	// Fetch returns every record of a collection. A collection the backend
	// does not hold yields an empty slice, not an error.
	Fetch(ctx context.Context, collection Collection) ([]Raw, error)
	Close() error
}

// Snapshot holds one consistent load of all collections.
type Snapshot struct {
	Categories []models.Category
	Incomes    []models.Income
	Expenses   []models.Expense
	Budgets    []models.Budget
}

// Loader decodes what a Source fetches into records.
type Loader struct {
	src    Source
	loc    *time.Location
	logger logging.Logger
}

// NewLoader returns a loader over src. Dates without a zone are read in
// loc; nil means UTC.
func NewLoader(src Source, loc *time.Location, logger logging.Logger) *Loader {
	if loc == nil {
		loc = time.UTC
	}
	return &Loader{src: src, loc: loc, logger: logger}
}

// Source returns the underlying source.
func (l *Loader) Source() Source {
	return l.src
}

func load[T any](ctx context.Context, l *Loader, c Collection, one func(*decoder, Raw) T) ([]T, error) {
	start := time.Now()
	raws, err := l.src.Fetch(ctx, c)
	if err != nil {
		return nil, err
	}
	d := &decoder{source: l.src.Name(), collection: c, loc: l.loc}
	records, err := decodeAll(d, raws, one)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Loaded collection",
		logging.F(logging.FieldSource, l.src.Name()),
		logging.F(logging.FieldCollection, string(c)),
		logging.F(logging.FieldCount, len(records)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return records, nil
}

// Categories loads every category.
func (l *Loader) Categories(ctx context.Context) ([]models.Category, error) {
	return load(ctx, l, Categories, decodeCategory)
}

// Incomes loads every income.
func (l *Loader) Incomes(ctx context.Context) ([]models.Income, error) {
	return load(ctx, l, Incomes, decodeIncome)
}

// Expenses loads every expense.
func (l *Loader) Expenses(ctx context.Context) ([]models.Expense, error) {
	return load(ctx, l, Expenses, decodeExpense)
}

// Budgets loads every budget.
func (l *Loader) Budgets(ctx context.Context) ([]models.Budget, error) {
	return load(ctx, l, Budgets, decodeBudget)
}

// LoadAll fetches the four collections concurrently. The first failure
// cancels the remaining fetches.
func (l *Loader) LoadAll(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Categories, err = l.Categories(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Incomes, err = l.Incomes(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Expenses, err = l.Expenses(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Budgets, err = l.Budgets(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	l.logger.Info("Loaded records",
		logging.F(logging.FieldSource, l.src.Name()),
		logging.F("categories", len(snap.Categories)),
		logging.F("incomes", len(snap.Incomes)),
		logging.F("expenses", len(snap.Expenses)),
		logging.F("budgets", len(snap.Budgets)))
	return &snap, nil
}

// New builds the source selected by cfg.Source.Kind.
func New(cfg *config.Config, logger logging.Logger) (Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	s := cfg.Source
	switch s.Kind {
	case config.SourceHTTP:
		return NewHTTPSource(s.BaseURL, s.Timeout(), logger), nil
	case config.SourceFile:
		comma := ','
		if r := []rune(cfg.Output.Delimiter); len(r) > 0 {
			comma = r[0]
		}
		fs, err := NewFileSource(s.Dir, s.Format, comma, logger)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.SourceSQL:
		ss, err := OpenSQLSource(s.Driver, s.DSN, logger)
		if err != nil {
			return nil, err
		}
		return ss, nil
	default:
		return nil, &sourceerror.UnsupportedFormatError{
			Kind:     "source kind",
			Value:    s.Kind,
			Expected: []string{config.SourceHTTP, config.SourceFile, config.SourceSQL},
		}
	}
}
