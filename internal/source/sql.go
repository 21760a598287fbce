package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fintrack/internal/logging"
	"fintrack/internal/sourceerror"

	// Registered database/sql drivers.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQL drivers accepted by OpenSQLSource.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// tables maps collections to the backend's table names.
var tables = map[Collection]string{
	Categories: "Category",
	Incomes:    "Income",
	Expenses:   "Expense",
	Budgets:    "Budget",
}

// SQLSource reads collections straight from the backend database. Columns
// are mapped by name, so tables may lack optional columns such as
// Expense.name or Budget.spent.
type SQLSource struct {
	db     *sql.DB
	driver string
	logger logging.Logger
}

// OpenSQLSource opens dsn with driver and checks the connection.
func OpenSQLSource(driver, dsn string, logger logging.Logger) (*SQLSource, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, &sourceerror.UnsupportedFormatError{
			Kind:     "sql driver",
			Value:    driver,
			Expected: []string{DriverSQLite, DriverPostgres},
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to %s database: %w", driver, err)
	}
	logger.Debug("Opened database", logging.F(logging.FieldDriver, driver))
	return NewSQLSource(db, driver, logger), nil
}

// NewSQLSource wraps an already open database.
func NewSQLSource(db *sql.DB, driver string, logger logging.Logger) *SQLSource {
	return &SQLSource{db: db, driver: driver, logger: logger}
}

// Name identifies the source in logs and errors.
func (s *SQLSource) Name() string { return "sql" }

// Close releases the source.
func (s *SQLSource) Close() error { return s.db.Close() }

// query builds the SELECT for table. The backend creates its tables
// unquoted, which Postgres folds to lower case; SQLite matches names
// regardless of case.
func (s *SQLSource) query(table string) string {
	if s.driver == DriverPostgres {
		table = strings.ToLower(table)
	}
	return "SELECT * FROM " + `"` + strings.ReplaceAll(table, `"`, `""`) + `"`
}

// Fetch returns the undecoded records of collection c.
func (s *SQLSource) Fetch(ctx context.Context, c Collection) ([]Raw, error) {
	table, ok := tables[c]
	if !ok {
		return nil, &sourceerror.FetchError{Source: s.Name(), Collection: string(c), Err: fmt.Errorf("no table for collection")}
	}
	query := s.query(table)
	s.logger.Debug("Querying table",
		logging.F(logging.FieldDriver, s.driver),
		logging.F(logging.FieldCollection, string(c)))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &sourceerror.FetchError{Source: s.Name(), Collection: string(c), Err: err}
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close rows")
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &sourceerror.FetchError{Source: s.Name(), Collection: string(c), Err: err}
	}

	raws := []Raw{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &sourceerror.FetchError{Source: s.Name(), Collection: string(c), Err: err}
		}
		raw := make(Raw, len(columns))
		for i, col := range columns {
			raw[strings.ToLower(col)] = values[i]
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, &sourceerror.FetchError{Source: s.Name(), Collection: string(c), Err: err}
	}
	return raws, nil
}
