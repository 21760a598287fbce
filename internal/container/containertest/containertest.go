// Package containertest builds containers over throwaway data directories
// for command tests.
package containertest

import (
	"os"
	"path/filepath"
	"testing"

	"fintrack/internal/config"
	"fintrack/internal/container"
	"fintrack/internal/logging"
)

// Categories, Incomes, Expenses and Budgets are a small consistent data set
// in the backend's JSON shape. Expense 4 points at a category that does not
// exist.
const (
	Categories = `[
  {"id": 1, "name": "Food", "description": "Groceries"},
  {"id": 2, "name": "Rent", "description": "Housing"}
]`
	Incomes = `[
  {"id": 1, "amount": 3000, "date": "2024-05-25T00:00:00.000Z", "source": "Salary"},
  {"id": 2, "amount": 1000, "date": "2024-06-02T00:00:00.000Z", "source": "Gift"}
]`
	Expenses = `[
  {"id": 1, "name": "Groceries", "category_id": 1, "amount": 25, "date": "2024-03-05T00:00:00.000Z"},
  {"id": 2, "name": "Flat", "category_id": 2, "amount": 75, "date": "2024-04-01T00:00:00.000Z"},
  {"id": 3, "name": "Bakery", "category_id": 1, "amount": 10, "date": "2024-06-03T00:00:00.000Z"},
  {"id": 4, "name": "Mystery", "category_id": 9, "amount": 15, "date": "2024-06-04T00:00:00.000Z"}
]`
	Budgets = `[
  {"id": 1, "category_id": 1, "amount": 300, "spent": 120, "start_date": "2024-06-01", "end_date": "2024-06-30"},
  {"id": 2, "category_id": 2, "amount": 50, "spent": 75, "start_date": "2024-04-01", "end_date": "2024-04-30"},
  {"id": 3, "category_id": 1, "amount": 280, "spent": 0, "start_date": "2024-03-01", "end_date": "2024-03-31"}
]`
)

// DefaultFiles maps each collection file to the sample data above.
func DefaultFiles() map[string]string {
	return map[string]string{
		"categories.json": Categories,
		"incomes.json":    Incomes,
		"expenses.json":   Expenses,
		"budgets.json":    Budgets,
	}
}

// New writes files into a temporary directory and returns a container
// reading it through the file source, in UTC, with table output. modify
// adjusts the configuration before the container is built.
func New(t *testing.T, files map[string]string, modify func(*config.Config)) (*container.Container, *logging.MockLogger) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	cfg := config.Default()
	cfg.Source.Kind = config.SourceFile
	cfg.Source.Dir = dir
	cfg.View.Timezone = "UTC"
	if modify != nil {
		modify(cfg)
	}

	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(cfg, logger)
	if err != nil {
		t.Fatalf("building container: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, logger
}
