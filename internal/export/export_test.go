package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fintrack/internal/aggregate"
	"fintrack/internal/budgetfilter"
	"fintrack/internal/joiner"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/sourceerror"
	"fintrack/internal/timeseries"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	testCategories = []models.Category{{ID: 1, Name: "Food"}, {ID: 2, Name: "Rent"}}
	testExpenses   = []models.Expense{
		{ID: 1, Name: "Groceries", CategoryID: 1, Amount: decimal.RequireFromString("25"), Date: day(2024, 3, 5)},
		{ID: 2, Name: "Mystery", CategoryID: 9, Amount: decimal.RequireFromString("7.5"), Date: day(2024, 3, 6)},
	}
)

func testRows(currency string) Rows {
	return Rows{Names: joiner.NewCategories(testCategories, joiner.FallbackUnknownCategory), Currency: currency}
}

func TestRows_Expenses(t *testing.T) {
	rows := testRows("").Expenses(testExpenses)
	require.Len(t, rows, 2)
	assert.Equal(t, ExpenseRow{ID: 1, Name: "Groceries", Category: "Food", Amount: "25.00", Date: "2024-03-05"}, rows[0])
	assert.Equal(t, "Unknown Category", rows[1].Category)

	rows = testRows("EUR").Expenses(testExpenses)
	assert.Equal(t, "€7.50", rows[1].Amount)

	rows = Rows{}.Expenses(testExpenses)
	assert.Equal(t, "9", rows[1].Category, "without a joiner the bare id is shown")
}

func TestRows_BudgetsAndCharts(t *testing.T) {
	budgets := []models.Budget{{
		ID: 3, CategoryID: 2, Amount: decimal.RequireFromString("1000"), Spent: decimal.RequireFromString("1200.5"),
		StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 31),
	}}
	rows := testRows("").Budgets(budgets)
	assert.Equal(t, BudgetRow{
		ID: 3, Category: "Rent", Amount: "1000.00", Spent: "1200.50", Remaining: "-200.50",
		StartDate: "2024-03-01", EndDate: "2024-03-31",
	}, rows[0])

	groups := testRows("").Groups([]aggregate.Group{{Key: "Food", Total: decimal.RequireFromString("25"), Percentage: "25.0"}})
	assert.Equal(t, GroupRow{Label: "Food", Total: "25.00", Percentage: "25.0%"}, groups[0])

	points := testRows("USD").Points([]timeseries.Point{{Month: "Mar/24", Amount: decimal.RequireFromString("1.005")}})
	assert.Equal(t, PointRow{Month: "Mar/24", Amount: "$1.01"}, points[0])

	bars := testRows("").Bars(budgetfilter.Series{
		Labels: []string{"Rent"},
		Amount: []decimal.Decimal{decimal.RequireFromString("1000")},
		Spent:  []decimal.Decimal{decimal.Zero},
	})
	assert.Equal(t, []BarRow{{Label: "Rent", Amount: "1000.00", Spent: "0.00"}}, bars)

	assert.Empty(t, testRows("").Incomes(nil))
	assert.Equal(t, []CategoryRow{{ID: 1, Name: "Food"}, {ID: 2, Name: "Rent"}}, testRows("").Categories(testCategories))
}

func newTestWriter(t *testing.T, format string, comma rune) *Writer {
	t.Helper()
	w, err := NewWriter(format, comma, logging.NewMockLogger())
	require.NoError(t, err)
	return w
}

func TestWriter_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestWriter(t, "table", 0).Write(&buf, testRows("").Expenses(testExpenses)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "NAME", "CATEGORY", "AMOUNT", "DATE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "Groceries", "Food", "25.00", "2024-03-05"}, strings.Fields(lines[1]))
	assert.Equal(t, strings.Index(lines[0], "CATEGORY"), strings.Index(lines[1], "Food"), "columns are aligned")
	assert.Equal(t, strings.Index(lines[0], "CATEGORY"), strings.Index(lines[2], "Unknown Category"))
}

func TestWriter_TableEmptyPrintsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestWriter(t, "table", 0).Write(&buf, []PointRow{}))
	assert.Equal(t, []string{"MONTH", "AMOUNT"}, strings.Fields(buf.String()))
}

func TestWriter_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestWriter(t, "csv", ';').Write(&buf, testRows("").Expenses(testExpenses)))
	assert.Equal(t,
		"id;name;category;amount;date\n"+
			"1;Groceries;Food;25.00;2024-03-05\n"+
			"2;Mystery;Unknown Category;7.50;2024-03-06\n",
		buf.String())
}

func TestWriter_JSONAndYAML(t *testing.T) {
	rows := testRows("").Groups([]aggregate.Group{
		{Key: "Food", Total: decimal.RequireFromString("25"), Percentage: "25.0"},
		{Key: "Rent", Total: decimal.RequireFromString("75"), Percentage: "75.0"},
	})

	var buf bytes.Buffer
	require.NoError(t, newTestWriter(t, "JSON", 0).Write(&buf, rows))
	var decoded []GroupRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rows, decoded)

	buf.Reset()
	require.NoError(t, newTestWriter(t, "yaml", 0).Write(&buf, rows))
	decoded = nil
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rows, decoded)
	assert.Contains(t, buf.String(), "percentage: 75.0%")
}

func TestWriter_Errors(t *testing.T) {
	_, err := NewWriter("html", ',', logging.NewMockLogger())
	var unsupported *sourceerror.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, Formats, unsupported.Expected)

	var buf bytes.Buffer
	assert.Error(t, newTestWriter(t, "json", 0).Write(&buf, ExpenseRow{}))
}

func TestWriter_WriteFile(t *testing.T) {
	logger := logging.NewMockLogger()
	w, err := NewWriter("csv", ',', logger)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "reports", "categories.csv")
	require.NoError(t, w.WriteFile(path, testRows("").Categories(testCategories)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name,description\n1,Food,\n2,Rent,\n", string(data))
	assert.True(t, logger.HasEntry("INFO", "Wrote output file"))
}

func TestWriter_WriteSections(t *testing.T) {
	sections := []Section{
		{Title: "expenses", Rows: []PointRow{{Month: "Mar/24", Amount: "25.00"}}},
		{Title: "incomes", Rows: []PointRow{}},
	}

	var buf bytes.Buffer
	require.NoError(t, newTestWriter(t, "csv", ',').WriteSections(&buf, sections))
	assert.Equal(t, "# expenses\nmonth,amount\nMar/24,25.00\n\n# incomes\nmonth,amount\n", buf.String())

	buf.Reset()
	require.NoError(t, newTestWriter(t, "json", ',').WriteSections(&buf, sections))
	var doc map[string][]PointRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, []PointRow{{Month: "Mar/24", Amount: "25.00"}}, doc["expenses"])
	assert.Empty(t, doc["incomes"])
}
