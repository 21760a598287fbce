package expenses_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"fintrack/cmd/common"
	"fintrack/cmd/expenses"
	"fintrack/internal/config"
	"fintrack/internal/container/containertest"
	"fintrack/internal/sorter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvOutput(c *config.Config) { c.Output.Format = config.OutputCSV }

// firstColumn returns the first CSV column of every data row.
func firstColumn(out string) []string {
	lines := strings.Split(strings.TrimSpace(out), "\n")[1:]
	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = strings.SplitN(line, ",", 2)[0]
	}
	return ids
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "expenses", expenses.Cmd.Use)
	assert.NotNil(t, expenses.Cmd.RunE)
	assert.NotNil(t, expenses.Cmd.Flags().Lookup("sort"))
}

func TestRun_JoinsCategoryNames(t *testing.T) {
	c, _ := containertest.New(t, containertest.DefaultFiles(), csvOutput)

	var out bytes.Buffer
	require.NoError(t, expenses.Run(context.Background(), c, common.Target{Out: &out}, nil))
	assert.Equal(t,
		"id,name,category,amount,date\n"+
			"1,Groceries,Food,25.00,2024-03-05\n"+
			"2,Flat,Rent,75.00,2024-04-01\n"+
			"3,Bakery,Food,10.00,2024-06-03\n"+
			"4,Mystery,Unknown Category,15.00,2024-06-04\n",
		out.String())
}

func TestRun_SortActivations(t *testing.T) {
	c, _ := containertest.New(t, containertest.DefaultFiles(), csvOutput)

	tests := []struct {
		name   string
		fields []string
		want   []string
	}{
		{"unsorted", nil, []string{"1", "2", "3", "4"}},
		{"amount ascending", []string{"amount"}, []string{"3", "4", "1", "2"}},
		{"amount descending", []string{"amount", "amount"}, []string{"2", "1", "4", "3"}},
		{"third activation restores order", []string{"amount", "amount", "amount"}, []string{"1", "2", "3", "4"}},
		{"switching field restarts ascending", []string{"amount", "amount", "name"}, []string{"3", "2", "1", "4"}},
		{"unresolved category sorts first", []string{"category"}, []string{"4", "1", "3", "2"}},
		{"date descending", []string{"date", "date"}, []string{"4", "3", "2", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, expenses.Run(context.Background(), c, common.Target{Out: &out}, tt.fields))
			assert.Equal(t, tt.want, firstColumn(out.String()))
		})
	}
}

func TestRun_UnknownSortField(t *testing.T) {
	c, _ := containertest.New(t, containertest.DefaultFiles(), csvOutput)

	var out bytes.Buffer
	err := expenses.Run(context.Background(), c, common.Target{Out: &out}, []string{"colour"})
	var unknown *sorter.UnknownFieldError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "colour", unknown.Field)
	assert.Empty(t, out.String())
}

func TestRun_TableWithCurrency(t *testing.T) {
	c, logger := containertest.New(t, containertest.DefaultFiles(), func(c *config.Config) {
		c.View.Currency = "CHF"
	})

	var out bytes.Buffer
	require.NoError(t, expenses.Run(context.Background(), c, common.Target{Out: &out}, []string{"amount"}))
	assert.Contains(t, out.String(), "CHF 10.00")
	assert.True(t, logger.HasEntry("DEBUG", "Sorting table"))
}
