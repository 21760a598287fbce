package dashboard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fintrack/cmd/common"
	"fintrack/cmd/dashboard"
	"fintrack/internal/config"
	"fintrack/internal/container/containertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestRun_JSON(t *testing.T) {
	c, logger := containertest.New(t, containertest.DefaultFiles(), func(c *config.Config) {
		c.Output.Format = config.OutputJSON
	})

	var out bytes.Buffer
	require.NoError(t, dashboard.Run(context.Background(), c, common.Target{Out: &out}, now))

	var doc map[string][]map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Len(t, doc, 5)
	assert.Len(t, doc["category_expenses"], 3)
	assert.Equal(t, "Unknown Category", doc["category_expenses"][2]["label"])
	assert.Len(t, doc["income_sources"], 2)
	assert.Len(t, doc["monthly_expenses"], 12)
	assert.Len(t, doc["monthly_incomes"], 12)
	assert.Equal(t, []map[string]string{{"label": "Food", "amount": "300.00", "spent": "120.00"}}, doc["budgets"])

	assert.True(t, logger.HasEntry("DEBUG", "Unresolved category ids"))
}

func TestRun_CSVSections(t *testing.T) {
	c, _ := containertest.New(t, containertest.DefaultFiles(), func(c *config.Config) {
		c.Output.Format = config.OutputCSV
	})

	var out bytes.Buffer
	require.NoError(t, dashboard.Run(context.Background(), c, common.Target{Out: &out}, now))

	var titles []string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "# ") {
			titles = append(titles, strings.TrimPrefix(line, "# "))
		}
	}
	assert.Equal(t, []string{"category_expenses", "income_sources", "monthly_expenses", "monthly_incomes", "budgets"}, titles)
}
