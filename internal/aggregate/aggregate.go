// Package aggregate groups records by a derived key and computes each
// group's share of the grand total.
package aggregate

import (
	"slices"

	"fintrack/internal/joiner"
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// PercentPlaces is the precision of Group.Percentage.
const PercentPlaces = 1

// Group is one slice of a breakdown chart.
type Group struct {
	Key        string          `json:"key" yaml:"key" csv:"key"`
	Total      decimal.Decimal `json:"total" yaml:"total" csv:"total"`
	Percentage string          `json:"percentage" yaml:"percentage" csv:"percentage"`
}

// Aggregate sums amount per key in a single pass. Groups are returned in the
// order their key was first seen. Each percentage is the group total over
// the grand total times 100, rounded to one decimal and always formatted
// with exactly one decimal ("25.0"). When the grand total is zero every
// percentage is "0.0". Empty input yields an empty, non-nil slice.
func Aggregate[T any](records []T, key func(T) string, amount func(T) decimal.Decimal) []Group {
	return AggregateBy(records, key, func(k string) string { return k }, amount)
}

// AggregateBy groups on an arbitrary comparable key and labels each group
// with label(key). Distinct keys that share a label stay separate groups.
func AggregateBy[T any, K comparable](records []T, key func(T) K, label func(K) string, amount func(T) decimal.Decimal) []Group {
	index := make(map[K]int)
	var keys []K
	var totals []decimal.Decimal
	grand := decimal.Zero

	for _, r := range records {
		k := key(r)
		a := amount(r)
		grand = grand.Add(a)

		i, ok := index[k]
		if !ok {
			i = len(keys)
			index[k] = i
			keys = append(keys, k)
			totals = append(totals, decimal.Zero)
		}
		totals[i] = totals[i].Add(a)
	}

	groups := make([]Group, len(keys))
	for i, k := range keys {
		groups[i] = Group{
			Key:        label(k),
			Total:      totals[i],
			Percentage: models.Percent(totals[i], grand, PercentPlaces),
		}
	}
	return groups
}

// ByCategory breaks expenses down by category. Groups are keyed on the
// category id and labelled through categories, so two categories sharing a
// name stay distinct and unresolved ids show the joiner's fallback.
func ByCategory(expenses []models.Expense, categories *joiner.Joiner) []Group {
	return AggregateBy(expenses,
		func(e models.Expense) int64 { return e.CategoryID },
		categories.Name,
		func(e models.Expense) decimal.Decimal { return e.Amount },
	)
}

// BySource breaks incomes down by their raw source string.
func BySource(incomes []models.Income) []Group {
	return Aggregate(incomes,
		func(i models.Income) string { return i.Source },
		func(i models.Income) decimal.Decimal { return i.Amount },
	)
}

// Total returns the sum of all group totals.
func Total(groups []Group) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Total)
	}
	return total
}

// SortByTotal returns a copy of groups ordered by total, largest first when
// desc is set. Ties keep their first-seen order.
func SortByTotal(groups []Group, desc bool) []Group {
	sorted := slices.Clone(groups)
	slices.SortStableFunc(sorted, func(a, b Group) int {
		if desc {
			return b.Total.Cmp(a.Total)
		}
		return a.Total.Cmp(b.Total)
	})
	return sorted
}
