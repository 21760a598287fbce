// Package tableview produces the ordered rows of a table from raw records
// and a sort state.
package tableview

import (
	"slices"

	"fintrack/internal/sorter"
)

// Build returns a new slice holding records ordered by state. An inactive
// state keeps the input order. The sort is stable in both directions, so
// records that compare equal keep their relative input order. records is
// never modified.
func Build[T any](records []T, state sorter.State, fields sorter.Fields[T]) ([]T, error) {
	compare, err := fields.Comparator(state)
	if err != nil {
		return nil, err
	}
	view := slices.Clone(records)
	if view == nil {
		view = []T{}
	}
	if compare != nil {
		slices.SortStableFunc(view, compare)
	}
	return view, nil
}
