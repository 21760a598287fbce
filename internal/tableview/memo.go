package tableview

import (
	"sync"

	"fintrack/internal/joiner"
	"fintrack/internal/models"
	"fintrack/internal/sorter"
)

// FieldsFunc builds the sortable columns of T for a category joiner.
type FieldsFunc[T any] func(categories *joiner.Joiner) sorter.Fields[T]

type memoKey[T any] struct {
	first *T
	n     int
	state sorter.State
	join  *joiner.Joiner
}

func keyOf[T any](records []T, state sorter.State, categories *joiner.Joiner) memoKey[T] {
	k := memoKey[T]{n: len(records), state: state, join: categories}
	if len(records) > 0 {
		k.first = &records[0]
	}
	return k
}

// Memo caches the last view it built. The cache key is the identity of the
// records slice (its backing array and length), the sort state and the
// joiner pointer; any change to one of them rebuilds the view. Records are
// treated as immutable: writing into a slice after handing it to View is not
// detected.
//
// A Memo is safe for concurrent use. Returned views are shared between
// callers and must not be modified.
type Memo[T any] struct {
	mu     sync.Mutex
	fields FieldsFunc[T]

	valid bool
	key   memoKey[T]
	view  []T

	builds int
}

// NewMemo returns an empty memo.
func NewMemo[T any](fields FieldsFunc[T]) *Memo[T] {
	return &Memo[T]{fields: fields}
}

// View returns records ordered by state, reusing the cached view when
// nothing changed since the previous call.
func (m *Memo[T]) View(records []T, state sorter.State, categories *joiner.Joiner) ([]T, error) {
	key := keyOf(records, state, categories)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.key == key {
		return m.view, nil
	}

	view, err := Build(records, state, m.fields(categories))
	if err != nil {
		return nil, err
	}
	m.key, m.view, m.valid = key, view, true
	m.builds++
	return view, nil
}

// FieldNames lists the sortable columns.
func (m *Memo[T]) FieldNames() []string {
	return m.fields(nil).Names()
}

// Builds returns how many times the memo has recomputed its view.
func (m *Memo[T]) Builds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds
}

// Reset drops the cached view.
func (m *Memo[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.valid, m.view, m.key = false, nil, memoKey[T]{}
}

// NewExpenseMemo memoizes the expense table.
func NewExpenseMemo(c *sorter.Collator) *Memo[models.Expense] {
	return NewMemo(func(categories *joiner.Joiner) sorter.Fields[models.Expense] {
		return ExpenseFields(categories, c)
	})
}

// NewIncomeMemo memoizes the income table.
func NewIncomeMemo(c *sorter.Collator) *Memo[models.Income] {
	fields := IncomeFields(c)
	return NewMemo(func(*joiner.Joiner) sorter.Fields[models.Income] { return fields })
}

// NewBudgetMemo memoizes the budget table.
func NewBudgetMemo(c *sorter.Collator) *Memo[models.Budget] {
	return NewMemo(func(categories *joiner.Joiner) sorter.Fields[models.Budget] {
		return BudgetFields(categories, c)
	})
}

// NewCategoryMemo memoizes the category table.
func NewCategoryMemo(c *sorter.Collator) *Memo[models.Category] {
	fields := CategoryFields(c)
	return NewMemo(func(*joiner.Joiner) sorter.Fields[models.Category] { return fields })
}
