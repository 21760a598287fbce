// Package joiner resolves foreign-key ids into display names.
//
// Resolution never fails: an id that matches no entity resolves to a
// caller-chosen fallback string, so a record that references a deleted
// category still renders.
package joiner

import (
	"fintrack/internal/models"
)

// Fallback labels for ids that match no entity.
const (
	// FallbackUnknown is used by budget tables and the month budget chart.
	FallbackUnknown = "Unknown"
	// FallbackUnknownCategory is used by the expense table and the
	// category expense chart.
	FallbackUnknownCategory = "Unknown Category"
)

// Resolve returns the name of the first entity in lookup whose id equals id,
// or fallback when none does.
func Resolve[N models.Named](id int64, lookup []N, fallback string) string {
	for _, entity := range lookup {
		if entity.GetID() == id {
			return entity.GetName()
		}
	}
	return fallback
}

// Name resolves id against lookup with the "Unknown" fallback.
func Name[N models.Named](id int64, lookup []N) string {
	return Resolve(id, lookup, FallbackUnknown)
}

// CategoryName resolves a category id with the "Unknown Category" fallback.
func CategoryName(id int64, categories []models.Category) string {
	return Resolve(id, categories, FallbackUnknownCategory)
}

// Joiner is an indexed resolver built once per lookup collection.
// Its index is never written after New, so a Joiner may be shared between
// goroutines. The pointer identity of a Joiner changes only when the lookup
// it was built from changes, which makes it usable as a cache key.
type Joiner struct {
	names    map[int64]string
	fallback string
}

// New indexes lookup. When two entities share an id the first one wins,
// matching Resolve.
func New[N models.Named](lookup []N, fallback string) *Joiner {
	names := make(map[int64]string, len(lookup))
	for _, entity := range lookup {
		if _, seen := names[entity.GetID()]; !seen {
			names[entity.GetID()] = entity.GetName()
		}
	}
	return &Joiner{names: names, fallback: fallback}
}

// NewCategories is New for the common case of a category lookup.
func NewCategories(categories []models.Category, fallback string) *Joiner {
	return New(categories, fallback)
}

// Name returns the display name for id, or the fallback. A nil Joiner
// resolves everything to FallbackUnknown.
func (j *Joiner) Name(id int64) string {
	if name, ok := j.Lookup(id); ok {
		return name
	}
	return j.Fallback()
}

// Lookup returns the name for id and whether it resolved.
func (j *Joiner) Lookup(id int64) (string, bool) {
	if j == nil {
		return "", false
	}
	name, ok := j.names[id]
	return name, ok
}

// Fallback returns the label used for unresolved ids.
func (j *Joiner) Fallback() string {
	if j == nil {
		return FallbackUnknown
	}
	return j.fallback
}

// Len returns the number of distinct ids in the index.
func (j *Joiner) Len() int {
	if j == nil {
		return 0
	}
	return len(j.names)
}

// Func returns Name as a plain function value.
func (j *Joiner) Func() func(int64) string {
	return j.Name
}

// Unresolved returns, in first-seen order and without duplicates, the ids
// that do not resolve against j.
func Unresolved(ids []int64, j *Joiner) []int64 {
	var missing []int64
	seen := make(map[int64]struct{})
	for _, id := range ids {
		if _, ok := j.Lookup(id); ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}
	return missing
}
