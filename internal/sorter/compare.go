package sorter

import (
	"cmp"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// Collator compares strings in locale order. The underlying
// collate.Collator reuses internal buffers, so calls are serialized.
type Collator struct {
	mu  sync.Mutex
	c   *collate.Collator
	tag language.Tag
}

// NewCollator returns a collator for tag.
func NewCollator(tag language.Tag) *Collator {
	return &Collator{c: collate.New(tag), tag: tag}
}

// NewCollatorForLocale parses a BCP 47 locale such as "en" or "de-CH".
func NewCollatorForLocale(locale string) (*Collator, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return NewCollator(tag), nil
}

var (
	defaultCollator     *Collator
	defaultCollatorOnce sync.Once
)

// DefaultCollator returns a shared English collator.
func DefaultCollator() *Collator {
	defaultCollatorOnce.Do(func() {
		defaultCollator = NewCollator(language.English)
	})
	return defaultCollator
}

// Compare returns -1, 0 or +1.
func (c *Collator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}

// Locale returns the collator's language tag.
func (c *Collator) Locale() string {
	return c.tag.String()
}

// Field is a sortable column of a record type. Compare orders two records
// ascending and returns 0 for ties.
type Field[T any] struct {
	Name    string
	Compare func(a, b T) int
}

// Fields is the set of sortable columns of a record type.
type Fields[T any] []Field[T]

// Lookup returns the field called name.
func (f Fields[T]) Lookup(name string) (Field[T], error) {
	for _, field := range f {
		if field.Name == name {
			return field, nil
		}
	}
	return Field[T]{}, &UnknownFieldError{Field: name, Known: f.Names()}
}

// Names lists field names in declaration order.
func (f Fields[T]) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// Comparator returns the ordering for s: the field's comparison for Asc and
// the same comparison with operands swapped for Desc. It returns nil for an
// inactive state.
func (f Fields[T]) Comparator(s State) (func(a, b T) int, error) {
	if !s.Active() {
		return nil, nil
	}
	field, err := f.Lookup(s.Field)
	if err != nil {
		return nil, err
	}
	if s.Direction == Desc {
		return func(a, b T) int { return field.Compare(b, a) }, nil
	}
	return field.Compare, nil
}

// ByString orders records by a string key in collator order.
func ByString[T any](name string, key func(T) string, c *Collator) Field[T] {
	if c == nil {
		c = DefaultCollator()
	}
	return Field[T]{Name: name, Compare: func(a, b T) int {
		return c.Compare(key(a), key(b))
	}}
}

// ByDecimal orders records numerically.
func ByDecimal[T any](name string, key func(T) decimal.Decimal) Field[T] {
	return Field[T]{Name: name, Compare: func(a, b T) int {
		return key(a).Cmp(key(b))
	}}
}

// ByTime orders records by instant, earliest first, at millisecond
// resolution.
func ByTime[T any](name string, key func(T) time.Time) Field[T] {
	return Field[T]{Name: name, Compare: func(a, b T) int {
		return cmp.Compare(key(a).UnixMilli(), key(b).UnixMilli())
	}}
}

// ByInt orders records by an integer key.
func ByInt[T any](name string, key func(T) int64) Field[T] {
	return Field[T]{Name: name, Compare: func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}}
}
