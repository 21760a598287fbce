// Package sorter implements the tri-state column sort used by every table:
// clicking a new column sorts it ascending, clicking the same column again
// cycles ascending, descending, then back to the unsorted input order.
package sorter

import (
	"fmt"
	"strings"
)

// Direction of an active sort.
type Direction string

const (
	// None leaves records in their input order.
	None Direction = ""
	// Asc sorts smallest first.
	Asc Direction = "asc"
	// Desc sorts largest first.
	Desc Direction = "desc"
)

// ParseDirection accepts "asc", "desc" and "" / "none", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	case "", "none":
		return None, nil
	default:
		return None, fmt.Errorf("invalid sort direction: %q (must be 'asc', 'desc' or 'none')", s)
	}
}

// State is the sort state of one table. The zero value is inactive.
type State struct {
	Field     string
	Direction Direction
}

// Active reports whether the state orders records.
func (s State) Active() bool {
	return s.Field != "" && s.Direction != None
}

// Activate returns the state after the user activates field.
func (s State) Activate(field string) State {
	if s.Field != field {
		return State{Field: field, Direction: Asc}
	}
	switch s.Direction {
	case Asc:
		return State{Field: field, Direction: Desc}
	case Desc:
		return State{Field: field, Direction: None}
	default:
		return State{Field: field, Direction: Asc}
	}
}

// Replay applies Activate for each field in order, starting from the
// inactive state.
func Replay(fields ...string) State {
	var s State
	for _, f := range fields {
		s = s.Activate(f)
	}
	return s
}

// String renders the state as "field direction", or "unsorted".
func (s State) String() string {
	if !s.Active() {
		return "unsorted"
	}
	return s.Field + " " + string(s.Direction)
}

// UnknownFieldError is returned when a state names a field the record type
// does not expose.
type UnknownFieldError struct {
	Field string
	Known []string
}

// Error implements error.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown sort field %q (available: %s)", e.Field, strings.Join(e.Known, ", "))
}
