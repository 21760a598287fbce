// Package sourceerror defines the errors returned while loading records
// from a data source.
package sourceerror

import "fmt"

// FetchError is a failed request to the backend or database.
type FetchError struct {
	Source     string
	Collection string
	StatusCode int // zero when no response was received
	Err        error
}

// Error implements error.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: fetching %s failed with status %d", e.Source, e.Collection, e.StatusCode)
	}
	return fmt.Sprintf("%s: fetching %s failed: %v", e.Source, e.Collection, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// DecodeError is a payload that could not be turned into records.
type DecodeError struct {
	Source     string
	Collection string
	Field      string
	Value      string
	Err        error
}

// Error implements error.
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: decoding %s: invalid %s='%s': %v",
			e.Source, e.Collection, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: decoding %s: %v", e.Source, e.Collection, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is a file format or source kind the loader does not
// understand.
type UnsupportedFormatError struct {
	Kind     string
	Value    string
	Expected []string
}

// Error implements error.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported %s '%s' (expected one of %v)", e.Kind, e.Value, e.Expected)
}
