package sourceerror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name     string
		err      *FetchError
		expected string
	}{
		{
			name:     "transport failure",
			err:      &FetchError{Source: "http", Collection: "expenses", Err: cause},
			expected: "http: fetching expenses failed: connection refused",
		},
		{
			name:     "bad status",
			err:      &FetchError{Source: "http", Collection: "budgets", StatusCode: 502},
			expected: "http: fetching budgets failed with status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}

	assert.True(t, errors.Is(&FetchError{Source: "sql", Collection: "incomes", Err: cause}, cause))
}

func TestDecodeError(t *testing.T) {
	cause := errors.New("bad digit")

	tests := []struct {
		name     string
		err      *DecodeError
		expected string
	}{
		{
			name:     "with field",
			err:      &DecodeError{Source: "file", Collection: "expenses", Field: "amount", Value: "12,x", Err: cause},
			expected: "file: decoding expenses: invalid amount='12,x': bad digit",
		},
		{
			name:     "whole payload",
			err:      &DecodeError{Source: "http", Collection: "categories", Err: cause},
			expected: "http: decoding categories: bad digit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.Equal(t, cause, tt.err.Unwrap())
		})
	}
}

func TestUnsupportedFormatError(t *testing.T) {
	err := &UnsupportedFormatError{Kind: "file format", Value: "xml", Expected: []string{"json", "yaml", "csv"}}
	assert.Equal(t, "unsupported file format 'xml' (expected one of [json yaml csv])", err.Error())

	var target *UnsupportedFormatError
	assert.True(t, errors.As(error(err), &target))
}
