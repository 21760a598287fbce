package logging

import (
	"fmt"
	"sync"
)

// MockLogger records entries instead of writing them. Loggers derived with
// WithError/WithField(s) share the parent's entry store, so a test can hand
// the root mock to the code under test and inspect everything it logged.
// Fatal and Fatalf record a FATAL entry and return.
type MockLogger struct {
	store  *entryStore
	err    error
	fields []Field
}

type entryStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry is one recorded call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// Field returns the value of key and whether the entry carries it.
func (e LogEntry) Field(key string) (interface{}, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// NewMockLogger returns an empty mock.
func NewMockLogger() *MockLogger {
	return &MockLogger{store: &entryStore{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	if m.store == nil {
		m.store = &entryStore{}
	}
	all := make([]Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)

	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.entries = append(m.store.entries, LogEntry{Level: level, Message: msg, Fields: all, Error: m.err})
}

func (m *MockLogger) derive(err error, fields []Field) *MockLogger {
	if m.store == nil {
		m.store = &entryStore{}
	}
	all := make([]Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)
	return &MockLogger{store: m.store, err: err, fields: all}
}

// Debug records a DEBUG entry.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info records an INFO entry.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn records a WARN entry.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error records an ERROR entry.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// Fatal records a FATAL entry.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, fields) }

// Fatalf records a formatted FATAL entry.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.record("FATAL", fmt.Sprintf(msg, args...), nil)
}

// WithError returns a logger carrying err.
func (m *MockLogger) WithError(err error) Logger {
	return m.derive(err, nil)
}

// WithField returns a logger carrying one extra field.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.derive(m.err, []Field{{Key: key, Value: value}})
}

// WithFields returns a logger carrying extra fields.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	return m.derive(m.err, fields)
}

// GetEntries returns a copy of every recorded entry.
func (m *MockLogger) GetEntries() []LogEntry {
	if m.store == nil {
		return nil
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return append([]LogEntry(nil), m.store.entries...)
}

// GetEntriesByLevel returns the entries logged at level ("DEBUG", "INFO",
// "WARN", "ERROR" or "FATAL").
func (m *MockLogger) GetEntriesByLevel(level string) []LogEntry {
	var out []LogEntry
	for _, e := range m.GetEntries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasEntry reports whether an entry with level and message was recorded.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, e := range m.GetEntries() {
		if e.Level == level && e.Message == message {
			return true
		}
	}
	return false
}

// Clear drops every recorded entry.
func (m *MockLogger) Clear() {
	if m.store == nil {
		return
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.entries = nil
}
