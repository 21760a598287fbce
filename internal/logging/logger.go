// Package logging is the structured logging facade used by every package
// that reports progress. The core transformations stay silent; data loading,
// chart assembly and commands log through Logger.
package logging

// Logger is a structured, leveled logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger that attaches err to every entry.
	WithError(err error) Logger
	// WithField returns a logger that attaches key=value to every entry.
	WithField(key string, value interface{}) Logger
	// WithFields returns a logger that attaches fields to every entry.
	WithFields(fields ...Field) Logger

	// Fatal logs and exits the process.
	Fatal(msg string, fields ...Field)
	// Fatalf logs a formatted message and exits the process.
	Fatalf(msg string, args ...interface{})
}

// Field is one key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
