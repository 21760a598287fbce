package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter implements Logger on top of logrus.
type LogrusAdapter struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// NewLogrusAdapter returns a Logger writing to stderr.
//
// level is one of logrus' level names ("debug", "info", ...); an invalid
// level falls back to info. format is "json" or "text".
func NewLogrusAdapter(level, format string) Logger {
	return NewLogrusAdapterWithOutput(level, format, os.Stderr)
}

// NewLogrusAdapterWithOutput is NewLogrusAdapter writing to w. Tables and
// series go to stdout, so logs must not.
func NewLogrusAdapterWithOutput(level, format string, w io.Writer) Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(ParseLevel(level))

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return NewLogrusAdapterFromLogger(logger)
}

// NewLogrusAdapterFromLogger wraps an existing logrus logger. A nil logger
// is replaced by a fresh one.
func NewLogrusAdapterFromLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogrusAdapter{
		logger: logger,
		entry:  logrus.NewEntry(logger),
	}
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Debug logs a debug-level message with optional fields.
func (l *LogrusAdapter) Debug(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Debug(msg)
}

// Info logs an info-level message with optional fields.
func (l *LogrusAdapter) Info(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Info(msg)
}

// Warn logs a warning-level message with optional fields.
func (l *LogrusAdapter) Warn(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Warn(msg)
}

// Error logs an error-level message with optional fields.
func (l *LogrusAdapter) Error(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Error(msg)
}

// Fatal logs a fatal-level message with optional fields.
func (l *LogrusAdapter) Fatal(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Fatal(msg)
}

// Fatalf logs a formatted fatal-level message.
func (l *LogrusAdapter) Fatalf(msg string, args ...interface{}) {
	l.entry.Fatalf(msg, args...)
}

// WithError returns a logger carrying err.
func (l *LogrusAdapter) WithError(err error) Logger {
	return &LogrusAdapter{logger: l.logger, entry: l.entry.WithError(err)}
}

// WithField returns a logger carrying one extra field.
func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return &LogrusAdapter{logger: l.logger, entry: l.entry.WithField(key, value)}
}

// WithFields returns a logger carrying extra fields.
func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return &LogrusAdapter{logger: l.logger, entry: l.entry.WithFields(convertFields(fields))}
}

// Level returns the effective level of the underlying logger.
func (l *LogrusAdapter) Level() logrus.Level {
	return l.logger.GetLevel()
}

func convertFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
