package logging

import (
	"context"
	"io"
	"maps"
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLogger is a structured logger backed by logrus.
// Text output goes to stderr so analysis results on stdout stay clean.
type DefaultLogger struct {
	base   *logrus.Logger
	fields Fields
}

// NewDefaultLogger creates a logger writing text records to stderr at Info level
func NewDefaultLogger() *DefaultLogger {
	return NewLogger(os.Stderr, InfoLevel)
}

// NewLogger creates a logger writing to w with the given minimum level
func NewLogger(w io.Writer, level Level) *DefaultLogger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   !isTerminal(w),
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	base.SetLevel(toLogrusLevel(level))

	return &DefaultLogger{
		base:   base,
		fields: make(Fields),
	}
}

// NewJSONLogger creates a logger emitting one JSON object per record
func NewJSONLogger(w io.Writer, level Level) *DefaultLogger {
	l := NewLogger(w, level)
	l.base.SetFormatter(&logrus.JSONFormatter{})
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if fileInfo, _ := f.Stat(); fileInfo != nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func toLogrusLevel(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

func (d *DefaultLogger) entry(err error, fields []Fields) *logrus.Entry {
	all := make(logrus.Fields, len(d.fields))
	maps.Copy(all, d.fields)
	for _, f := range fields {
		maps.Copy(all, f)
	}

	e := d.base.WithFields(all)
	if err != nil {
		e = e.WithError(err)
	}
	return e
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.entry(nil, fields).Debug(msg)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.entry(nil, fields).Info(msg)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.entry(nil, fields).Warn(msg)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.entry(err, fields).Error(msg)
}

// Fatal logs and exits the process with status 1
func (d *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	d.entry(err, fields).Fatal(msg)
}

func (d *DefaultLogger) WithFields(fields Fields) Logger {
	newFields := make(Fields, len(d.fields)+len(fields))
	maps.Copy(newFields, d.fields)
	maps.Copy(newFields, fields)

	return &DefaultLogger{
		base:   d.base,
		fields: newFields,
	}
}

func (d *DefaultLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := fieldsFromContext(ctx); ok {
		return d.WithFields(fields)
	}
	return d
}

// SetLevel changes the level of the shared logrus logger, so it also
// affects loggers derived through WithFields.
func (d *DefaultLogger) SetLevel(level Level) {
	d.base.SetLevel(toLogrusLevel(level))
}

// NoOpLogger discards everything. Used in tests and when logging is disabled.
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (n *NoOpLogger) Info(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) Fatal(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) WithFields(fields Fields) Logger               { return n }
func (n *NoOpLogger) WithContext(ctx context.Context) Logger        { return n }
func (n *NoOpLogger) SetLevel(level Level)                          {}
