// Package logger wraps logrus with a process-wide structured logger
// configured from the application config.
package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Config controls the logger output.
type Config struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "json" or "text"
	Output string `json:"output" yaml:"output"` // "stdout", "stderr" or "discard"
}

// Logger wraps logrus.Logger.
type Logger struct {
	*logrus.Logger
}

var (
	standardLogger *Logger
	once           sync.Once
)

// StandardLogger returns the singleton logger instance.
func StandardLogger() *Logger {
	once.Do(func() {
		standardLogger = &Logger{Logger: logrus.New()}
		standardLogger.SetFormatter(&logrus.JSONFormatter{})
	})
	return standardLogger
}

// Init applies the configuration to the logger.
func (l *Logger) Init(c *Config) error {
	if c == nil {
		return nil
	}

	if c.Level != "" {
		level, err := logrus.ParseLevel(c.Level)
		if err != nil {
			return err
		}
		l.SetLevel(level)
	}

	switch c.Format {
	case "json", "":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{})
	}

	switch c.Output {
	case "stderr":
		l.SetOutput(os.Stderr)
	case "discard":
		l.SetOutput(io.Discard)
	default:
		l.SetOutput(os.Stdout)
	}

	return nil
}

// ctxKey is the context key type for logger fields.
type ctxKey struct{}

// WithFields attaches structured fields to the context so downstream log
// lines carry them.
func WithFields(ctx context.Context, fields logrus.Fields) context.Context {
	merged := logrus.Fields{}
	if prev, ok := ctx.Value(ctxKey{}).(logrus.Fields); ok {
		for k, v := range prev {
			merged[k] = v
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, ctxKey{}, merged)
}

// FromContext returns a log entry carrying any fields attached to the
// context.
func FromContext(ctx context.Context) *logrus.Entry {
	l := StandardLogger()
	if fields, ok := ctx.Value(ctxKey{}).(logrus.Fields); ok {
		return l.WithFields(fields)
	}
	return logrus.NewEntry(l.Logger)
}
