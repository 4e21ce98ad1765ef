// Package log wraps slog with a component field and shared field-name
// constants, so log lines stay greppable across the server and the worker.
package log

import (
	"log/slog"
	"os"
)

// Logger is a slog.Logger that stamps every record with its component.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// New creates a component logger. When no handler is given, a text handler
// on stdout is used.
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.Level,
		})
	}
	return &Logger{
		Logger:    slog.New(handler).With(FieldComponent, config.Component),
		component: config.Component,
	}
}

// WithComponent returns a logger for a sub-component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With(FieldComponent, component),
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs the logger as the process-wide slog default, so
// package-level slog calls inherit the component field.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}
