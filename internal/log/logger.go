// Package log sets up structured logging and names the components and
// fields used across the application.
package log

import (
	"log/slog"
	"os"
)

// Setup initializes the default slog logger with a text handler at the
// given level and returns it.
func Setup(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// ForComponent returns a logger tagged with a component name.
func ForComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(FieldComponent, component)
}
