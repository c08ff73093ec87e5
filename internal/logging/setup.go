// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Setup installs a text logger on w as the slog default and returns it.
// Every record carries a run_id so the lines of one invocation can be
// grouped. verbose lowers the level to debug.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	logger := slog.New(handler).With("run_id", uuid.NewString())
	slog.SetDefault(logger)
	return logger
}
