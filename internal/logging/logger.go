package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// SetupCLI installs a text logger for the command-line client. Only warnings
// are shown unless verbose is set.
func SetupCLI(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
