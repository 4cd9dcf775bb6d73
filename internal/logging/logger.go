package logging

import (
	"log/slog"
	"os"
)

// Setup installs the initial global slog logger (JSON to stdout). Once the
// database is up, main swaps in a MultiHandler that also persists ERROR+
// records.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
