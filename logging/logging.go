// Package logging builds the slog.Logger the example CLI uses, lifted
// from the teacher bot's cmd/bot/main.go inline
// setup (parseLogLevel plus text/JSON handler selection) into a
// reusable constructor.
package logging

import (
	"log/slog"
	"os"

	"lobkit/config"
)

// New builds a slog.Logger writing to os.Stdout per cfg.
func New(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps the config-file level spelling to a slog.Level,
// defaulting to Info for anything unrecognised.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
