package app

import (
	"log/slog"
	"os"
)

// NewLogger returns the process logger. Production keeps Info level and
// drops source locations; everywhere else logs Debug with sources so
// aggregation bugs can be traced to the emitting file.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}
	if cfg.IsProduction() {
		opts.Level = slog.LevelInfo
		opts.AddSource = false
	}

	var handler slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With(slog.String("service", "aquafarm-erp"))
}
