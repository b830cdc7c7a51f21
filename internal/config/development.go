package config

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// NewLogger returns a colored debug logger in development and a JSON logger
// otherwise.
func (c Config) NewLogger() *slog.Logger {
	if c.Development {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}
