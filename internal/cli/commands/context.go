package commands

import (
	"context"
	"log/slog"

	"github.com/seismotools/mtstash/internal/cli/config"
)

// ConfigKey is the context key under which the loaded config is stored.
type ConfigKey struct{}

// LoggerKey is the context key under which the CLI logger is stored.
type LoggerKey struct{}

// getConfig retrieves the config from the command context.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(ConfigKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{Source: config.DefaultSource}
}

// getLogger retrieves the logger from the command context.
func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
