package commands

import (
	"log/slog"
	"os"

	"github.com/tripscout/scout/internal/config"
	"github.com/tripscout/scout/internal/pipeline"
	"github.com/tripscout/scout/internal/serpapi"
)

// newLogger writes to stderr so stdout carries only JSON results.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func buildPipeline(cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	client := serpapi.NewClient(serpapi.Config{
		APIKey:      cfg.SerpAPIKey,
		MaxAttempts: cfg.RetryAttempts,
		RetryDelay:  cfg.RetryDelay,
		RateLimit:   cfg.RateLimit,
	}, logger)
	return pipeline.New(cfg, client, logger)
}
