// ABOUTME: Main entry point for the standalone tubewise HTTP daemon
// ABOUTME: Loads config, builds the service, and serves the JSON API until signalled
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/tubewise/internal/api"
	"github.com/harper/tubewise/internal/config"
	"github.com/harper/tubewise/internal/logging"
	"github.com/harper/tubewise/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found")
	}

	cfg, err := config.LoadFile(os.Getenv("TUBEWISE_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty && isatty.IsTerminal(os.Stderr.Fd()))

	if cfg.LLMAPIKey == "" && cfg.LLMProvider == config.ProviderOpenAI {
		log.Warn().Msg("LLM API key not set - generation requests will fail")
	}

	svc, err := service.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Serve(ctx, cfg.HTTPAddr, api.NewRouter(svc)); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
