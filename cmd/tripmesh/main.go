// Command tripmesh runs the cycling trip planner HTTP API.
//
// Configuration comes from the environment (a local .env file is loaded when
// present):
//
//	PORT               listen port (default 8000)
//	LOG_LEVEL          debug | info | warn | error (default info)
//	MODEL_PROVIDER     anthropic | openai (default anthropic)
//	ANTHROPIC_API_KEY  required when MODEL_PROVIDER=anthropic
//	OPENAI_API_KEY     required when MODEL_PROVIDER=openai
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hupe1980/tripmesh"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/model"
	"github.com/hupe1980/tripmesh/model/anthropic"
	"github.com/hupe1980/tripmesh/model/openai"
	"github.com/hupe1980/tripmesh/server"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run0())
}

func run0() int {
	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	logger := logging.NewSlogLogger(logging.ParseLevel(os.Getenv("LOG_LEVEL")), "json", os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Error("fatal error", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, logger logging.Logger) error {
	provider, err := buildProvider()
	if err != nil {
		return err
	}

	planner, err := tripmesh.New(provider, func(o *tripmesh.Options) {
		o.Logger = logger
	})
	if err != nil {
		return fmt.Errorf("planner: %w", err)
	}

	port := 8000
	if raw := os.Getenv("PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", raw, err)
		}
		port = p
	}

	srv := server.New(server.Config{
		Planner:      planner,
		Logger:       logger,
		Port:         port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		Version:      version,
	})

	logger.Info("tripmesh starting",
		"version", version,
		"port", port,
		"model", provider.Info().Name,
		"provider", provider.Info().Provider,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	return nil
}

// buildProvider selects the model backend from MODEL_PROVIDER. API keys fall
// through to the SDK defaults when the matching env var is unset, so the
// respective client resolves credentials its usual way.
func buildProvider() (model.Provider, error) {
	switch name := os.Getenv("MODEL_PROVIDER"); name {
	case "", "anthropic":
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required when MODEL_PROVIDER=anthropic")
		}
		return anthropic.NewProvider(), nil
	case "openai":
		if os.Getenv("OPENAI_API_KEY") == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when MODEL_PROVIDER=openai")
		}
		return openai.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q (expected anthropic or openai)", name)
	}
}
