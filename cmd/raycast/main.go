// Package main is the entry point for the raycast renderer.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/raycast/internal/game"
	"github.com/samdwyer/raycast/internal/telemetry"
	"github.com/samdwyer/raycast/internal/window"
)

func main() {
	// Load .env file for local development
	// This makes RAYCAST_* and HONEYCOMB_RAYCAST_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Renderer will run without observability")
		// Continue without telemetry - rendering still works
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if err := run(ctx, cfg); err != nil {
		log.Printf("Renderer error: %v", err)
		stop()
		os.Exit(1)
	}
}

// run starts the configured frame driver and blocks until it exits.
func run(ctx context.Context, cfg game.Config) error {
	switch cfg.Backend {
	case game.BackendTerminal:
		g, err := game.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		return g.Run(ctx)
	case game.BackendWindow:
		return window.Run(ctx, cfg)
	default:
		return errors.Join(game.ErrUnknownBackend, fmt.Errorf("backend %q", cfg.Backend))
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_RAYCAST_API_KEY")
	dataset := os.Getenv("HONEYCOMB_RAYCAST_DATASET")
	if dataset == "" {
		dataset = "raycast" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
