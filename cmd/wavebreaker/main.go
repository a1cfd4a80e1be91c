// Package main is the entry point for Wavebreaker.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/wavebreaker/internal/game"
	"github.com/samdwyer/wavebreaker/internal/telemetry"
)

var (
	logLevel     string
	otelEndpoint string
	seed         int64
	startArea    int
	abilitySlots int
)

var rootCmd = &cobra.Command{
	Use:   "wavebreaker",
	Short: "Wavebreaker combat and progression core",
	Long: `Wavebreaker runs the combat and progression core of a wave-survival
platformer: headless autopilot simulations, curve inspection, and a
terminal front end.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to WAVEBREAKER_LOG_LEVEL or info")
	flags.StringVar(&otelEndpoint, "otel-endpoint", "", "OTLP/HTTP collector URL; defaults to OTEL_EXPORTER_OTLP_ENDPOINT")
	flags.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	flags.IntVar(&startArea, "area", 1, "area the run starts in")
	flags.IntVar(&abilitySlots, "slots", 0, "ability slots (0 uses the tuning file)")

	rootCmd.AddCommand(simulateCmd, curveCmd, playCmd)
}

// setupOTelEnv maps Honeycomb settings onto the standard OTEL variables.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_WAVEBREAKER_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_WAVEBREAKER_DATASET")
	if dataset == "" {
		dataset = "wavebreaker"
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupLogging installs the default slog logger writing to w.
func setupLogging(w io.Writer) error {
	name := logLevel
	if name == "" {
		name = envOr("WAVEBREAKER_LOG_LEVEL", "info")
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// shutdownTimeout bounds the final span flush.
const shutdownTimeout = 5 * time.Second

// startTelemetry sets up tracing when an endpoint is configured. Failure
// only costs observability.
func startTelemetry(ctx context.Context, runSeed int64) func() {
	opts := telemetry.Options{Endpoint: otelEndpoint, Seed: runSeed}
	if !telemetry.Enabled(opts) {
		return func() {}
	}

	shutdown, err := telemetry.Setup(ctx, opts)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Run will continue without observability")
		return func() {}
	}
	return func() {
		// ctx is usually cancelled by now; flushing needs its own deadline.
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}
}

// runConfig reads WAVEBREAKER_* variables, then applies flags the user set.
func runConfig(cmd *cobra.Command) (game.Config, error) {
	cfg, err := game.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("area") {
		cfg.StartArea = startArea
	}
	if flags.Changed("slots") {
		cfg.AbilitySlots = abilitySlots
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}
