package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/samdwyer/wavebreaker/internal/game"
	"github.com/samdwyer/wavebreaker/internal/ui"
)

var logFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play in the terminal. Move with a/d or the arrow keys, jump with w or
space, double-tap a direction to dash. j slashes, k dash-strikes, l casts
bolt, u ignites, i shouts. Number keys answer drafts; q quits.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&logFile, "log-file", "", "write logs here instead of discarding them")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	// The terminal belongs to the screen; logs go to a file or nowhere.
	var sink io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		sink = f
	}
	if err := setupLogging(sink); err != nil {
		return err
	}

	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stopTelemetry := startTelemetry(ctx, cfg.Seed)
	defer stopTelemetry()

	chooser := &ui.Chooser{}
	g, err := game.New(ctx, cfg, game.Options{Chooser: chooser})
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}

	scr, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer scr.Close()

	if err := ui.Play(ctx, g, scr, chooser); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
