package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/samdwyer/wavebreaker/internal/draft"
	"github.com/samdwyer/wavebreaker/internal/game"
)

var frames int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game driven by the autopilot",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&frames, "frames", 36000, "frames to simulate (60 per second)")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if err := setupLogging(os.Stderr); err != nil {
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

	chooser := &draft.AutoChooser{}
	g, err := game.New(ctx, cfg, game.Options{Chooser: chooser})
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}
	chooser.Rng = g.Rand()

	stats := g.Simulate(ctx, game.NewAutopilot(), frames)
	printSummary(cmd, g, stats, chooser.Picks)
	return nil
}

func printSummary(cmd *cobra.Command, g *game.Game, stats game.RunStats, picks []draft.Card) {
	out := cmd.OutOrStdout()
	p := g.Player()
	st := g.Wave()

	fmt.Fprintf(out, "seed      %d\n", g.Seed())
	fmt.Fprintf(out, "outcome   %s after %d frames\n", g.State(), stats.Frames)
	fmt.Fprintf(out, "reached   area %d wave %d floor %d\n", st.Area, st.Wave, st.Floor)
	fmt.Fprintf(out, "player    level %d, %.0f/%.0f hp\n", p.Level.Level, p.Stats().Combat.Health, p.Stats().Combat.MaxHealth)
	fmt.Fprintf(out, "kills     %d (%d bosses), %d waves cleared\n", stats.Kills, stats.BossesKilled, stats.WavesCleared)
	fmt.Fprintf(out, "orbs      %d collected, %d level-ups\n", stats.Orbs, stats.LevelUps)
	fmt.Fprintf(out, "drafts    %d served, %d queued, %d starved\n", stats.Drafts, stats.Queued, stats.Starved)
	for _, c := range picks {
		fmt.Fprintf(out, "  picked  %-7s %s\n", c.Kind, c.Name)
	}
}
