package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/leveling"
)

var levels int

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the experience and enemy drop curves",
	RunE:  runCurve,
}

func init() {
	curveCmd.Flags().IntVar(&levels, "levels", 20, "number of levels to print")
}

func runCurve(cmd *cobra.Command, _ []string) error {
	tuning, err := gamedata.LoadTuning()
	if err != nil {
		return fmt.Errorf("load tuning: %w", err)
	}
	enemies, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return fmt.Errorf("load enemies: %w", err)
	}

	drop := leveling.Drop{Curve: tuning.EnemyXP}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "level\txp to next\ttotal xp\t")
	for _, def := range enemies.All() {
		fmt.Fprintf(w, "%s\t", def.ID)
	}
	fmt.Fprintln(w)

	total := 0.0
	for level := 1; level <= levels; level++ {
		need := tuning.Level.At(level)
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t", level, need, total)
		for _, def := range enemies.All() {
			fmt.Fprintf(w, "%.1f\t", drop.Total(level, def.XPMultiplier))
		}
		fmt.Fprintln(w)
		total += need
	}
	return w.Flush()
}
