package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wavebreaker/internal/game"
)

// FrameRate is the simulation rate of interactive play.
const FrameRate = 60

// Play runs g in the terminal until the player quits or ctx is cancelled.
// Number keys answer drafts; everything else goes to the simulation.
func Play(ctx context.Context, g *game.Game, scr *Screen, chooser *Chooser) error {
	keys := NewKeys()
	renderer := NewRenderer(scr)

	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	go scr.Events(events, quit)
	defer close(quit)

	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return nil
				}
				if n, ok := digit(ev); ok && chooser != nil {
					if err := chooser.Answer(n); err != nil {
						slog.DebugContext(ctx, "draft answer rejected", "choice", n, "err", err)
					}
					continue
				}
				keys.Press(ev)
			case *tcell.EventResize:
				scr.Sync()
			}

		case <-ticker.C:
			g.Update(ctx, keys.Frame(), 1)
			renderer.Render(g, chooser)
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func digit(ev *tcell.EventKey) (int, bool) {
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}
	r := ev.Rune()
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}
