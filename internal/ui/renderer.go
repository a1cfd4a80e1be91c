package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wavebreaker/internal/game"
	"github.com/samdwyer/wavebreaker/internal/world"
)

// hudRows is the number of status lines under the arena.
const hudRows = 2

// Renderer handles drawing the game to the screen. One world unit is one
// terminal cell; the view scrolls to keep the player centred.
type Renderer struct {
	screen *Screen

	camX, camY float64
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the arena, every actor, the HUD and any open draft.
func (r *Renderer) Render(g *game.Game, c *Chooser) {
	r.screen.Clear()
	w, h := r.screen.Size()
	r.follow(g, w, h-hudRows)

	arena := g.Arena()
	for _, tile := range []world.Tile{world.TileSolid, world.TilePlatform} {
		style, ch := tileStyle(tile)
		for _, rect := range arena.Sprites(tile.Tag()) {
			r.fill(rect, ch, style, h-hudRows)
		}
	}

	orbStyle := tcell.StyleDefault.Foreground(tcell.ColorAqua)
	for _, o := range g.Orbs() {
		r.fill(o.Bounds(), '*', orbStyle, h-hudRows)
	}

	for _, e := range g.Enemies() {
		style := tcell.StyleDefault.Foreground(e.Def.TCellColor())
		if e.Def.IsBoss() {
			style = style.Bold(true)
		}
		glyph := 'e'
		if name := []rune(e.Def.Name); len(name) > 0 {
			glyph = name[0]
		}
		r.fill(e.Bounds(), glyph, style, h-hudRows)
	}

	p := g.Player()
	playerStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	r.fill(p.Bounds(), '@', playerStyle, h-hudRows)

	r.hud(g, h-hudRows)

	if c != nil {
		r.draft(c, w, h)
	}
	if g.State() == game.StateGameOver {
		r.centered("GAME OVER - press q to quit", w, h/2, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}

	r.screen.Show()
}

// follow moves the camera so the player stays in view.
func (r *Renderer) follow(g *game.Game, w, h int) {
	arena := g.Arena()
	pos := g.Player().Body.Pos
	r.camX = clampView(pos.X-float64(w)/2, arena.Width, float64(w))
	r.camY = clampView(arena.Height-float64(h), arena.Height, float64(h))
}

func clampView(v, extent, view float64) float64 {
	if view >= extent {
		return 0
	}
	return min(max(v, 0), extent-view)
}

// fill paints every cell a world rect covers.
func (r *Renderer) fill(rect world.Rect, ch rune, style tcell.Style, rows int) {
	x0 := int(math.Floor(rect.X - r.camX))
	y0 := int(math.Floor(rect.Y - r.camY))
	x1 := int(math.Ceil(rect.Right() - r.camX))
	y1 := int(math.Ceil(rect.Bottom() - r.camY))
	for y := max(y0, 0); y < min(y1, rows); y++ {
		for x := max(x0, 0); x < x1; x++ {
			r.screen.SetContent(x, y, ch, style)
		}
	}
}

func (r *Renderer) hud(g *game.Game, row int) {
	p := g.Player()
	st := g.Wave()
	stats := g.Stats()
	combat := p.Stats().Combat

	bar := int(p.Level.Progress() * 10)
	line := fmt.Sprintf("HP %3.0f/%-3.0f  LV %d [%s%s]  area %d wave %d floor %d  kills %d",
		combat.Health, combat.MaxHealth, p.Level.Level,
		strings.Repeat("#", bar), strings.Repeat(".", 10-bar),
		st.Area, st.Wave, st.Floor, stats.Kills)
	if st.Boss != "" {
		line += "  BOSS"
	}
	r.screen.Text(0, row, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	x := 0
	for _, ab := range p.Abilities {
		style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
		label := ab.ID()
		if cd, ok := ab.(interface{ Remaining() float64 }); ok && cd.Remaining() > 0 {
			style = tcell.StyleDefault.Foreground(tcell.ColorGray)
			label = fmt.Sprintf("%s %.0f", label, math.Ceil(cd.Remaining()))
		}
		x = r.screen.Text(x, row+1, label, style) + 2
	}
	for _, t := range p.Talents {
		x = r.screen.Text(x, row+1, t.ID(), tcell.StyleDefault.Foreground(tcell.ColorFuchsia)) + 2
	}
}

// draft lists the open offer or discard prompt in the middle of the view.
func (r *Renderer) draft(c *Chooser, w, h int) {
	var lines []string
	if owned, incoming, ok := c.Discarding(); ok {
		lines = append(lines, fmt.Sprintf("No free slot for %s. Discard:", incoming.Name))
		for i, id := range owned {
			lines = append(lines, fmt.Sprintf("%d) %s", i+1, id))
		}
		lines = append(lines, "0) keep current abilities")
	} else if offer := c.Offer(); len(offer) > 0 {
		lines = append(lines, fmt.Sprintf("Choose a %s:", offer[0].Kind))
		for i, card := range offer {
			lines = append(lines, fmt.Sprintf("%d) %s - %s", i+1, card.Name, card.Description))
		}
	}
	if len(lines) == 0 {
		return
	}

	style := tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	top := (h - len(lines)) / 2
	for i, line := range lines {
		r.centered(line, w, top+i, style)
	}
}

func (r *Renderer) centered(msg string, w, y int, style tcell.Style) {
	x := max((w-len([]rune(msg)))/2, 0)
	r.screen.Text(x, y, msg, style)
}

// tileStyle returns the appropriate style and glyph for a tile type.
func tileStyle(tile world.Tile) (tcell.Style, rune) {
	switch tile {
	case world.TileSolid:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray), '#'
	case world.TilePlatform:
		return tcell.StyleDefault.Foreground(tcell.ColorGray), '='
	default:
		return tcell.StyleDefault, ' '
	}
}
