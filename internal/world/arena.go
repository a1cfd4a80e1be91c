package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wavebreaker/internal/telemetry"
)

const (
	// Default arena dimensions
	DefaultWidth  = 160.0
	DefaultHeight = 36.0

	// ScreenWidth is how far from the player enemies spawn.
	ScreenWidth = 48.0

	floorThickness = 2.0

	// BSP parameters
	minPlatformWidth = 6  // Minimum platform span
	maxPlatformWidth = 14 // Maximum platform span
	minLeafWidth     = 18 // Minimum BSP leaf width before stopping split
)

// Arena is one floor's collision geometry.
type Arena struct {
	Width     float64
	Height    float64
	Solids    []Rect
	Platforms []Rect
	rng       *rand.Rand
}

// NewArena creates an empty arena with only a floor. A nil rng gets a
// time-seeded source.
func NewArena(width, height float64, rng *rand.Rand) *Arena {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Arena{
		Width:  width,
		Height: height,
		Solids: []Rect{{X: 0, Y: height - floorThickness, Width: width, Height: floorThickness}},
		rng:    rng,
	}
}

// FloorY returns the y coordinate actors stand on at ground level.
func (a *Arena) FloorY() float64 {
	return a.Height - floorThickness
}

// Generate lays out platforms by recursively splitting the arena's width.
func (a *Arena) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "arena.generate")
	defer span.End()

	root := &bspNode{x: 1, width: int(a.Width) - 2}
	a.splitNode(root)
	a.createPlatforms(root)

	span.SetAttributes(
		attribute.Float64("arena.width", a.Width),
		attribute.Float64("arena.height", a.Height),
		attribute.Int("arena.platform_count", len(a.Platforms)),
	)
}

// Sprites returns the geometry registered under tag.
func (a *Arena) Sprites(tag string) []Rect {
	switch tag {
	case TagTile:
		return a.Solids
	case TagPlatform:
		return a.Platforms
	default:
		return nil
	}
}

// ClampX keeps a box of the given width inside the side walls.
func (a *Arena) ClampX(x, width float64) float64 {
	if x < 0 {
		return 0
	}
	if x > a.Width-width {
		return a.Width - width
	}
	return x
}

// Clamp keeps a point inside the arena bounds.
func (a *Arena) Clamp(p Vec2) Vec2 {
	if p.X < 0 {
		p.X = 0
	}
	if p.X > a.Width {
		p.X = a.Width
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y > a.FloorY() {
		p.Y = a.FloorY()
	}
	return p
}

// Landing checks whether a box moving from prev to next crosses the top
// of any supporting surface while falling. It returns the surface's y.
func (a *Arena) Landing(prev, next Rect) (float64, bool) {
	best, found := 0.0, false
	check := func(s Rect) {
		if !next.OverlapsX(s) {
			return
		}
		if prev.Bottom() <= s.Y && next.Bottom() >= s.Y {
			if !found || s.Y < best {
				best, found = s.Y, true
			}
		}
	}
	for _, s := range a.Solids {
		check(s)
	}
	for _, p := range a.Platforms {
		check(p)
	}
	return best, found
}

// bspNode represents a horizontal span in the BSP tree.
type bspNode struct {
	x, width    int
	left, right *bspNode
	platform    *Rect
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (a *Arena) splitNode(node *bspNode) {
	if node.width < minLeafWidth*2 {
		return
	}

	min := minLeafWidth
	max := node.width - minLeafWidth
	if max <= min {
		return
	}
	splitPos := min + a.rng.Intn(max-min+1)

	node.left = &bspNode{x: node.x, width: splitPos}
	node.right = &bspNode{x: node.x + splitPos, width: node.width - splitPos}

	a.splitNode(node.left)
	a.splitNode(node.right)
}

// createPlatforms places one platform in each leaf of the BSP tree.
func (a *Arena) createPlatforms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		a.createPlatforms(node.left)
		a.createPlatforms(node.right)
		return
	}

	span := maxPlatformWidth - minPlatformWidth + 1
	if room := node.width - minPlatformWidth - 1; room < span {
		span = room
	}
	if span <= 0 {
		return
	}
	width := minPlatformWidth + a.rng.Intn(span)
	x := node.x + a.rng.Intn(node.width-width)

	// Platforms sit between 4 and 12 units above the floor
	y := a.FloorY() - 4 - float64(a.rng.Intn(9))

	platform := Rect{X: float64(x), Y: y, Width: float64(width), Height: 1}
	node.platform = &platform
	a.Platforms = append(a.Platforms, platform)
}
