// Package world provides the arena geometry the simulation collides with.
// It generates and answers queries about geometry; it never draws it.
package world

// Tile is the kind of a piece of arena geometry.
type Tile int

const (
	// TileSolid blocks from every side (floor and walls).
	TileSolid Tile = iota
	// TilePlatform only supports actors falling onto it from above.
	TilePlatform
)

// Tag returns the sprite tag used to query tiles of this kind.
func (t Tile) Tag() string {
	switch t {
	case TileSolid:
		return TagTile
	case TilePlatform:
		return TagPlatform
	default:
		return ""
	}
}

// Sprite tags understood by Arena.Sprites.
const (
	TagTile     = "tile"
	TagPlatform = "platform"
)
