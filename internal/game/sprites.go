package game

import (
	"github.com/google/uuid"

	"github.com/samdwyer/wavebreaker/internal/entity"
)

// SpriteSink is the renderer side of the scene. The simulation tells it
// what appeared and what went away; it never reads anything back.
type SpriteSink interface {
	AddSprites(sprites ...entity.Sprite)
	DelSprites(sprites ...entity.Sprite)
}

// SpriteSet is a SpriteSink that keeps the live sprites by ID.
type SpriteSet struct {
	live  map[uuid.UUID]entity.Sprite
	order []uuid.UUID
}

// NewSpriteSet creates an empty set.
func NewSpriteSet() *SpriteSet {
	return &SpriteSet{live: make(map[uuid.UUID]entity.Sprite)}
}

// AddSprites registers sprites. Re-adding a live sprite is a no-op.
func (s *SpriteSet) AddSprites(sprites ...entity.Sprite) {
	for _, sp := range sprites {
		id := sp.SpriteID()
		if _, ok := s.live[id]; ok {
			continue
		}
		s.live[id] = sp
		s.order = append(s.order, id)
	}
}

// DelSprites forgets sprites.
func (s *SpriteSet) DelSprites(sprites ...entity.Sprite) {
	for _, sp := range sprites {
		delete(s.live, sp.SpriteID())
	}
}

// Len returns the number of live sprites.
func (s *SpriteSet) Len() int { return len(s.live) }

// Tagged returns live sprites with the given tag, oldest first.
func (s *SpriteSet) Tagged(tag string) []entity.Sprite {
	var out []entity.Sprite
	kept := s.order[:0]
	for _, id := range s.order {
		sp, ok := s.live[id]
		if !ok {
			continue
		}
		kept = append(kept, id)
		if sp.Tag() == tag {
			out = append(out, sp)
		}
	}
	s.order = kept
	return out
}
