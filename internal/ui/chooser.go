package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/wavebreaker/internal/draft"
)

// ErrNothingPending is returned by Answer when no draft is waiting.
var ErrNothingPending = errors.New("no draft pending")

// Chooser holds an open draft until the player answers it with a number
// key. It implements draft.Chooser.
type Chooser struct {
	cards []draft.Card
	pick  func(draft.Card) error

	owned    []string
	incoming draft.Card
	drop     func(string) error
}

// Choose parks the offer until Answer is called.
func (c *Chooser) Choose(_ context.Context, cards []draft.Card, pick func(draft.Card) error) {
	c.cards, c.pick = cards, pick
}

// Discard parks the discard prompt until Answer is called.
func (c *Chooser) Discard(_ context.Context, owned []string, incoming draft.Card, drop func(string) error) {
	c.owned, c.incoming, c.drop = owned, incoming, drop
}

// Offer returns the cards on offer, if any.
func (c *Chooser) Offer() []draft.Card { return c.cards }

// Discarding returns the owned abilities to choose from and the card
// waiting for a slot.
func (c *Chooser) Discarding() ([]string, draft.Card, bool) {
	return c.owned, c.incoming, c.drop != nil
}

// Answer resolves the pending prompt with a 1-based choice. For a discard
// prompt 0 keeps the current abilities.
func (c *Chooser) Answer(n int) error {
	switch {
	case c.drop != nil:
		id := ""
		if n > 0 {
			if n > len(c.owned) {
				return fmt.Errorf("discard %d of %d: %w", n, len(c.owned), draft.ErrNotOffered)
			}
			id = c.owned[n-1]
		}
		drop := c.drop
		c.owned, c.drop = nil, nil
		return drop(id)

	case c.pick != nil:
		if n < 1 || n > len(c.cards) {
			return fmt.Errorf("pick %d of %d: %w", n, len(c.cards), draft.ErrNotOffered)
		}
		pick, card := c.pick, c.cards[n-1]
		c.cards, c.pick = nil, nil
		// A pick without a free slot comes straight back through Discard.
		return pick(card)
	}
	return ErrNothingPending
}
