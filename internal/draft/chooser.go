package draft

import (
	"context"
	"math/rand"
)

// AutoChooser picks cards at random on the spot. It drives headless runs.
type AutoChooser struct {
	Rng *rand.Rand

	// Picks records every card taken, in order.
	Picks []Card
}

// Choose takes a random card.
func (a *AutoChooser) Choose(_ context.Context, cards []Card, pick func(Card) error) {
	if len(cards) == 0 {
		return
	}
	c := cards[a.Rng.Intn(len(cards))]
	if pick(c) == nil {
		a.Picks = append(a.Picks, c)
	}
}

// Discard drops a random owned ability.
func (a *AutoChooser) Discard(_ context.Context, owned []string, _ Card, drop func(string) error) {
	if len(owned) == 0 {
		drop("")
		return
	}
	drop(owned[a.Rng.Intn(len(owned))])
}
