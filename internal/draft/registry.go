// Package draft offers ability and talent cards to the player and attaches
// the picked card.
package draft

import (
	"fmt"

	"github.com/samdwyer/wavebreaker/internal/ability"
	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/talent"
)

// Kind is the type of card a draft offers.
type Kind int

const (
	KindTalent Kind = iota
	KindAbility
	numKinds
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTalent:
		return "talent"
	case KindAbility:
		return "ability"
	default:
		return "unknown"
	}
}

// Card is one offered choice.
type Card struct {
	Kind        Kind
	ID          string
	Name        string
	Description string
}

// Registry is the static catalog of everything that can be drafted.
type Registry struct {
	cards *gamedata.CardRegistry
}

// NewRegistry creates a registry over the loaded card text.
func NewRegistry(cards *gamedata.CardRegistry) *Registry {
	return &Registry{cards: cards}
}

// Pool returns the cards of kind p may be offered right now, in catalog
// order. Owned cards and talents whose prerequisites are missing are left
// out.
func (r *Registry) Pool(kind Kind, p *entity.Player) []Card {
	var pool []Card
	switch kind {
	case KindTalent:
		for _, id := range talent.IDs() {
			def := r.cards.Talent(id)
			if def == nil || !talent.Eligible(id, p) {
				continue
			}
			pool = append(pool, Card{Kind: kind, ID: id, Name: def.Name, Description: def.Description})
		}
	case KindAbility:
		for _, def := range r.cards.Abilities() {
			if !def.Draftable || p.HasAbility(def.ID) {
				continue
			}
			pool = append(pool, Card{Kind: kind, ID: def.ID, Name: def.Name, Description: def.Description})
		}
	}
	return pool
}

// Ability builds the ability with the given ID for owner.
func (r *Registry) Ability(id string, owner entity.Owner) (entity.Ability, error) {
	def := r.cards.Ability(id)
	if def == nil {
		return nil, fmt.Errorf("ability %q has no card", id)
	}
	return ability.New(*def, owner)
}

// Talent builds a fresh talent instance.
func (r *Registry) Talent(id string) (entity.Talent, error) {
	return talent.New(id)
}
