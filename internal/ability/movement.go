package ability

import (
	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/input"
	"github.com/samdwyer/wavebreaker/internal/signal"
)

// Dash is a burst of horizontal speed triggered by double-tapping a
// direction. The owner ignores contact damage while dashing.
type Dash struct {
	base
}

// NewDash creates a dash bound to the double-tap tokens.
func NewDash(def gamedata.AbilityDef, owner entity.Owner) entity.Ability {
	return &Dash{base: newBase(def, owner, input.KeyDashLeft, input.KeyDashRight)}
}

// Call dashes in the direction of the token.
func (a *Dash) Call(s entity.Scene, key input.Key) bool {
	if !a.begin(s.Context(), eventTrigger) {
		return false
	}

	dir := 1.0
	if key == input.KeyDashLeft {
		dir = -1
	}

	actor := a.owner.Base()
	actor.Body.Facing = dir
	actor.Body.Vel.X = dir * a.def.Speed
	actor.Immune.Grant(combat.DamageContact, a.def.Duration)

	a.emit(s, signal.Dash, signal.Motion{Direction: dir})
	return true
}
