// Package talent implements the player's reactive modifiers. A talent
// subscribes to a fixed set of signals on the player's bus and reacts by
// resolving damage or healing, or by rewriting a strike before it lands.
package talent

import (
	"fmt"
	"slices"

	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/signal"
)

// Entry describes one talent in the catalog.
type Entry struct {
	New func() entity.Talent
	// Eligible is the static draft predicate. Nil means always eligible.
	Eligible func(p *entity.Player) bool
}

var catalog = map[string]Entry{
	"lifesteal":    {New: func() entity.Talent { return &Lifesteal{Fraction: 0.1} }},
	"combo":        {New: func() entity.Talent { return &Combo{Step: 0.1, MaxStacks: 10, Window: 120} }},
	"sharpshooter": {New: func() entity.Talent { return &Sharpshooter{MinDistance: 8, PerUnit: 0.02} }, Eligible: owns("bolt")},
	"thorns":       {New: func() entity.Talent { return &Thorns{Fraction: 0.3} }},
	"kindling":     {New: func() entity.Talent { return &Kindling{Fraction: 0.5, Duration: 120, Cooldown: 90} }},
	"second_wind":  {New: func() entity.Talent { return &SecondWind{Threshold: 0.3, Fraction: 0.4, Cooldown: 1800} }, Eligible: has("lifesteal")},
	"momentum":     {New: func() entity.Talent { return &Momentum{Bonus: 0.25, Duration: 90} }, Eligible: owns("dash")},
}

// IDs returns every talent ID, sorted.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Entry, bool) {
	e, ok := catalog[id]
	return e, ok
}

// New creates a fresh instance of the talent with the given ID.
func New(id string) (entity.Talent, error) {
	e, ok := catalog[id]
	if !ok {
		return nil, fmt.Errorf("unknown talent %q", id)
	}
	return e.New(), nil
}

// Eligible reports whether p may be offered the talent: it must exist, not
// be owned yet, and pass its predicate.
func Eligible(id string, p *entity.Player) bool {
	e, ok := catalog[id]
	if !ok || p.HasTalent(id) {
		return false
	}
	return e.Eligible == nil || e.Eligible(p)
}

func owns(ability string) func(*entity.Player) bool {
	return func(p *entity.Player) bool { return p.HasAbility(ability) }
}

func has(talent string) func(*entity.Player) bool {
	return func(p *entity.Player) bool { return p.HasTalent(talent) }
}

// cooldown is the internal cooldown some talents carry.
type cooldown float64

func (c *cooldown) ready() bool      { return *c <= 0 }
func (c *cooldown) decay(dt float64) { *c = cooldown(max(float64(*c)-dt, 0)) }
func (c *cooldown) start(t float64)  { *c = cooldown(t) }

// damageOf extracts the resolved damage event from a signal.
func damageOf(ev signal.Event) (d signal.Damage, ok bool) {
	d, ok = ev.Payload.(signal.Damage)
	return d, ok && d.Event != nil
}
