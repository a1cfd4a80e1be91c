// Package ability implements the player's and enemies' abilities. Every
// ability owns a cooldown and a small state machine; multi-frame abilities
// take over their owner's movement while active.
package ability

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/looplab/fsm"

	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/input"
	"github.com/samdwyer/wavebreaker/internal/signal"
)

// Machine states.
const (
	StateIdle      = "idle"
	StateCooldown  = "cooldown"
	StateActive    = "active"
	StateResolving = "resolving"
)

// Machine events.
const (
	eventTrigger  = "trigger"  // instant effect, straight to cooldown
	eventActivate = "activate" // multi-frame effect begins
	eventHit      = "hit"      // collision found while active
	eventFinish   = "finish"   // effect over, wait for the cooldown
	eventReady    = "ready"    // cooldown elapsed
)

// CritHitstop is how many raw frames a critical hit freezes the scene for.
const CritHitstop = 4

// Cooldown counts down in ticks.
type Cooldown struct {
	Timer     float64
	Remaining float64
}

// Ready reports whether the cooldown has elapsed.
func (c *Cooldown) Ready() bool { return c.Remaining <= 0 }

// Start restarts the countdown from Timer.
func (c *Cooldown) Start() { c.Remaining = c.Timer }

// Decay advances the countdown by dt, never below zero.
func (c *Cooldown) Decay(dt float64) {
	c.Remaining = max(c.Remaining-dt, 0)
}

// Machine is the per-instance ability state machine.
type Machine struct {
	fsm *fsm.FSM
}

// NewMachine creates a machine in the idle state.
func NewMachine(id string) *Machine {
	return &Machine{
		fsm: fsm.NewFSM(
			StateIdle,
			fsm.Events{
				{Name: eventTrigger, Src: []string{StateIdle}, Dst: StateCooldown},
				{Name: eventActivate, Src: []string{StateIdle}, Dst: StateActive},
				{Name: eventHit, Src: []string{StateActive}, Dst: StateResolving},
				{Name: eventFinish, Src: []string{StateActive, StateResolving}, Dst: StateCooldown},
				{Name: eventReady, Src: []string{StateCooldown}, Dst: StateIdle},
			},
			fsm.Callbacks{
				"enter_state": func(ctx context.Context, e *fsm.Event) {
					slog.DebugContext(ctx, "ability state", "ability", id, "from", e.Src, "to", e.Dst)
				},
			},
		),
	}
}

// State returns the current state name.
func (m *Machine) State() string { return m.fsm.Current() }

// Is reports whether the machine is in state.
func (m *Machine) Is(state string) bool { return m.fsm.Is(state) }

// Fire runs a transition. It returns false when the event is not valid
// from the current state.
func (m *Machine) Fire(ctx context.Context, event string) bool {
	if !m.fsm.Can(event) {
		return false
	}
	return m.fsm.Event(ctx, event) == nil
}

// base carries what every ability shares.
type base struct {
	def     gamedata.AbilityDef
	owner   entity.Owner
	keys    []input.Key
	passive bool

	cd      Cooldown
	machine *Machine
}

func newBase(def gamedata.AbilityDef, owner entity.Owner, keys ...input.Key) base {
	return base{
		def:     def,
		owner:   owner,
		keys:    keys,
		cd:      Cooldown{Timer: def.Cooldown},
		machine: NewMachine(def.ID),
	}
}

// ID returns the registry ID.
func (b *base) ID() string { return b.def.ID }

// Passive reports whether the ability runs without input.
func (b *base) Passive() bool { return b.passive }

// Bound reports whether key triggers the ability.
func (b *base) Bound(key input.Key) bool { return slices.Contains(b.keys, key) }

// Remaining returns the cooldown left, in ticks.
func (b *base) Remaining() float64 { return b.cd.Remaining }

// State returns the state machine's current state.
func (b *base) State() string { return b.machine.State() }

// Controlling is true while a multi-frame effect is running.
func (b *base) Controlling() bool {
	return b.machine.Is(StateActive) || b.machine.Is(StateResolving)
}

// DecayCooldown advances the cooldown and returns to idle once it elapses.
func (b *base) DecayCooldown(dt float64) {
	b.cd.Decay(dt)
}

// Update is a no-op for instant abilities.
func (b *base) Update(s entity.Scene, dt float64) {
	b.settle(s.Context())
}

// begin starts the cooldown if the ability is ready. An ability on
// cooldown, or still running, ignores the call.
func (b *base) begin(ctx context.Context, event string) bool {
	b.settle(ctx)
	if !b.cd.Ready() || !b.machine.Is(StateIdle) {
		return false
	}
	b.cd.Start()
	return b.machine.Fire(ctx, event)
}

// finish ends a multi-frame effect.
func (b *base) finish(ctx context.Context) {
	b.machine.Fire(ctx, eventFinish)
	b.settle(ctx)
}

// settle moves a cooling-down machine back to idle once the timer is done.
func (b *base) settle(ctx context.Context) {
	if b.cd.Ready() && b.machine.Is(StateCooldown) {
		b.machine.Fire(ctx, eventReady)
	}
}

// damage is the owner's outgoing damage for an ability of the given power.
func (b *base) damage(power float64) float64 {
	c := b.owner.Stats().Combat
	return c.BaseDamage * power * c.DamageMultiplier
}

// emit sends a signal to the owner's talents.
func (b *base) emit(s entity.Scene, kind signal.Kind, payload signal.Payload) {
	b.owner.Base().Emit(s, signal.Event{Kind: kind, Payload: payload})
}

// opponents returns the living actors the owner can hit.
func opponents(s entity.Scene, owner entity.Owner) []entity.Owner {
	if _, isPlayer := owner.(*entity.Player); isPlayer {
		var out []entity.Owner
		for _, e := range s.Enemies() {
			if !e.Dead() {
				out = append(out, e)
			}
		}
		return out
	}
	if p := s.Player(); p != nil && !p.Dead() {
		return []entity.Owner{p}
	}
	return nil
}

// Factory builds an ability for an owner.
type Factory func(def gamedata.AbilityDef, owner entity.Owner) entity.Ability

var factories = map[string]Factory{
	"slash":        NewSlash,
	"dash_strike":  NewDashStrike,
	"dash":         NewDash,
	"bolt":         NewBolt,
	"ignite":       NewIgnite,
	"warcry":       NewWarcry,
	"regeneration": NewRegeneration,
	"contact":      NewContact,
}

// IDs returns every registered ability ID, sorted.
func IDs() []string {
	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// New builds the ability with the given ID from its card definition.
func New(def gamedata.AbilityDef, owner entity.Owner) (entity.Ability, error) {
	factory, ok := factories[def.ID]
	if !ok {
		return nil, fmt.Errorf("unknown ability %q", def.ID)
	}
	return factory(def, owner), nil
}
