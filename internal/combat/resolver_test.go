package combat

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"pgregory.net/rapid"

	"github.com/samdwyer/wavebreaker/internal/stats"
)

// mockCombatant is a test implementation of the Combatant interface.
type mockCombatant struct {
	name     string
	sheet    stats.Sheet
	immunity Immunity

	damaged []*DamageEvent
	deaths  []*DamageEvent
	healed  []*HealEvent
}

func newMockCombatant(name string, hp float64) *mockCombatant {
	return &mockCombatant{
		name: name,
		sheet: stats.Sheet{
			Combat: stats.Combat{
				MaxHealth:         hp,
				Health:            hp,
				BaseDamage:        10,
				CritMultiplier:    2,
				DamageMultiplier:  1,
				HealingMultiplier: 1,
			},
		},
	}
}

func (m *mockCombatant) Name() string              { return m.name }
func (m *mockCombatant) Stats() *stats.Sheet       { return &m.sheet }
func (m *mockCombatant) Immunity() *Immunity       { return &m.immunity }
func (m *mockCombatant) OnDamaged(ev *DamageEvent) { m.damaged = append(m.damaged, ev) }
func (m *mockCombatant) OnDeath(ev *DamageEvent)   { m.deaths = append(m.deaths, ev) }
func (m *mockCombatant) OnHealed(ev *HealEvent)    { m.healed = append(m.healed, ev) }
func (m *mockCombatant) health() float64           { return m.sheet.Combat.Health }
func (m *mockCombatant) setHealth(v float64)       { m.sheet.Combat.Health = v }

func TestDamageTypeString(t *testing.T) {
	tests := []struct {
		dt       DamageType
		expected string
	}{
		{DamageContact, "contact"},
		{DamagePhysical, "physical"},
		{DamageMagical, "magical"},
		{DamageSpecial, "special"},
		{DamageType(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.dt.String(); got != tt.expected {
			t.Errorf("DamageType(%d).String() = %q, want %q", tt.dt, got, tt.expected)
		}
	}
}

func TestResolveDamageScenario(t *testing.T) {
	// crit 0, 25 requested, 10% variance: 22.5..27.5 rounds into 23..28
	for seed := int64(0); seed < 200; seed++ {
		resolver := NewResolver(rand.New(rand.NewSource(seed)), DefaultVariance)
		attacker := newMockCombatant("Knight", 100)
		target := newMockCombatant("Slime", 100)

		ev, err := resolver.ResolveDamage(context.Background(), DamageEvent{
			Source:    attacker,
			Target:    target,
			Type:      DamagePhysical,
			Requested: 25,
		})
		if err != nil {
			t.Fatalf("seed %d: unexpected rejection: %v", seed, err)
		}
		if ev.Amount < 23 || ev.Amount > 28 {
			t.Errorf("seed %d: amount %v outside [23,28]", seed, ev.Amount)
		}
		if ev.Amount != math.Trunc(ev.Amount) {
			t.Errorf("seed %d: amount %v is not whole", seed, ev.Amount)
		}
		if ev.Crit {
			t.Errorf("seed %d: crit with zero crit chance", seed)
		}
		if target.health() != 100-ev.Amount {
			t.Errorf("seed %d: health %v, want %v", seed, target.health(), 100-ev.Amount)
		}
	}
}

func TestResolveDamageCrit(t *testing.T) {
	resolver := NewResolver(rand.New(rand.NewSource(1)), 0)
	attacker := newMockCombatant("Rogue", 50)
	attacker.sheet.Combat.CritChance = 1
	attacker.sheet.Combat.CritMultiplier = 2.5
	target := newMockCombatant("Orc", 100)

	ev, err := resolver.ResolveDamage(context.Background(), DamageEvent{
		Source:    attacker,
		Target:    target,
		Type:      DamagePhysical,
		Requested: 11,
	})
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if !ev.Crit {
		t.Error("expected crit with crit chance 1")
	}
	// 11 * 2.5 = 27.5 rounds to 28 only because rounding happens after crit
	if ev.Amount != 28 {
		t.Errorf("amount = %v, want 28", ev.Amount)
	}
}

func TestResolveDamageImmunity(t *testing.T) {
	tests := []struct {
		name  string
		setup func(im *Immunity)
	}{
		{"timer", func(im *Immunity) { im.Grant(DamageContact, 10) }},
		{"locked", func(im *Immunity) { im.Lock(DamageContact, true) }},
		{"all", func(im *Immunity) { im.All = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(rand.New(rand.NewSource(7)), DefaultVariance)
			target := newMockCombatant("Player", 100)
			tt.setup(&target.immunity)

			ev, err := resolver.ResolveDamage(context.Background(), DamageEvent{
				Target:    target,
				Type:      DamageContact,
				Requested: 30,
			})
			if !errors.Is(err, ErrImmune) {
				t.Errorf("err = %v, want ErrImmune", err)
			}
			if ev != nil {
				t.Error("rejected event should be nil")
			}
			if target.health() != 100 {
				t.Errorf("health = %v, want 100", target.health())
			}
			if len(target.damaged) != 0 {
				t.Error("OnDamaged must not run on rejection")
			}
		})
	}
}

func TestImmunityOtherTypeStillHits(t *testing.T) {
	resolver := NewResolver(rand.New(rand.NewSource(7)), 0)
	target := newMockCombatant("Player", 100)
	target.immunity.Grant(DamageContact, 10)

	if _, err := resolver.ResolveDamage(context.Background(), DamageEvent{Target: target, Type: DamageMagical, Requested: 5}); err != nil {
		t.Fatalf("magical damage should pass contact immunity: %v", err)
	}
	if target.health() != 95 {
		t.Errorf("health = %v, want 95", target.health())
	}
}

func TestRejectionDoesNotConsumeRandomness(t *testing.T) {
	rng1 := rand.New(rand.NewSource(99))
	rng2 := rand.New(rand.NewSource(99))
	r1 := NewResolver(rng1, DefaultVariance)
	r2 := NewResolver(rng2, DefaultVariance)

	immune := newMockCombatant("Ghost", 100)
	immune.immunity.All = true
	attacker := newMockCombatant("Mage", 100)
	attacker.sheet.Combat.CritChance = 0.5

	// r1 sees a rejected event first
	if _, err := r1.ResolveDamage(context.Background(), DamageEvent{Source: attacker, Target: immune, Type: DamageMagical, Requested: 40}); err == nil {
		t.Fatal("expected rejection")
	}
	if _, err := r1.ResolveDamage(context.Background(), DamageEvent{Source: attacker, Type: DamageType(9), Target: immune}); err == nil {
		t.Fatal("expected rejection for invalid type")
	}

	for i := 0; i < 20; i++ {
		a := newMockCombatant("A", 1000)
		b := newMockCombatant("B", 1000)
		e1, err1 := r1.ResolveDamage(context.Background(), DamageEvent{Source: attacker, Target: a, Type: DamageMagical, Requested: 40})
		e2, err2 := r2.ResolveDamage(context.Background(), DamageEvent{Source: attacker, Target: b, Type: DamageMagical, Requested: 40})
		if err1 != nil || err2 != nil {
			t.Fatalf("unexpected errors: %v, %v", err1, err2)
		}
		if e1.Amount != e2.Amount || e1.Crit != e2.Crit {
			t.Fatalf("hit %d diverged: %+v vs %+v", i, e1, e2)
		}
	}
}

func TestResolveDamageInvalidType(t *testing.T) {
	resolver := NewResolver(rand.New(rand.NewSource(1)), DefaultVariance)
	target := newMockCombatant("Slime", 10)

	_, err := resolver.ResolveDamage(context.Background(), DamageEvent{Target: target, Type: DamageType(-1), Requested: 5})
	if !errors.Is(err, ErrInvalidType) {
		t.Errorf("err = %v, want ErrInvalidType", err)
	}
}

func TestResolveDamageLethal(t *testing.T) {
	resolver := NewResolver(rand.New(rand.NewSource(3)), 0)
	target := newMockCombatant("Bat", 12)

	ev, err := resolver.ResolveDamage(context.Background(), DamageEvent{Target: target, Type: DamagePhysical, Requested: 50})
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if target.health() != 0 {
		t.Errorf("health = %v, want 0", target.health())
	}
	if !ev.Lethal {
		t.Error("expected lethal flag")
	}
	if len(target.deaths) != 1 {
		t.Fatalf("death handler ran %d times, want 1", len(target.deaths))
	}
	if target.deaths[0].Amount != 50 {
		t.Errorf("death handler saw amount %v, want 50", target.deaths[0].Amount)
	}
	if len(target.damaged) != 1 {
		t.Error("OnDamaged must also run on lethal hits")
	}

	// A second hit on a corpse is rejected and does not re-run death
	if _, err := resolver.ResolveDamage(context.Background(), DamageEvent{Target: target, Type: DamagePhysical, Requested: 5}); !errors.Is(err, ErrDead) {
		t.Errorf("err = %v, want ErrDead", err)
	}
	if len(target.deaths) != 1 {
		t.Error("death handler ran twice")
	}
}

func TestResolveHeal(t *testing.T) {
	resolver := NewResolver(rand.New(rand.NewSource(1)), DefaultVariance)
	target := newMockCombatant("Player", 100)
	target.setHealth(40)

	ev, err := resolver.ResolveHeal(context.Background(), HealEvent{Target: target, Type: HealPotion, Requested: 20.4})
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if ev.Amount != 20 {
		t.Errorf("amount = %v, want 20", ev.Amount)
	}
	if target.health() != 60 {
		t.Errorf("health = %v, want 60", target.health())
	}
	if len(target.healed) != 1 {
		t.Error("OnHealed should run once")
	}
}

func TestResolveHealCapped(t *testing.T) {
	resolver := NewResolver(rand.New(rand.NewSource(1)), DefaultVariance)
	target := newMockCombatant("Player", 100)
	target.setHealth(95)

	ev, err := resolver.ResolveHeal(context.Background(), HealEvent{Target: target, Type: HealStatus, Requested: 30})
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if ev.Applied != 5 {
		t.Errorf("applied = %v, want 5", ev.Applied)
	}
	if target.health() != 100 {
		t.Errorf("health = %v, want 100", target.health())
	}
}

func TestResolveHealInvalidType(t *testing.T) {
	resolver := NewResolver(rand.New(rand.NewSource(1)), DefaultVariance)
	target := newMockCombatant("Player", 100)
	target.setHealth(50)

	if _, err := resolver.ResolveHeal(context.Background(), HealEvent{Target: target, Type: HealType(7), Requested: 10}); !errors.Is(err, ErrInvalidType) {
		t.Errorf("err = %v, want ErrInvalidType", err)
	}
	if target.health() != 50 {
		t.Errorf("health changed on rejected heal: %v", target.health())
	}
}

type runKey struct{}

// ctxHandler records the run value of every log call's context.
type ctxHandler struct{ runs []any }

func (h *ctxHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *ctxHandler) Handle(ctx context.Context, _ slog.Record) error {
	h.runs = append(h.runs, ctx.Value(runKey{}))
	return nil
}
func (h *ctxHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *ctxHandler) WithGroup(string) slog.Handler      { return h }

func TestRejectionsLogWithCallerContext(t *testing.T) {
	h := &ctxHandler{}
	old := slog.Default()
	slog.SetDefault(slog.New(h))
	t.Cleanup(func() { slog.SetDefault(old) })

	ctx := context.WithValue(context.Background(), runKey{}, "run-7")
	resolver := NewResolver(rand.New(rand.NewSource(1)), DefaultVariance)
	target := newMockCombatant("Slime", 10)

	resolver.ResolveDamage(ctx, DamageEvent{Target: target, Type: DamageType(-1), Requested: 5})
	resolver.ResolveHeal(ctx, HealEvent{Target: target, Type: HealType(7), Requested: 5})

	if len(h.runs) != 2 {
		t.Fatalf("logged %d records, want 2", len(h.runs))
	}
	for i, v := range h.runs {
		if v != "run-7" {
			t.Errorf("record %d logged with context value %v, want run-7", i, v)
		}
	}
}

func TestImmunityDecay(t *testing.T) {
	var im Immunity
	im.Grant(DamagePhysical, 3)
	im.Grant(DamagePhysical, 1) // shorter grant never shortens

	im.Decay(2)
	if !im.Blocks(DamagePhysical) {
		t.Error("should still be immune after 2 of 3 ticks")
	}
	im.Decay(1.5)
	if im.Blocks(DamagePhysical) {
		t.Error("immunity should have expired")
	}
	if im.Timers[DamagePhysical] != 0 {
		t.Errorf("timer = %v, want floor at 0", im.Timers[DamagePhysical])
	}
}

func TestHealthBoundsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		maxHP := rapid.Float64Range(1, 500).Draw(t, "maxHP")
		resolver := NewResolver(rand.New(rand.NewSource(seed)), DefaultVariance)

		attacker := newMockCombatant("A", 100)
		attacker.sheet.Combat.CritChance = rapid.Float64Range(0, 1).Draw(t, "crit")
		attacker.sheet.Combat.CritMultiplier = rapid.Float64Range(1, 4).Draw(t, "critMult")
		target := newMockCombatant("T", maxHP)

		hits := rapid.IntRange(1, 20).Draw(t, "hits")
		for i := 0; i < hits; i++ {
			requested := rapid.Float64Range(-10, 300).Draw(t, "requested")
			ev, err := resolver.ResolveDamage(context.Background(), DamageEvent{
				Source:    attacker,
				Target:    target,
				Type:      DamagePhysical,
				Requested: requested,
			})
			if h := target.health(); h < 0 || h > maxHP {
				t.Fatalf("health %v escaped [0,%v]", h, maxHP)
			}
			if err == nil && ev.Amount != math.Round(ev.Amount) {
				t.Fatalf("amount %v not whole", ev.Amount)
			}
			if rapid.Bool().Draw(t, "heal") && Alive(target) {
				resolver.ResolveHeal(context.Background(), HealEvent{Target: target, Type: HealPotion, Requested: requested})
				if h := target.health(); h < 0 || h > maxHP {
					t.Fatalf("health %v escaped [0,%v] after heal", h, maxHP)
				}
			}
		}
	})
}
