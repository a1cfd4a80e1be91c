package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
)

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies []EnemyDef
	maxTier int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	r := &EnemyRegistry{enemies: enemies, maxTier: 1}
	for _, e := range enemies {
		if e.Tier > r.maxTier {
			r.maxTier = e.Tier
		}
	}
	return r
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// Boss returns the first definition of the given rank.
func (r *EnemyRegistry) Boss(rank Rank) (*EnemyDef, error) {
	for i := range r.enemies {
		if r.enemies[i].Rank == rank {
			return &r.enemies[i], nil
		}
	}
	return nil, fmt.Errorf("no enemy with rank %q", rank)
}

// Roster builds the weighted spawn table for a point in an area.
// progress runs from 0 at the first wave of the area to 1 at the last.
// Tier 1 enemies fade as progress grows; higher tiers unlock at evenly
// spaced thresholds and grow more common after that.
func (r *EnemyRegistry) Roster(progress float64) *Roster {
	progress = min(max(progress, 0), 1)

	roster := &Roster{}
	for i := range r.enemies {
		def := &r.enemies[i]
		if def.IsBoss() || def.SpawnWeight <= 0 {
			continue
		}

		var weight float64
		tier := max(def.Tier, 1)
		if tier == 1 {
			weight = float64(def.SpawnWeight) * (1.5 - progress)
		} else {
			unlock := float64(tier-1) / float64(r.maxTier)
			if progress < unlock {
				continue
			}
			weight = float64(def.SpawnWeight) * (0.5 + progress)
		}

		roster.entries = append(roster.entries, rosterEntry{def: def, weight: weight})
		roster.total += weight
	}
	return roster
}

type rosterEntry struct {
	def    *EnemyDef
	weight float64
}

// Roster is a weighted enemy table for one wave.
type Roster struct {
	entries []rosterEntry
	total   float64
}

// Len returns the number of enemy types that can spawn.
func (r *Roster) Len() int {
	return len(r.entries)
}

// Weight returns the weight of the enemy with the given ID, 0 if absent.
func (r *Roster) Weight(id string) float64 {
	for _, e := range r.entries {
		if e.def.ID == id {
			return e.weight
		}
	}
	return 0
}

// Pick selects an enemy definition using weighted probability.
func (r *Roster) Pick(rng *rand.Rand) *EnemyDef {
	if r.total <= 0 || len(r.entries) == 0 {
		return nil
	}

	roll := rng.Float64() * r.total

	cumulative := 0.0
	for _, e := range r.entries {
		cumulative += e.weight
		if roll < cumulative {
			return e.def
		}
	}

	// Float rounding can leave roll == total.
	return r.entries[len(r.entries)-1].def
}

// CardRegistry indexes ability and talent card text by ID.
type CardRegistry struct {
	abilities map[string]*AbilityDef
	talents   map[string]*TalentDef
	file      CardsFile
}

// NewCardRegistry creates a registry from loaded card definitions.
func NewCardRegistry(file CardsFile) *CardRegistry {
	registry := &CardRegistry{
		abilities: make(map[string]*AbilityDef, len(file.Abilities)),
		talents:   make(map[string]*TalentDef, len(file.Talents)),
		file:      file,
	}
	for i := range file.Abilities {
		registry.abilities[file.Abilities[i].ID] = &file.Abilities[i]
	}
	for i := range file.Talents {
		registry.talents[file.Talents[i].ID] = &file.Talents[i]
	}
	return registry
}

// LoadCardRegistry loads and creates a registry from the embedded cards.json.
func LoadCardRegistry() (*CardRegistry, error) {
	file, err := LoadCards()
	if err != nil {
		return nil, err
	}
	if len(file.Abilities) == 0 {
		return nil, errors.New("no abilities loaded from cards.json")
	}
	return NewCardRegistry(file), nil
}

// MustLoadCardRegistry loads a registry, panicking on error.
func MustLoadCardRegistry() *CardRegistry {
	registry, err := LoadCardRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Ability returns the ability definition with the given ID, or nil if not found.
func (r *CardRegistry) Ability(id string) *AbilityDef {
	return r.abilities[id]
}

// Talent returns the talent definition with the given ID, or nil if not found.
func (r *CardRegistry) Talent(id string) *TalentDef {
	return r.talents[id]
}

// Abilities returns all ability definitions in file order.
func (r *CardRegistry) Abilities() []AbilityDef {
	return r.file.Abilities
}

// Talents returns all talent definitions in file order.
func (r *CardRegistry) Talents() []TalentDef {
	return r.file.Talents
}
