package gamedata

import (
	"github.com/gdamore/tcell/v2"
)

// Rank separates regular enemies from floor bosses.
type Rank string

const (
	RankNormal   Rank = ""
	RankMiniBoss Rank = "mini_boss"
	RankBoss     Rank = "boss"
)

// EnemyDef defines an enemy type loaded from JSON.
type EnemyDef struct {
	ID           string   `json:"id"`           // Unique identifier (e.g., "slime")
	Name         string   `json:"name"`         // Display name
	Color        string   `json:"color"`        // Hex tint for front ends
	Rank         Rank     `json:"rank"`         // Normal, mini boss or boss
	Tier         int      `json:"tier"`         // 1..3, later tiers show up later in an area
	HP           float64  `json:"hp"`           // Health at level 1
	Damage       float64  `json:"damage"`       // Contact damage at level 1
	Speed        float64  `json:"speed"`        // Max horizontal speed
	Width        float64  `json:"width"`        // Hitbox width
	Height       float64  `json:"height"`       // Hitbox height
	Knockback    float64  `json:"knockback"`    // Knockback resistance 0..1
	XPMultiplier float64  `json:"xpMultiplier"` // Scales the enemy XP curve
	XPOrbs       int      `json:"xpOrbs"`       // Number of orbs the XP is split into
	SpawnWeight  int      `json:"spawnWeight"`  // Relative spawn frequency
	Abilities    []string `json:"abilities"`    // Ability IDs the enemy owns
}

// TCellColor returns the tint as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// IsBoss reports whether the enemy only appears as a floor boss.
func (e *EnemyDef) IsBoss() bool {
	return e.Rank == RankMiniBoss || e.Rank == RankBoss
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
