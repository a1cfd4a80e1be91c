package gamedata

import (
	"github.com/samdwyer/wavebreaker/internal/leveling"
)

// PlayerDef holds the starting stats of the player character.
type PlayerDef struct {
	HP             float64  `json:"hp"`
	BaseDamage     float64  `json:"baseDamage"`
	CritChance     float64  `json:"critChance"`
	CritMultiplier float64  `json:"critMultiplier"`
	MaxSpeed       float64  `json:"maxSpeed"`
	Acceleration   float64  `json:"acceleration"`
	Friction       float64  `json:"friction"`
	Jumps          int      `json:"jumps"`
	JumpPower      float64  `json:"jumpPower"`
	Width          float64  `json:"width"`
	Height         float64  `json:"height"`
	Slots          int      `json:"slots"`
	Abilities      []string `json:"abilities"`
}

// WaveTuning paces the spawn scheduler.
type WaveTuning struct {
	WavesPerArea       int     `json:"wavesPerArea"`
	FloorEvery         int     `json:"floorEvery"`         // waves per floor
	CountExponent      float64 `json:"countExponent"`      // wave^k in the enemy count
	CountOffset        float64 `json:"countOffset"`        // added to wave^k
	ConcurrentFraction float64 `json:"concurrentFraction"` // concurrent cap as a share of the total
	SpawnPeriod        float64 `json:"spawnPeriod"`        // ticks between spawns
	NextWaveDelay      float64 `json:"nextWaveDelay"`      // ticks between waves
	EnemyLevelScale    float64 `json:"enemyLevelScale"`    // enemy level = ceil(level * scale)
	MiniBossFloors     []int   `json:"miniBossFloors"`
	BossFloors         []int   `json:"bossFloors"`
}

// Tuning is the full set of balance constants.
type Tuning struct {
	Player      PlayerDef      `json:"player"`
	Level       leveling.Curve `json:"level"`
	EnemyXP     leveling.Curve `json:"enemyXP"`
	EnemyGrowth float64        `json:"enemyGrowth"` // stat growth per enemy level
	Waves       WaveTuning     `json:"waves"`
}

// LoadTuning loads balance constants from tuning.json.
func LoadTuning() (Tuning, error) {
	return Load[Tuning]("tuning.json")
}

// MustLoadTuning loads tuning, panicking on error.
func MustLoadTuning() Tuning {
	return MustLoad[Tuning]("tuning.json")
}
