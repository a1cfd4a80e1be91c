package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/draft"
)

// Config holds run configuration options.
type Config struct {
	// Seed for random number generation. A seed of 0 means a random seed
	// will be generated.
	Seed int64
	// MaxDT caps the frame-time multiplier.
	MaxDT float64
	// Variance is the damage variance fraction.
	Variance float64
	// AbilitySlots overrides the player's slot count when positive.
	AbilitySlots int
	// DraftSize is how many cards a draft offers.
	DraftSize int
	// HitstopScale multiplies dt while hitstop is active.
	HitstopScale float64
	// StartArea is the area the first wave belongs to.
	StartArea int
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		MaxDT:        3,
		Variance:     combat.DefaultVariance,
		DraftSize:    draft.DefaultSize,
		HitstopScale: 0.2,
		StartArea:    1,
	}
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	switch {
	case c.MaxDT <= 0:
		return errors.New("max dt must be positive")
	case c.Variance < 0 || c.Variance >= 1:
		return fmt.Errorf("variance %v outside [0, 1)", c.Variance)
	case c.HitstopScale <= 0 || c.HitstopScale > 1:
		return fmt.Errorf("hitstop scale %v outside (0, 1]", c.HitstopScale)
	case c.DraftSize < 1:
		return errors.New("draft size must be at least 1")
	case c.StartArea < 1:
		return errors.New("start area must be at least 1")
	case c.AbilitySlots < 0:
		return errors.New("ability slots must not be negative")
	}
	return nil
}

// Environment variables read by ConfigFromEnv.
const (
	EnvSeed         = "WAVEBREAKER_SEED"
	EnvMaxDT        = "WAVEBREAKER_MAX_DT"
	EnvVariance     = "WAVEBREAKER_VARIANCE"
	EnvAbilitySlots = "WAVEBREAKER_ABILITY_SLOTS"
	EnvDraftSize    = "WAVEBREAKER_DRAFT_SIZE"
	EnvHitstopScale = "WAVEBREAKER_HITSTOP_SCALE"
	EnvStartArea    = "WAVEBREAKER_START_AREA"
)

// ConfigFromEnv starts from DefaultConfig and applies every WAVEBREAKER_*
// variable that is set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	ints := []struct {
		key string
		dst *int
	}{
		{EnvAbilitySlots, &cfg.AbilitySlots},
		{EnvDraftSize, &cfg.DraftSize},
		{EnvStartArea, &cfg.StartArea},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", v.key, err)
		}
		*v.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{EnvMaxDT, &cfg.MaxDT},
		{EnvVariance, &cfg.Variance},
		{EnvHitstopScale, &cfg.HitstopScale},
	}
	for _, v := range floats {
		raw, ok := os.LookupEnv(v.key)
		if !ok || raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", v.key, err)
		}
		*v.dst = f
	}

	if raw, ok := os.LookupEnv(EnvSeed); ok && raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}

	return cfg, cfg.Validate()
}
