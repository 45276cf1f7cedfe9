package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named set of game parameters.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyCustom DifficultyPreset = "custom" // Keep whatever the config file says
)

// PresetInfo describes a preset for listings.
type PresetInfo struct {
	Preset DifficultyPreset
	Game   GameConfig
}

// presets holds the parameters for every named preset except custom.
var presets = []PresetInfo{
	{Preset: DifficultyEasy, Game: GameConfig{SecretLength: 3, MaxAttempts: 12, TimeToGuess: 60}},
	{Preset: DifficultyNormal, Game: GameConfig{SecretLength: 4, MaxAttempts: 10, TimeToGuess: 30}},
	{Preset: DifficultyHard, Game: GameConfig{SecretLength: 5, MaxAttempts: 8, TimeToGuess: 15}},
}

// Presets returns the named presets in order of increasing difficulty.
func Presets() []PresetInfo {
	out := make([]PresetInfo, len(presets))
	copy(out, presets)
	return out
}

// ParsePreset converts user input to a preset. Empty input means custom.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyCustom, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyCustom:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or custom): %w", s, ErrInvalidConfig)
	}
}

// ApplyPreset overwrites the game section with the preset's parameters.
// Custom leaves the config untouched. Limits are raised if a preset needs more room.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	for _, p := range presets {
		if p.Preset != preset {
			continue
		}
		cfg.Game = p.Game
		if cfg.Limits.MaxAttempts < p.Game.MaxAttempts {
			cfg.Limits.MaxAttempts = p.Game.MaxAttempts
		}
		if cfg.Limits.MaxTimeToGuess < p.Game.TimeToGuess {
			cfg.Limits.MaxTimeToGuess = p.Game.TimeToGuess
		}
		return
	}
}
