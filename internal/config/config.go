// Package config provides YAML-based configuration loading and
// difficulty presets for the bulls & cows game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ivymerfe/bullscows/internal/core"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains the complete application configuration.
type Config struct {
	Game   GameConfig   `yaml:"game"`
	Limits LimitsConfig `yaml:"limits"`
	Timing TimingConfig `yaml:"timing"`
	SSH    SSHConfig    `yaml:"ssh"`
}

// GameConfig holds the default game parameters offered to the player.
type GameConfig struct {
	SecretLength int `yaml:"secret_length"`
	MaxAttempts  int `yaml:"max_attempts"`
	TimeToGuess  int `yaml:"time_to_guess"` // seconds
}

// LimitsConfig bounds what the player may choose in the settings prompt.
type LimitsConfig struct {
	MaxAttempts    int `yaml:"max_attempts"`
	MaxTimeToGuess int `yaml:"max_time_to_guess"` // seconds
}

// TimingConfig tunes the countdown prompt.
type TimingConfig struct {
	RedrawIntervalMS int `yaml:"redraw_interval_ms"` // Status line refresh cadence
	PollIntervalMS   int `yaml:"poll_interval_ms"`   // Sleep between input checks
}

// SSHConfig holds defaults for the serve command.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// Parameters converts the game section into session parameters.
func (c Config) Parameters() core.GameParameters {
	return core.GameParameters{
		SecretLength: c.Game.SecretLength,
		MaxAttempts:  c.Game.MaxAttempts,
		TimeToGuess:  c.Game.TimeToGuess,
	}
}

// RedrawInterval returns the status refresh cadence as a duration.
func (c Config) RedrawInterval() time.Duration {
	return time.Duration(c.Timing.RedrawIntervalMS) * time.Millisecond
}

// PollInterval returns the input poll sleep as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Timing.PollIntervalMS) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.SSH.IdleTimeoutMinutes) * time.Minute
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if err := c.Parameters().Validate(); err != nil {
		return fmt.Errorf("config: game: %w", errors.Join(err, ErrInvalidConfig))
	}
	if c.Limits.MaxAttempts < core.MinAttempts {
		return fmt.Errorf("config: limits.max_attempts must be at least %d: %w", core.MinAttempts, ErrInvalidConfig)
	}
	if c.Limits.MaxTimeToGuess < core.MinTimeToGuess {
		return fmt.Errorf("config: limits.max_time_to_guess must be at least %d: %w", core.MinTimeToGuess, ErrInvalidConfig)
	}
	if c.Game.MaxAttempts > c.Limits.MaxAttempts {
		return fmt.Errorf("config: game.max_attempts %d exceeds limit %d: %w",
			c.Game.MaxAttempts, c.Limits.MaxAttempts, ErrInvalidConfig)
	}
	if c.Game.TimeToGuess > c.Limits.MaxTimeToGuess {
		return fmt.Errorf("config: game.time_to_guess %d exceeds limit %d: %w",
			c.Game.TimeToGuess, c.Limits.MaxTimeToGuess, ErrInvalidConfig)
	}
	if c.Timing.RedrawIntervalMS <= 0 || c.Timing.PollIntervalMS <= 0 {
		return fmt.Errorf("config: timing intervals must be positive: %w", ErrInvalidConfig)
	}
	return nil
}
