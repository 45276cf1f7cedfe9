package config

import (
	_ "embed"
)

//go:embed defaults/bullscows.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration.
// It matches defaults/bullscows.yaml and is used if the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			SecretLength: 4,
			MaxAttempts:  10,
			TimeToGuess:  30,
		},
		Limits: LimitsConfig{
			MaxAttempts:    999,
			MaxTimeToGuess: 3600,
		},
		Timing: TimingConfig{
			RedrawIntervalMS: 250,
			PollIntervalMS:   25,
		},
		SSH: SSHConfig{
			Address:            ":23235",
			HostKeyPath:        "",
			IdleTimeoutMinutes: 15,
		},
	}
}
