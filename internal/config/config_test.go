package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivymerfe/bullscows/internal/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestDefaultParametersAgree(t *testing.T) {
	if got, want := DefaultConfig().Parameters(), core.DefaultParameters(); got != want {
		t.Errorf("DefaultConfig().Parameters() = %+v, want %+v", got, want)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("game:\n  secret_length: 6\n  time_to_guess: 45\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Game.SecretLength != 6 {
		t.Errorf("SecretLength = %d, want 6", cfg.Game.SecretLength)
	}
	if cfg.Game.TimeToGuess != 45 {
		t.Errorf("TimeToGuess = %d, want 45", cfg.Game.TimeToGuess)
	}
	// Missing keys keep defaults
	if cfg.Game.MaxAttempts != 10 {
		t.Errorf("MaxAttempts = %d, want default 10", cfg.Game.MaxAttempts)
	}
	if cfg.Timing.RedrawIntervalMS != 250 {
		t.Errorf("RedrawIntervalMS = %d, want default 250", cfg.Timing.RedrawIntervalMS)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("game: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("game:\n  secret_length: 11\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
	if !errors.Is(err, core.ErrInvalidParameters) {
		t.Errorf("Load() error = %v, want it to wrap core.ErrInvalidParameters", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "length zero", mutate: func(c *Config) { c.Game.SecretLength = 0 }},
		{name: "length eleven", mutate: func(c *Config) { c.Game.SecretLength = 11 }},
		{name: "no attempts", mutate: func(c *Config) { c.Game.MaxAttempts = 0 }},
		{name: "attempts above limit", mutate: func(c *Config) { c.Game.MaxAttempts = 1000 }},
		{name: "time above limit", mutate: func(c *Config) { c.Game.TimeToGuess = 3601 }},
		{name: "zero poll interval", mutate: func(c *Config) { c.Timing.PollIntervalMS = 0 }},
		{name: "ten digits", mutate: func(c *Config) { c.Game.SecretLength = 10 }, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		input string
		want  DifficultyPreset
		ok    bool
	}{
		{"", DifficultyCustom, true},
		{"easy", DifficultyEasy, true},
		{" HARD ", DifficultyHard, true},
		{"normal", DifficultyNormal, true},
		{"custom", DifficultyCustom, true},
		{"nightmare", "", false},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.input)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParsePreset(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParsePreset(%q) should fail", tt.input)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Game != (GameConfig{SecretLength: 5, MaxAttempts: 8, TimeToGuess: 15}) {
		t.Errorf("hard preset game = %+v", cfg.Game)
	}

	cfg = DefaultConfig()
	cfg.Game.SecretLength = 7
	ApplyPreset(&cfg, DifficultyCustom)
	if cfg.Game.SecretLength != 7 {
		t.Errorf("custom preset changed secret length to %d", cfg.Game.SecretLength)
	}

	cfg = DefaultConfig()
	cfg.Limits.MaxTimeToGuess = 10
	ApplyPreset(&cfg, DifficultyEasy)
	if err := cfg.Validate(); err != nil {
		t.Errorf("easy preset with tight limits should be valid, got %v", err)
	}
}
