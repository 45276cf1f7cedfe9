// bullscows is the bulls & cows number guessing game with a per-guess countdown.
//
// Usage:
//
//	bullscows                - Play in this terminal (same as play)
//	bullscows play           - Play in this terminal
//	bullscows presets        - List difficulty presets
//	bullscows serve          - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible secrets
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - easy, normal, hard or custom
//	--log-file <path>     - Log destination (default: ~/.bullscows/bullscows.log, - for stderr)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ivymerfe/bullscows/internal/config"
)

var (
	// Global flags
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bullscows",
	Short: "Bulls & Cows - guess the secret number against the clock",
	Long: `Bulls & Cows asks you to guess a secret made of distinct digits.
After each guess you learn how many digits are in the right place (bulls)
and how many are in the secret but elsewhere (cows). Every attempt has a
countdown; run out of time or attempts and the game is over.

Available commands:
  play     - Play in this terminal (default)
  presets  - Show difficulty presets
  serve    - Start SSH server for remote play

Examples:
  bullscows
  bullscows --difficulty hard
  bullscows play --seed 42
  bullscows serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML (env "+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, custom (env "+config.EnvDifficulty+")")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.bullscows/bullscows.log", "Log file, - for stderr")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the config file and difficulty from flags, then env.
func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	difficulty := flagDifficulty
	if difficulty == "" {
		difficulty = os.Getenv(config.EnvDifficulty)
	}
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	return cfg, cfg.Validate()
}

// newLogger opens the log destination. The returned func closes it.
func newLogger(prefix string) (*log.Logger, func(), error) {
	levelName := flagLogLevel
	if levelName == "" {
		levelName = os.Getenv(config.EnvLogLevel)
	}
	if levelName == "" {
		levelName = "info"
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if flagLogFile != "-" {
		path, err := config.ExpandHome(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}
