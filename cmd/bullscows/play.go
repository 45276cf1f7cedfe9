package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivymerfe/bullscows/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

You are shown the current settings and may change them once; they are
reused for every round. Each attempt shows a countdown above the prompt.

Controls:
  Enter on an empty line  - Offer to give up
  Ctrl+C                  - Quit
  Ctrl+D                  - End input (remaining prompts take defaults)

Difficulty options:
  easy    - 3 digits, 12 attempts, 60s per attempt
  normal  - 4 digits, 10 attempts, 30s per attempt
  hard    - 5 digits, 8 attempts, 15s per attempt
  custom  - Use the values from the config file

Examples:
  bullscows play
  bullscows play --difficulty easy
  bullscows play --config ./my-bullscows.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger("bullscows")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	console := tui.NewConsole(os.Stdin, os.Stdout, tui.ConsoleConfig{
		RedrawInterval: cfg.RedrawInterval(),
		PollInterval:   cfg.PollInterval(),
		MaxAttempts:    cfg.Limits.MaxAttempts,
		MaxTimeToGuess: cfg.Limits.MaxTimeToGuess,
		Logger:         logger,
	})

	runErr := tui.Run(ctx, console, tui.RunConfig{
		Defaults: cfg.Parameters(),
		Seed:     flagSeed,
		Logger:   logger,
	})

	// Release the terminal before a potential exit
	console.Close()
	stop()
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
