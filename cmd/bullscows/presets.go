package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivymerfe/bullscows/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long:  `Shows the built-in difficulty presets and the parameters each one sets.`,
	Args:  cobra.NoArgs,
	Run:   runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	presets := config.Presets()

	fmt.Println("Difficulty presets:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := len("Preset")
	for _, p := range presets {
		if len(p.Preset) > maxNameLen {
			maxNameLen = len(p.Preset)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %6s  %8s  %7s\n", maxNameLen, "Preset", "Digits", "Attempts", "Seconds")
	fmt.Printf("  %-*s  %6s  %8s  %7s\n", maxNameLen, "------", "------", "--------", "-------")

	// Print presets
	for _, p := range presets {
		fmt.Printf("  %-*s  %6d  %8d  %7d\n", maxNameLen, p.Preset, p.Game.SecretLength, p.Game.MaxAttempts, p.Game.TimeToGuess)
	}

	fmt.Println()
	fmt.Printf("Run 'bullscows --difficulty <preset>' to play one, or %q to use your config file.\n", config.DifficultyCustom)
}
