package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ivymerfe/bullscows/internal/bullscows"
	"github.com/ivymerfe/bullscows/internal/core"
	"github.com/ivymerfe/bullscows/internal/host"
)

const promptAgain = "Again? (Y/n): "

var separator = strings.Repeat("─", 32)

// RunConfig configures a play-through: one settings prompt, then sessions until
// the player stops.
type RunConfig struct {
	Defaults core.GameParameters

	// Seed for secret generation. 0 uses the current time.
	Seed int64

	// Player is logged with every line. Empty for local play.
	Player string

	Logger *log.Logger
}

// Run asks for settings once and hosts sessions until the player declines
// another round, input ends or ctx is done.
func Run(ctx context.Context, console *Console, cfg RunConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("session", uuid.NewString())
	if cfg.Player != "" {
		logger = logger.With("player", cfg.Player)
	}

	params, err := console.ChooseParameters(ctx, cfg.Defaults)
	if err != nil {
		return err
	}
	if ctx.Err() != nil || console.EOF() {
		return nil
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	h := host.New(bullscows.New(seed), console, logger)

	for round := 1; ; round++ {
		res, err := h.HostGame(ctx, params)
		if err != nil {
			return fmt.Errorf("tui: round %d: %w", round, err)
		}
		logger.Info("round over", "round", round, "outcome", res.Outcome, "attempts", res.AttemptsUsed)

		if ctx.Err() != nil || console.EOF() {
			return nil
		}
		console.Say(core.ToneMuted, separator)
		again, err := console.AskYesNo(ctx, promptAgain, true)
		if err != nil {
			return err
		}
		if !again || ctx.Err() != nil || console.EOF() {
			return nil
		}
	}
}
