// Package host runs one bulls & cows session: it asks for guesses under a
// per-attempt deadline, validates and scores them, and decides when the
// session is over.
package host

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/ivymerfe/bullscows/internal/bullscows"
	"github.com/ivymerfe/bullscows/internal/core"
)

// Player-facing text.
const (
	promptGuess       = "Your guess: "
	statusFormat      = "Attempt %d/%d · Time:"
	msgTimeUp         = "Game over: time ran out."
	msgRevealFormat   = "The secret was: %s"
	msgWinFormat      = "You got it on the %s attempt! The secret was %s"
	msgScoreFormat    = "Bulls: %d, Cows: %d"
	msgExhausted      = "Out of attempts."
	msgNeedDigitsFmt  = "Need %d digits"
	msgDigitsOnly     = "Digits only"
	msgRepeatedDigits = "Repeated digits are not allowed"
)

// SecretGame owns the secret and scores guesses against it.
type SecretGame interface {
	Generate(length int) error
	Secret() string
	Score(guess string) (bullscows.Result, error)
}

// UI is what the host needs from the terminal.
type UI interface {
	// ReadLineWithDeadline returns ok=false on timeout or interruption.
	ReadLineWithDeadline(ctx context.Context, prompt, statusPrefix string, deadline time.Time) (line string, ok bool, err error)
	// ConfirmExit asks whether the player really wants to give up.
	ConfirmExit(ctx context.Context) (bool, error)
	// Say prints one line of text.
	Say(tone core.Tone, text string)
}

// Host drives sessions against a game and a UI.
type Host struct {
	game   SecretGame
	ui     UI
	logger *log.Logger
	now    func() time.Time
}

// New creates a host. A nil logger discards log output.
func New(game SecretGame, ui UI, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Host{
		game:   game,
		ui:     ui,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the wall clock used for deadlines.
func (h *Host) SetClock(now func() time.Time) {
	h.now = now
}

// HostGame plays one session and returns its result.
// Invalid parameters fail before a secret is drawn. Errors from the UI are
// returned as-is and leave the session without a result.
func (h *Host) HostGame(ctx context.Context, params core.GameParameters) (core.SessionResult, error) {
	if err := params.Validate(); err != nil {
		return core.SessionResult{}, fmt.Errorf("host: %w", err)
	}

	h.logger.Info("session start", "params", params)
	if err := h.game.Generate(params.SecretLength); err != nil {
		return core.SessionResult{}, fmt.Errorf("host: %w", err)
	}
	h.logger.Debug("secret generated", "length", params.SecretLength, "secret", h.game.Secret())

	attemptsUsed := 0
	for attemptsUsed < params.MaxAttempts {
		attemptNo := attemptsUsed + 1
		status := fmt.Sprintf(statusFormat, attemptNo, params.MaxAttempts)
		deadline := h.now().Add(time.Duration(params.TimeToGuess) * time.Second)
		logger := h.logger.With("attempt", attemptNo, "max", params.MaxAttempts)
		logger.Info("attempt start", "deadline", deadline.Format(time.RFC3339Nano))

		guess, outcome, err := h.readGuess(ctx, logger, params.SecretLength, status, deadline)
		if err != nil {
			return core.SessionResult{}, err
		}

		switch outcome {
		case core.AttemptTimeout:
			h.ui.Say(core.ToneFailure, msgTimeUp)
			return h.finish(core.SessionTimedOut, attemptsUsed, true), nil
		case core.AttemptAbortedByUser:
			return h.finish(core.SessionAbortedByUser, attemptsUsed, true), nil
		}

		res, err := h.game.Score(guess)
		if err != nil {
			return core.SessionResult{}, fmt.Errorf("host: %w", err)
		}
		attemptsUsed++
		logger.Info("guess scored", "guess", guess, "bulls", res.Bulls, "cows", res.Cows)

		if res.Bulls == params.SecretLength {
			h.ui.Say(core.ToneSuccess, fmt.Sprintf(msgWinFormat, humanize.Ordinal(attemptsUsed), h.game.Secret()))
			return h.finish(core.SessionWon, attemptsUsed, false), nil
		}

		h.ui.Say(core.ToneInfo, fmt.Sprintf(msgScoreFormat, res.Bulls, res.Cows))
	}

	h.ui.Say(core.ToneFailure, msgExhausted)
	return h.finish(core.SessionAttemptsExhausted, attemptsUsed, true), nil
}

// readGuess re-prompts within one attempt until a well-formed guess arrives or
// the attempt ends. Every re-prompt reuses the same deadline.
func (h *Host) readGuess(ctx context.Context, logger *log.Logger, length int, status string, deadline time.Time) (string, core.AttemptOutcome, error) {
	for {
		guess, ok, err := h.ui.ReadLineWithDeadline(ctx, promptGuess, status, deadline)
		if err != nil {
			return "", core.AttemptTimeout, err
		}
		if !ok {
			// An interrupted read ends the attempt the same way the clock does.
			logger.Info("timeout (no input)", "interrupted", ctx.Err() != nil)
			return "", core.AttemptTimeout, nil
		}
		if h.now().After(deadline) {
			logger.Info("timeout (deadline exceeded after input)")
			return "", core.AttemptTimeout, nil
		}

		if guess == "" {
			logger.Info("empty input")
			leave, err := h.ui.ConfirmExit(ctx)
			if err != nil {
				return "", core.AttemptAbortedByUser, err
			}
			if leave {
				logger.Info("exit confirmed")
				return "", core.AttemptAbortedByUser, nil
			}
			logger.Info("player chose to continue")
			continue
		}

		switch outcome := Classify(guess, length); outcome {
		case core.AttemptInvalidLength:
			logger.Info("invalid length", "got", utf8.RuneCountInString(guess), "want", length)
			h.ui.Say(core.ToneWarn, fmt.Sprintf(msgNeedDigitsFmt, length))
		case core.AttemptInvalidChars:
			logger.Info("invalid chars", "guess", guess)
			h.ui.Say(core.ToneWarn, msgDigitsOnly)
		case core.AttemptRepeatedDigits:
			logger.Info("repeated digits", "guess", guess)
			h.ui.Say(core.ToneWarn, msgRepeatedDigits)
		default:
			logger.Info("guess accepted", "guess", guess)
			return guess, core.AttemptAccepted, nil
		}
	}
}

// finish logs the terminal state and reveals the secret when the win message
// has not already done so.
func (h *Host) finish(outcome core.SessionOutcome, attemptsUsed int, reveal bool) core.SessionResult {
	secret := h.game.Secret()
	if reveal {
		h.ui.Say(core.ToneInfo, fmt.Sprintf(msgRevealFormat, secret))
	}
	h.logger.Info("session finished", "outcome", outcome, "attempts", attemptsUsed, "secret", secret)
	return core.SessionResult{
		Outcome:      outcome,
		AttemptsUsed: attemptsUsed,
		Secret:       secret,
	}
}

// Classify checks the shape of a non-empty guess: length first, then
// characters, then uniqueness.
func Classify(guess string, length int) core.AttemptOutcome {
	if utf8.RuneCountInString(guess) != length {
		return core.AttemptInvalidLength
	}
	var seen [10]bool
	for i := 0; i < len(guess); i++ {
		if guess[i] < '0' || guess[i] > '9' {
			return core.AttemptInvalidChars
		}
	}
	for i := 0; i < len(guess); i++ {
		d := guess[i] - '0'
		if seen[d] {
			return core.AttemptRepeatedDigits
		}
		seen[d] = true
	}
	return core.AttemptAccepted
}
