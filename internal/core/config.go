package core

import (
	"errors"
	"fmt"
)

// Parameter bounds accepted by the game.
const (
	MinSecretLength = 1
	MaxSecretLength = 10
	MinAttempts     = 1
	MinTimeToGuess  = 1 // seconds
)

// ErrInvalidParameters is wrapped by every GameParameters validation failure.
var ErrInvalidParameters = errors.New("invalid game parameters")

// GameParameters configures a single game session.
// A session never mutates its parameters; the runner reuses them across replays.
type GameParameters struct {
	SecretLength int // Number of distinct digits in the secret (1-10)
	MaxAttempts  int // Accepted guesses allowed per session
	TimeToGuess  int // Seconds allowed per attempt
}

// DefaultParameters returns the parameters used when nothing else is configured.
func DefaultParameters() GameParameters {
	return GameParameters{
		SecretLength: 4,
		MaxAttempts:  10,
		TimeToGuess:  30,
	}
}

// Validate reports whether the parameters can start a session.
func (p GameParameters) Validate() error {
	if p.SecretLength < MinSecretLength || p.SecretLength > MaxSecretLength {
		return fmt.Errorf("secret length %d not in %d..%d: %w",
			p.SecretLength, MinSecretLength, MaxSecretLength, ErrInvalidParameters)
	}
	if p.MaxAttempts < MinAttempts {
		return fmt.Errorf("max attempts %d below %d: %w", p.MaxAttempts, MinAttempts, ErrInvalidParameters)
	}
	if p.TimeToGuess < MinTimeToGuess {
		return fmt.Errorf("time to guess %ds below %ds: %w", p.TimeToGuess, MinTimeToGuess, ErrInvalidParameters)
	}
	return nil
}

// String implements fmt.Stringer for log output.
func (p GameParameters) String() string {
	return fmt.Sprintf("length=%d attempts=%d time=%ds", p.SecretLength, p.MaxAttempts, p.TimeToGuess)
}
