// Package bullscows owns the secret number and scores guesses against it.
// It is pure game logic: no terminal, no timing, no logging.
package bullscows

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ivymerfe/bullscows/internal/core"
)

// alphabet is the set of symbols a secret is drawn from.
const alphabet = "0123456789"

// ErrInvalidArgument is wrapped by every rejected Generate or Score call.
var ErrInvalidArgument = errors.New("invalid argument")

// Result is the answer to a single scored guess.
type Result struct {
	Bulls int // Right digit, right position
	Cows  int // Right digit, wrong position
}

// Game holds one secret at a time.
type Game struct {
	rng *rand.Rand

	// secret is replaced wholesale by Generate and never modified in place.
	secret string
	// position maps a digit to its index in secret, or -1 when absent.
	position [len(alphabet)]int
}

// New creates a game whose secrets are drawn from the given seed.
// The same seed produces the same sequence of secrets.
func New(seed int64) *Game {
	g := &Game{rng: rand.New(rand.NewSource(seed))}
	g.setSecret("")
	return g
}

// Generate draws a new secret of the given length, replacing the previous one.
// The secret is the first length digits of a uniform permutation of 0-9.
func (g *Game) Generate(length int) error {
	if length < core.MinSecretLength || length > core.MaxSecretLength {
		return fmt.Errorf("bullscows: secret length must be between %d and %d, got %d: %w",
			core.MinSecretLength, core.MaxSecretLength, length, ErrInvalidArgument)
	}

	digits := []byte(alphabet)
	g.rng.Shuffle(len(digits), func(i, j int) {
		digits[i], digits[j] = digits[j], digits[i]
	})
	g.setSecret(string(digits[:length]))
	return nil
}

// setSecret installs a secret and rebuilds the position index.
func (g *Game) setSecret(secret string) {
	for i := range g.position {
		g.position[i] = -1
	}
	for i := 0; i < len(secret); i++ {
		g.position[secret[i]-'0'] = i
	}
	g.secret = secret
}

// Secret returns the current secret, or "" before the first Generate.
func (g *Game) Secret() string {
	return g.secret
}

// Length returns the length fixed by the last Generate.
func (g *Game) Length() int {
	return len(g.secret)
}

// Score compares a guess with the secret.
//
// The guess must have the secret's length. Score does not check that the guess
// is made of distinct digits: every occurrence of a repeated digit is counted on
// its own, so a non-unique guess can report more bulls+cows than the secret has
// digits. Callers are expected to reject such guesses first.
func (g *Game) Score(guess string) (Result, error) {
	if len(guess) != len(g.secret) {
		return Result{}, fmt.Errorf("bullscows: guess length must be exactly %d, got %d: %w",
			len(g.secret), len(guess), ErrInvalidArgument)
	}

	var res Result
	for i := 0; i < len(guess); i++ {
		c := guess[i]
		if c < '0' || c > '9' {
			continue
		}
		switch idx := g.position[c-'0']; {
		case idx == i:
			res.Bulls++
		case idx >= 0:
			res.Cows++
		}
	}
	return res, nil
}
