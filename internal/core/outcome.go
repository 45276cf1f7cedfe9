package core

// AttemptOutcome classifies what happened to a single read within an attempt.
// It only decides the next loop action and is never stored.
type AttemptOutcome int

const (
	AttemptAccepted AttemptOutcome = iota
	AttemptTimeout
	AttemptAbortedByUser
	AttemptInvalidLength
	AttemptInvalidChars
	AttemptRepeatedDigits
)

// String returns a human-readable name for the outcome.
func (o AttemptOutcome) String() string {
	switch o {
	case AttemptAccepted:
		return "Accepted"
	case AttemptTimeout:
		return "Timeout"
	case AttemptAbortedByUser:
		return "AbortedByUser"
	case AttemptInvalidLength:
		return "InvalidLength"
	case AttemptInvalidChars:
		return "InvalidChars"
	case AttemptRepeatedDigits:
		return "RepeatedDigits"
	default:
		return "Unknown"
	}
}

// SessionOutcome is the terminal state of a game session.
type SessionOutcome int

const (
	SessionWon SessionOutcome = iota
	SessionTimedOut
	SessionAttemptsExhausted
	SessionAbortedByUser
)

// String returns a human-readable name for the outcome.
func (o SessionOutcome) String() string {
	switch o {
	case SessionWon:
		return "Won"
	case SessionTimedOut:
		return "TimedOut"
	case SessionAttemptsExhausted:
		return "AttemptsExhausted"
	case SessionAbortedByUser:
		return "AbortedByUser"
	default:
		return "Unknown"
	}
}

// SessionResult is produced exactly once per session.
type SessionResult struct {
	Outcome      SessionOutcome
	AttemptsUsed int    // Accepted guesses, including the winning one
	Secret       string // Revealed secret
}
