package core

// Tone tells the platform how a message should be presented.
// The game decides what happened; the platform decides what that looks like.
type Tone uint8

const (
	ToneInfo    Tone = iota // Plain informational text
	ToneWarn                // Rejected input, re-prompt follows
	ToneSuccess             // The player won
	ToneFailure             // The session ended without a win
	ToneMuted               // Separators and secondary text
)

// String returns a human-readable name for the tone.
func (t Tone) String() string {
	switch t {
	case ToneInfo:
		return "info"
	case ToneWarn:
		return "warn"
	case ToneSuccess:
		return "success"
	case ToneFailure:
		return "failure"
	case ToneMuted:
		return "muted"
	default:
		return "unknown"
	}
}
