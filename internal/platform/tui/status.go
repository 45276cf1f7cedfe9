// Package tui is the terminal side of the game: a line-oriented console with
// a live countdown prompt, the settings and confirmation prompts, the replay
// loop, and an SSH server that runs the same console per connection.
package tui

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Terminal control sequences used for the status line.
const (
	ansiSaveCursor    = "\x1b[s"
	ansiRestoreCursor = "\x1b[u"
	ansiClearLine     = "\x1b[2K"
	ansiCursorUp1     = "\x1b[1A"
)

// StatusRenderer redraws the status line that sits directly above the input line.
// Implementations must leave the cursor, the prompt and typed input where they were.
type StatusRenderer interface {
	RenderStatus(text string)
}

// ANSIStatus redraws the status line in place with cursor save/restore.
type ANSIStatus struct {
	Out io.Writer
	// Width is the terminal width in columns; 0 disables truncation.
	// A status wider than the terminal would wrap and break the one-row move.
	Width int

	mu sync.Mutex
}

// SetWidth updates the width after a terminal resize.
func (s *ANSIStatus) SetWidth(width int) {
	s.mu.Lock()
	s.Width = width
	s.mu.Unlock()
}

// RenderStatus writes save, up, clear, text, restore as a single write.
func (s *ANSIStatus) RenderStatus(text string) {
	s.mu.Lock()
	width := s.Width
	s.mu.Unlock()
	if width > 1 {
		text = runewidth.Truncate(text, width-1, "")
	}

	var b strings.Builder
	b.WriteString(ansiSaveCursor)
	b.WriteString(ansiCursorUp1)
	b.WriteString("\r")
	b.WriteString(ansiClearLine)
	b.WriteString(text)
	b.WriteString(ansiRestoreCursor)
	//nolint:errcheck // Redraw is cosmetic; read errors surface on the input side
	io.WriteString(s.Out, b.String())
}

// PlainStatus is used when output is not a terminal. Escape sequences would
// only corrupt a log or a pipe, so countdown redraws are dropped.
type PlainStatus struct{}

// RenderStatus does nothing.
func (PlainStatus) RenderStatus(string) {}

// NewStatusRenderer picks an ANSI renderer for terminals and a plain one otherwise.
func NewStatusRenderer(out io.Writer) StatusRenderer {
	f, ok := unwrapWriter(out).(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return PlainStatus{}
	}

	width := 0
	if w, _, err := term.GetSize(int(f.Fd())); err == nil {
		width = w
	}
	return &ANSIStatus{Out: out, Width: width}
}
