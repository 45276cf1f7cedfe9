package tui

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Control bytes understood by the line editor.
const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyLF        = '\n'
	keyCR        = '\r'
	keyCtrlU     = 0x15
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

type escState int

const (
	escNone escState = iota
	escStart
	escCSI
)

// LineEditor turns raw keystrokes from a terminal without a line discipline
// (an SSH PTY) into newline-terminated lines. Typed characters are echoed,
// backspace and Ctrl+U edit the current line, CR and LF end it, Ctrl+C and
// Ctrl+D end the input, and escape sequences such as arrow keys are dropped.
type LineEditor struct {
	in   io.Reader
	echo io.Writer

	line    []byte
	pending []byte
	raw     [256]byte
	esc     escState
	lastCR  bool
	eof     bool
}

// NewLineEditor reads keystrokes from in and echoes to echo.
func NewLineEditor(in io.Reader, echo io.Writer) *LineEditor {
	return &LineEditor{in: in, echo: echo}
}

// Read returns cooked input. It blocks until a full line is available.
func (e *LineEditor) Read(p []byte) (int, error) {
	for len(e.pending) == 0 {
		if e.eof {
			return 0, io.EOF
		}
		n, err := e.in.Read(e.raw[:])
		e.feed(e.raw[:n])
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return 0, err
			}
			e.eof = true
		}
	}

	n := copy(p, e.pending)
	e.pending = e.pending[n:]
	return n, nil
}

func (e *LineEditor) feed(data []byte) {
	var echo strings.Builder
	defer func() {
		if echo.Len() > 0 {
			//nolint:errcheck // Echo is best effort
			io.WriteString(e.echo, echo.String())
		}
	}()

	for _, b := range data {
		if e.eof {
			return
		}

		switch e.esc {
		case escStart:
			if b == '[' || b == 'O' {
				e.esc = escCSI
			} else {
				e.esc = escNone
			}
			continue
		case escCSI:
			if b >= 0x40 && b <= 0x7e {
				e.esc = escNone
			}
			continue
		}

		wasCR := e.lastCR
		e.lastCR = false

		switch {
		case b == keyCR || b == keyLF:
			if b == keyLF && wasCR {
				continue
			}
			e.lastCR = b == keyCR
			e.pending = append(e.pending, e.line...)
			e.pending = append(e.pending, '\n')
			e.line = e.line[:0]
			echo.WriteString("\n")
		case b == keyCtrlC || b == keyCtrlD:
			e.eof = true
			echo.WriteString("\n")
		case b == keyBackspace || b == keyDelete:
			if len(e.line) == 0 {
				continue
			}
			r, size := utf8.DecodeLastRune(e.line)
			e.line = e.line[:len(e.line)-size]
			echo.WriteString(strings.Repeat("\b \b", max(runewidth.RuneWidth(r), 1)))
		case b == keyCtrlU:
			width := runewidth.StringWidth(string(e.line))
			e.line = e.line[:0]
			echo.WriteString(strings.Repeat("\b \b", width))
		case b == keyEscape:
			e.esc = escStart
		case b < 0x20:
			// other control characters are ignored
		default:
			e.line = append(e.line, b)
			echo.WriteByte(b)
		}
	}
}
