package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/cancelreader"

	"github.com/ivymerfe/bullscows/internal/core"
)

const (
	defaultRedrawInterval = 250 * time.Millisecond
	defaultPollInterval   = 25 * time.Millisecond

	// closeWait bounds how long Close waits for the input pump after cancelling it.
	closeWait = 200 * time.Millisecond
)

// ConsoleConfig configures a Console. Zero values pick defaults.
type ConsoleConfig struct {
	// Status draws the countdown line. Nil selects one based on the output.
	Status StatusRenderer
	// Renderer styles messages. Nil creates one for the output.
	Renderer *lipgloss.Renderer

	RedrawInterval time.Duration
	PollInterval   time.Duration

	// MaxAttempts and MaxTimeToGuess cap the values accepted by ChooseParameters.
	MaxAttempts    int
	MaxTimeToGuess int

	Logger *log.Logger
	Now    func() time.Time
}

// lineResult is one item from the input pump.
type lineResult struct {
	line string
	err  error
}

// Console is a line-oriented terminal on top of an input stream and an output stream.
//
// A single goroutine reads the input and hands complete lines over a channel, so
// checking for available input never blocks and no line is ever read twice.
type Console struct {
	out    io.Writer
	status StatusRenderer
	theme  Theme
	logger *log.Logger
	now    func() time.Time

	redrawInterval time.Duration
	pollInterval   time.Duration
	maxAttempts    int
	maxTimeToGuess int

	lines    chan lineResult
	done     chan struct{}
	pumpDone chan struct{}
	cancel   cancelreader.CancelReader

	closeOnce sync.Once
	eof       bool
}

// NewConsole starts reading lines from in. Call Close to stop the reader.
func NewConsole(in io.Reader, out io.Writer, cfg ConsoleConfig) *Console {
	raw := out
	out = &syncWriter{w: raw}

	renderer := cfg.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(raw)
	}

	c := &Console{
		out:            out,
		status:         cfg.Status,
		theme:          NewTheme(renderer),
		logger:         cfg.Logger,
		now:            cfg.Now,
		redrawInterval: cfg.RedrawInterval,
		pollInterval:   cfg.PollInterval,
		maxAttempts:    cfg.MaxAttempts,
		maxTimeToGuess: cfg.MaxTimeToGuess,
		lines:          make(chan lineResult),
		done:           make(chan struct{}),
		pumpDone:       make(chan struct{}),
	}
	if c.status == nil {
		c.status = NewStatusRenderer(out)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.redrawInterval <= 0 {
		c.redrawInterval = defaultRedrawInterval
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.maxTimeToGuess <= 0 {
		c.maxTimeToGuess = defaultMaxTimeToGuess
	}

	src := in
	if cr, err := cancelreader.NewReader(in); err == nil {
		c.cancel = cr
		src = cr
	} else {
		// Regular files cannot be polled; they never block either.
		c.logger.Debug("input is not cancelable", "error", err)
	}

	go c.pump(src)
	return c
}

// pump is the only reader of the input stream.
func (c *Console) pump(r io.Reader) {
	defer close(c.pumpDone)
	defer close(c.lines)

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" && (err == nil || errors.Is(err, io.EOF)) {
			if !c.deliver(lineResult{line: trimEOL(line)}) {
				return
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) || errors.Is(err, cancelreader.ErrCanceled) {
			return
		}
		c.deliver(lineResult{err: err})
		return
	}
}

func (c *Console) deliver(res lineResult) bool {
	select {
	case c.lines <- res:
		return true
	case <-c.done:
		return false
	}
}

// Close stops the input pump. It is safe to call more than once.
func (c *Console) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		if c.cancel == nil {
			return
		}
		c.cancel.Cancel()
		select {
		case <-c.pumpDone:
			err = c.cancel.Close()
		case <-time.After(closeWait):
			c.logger.Debug("input pump still blocked after cancel")
		}
	})
	return err
}

// EOF reports whether the input stream has ended.
func (c *Console) EOF() bool {
	return c.eof
}

// Say prints one styled line.
func (c *Console) Say(tone core.Tone, text string) {
	c.write(c.theme.Render(tone, text) + "\n")
}

// Println prints one plain line.
func (c *Console) Println(text string) {
	c.write(text + "\n")
}

// Print writes text without a line break, as prompts do.
func (c *Console) Print(text string) {
	c.write(text)
}

func (c *Console) write(s string) {
	//nolint:errcheck // A broken output shows up as EOF or a read error on input
	io.WriteString(c.out, s)
}

// readLine waits without a deadline. ok is false on end of input or cancellation.
func (c *Console) readLine(ctx context.Context) (string, bool, error) {
	if c.eof {
		return "", false, nil
	}
	select {
	case res, open := <-c.lines:
		return c.accept(res, open)
	case <-ctx.Done():
		c.write("\n")
		return "", false, nil
	}
}

// accept turns a pump item into a read result.
func (c *Console) accept(res lineResult, open bool) (string, bool, error) {
	if !open {
		c.eof = true
		c.logger.Info("end of input")
		return "", false, nil
	}
	if res.err != nil {
		return "", false, fmt.Errorf("tui: failed to read input: %w", res.err)
	}
	return res.line, true, nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// syncWriter serializes writes from the reader loop and the SSH echo.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func unwrapWriter(w io.Writer) io.Writer {
	if s, ok := w.(*syncWriter); ok {
		return s.w
	}
	return w
}
