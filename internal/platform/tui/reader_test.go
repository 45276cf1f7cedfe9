package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"
)

type recordingStatus struct {
	texts []string
}

func (r *recordingStatus) RenderStatus(text string) {
	r.texts = append(r.texts, text)
}

func (r *recordingStatus) last() string {
	if len(r.texts) == 0 {
		return ""
	}
	return r.texts[len(r.texts)-1]
}

// newTestConsole builds a console with fast timers and a recording status line.
func newTestConsole(t *testing.T, in io.Reader, now func() time.Time) (*Console, *bytes.Buffer, *recordingStatus) {
	t.Helper()
	out := &bytes.Buffer{}
	status := &recordingStatus{}
	c := NewConsole(in, out, ConsoleConfig{
		Status:         status,
		RedrawInterval: 5 * time.Millisecond,
		PollInterval:   time.Millisecond,
		Now:            now,
	})
	t.Cleanup(func() { c.Close() })
	return c, out, status
}

// idlePipe returns a reader that never produces input until the test ends.
func idlePipe(t *testing.T) io.Reader {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	return pr
}

func TestReadLineWithDeadlineAlreadyPassed(t *testing.T) {
	c, out, status := newTestConsole(t, idlePipe(t), nil)

	start := time.Now()
	line, ok, err := c.ReadLineWithDeadline(context.Background(), "Your guess: ", "Attempt 1/3 · Time:", time.Now().Add(-time.Second))
	if err != nil {
		t.Fatalf("ReadLineWithDeadline() error = %v", err)
	}
	if ok || line != "" {
		t.Errorf("ReadLineWithDeadline() = %q, %v; want timeout", line, ok)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("returned after %v, want immediately", elapsed)
	}

	if len(status.texts) != 1 || status.texts[0] != "Attempt 1/3 · Time: 0s" {
		t.Errorf("status = %q, want a single 0s redraw", status.texts)
	}
	want := "\nAttempt 1/3 · Time: 0s\nYour guess: \nTime is up.\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestReadLineWithDeadlineReturnsLines(t *testing.T) {
	c, _, status := newTestConsole(t, strings.NewReader("1234\r\n\n"), nil)
	ctx := context.Background()
	deadline := time.Now().Add(time.Minute)

	line, ok, err := c.ReadLineWithDeadline(ctx, "> ", "T:", deadline)
	if err != nil || !ok || line != "1234" {
		t.Fatalf("first read = %q, %v, %v; want \"1234\"", line, ok, err)
	}
	if len(status.texts) == 0 || status.texts[0] != "T: 60s" {
		t.Errorf("first status = %q, want \"T: 60s\"", status.texts)
	}

	line, ok, err = c.ReadLineWithDeadline(ctx, "> ", "T:", deadline)
	if err != nil || !ok || line != "" {
		t.Fatalf("second read = %q, %v, %v; want empty line", line, ok, err)
	}

	line, ok, err = c.ReadLineWithDeadline(ctx, "> ", "T:", deadline)
	if err != nil || ok {
		t.Fatalf("read at end of input = %q, %v, %v; want ok=false", line, ok, err)
	}
	if !c.EOF() {
		t.Error("EOF() = false after input ended")
	}
}

func TestReadLineWithDeadlineWaitsForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	c, _, status := newTestConsole(t, pr, nil)

	go func() {
		time.Sleep(50 * time.Millisecond)
		io.WriteString(pw, "5678\n")
	}()

	line, ok, err := c.ReadLineWithDeadline(context.Background(), "> ", "T:", time.Now().Add(5*time.Second))
	if err != nil || !ok || line != "5678" {
		t.Fatalf("ReadLineWithDeadline() = %q, %v, %v; want \"5678\"", line, ok, err)
	}
	if len(status.texts) < 2 {
		t.Errorf("status redrawn %d times while waiting, want several", len(status.texts))
	}
	for _, s := range status.texts {
		if s != "T: 5s" && s != "T: 4s" {
			t.Errorf("unexpected status %q", s)
		}
	}
}

func TestReadLineWithDeadlineTimesOut(t *testing.T) {
	c, out, status := newTestConsole(t, idlePipe(t), nil)

	line, ok, err := c.ReadLineWithDeadline(context.Background(), "> ", "T:", time.Now().Add(100*time.Millisecond))
	if err != nil || ok || line != "" {
		t.Fatalf("ReadLineWithDeadline() = %q, %v, %v; want timeout", line, ok, err)
	}
	if status.texts[0] != "T: 1s" {
		t.Errorf("first status = %q, want \"T: 1s\"", status.texts[0])
	}
	if status.last() != "T: 0s" {
		t.Errorf("last status = %q, want \"T: 0s\"", status.last())
	}
	if !strings.HasSuffix(out.String(), "\nTime is up.\n") {
		t.Errorf("output = %q, want the timeout notice", out.String())
	}
}

func TestReadLineWithDeadlineLateLineIsTimeout(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	now := func() time.Time {
		calls++
		if calls <= 2 {
			return base
		}
		return base.Add(2 * time.Second)
	}
	out := &bytes.Buffer{}
	status := &recordingStatus{}
	// A long poll interval makes the select take the line instead of re-checking the clock.
	c := NewConsole(strings.NewReader("1234\n"), out, ConsoleConfig{
		Status:         status,
		RedrawInterval: 5 * time.Millisecond,
		PollInterval:   time.Hour,
		Now:            now,
	})
	t.Cleanup(func() { c.Close() })

	line, ok, err := c.ReadLineWithDeadline(context.Background(), "> ", "T:", base.Add(time.Second))
	if err != nil || ok || line != "" {
		t.Fatalf("ReadLineWithDeadline() = %q, %v, %v; want timeout", line, ok, err)
	}
	if !strings.HasSuffix(out.String(), "Time is up.\n") {
		t.Errorf("output = %q, want the timeout notice", out.String())
	}
	if status.last() != "T: 0s" {
		t.Errorf("status = %q, want the late line to leave it at \"T: 0s\"", status.texts)
	}
}

func TestReadLineWithDeadlinePlainOutputShowsSeconds(t *testing.T) {
	out := &bytes.Buffer{}
	c := NewConsole(idlePipe(t), out, ConsoleConfig{PollInterval: time.Millisecond})
	t.Cleanup(func() { c.Close() })

	if _, ok, _ := c.ReadLineWithDeadline(context.Background(), "> ", "T:", time.Now().Add(-time.Second)); ok {
		t.Fatal("ReadLineWithDeadline() ok = true for a passed deadline")
	}
	if want := "\nT: 0s\n> \nTime is up.\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	out.Reset()
	if _, ok, _ := c.ReadLineWithDeadline(context.Background(), "> ", "T:", time.Now().Add(50*time.Millisecond)); ok {
		t.Fatal("ReadLineWithDeadline() ok = true without input")
	}
	if !strings.HasPrefix(out.String(), "\nT: 1s\n> ") {
		t.Errorf("output = %q, want the starting seconds on the status line", out.String())
	}
}

func TestReadLineWithDeadlineContextCanceled(t *testing.T) {
	c, _, _ := newTestConsole(t, idlePipe(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	line, ok, err := c.ReadLineWithDeadline(ctx, "> ", "T:", time.Now().Add(time.Minute))
	if err != nil || ok || line != "" {
		t.Errorf("ReadLineWithDeadline() = %q, %v, %v; want ok=false", line, ok, err)
	}
}

func TestReadLineWithDeadlineReadError(t *testing.T) {
	errBoom := errors.New("boom")
	c, _, _ := newTestConsole(t, iotest.ErrReader(errBoom), nil)

	_, ok, err := c.ReadLineWithDeadline(context.Background(), "> ", "T:", time.Now().Add(time.Minute))
	if ok || !errors.Is(err, errBoom) {
		t.Errorf("ReadLineWithDeadline() ok=%v err=%v; want error wrapping %v", ok, err, errBoom)
	}
}

func TestReadLineWithCountdown(t *testing.T) {
	t.Run("unbounded", func(t *testing.T) {
		c, out, status := newTestConsole(t, strings.NewReader("abc\n"), nil)

		line, ok, err := c.ReadLineWithCountdown(context.Background(), "Prompt: ", "T:", 0)
		if err != nil || !ok || line != "abc" {
			t.Fatalf("ReadLineWithCountdown() = %q, %v, %v; want \"abc\"", line, ok, err)
		}
		if out.String() != "Prompt: " {
			t.Errorf("output = %q, want only the prompt", out.String())
		}
		if len(status.texts) != 0 {
			t.Errorf("status = %q, want no redraws", status.texts)
		}
	})

	t.Run("timed", func(t *testing.T) {
		c, _, status := newTestConsole(t, strings.NewReader("x\n"), nil)

		line, ok, err := c.ReadLineWithCountdown(context.Background(), "> ", "T:", 3)
		if err != nil || !ok || line != "x" {
			t.Fatalf("ReadLineWithCountdown() = %q, %v, %v; want \"x\"", line, ok, err)
		}
		if len(status.texts) == 0 || status.texts[0] != "T: 3s" {
			t.Errorf("status = %q, want first redraw \"T: 3s\"", status.texts)
		}
	})
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      string
	}{
		{0, "T: 0s"},
		{-5 * time.Second, "T: 0s"},
		{time.Nanosecond, "T: 1s"},
		{time.Second, "T: 1s"},
		{time.Second + time.Millisecond, "T: 2s"},
		{29*time.Second + 999*time.Millisecond, "T: 30s"},
	}

	for _, tt := range tests {
		if got := formatStatus("T:", tt.remaining); got != tt.want {
			t.Errorf("formatStatus(%v) = %q, want %q", tt.remaining, got, tt.want)
		}
	}
}
