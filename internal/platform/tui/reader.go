package tui

import (
	"context"
	"fmt"
	"time"
)

const msgTimeIsUp = "Time is up."

// ReadLineWithDeadline prints a blank line, the status line and the prompt, then
// waits for one line of input while keeping the status line updated with the
// seconds left. ok is false when the deadline passes, the context is done or
// input ends. A line that is only picked up after the deadline counts as a timeout.
//
// The first status line already carries the seconds left, so output that cannot
// be redrawn still shows the countdown start.
func (c *Console) ReadLineWithDeadline(ctx context.Context, prompt, statusPrefix string, deadline time.Time) (string, bool, error) {
	c.write("\n" + formatStatus(statusPrefix, deadline.Sub(c.now())) + "\n" + prompt)

	poll := time.NewTicker(c.pollInterval)
	defer poll.Stop()

	var nextRedraw time.Time
	for {
		now := c.now()
		remaining := deadline.Sub(now)
		if remaining <= 0 {
			c.status.RenderStatus(formatStatus(statusPrefix, 0))
			c.write("\n")
			c.Println(msgTimeIsUp)
			return "", false, nil
		}
		if !now.Before(nextRedraw) {
			c.status.RenderStatus(formatStatus(statusPrefix, remaining))
			nextRedraw = now.Add(c.redrawInterval)
		}
		if c.eof {
			c.write("\n")
			return "", false, nil
		}

		select {
		case res, open := <-c.lines:
			line, ok, err := c.accept(res, open)
			if err != nil || !ok {
				c.write("\n")
				return "", false, err
			}
			if c.now().After(deadline) {
				c.logger.Debug("line arrived after deadline", "line", line)
				c.status.RenderStatus(formatStatus(statusPrefix, 0))
				c.Println(msgTimeIsUp)
				return "", false, nil
			}
			return line, true, nil
		case <-ctx.Done():
			c.write("\n")
			return "", false, nil
		case <-poll.C:
		}
	}
}

// ReadLineWithCountdown is ReadLineWithDeadline with a deadline seconds from
// now. With seconds <= 0 it prints the prompt and waits without a time limit.
func (c *Console) ReadLineWithCountdown(ctx context.Context, prompt, statusPrefix string, seconds int) (string, bool, error) {
	if seconds <= 0 {
		c.write(prompt)
		return c.readLine(ctx)
	}
	deadline := c.now().Add(time.Duration(seconds) * time.Second)
	return c.ReadLineWithDeadline(ctx, prompt, statusPrefix, deadline)
}

// formatStatus renders "<prefix> Ns" with N the remaining seconds rounded up.
func formatStatus(prefix string, remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	secs := (remaining + time.Second - 1) / time.Second
	return fmt.Sprintf("%s %ds", prefix, secs)
}
