package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ivymerfe/bullscows/internal/core"
)

const (
	defaultMaxAttempts    = 999
	defaultMaxTimeToGuess = 3600
)

const (
	promptChangeSettings = "Change settings? (y/N): "
	promptConfirmExit    = "Give up and leave in disgrace? (y/N): "
	promptSecretLength   = "Secret length"
	promptAttempts       = "Attempts"
	promptTimeToGuess    = "Seconds per attempt"

	msgAnswerYesNo  = "Answer y/n"
	msgNeedInteger  = "Need an integer."
	msgRangeFormat  = "Allowed range: %d..%d"
	msgSettingsHead = "Game settings:"
)

var (
	yesAnswers = map[string]bool{"y": true, "yes": true, "д": true, "да": true}
	noAnswers  = map[string]bool{"n": true, "no": true, "н": true, "нет": true}
)

// AskYesNo asks until it gets a yes or a no. Empty input, end of input and
// cancellation all pick the default.
func (c *Console) AskYesNo(ctx context.Context, prompt string, defaultYes bool) (bool, error) {
	for {
		c.write(prompt)
		line, ok, err := c.readLine(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return defaultYes, nil
		}

		answer := strings.ToLower(strings.TrimSpace(line))
		switch {
		case answer == "":
			return defaultYes, nil
		case yesAnswers[answer]:
			return true, nil
		case noAnswers[answer]:
			return false, nil
		}
		c.Say(core.ToneWarn, msgAnswerYesNo)
	}
}

// AskInt asks for an integer in [minValue, maxValue], showing def as the default.
func (c *Console) AskInt(ctx context.Context, prompt string, def, minValue, maxValue int) (int, error) {
	for {
		c.write(fmt.Sprintf("%s [%d]: ", prompt, def))
		line, ok, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if !ok {
			return def, nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return def, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			c.Say(core.ToneWarn, msgNeedInteger)
			continue
		}
		if n < minValue || n > maxValue {
			c.Say(core.ToneWarn, fmt.Sprintf(msgRangeFormat, minValue, maxValue))
			continue
		}
		return n, nil
	}
}

// ChooseParameters shows the current settings and lets the player change them.
func (c *Console) ChooseParameters(ctx context.Context, defaults core.GameParameters) (core.GameParameters, error) {
	c.Println(msgSettingsHead)
	c.Println(fmt.Sprintf("  %s: %d", promptSecretLength, defaults.SecretLength))
	c.Println(fmt.Sprintf("  %s: %d", promptAttempts, defaults.MaxAttempts))
	c.Println(fmt.Sprintf("  %s: %d", promptTimeToGuess, defaults.TimeToGuess))

	change, err := c.AskYesNo(ctx, promptChangeSettings, false)
	if err != nil || !change {
		return defaults, err
	}

	params := defaults
	if params.SecretLength, err = c.AskInt(ctx, promptSecretLength, defaults.SecretLength, core.MinSecretLength, core.MaxSecretLength); err != nil {
		return defaults, err
	}
	if params.MaxAttempts, err = c.AskInt(ctx, promptAttempts, defaults.MaxAttempts, core.MinAttempts, c.maxAttempts); err != nil {
		return defaults, err
	}
	if params.TimeToGuess, err = c.AskInt(ctx, promptTimeToGuess, defaults.TimeToGuess, core.MinTimeToGuess, c.maxTimeToGuess); err != nil {
		return defaults, err
	}

	c.logger.Info("parameters chosen", "params", params)
	return params, nil
}

// ConfirmExit asks whether the player wants to give up. The default is no.
func (c *Console) ConfirmExit(ctx context.Context) (bool, error) {
	return c.AskYesNo(ctx, promptConfirmExit, false)
}
