package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ivymerfe/bullscows/internal/core"
)

// Theme maps message tones to lipgloss styles.
// Styles come from a renderer bound to the output, so a pipe or a buffer gets plain text.
type Theme struct {
	styles map[core.Tone]lipgloss.Style
}

// NewTheme creates the default theme on top of a renderer.
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		styles: map[core.Tone]lipgloss.Style{
			core.ToneInfo:    r.NewStyle(),
			core.ToneWarn:    r.NewStyle().Foreground(lipgloss.Color("3")),
			core.ToneSuccess: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
			core.ToneFailure: r.NewStyle().Foreground(lipgloss.Color("9")),
			core.ToneMuted:   r.NewStyle().Foreground(lipgloss.Color("245")),
		},
	}
}

// Render styles text for the given tone. Unknown tones are left plain.
func (t Theme) Render(tone core.Tone, text string) string {
	style, ok := t.styles[tone]
	if !ok {
		return text
	}
	return style.Render(text)
}
