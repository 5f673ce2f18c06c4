// Package styles holds the terminal themes used by sweep reports.
package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme Theme
	Title lipgloss.Style
	Text  lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme: theme,
		Title: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)).Bold(true),
		Text:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
	}
}

// ActionBlock returns the fill style for the i-th distinct action.
func (s Styles) ActionBlock(i int) lipgloss.Style {
	palette := s.Theme.Tokens.Actions
	if len(palette) == 0 {
		return lipgloss.NewStyle().Reverse(true)
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(palette[i%len(palette)]))
}

// ActionText returns the foreground style for the i-th distinct action.
func (s Styles) ActionText(i int) lipgloss.Style {
	palette := s.Theme.Tokens.Actions
	if len(palette) == 0 {
		return s.Text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(palette[i%len(palette)])).Bold(true)
}
