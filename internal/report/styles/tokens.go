package styles

import (
	"maps"
	"slices"
)

// ThemeTokens defines the semantic colour roles for terminal reports.
type ThemeTokens struct {
	Text   string
	Accent string

	// Actions are assigned to distinct best actions in first-seen order.
	Actions []string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// Lookup returns the named theme, falling back to the default.
func Lookup(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return DefaultTheme
}

// Names returns the theme names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(Themes))
}
