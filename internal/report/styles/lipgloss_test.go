package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemesHaveActionPalettes(t *testing.T) {
	for name, theme := range Themes {
		assert.Equal(t, name, theme.Name)
		assert.NotEmpty(t, theme.Tokens.Actions, name)
	}
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"default", "high-contrast"}, Names())
}

func TestActionStylesWrapPalette(t *testing.T) {
	s := BuildStyles(DefaultTheme)
	n := len(DefaultTheme.Tokens.Actions)

	assert.Equal(t, s.ActionBlock(1).GetBackground(), s.ActionBlock(n+1).GetBackground())
	assert.Equal(t, s.ActionText(2).GetForeground(), s.ActionText(n+2).GetForeground())
}

func TestActionBlockWithoutPaletteReverses(t *testing.T) {
	s := BuildStyles(Theme{Name: "plain"})
	assert.True(t, s.ActionBlock(0).GetReverse())
}
