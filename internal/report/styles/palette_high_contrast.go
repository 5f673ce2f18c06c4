package styles

// HighContrastTheme favors visibility on low-contrast terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Text:   "#FFFFFF",
		Accent: "#00A2FF",
		Actions: []string{
			"#00A2FF", "#00FF5A", "#FFD400", "#FF4040",
			"#FF00FF", "#00FFFF", "#FFFFFF", "#FF8000",
		},
	},
}
