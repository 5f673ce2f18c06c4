package styles

// DefaultTheme is the baseline palette.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Text:   "#E6EDF3",
		Accent: "#5B8DEF",
		Actions: []string{
			"#5B8DEF", "#3FB950", "#D29922", "#BC8CFF",
			"#F85149", "#39C5CF", "#DB61A2", "#8B9AAE",
		},
	},
}
