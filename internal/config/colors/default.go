package colors

// Default returns the default color scheme, built around the brand yellow
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#FFD800",

		Create: "#5FD75F",
		Edit:   "#5F87D7",
		Delete: "#FF5F5F",
		Done:   "#5FD75F",

		Title:  "#FFD800",
		Subtle: "#808080",
		Normal: "#D0D0D0",

		InfoFg:    "#00AFFF",
		WarningFg: "#FFD700",
		ErrorFg:   "#FF0000",
	}
}
