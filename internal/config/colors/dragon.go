package colors

// Dragon returns the Kanagawa Dragon color scheme (warm earth tones)
func Dragon() *ColorScheme {
	return &ColorScheme{
		Preset: "dragon",

		Accent: "#8992A7", // dragonViolet

		Create: "#8A9A7B", // dragonGreen2
		Edit:   "#8BA4B0", // dragonBlue2
		Delete: "#C4746E", // dragonRed
		Done:   "#8EA4A2", // dragonAqua

		Title:  "#8BA4B0",
		Subtle: "#737C73", // dragonAsh
		Normal: "#C5C9C5", // dragonWhite

		InfoFg:    "#658594", // dragonBlue
		WarningFg: "#C4B28A", // dragonYellow
		ErrorFg:   "#C4746E",
	}
}
