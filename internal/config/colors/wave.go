package colors

// Wave returns the Kanagawa Wave color scheme (blue/purple accents)
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		Accent: "#957FB8", // oniViolet

		Create: "#98BB6C", // springGreen
		Edit:   "#7E9CD8", // crystalBlue
		Delete: "#FF5D62", // peachRed
		Done:   "#7AA89F", // waveAqua2

		Title:  "#7E9CD8",
		Subtle: "#727169", // fujiGray
		Normal: "#DCD7BA", // fujiWhite

		InfoFg:    "#7FB4CA", // springBlue
		WarningFg: "#FF9E3B", // roninYellow
		ErrorFg:   "#E82424", // samuraiRed
	}
}
