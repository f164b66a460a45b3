package ui

import (
	"strings"

	"github.com/thenoetrevino/countwave/internal/models"
)

// Themes the browser reports
const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeSystem = "system"
)

// PrimaryColor is the accent used by the profile card in every theme
const PrimaryColor = "#ffd800"

// Appearance styles the identity provider's profile card
type Appearance struct {
	// BaseTheme is "dark" for the dark theme and "" otherwise
	BaseTheme       string `json:"baseTheme"`
	TextColor       string `json:"textColor"`
	Background      string `json:"background"`
	InputBackground string `json:"inputBackground"`
	PrimaryColor    string `json:"primaryColor"`
}

// AppearanceFor maps a theme name to the profile card appearance.
// Unknown themes, including "system", get white text and no background.
func AppearanceFor(theme string) Appearance {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case ThemeDark:
		return Appearance{
			BaseTheme:       ThemeDark,
			TextColor:       "#FFFFFF",
			Background:      "#1f2937",
			InputBackground: "#1f2937",
			PrimaryColor:    PrimaryColor,
		}
	case ThemeLight:
		return Appearance{TextColor: "#000000", PrimaryColor: PrimaryColor}
	default:
		return Appearance{TextColor: "#FFFFFF", PrimaryColor: PrimaryColor}
	}
}

// ProfileView is what the profile modal renders. Fields are read-only.
type ProfileView struct {
	User       models.User
	Appearance Appearance
}

// NewProfileView builds the profile card for user under theme
func NewProfileView(user *models.User, theme string) ProfileView {
	v := ProfileView{Appearance: AppearanceFor(theme)}
	if user != nil {
		v.User = *user
	}
	return v
}
