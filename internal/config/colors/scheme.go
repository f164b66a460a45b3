package colors

// ColorScheme defines the colors used by the CLI's human output
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "wave")
	Preset string `yaml:"preset" toml:"preset"`

	// Primary accent color (headings, ids, highlights)
	Accent string `yaml:"accent" toml:"accent"`

	// Semantic colors
	Create string `yaml:"create" toml:"create"` // Success after a create
	Edit   string `yaml:"edit" toml:"edit"`     // Success after an update
	Delete string `yaml:"delete" toml:"delete"` // Success after a delete
	Done   string `yaml:"done" toml:"done"`     // Completed todos and subtasks

	// Text colors
	Title  string `yaml:"title" toml:"title"`
	Subtle string `yaml:"subtle" toml:"subtle"` // Muted text, empty states
	Normal string `yaml:"normal" toml:"normal"`

	// Message colors
	InfoFg    string `yaml:"info_fg" toml:"info_fg"`
	WarningFg string `yaml:"warning_fg" toml:"warning_fg"`
	ErrorFg   string `yaml:"error_fg" toml:"error_fg"`
}

// GetPreset returns a preset color scheme by name. Unknown names get the default.
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	case "dragon":
		return Dragon()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values from the named preset
func (c *ColorScheme) ApplyDefaults() {
	c.fillFrom(GetPreset(c.Preset))
}

// MergeFrom overrides colors with the non-empty values of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" && other.Preset != c.Preset {
		// a new preset replaces every color the override does not set
		base := *GetPreset(other.Preset)
		base.overrideWith(other)
		*c = base
		return
	}
	c.overrideWith(other)
}

func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent, &c.Create, &c.Edit, &c.Delete, &c.Done,
		&c.Title, &c.Subtle, &c.Normal,
		&c.InfoFg, &c.WarningFg, &c.ErrorFg,
	}
}

func (c *ColorScheme) fillFrom(preset *ColorScheme) {
	src := preset.fields()
	for i, dst := range c.fields() {
		if *dst == "" {
			*dst = *src[i]
		}
	}
}

func (c *ColorScheme) overrideWith(other ColorScheme) {
	src := other.fields()
	for i, dst := range c.fields() {
		if *src[i] != "" {
			*dst = *src[i]
		}
	}
}
