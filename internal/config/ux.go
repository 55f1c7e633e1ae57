package config

import "fmt"

// Theme names accepted by ui.theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds terminal viewer configuration.
type UIConfig struct {
	// Theme is auto, light or dark
	Theme string `yaml:"theme"`

	// DefaultSemester overrides the content's default_semester
	DefaultSemester string `yaml:"default_semester"`

	// WrapWidth caps the text width of descriptions (0 = follow the terminal)
	WrapWidth int `yaml:"wrap_width"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:     ThemeAuto,
		WrapWidth: 0,
	}
}

// Validate checks the theme name and wrap width.
func (c *UIConfig) Validate() error {
	switch c.Theme {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("invalid ui theme: %s (valid: auto, light, dark)", c.Theme)
	}
	if c.WrapWidth < 0 {
		return fmt.Errorf("ui.wrap_width must not be negative")
	}
	return nil
}
