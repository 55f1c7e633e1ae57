// Package ui renders the portfolio in the terminal: activity cards,
// semester tabs, the class schedule grid and lesson plans.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Violet brand palette.
var (
	LightBackground = lipgloss.Color("#ffffff")
	LightForeground = lipgloss.Color("#0f172a") // slate-900
	LightPrimary    = lipgloss.Color("#7c3aed") // violet-600
	LightAccent     = lipgloss.Color("#5b21b6") // violet-800
	LightSecondary  = lipgloss.Color("#f5f3ff") // violet-50
	LightMuted      = lipgloss.Color("#64748b") // slate-500
	LightBorder     = lipgloss.Color("#ddd6fe") // violet-200

	DarkBackground = lipgloss.Color("#1e1b2e")
	DarkForeground = lipgloss.Color("#ede9fe") // violet-100
	DarkPrimary    = lipgloss.Color("#a78bfa") // violet-400
	DarkAccent     = lipgloss.Color("#c4b5fd") // violet-300
	DarkSecondary  = lipgloss.Color("#2e1065") // violet-950
	DarkMuted      = lipgloss.Color("#94a3b8") // slate-400
	DarkBorder     = lipgloss.Color("#4c1d95") // violet-900

	Destructive = lipgloss.Color("#e11d48")
	Success     = lipgloss.Color("#16a34a")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// ThemeFor resolves a configured theme name ("light", "dark", "auto").
// Anything other than light or dark falls back to DetectTheme.
func ThemeFor(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme picks dark mode from FOLIO_DARK_MODE=1 or a dark COLORFGBG
// background, and light mode otherwise.
func DetectTheme() Theme {
	if os.Getenv("FOLIO_DARK_MODE") == "1" {
		return DarkTheme()
	}

	// COLORFGBG is "foreground;background"; ANSI 0-6 and 8 are dark.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
		}
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Section lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	// Components
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	Pill        lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	Media       lipgloss.Style
	Lesson      lipgloss.Style
	BreakCell   lipgloss.Style
	Link        lipgloss.Style
	Divider     lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),

		Content: lipgloss.NewStyle().
			Padding(0, 1),

		Section: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Primary).
			PaddingLeft(1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success),

		Card: card,

		CardFocused: card.
			BorderForeground(theme.Primary),

		Pill: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Background(theme.Secondary).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(theme.Primary).
			Bold(true).
			Padding(0, 2),

		Media: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Align(lipgloss.Center),

		Lesson: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		BreakCell: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Secondary),

		Link: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Underline(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles for the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

// RenderSection renders a section heading with an optional muted subtitle.
func (s Styles) RenderSection(title, subtitle string) string {
	out := s.Section.Render(title)
	if subtitle != "" {
		out += "\n" + s.Muted.Render(subtitle)
	}
	return out
}
