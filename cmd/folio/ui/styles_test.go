package ui

import (
	"strings"
	"testing"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("FOLIO_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when FOLIO_DARK_MODE=1")
	}

	t.Setenv("FOLIO_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when FOLIO_DARK_MODE is unset")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for a black COLORFGBG background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme for a white COLORFGBG background")
	}
}

func TestThemeFor(t *testing.T) {
	t.Setenv("FOLIO_DARK_MODE", "1")
	if ThemeFor("light").IsDark {
		t.Error("light preference should win over the environment")
	}
	if !ThemeFor("dark").IsDark {
		t.Error("expected dark theme")
	}
	if !ThemeFor("auto").IsDark {
		t.Error("auto should detect from the environment")
	}
}

func TestRenderSection(t *testing.T) {
	s := NewStyles(LightTheme())
	out := s.RenderSection("Lesson plans", "Downloads")
	if !strings.Contains(out, "Lesson plans") || !strings.Contains(out, "Downloads") {
		t.Errorf("section missing text: %q", out)
	}
	if got := s.RenderDivider(0); got == "" {
		t.Error("divider should never be empty")
	}
}
