package ui

import (
	"strings"
	"testing"

	"github.com/lightningx004/habit-antigravity/internal/config"
)

// TestNewStylesFromTheme_Defaults verifies empty theme fields fall back.
func TestNewStylesFromTheme_Defaults(t *testing.T) {
	s := NewStylesFromTheme(&config.ThemeConfig{})

	if string(s.ColorPrimary) != "#7C3AED" {
		t.Errorf("primary = %s, want default", s.ColorPrimary)
	}
	if string(s.ColorDayPerfect) != "#10B981" {
		t.Errorf("perfect = %s, want default", s.ColorDayPerfect)
	}
}

// TestNewStylesFromTheme_Overrides verifies configured colors win.
func TestNewStylesFromTheme_Overrides(t *testing.T) {
	s := NewStylesFromTheme(&config.ThemeConfig{
		Primary: "#FF0000",
		Perfect: "#00FF00",
	})

	if string(s.ColorPrimary) != "#FF0000" {
		t.Errorf("primary = %s, want override", s.ColorPrimary)
	}
	if string(s.ColorDayPerfect) != "#00FF00" {
		t.Errorf("perfect = %s, want override", s.ColorDayPerfect)
	}
	// Untouched fields keep their defaults.
	if string(s.ColorMuted) != "#6B7280" {
		t.Errorf("muted = %s, want default", s.ColorMuted)
	}
}

// TestRenderHelp checks key/description pairing.
func TestRenderHelp(t *testing.T) {
	setupTest(t)
	s := createTestStyles()

	out := s.RenderHelp("a", "add", "x", "del")
	for _, want := range []string{"[a]", "add", "[x]", "del"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q: %s", want, out)
		}
	}
}
