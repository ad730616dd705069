package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lightningx004/habit-antigravity/internal/config"
	"github.com/lightningx004/habit-antigravity/internal/kv"
	"github.com/lightningx004/habit-antigravity/internal/tracker"
)

// uiTestDay is the fixed "today" every UI test runs on.
var uiTestDay = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestTracker creates a tracker backed by an in-memory store with a
// pinned clock.
func createTestTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	tr, err := tracker.New(kv.NewMemStore())
	if err != nil {
		t.Fatalf("failed to create test tracker: %v", err)
	}
	tr.SetNowFunc(func() time.Time { return uiTestDay })
	return tr
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// keyMsg builds a key press message from a single rune.
func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
