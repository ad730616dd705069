// Package ui provides terminal user interface components for the antigravity
// app. This file contains tests for the main App model, including layout
// behavior and the end-to-end key flows.
package ui

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lightningx004/habit-antigravity/internal/config"
	"github.com/lightningx004/habit-antigravity/internal/dates"
	"github.com/lightningx004/habit-antigravity/internal/tracker"
)

// newTestApp creates an app with one habit already tracked so the welcome
// screen stays out of the way.
func newTestApp(t *testing.T, cfg *AppConfig) (*App, *tracker.Tracker) {
	t.Helper()
	tr := createTestTracker(t)
	if _, err := tr.AddHabit("Stretch", uiTestDay); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	app := NewApp(tr, createTestStyles(), cfg)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, tr
}

// TestApp_LayoutModeTransitions verifies layout mode changes based on width.
func TestApp_LayoutModeTransitions(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, &AppConfig{
		Keys:                  &config.KeysConfig{},
		NarrowLayoutThreshold: 80,
	})

	tests := []struct {
		name         string
		width        int
		expectedMode LayoutMode
	}{
		{"Very narrow (40)", 40, LayoutNarrow},
		{"Narrow (60)", 60, LayoutNarrow},
		{"At threshold (79)", 79, LayoutNarrow},
		{"At threshold (80)", 80, LayoutWide},
		{"Wide (100)", 100, LayoutWide},
		{"Very wide (200)", 200, LayoutWide},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app.Update(tea.WindowSizeMsg{Width: tc.width, Height: 30})

			if app.layoutMode != tc.expectedMode {
				t.Errorf("Width %d: expected layout mode %v, got %v",
					tc.width, tc.expectedMode, app.layoutMode)
			}
		})
	}
}

// TestApp_NarrowLayoutShowsOnlyActivePane verifies only the focused pane is
// shown in narrow mode, behind a tab bar.
func TestApp_NarrowLayoutShowsOnlyActivePane(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, nil)

	app.Update(tea.WindowSizeMsg{Width: 60, Height: 30})

	if app.activePane != PaneDay {
		t.Errorf("Expected default active pane to be Day")
	}

	view := app.View()

	if !strings.Contains(view, "[Day]") {
		t.Error("Expected to see [Day] tab highlighted in narrow mode")
	}
	if !strings.Contains(view, "Calendar") {
		t.Error("Expected to see Calendar tab in narrow mode")
	}
	if !strings.Contains(view, "Progress") {
		t.Error("Expected to see Progress tab in narrow mode")
	}
	if strings.Contains(view, "PROGRESS") {
		t.Error("Progress pane body should be hidden while Day is active")
	}
}

// TestApp_TabCyclesPanes verifies tab moves focus Day -> Progress -> Calendar.
func TestApp_TabCyclesPanes(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, nil)

	if app.activePane != PaneDay {
		t.Fatalf("expected initial pane Day, got %v", app.activePane)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.activePane != PaneProgress {
		t.Errorf("after one tab: expected Progress, got %v", app.activePane)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.activePane != PaneCalendar {
		t.Errorf("after two tabs: expected Calendar, got %v", app.activePane)
	}
	if !app.calendarPane.IsFocused() || app.dayPane.IsFocused() {
		t.Error("focus flags did not follow the active pane")
	}

	app.Update(keyMsg('2'))
	if app.activePane != PaneDay {
		t.Errorf("pane jump key: expected Day, got %v", app.activePane)
	}
}

// TestApp_WelcomeOnFirstRun verifies the onboarding overlay appears for an
// empty tracker and any key dismisses it.
func TestApp_WelcomeOnFirstRun(t *testing.T) {
	setupTest(t)
	tr := createTestTracker(t)
	app := NewApp(tr, createTestStyles(), nil)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := app.View()
	if !strings.Contains(view, "Welcome to antigravity") {
		t.Fatal("expected welcome overlay on first run")
	}

	app.Update(keyMsg('x'))
	if strings.Contains(app.View(), "Welcome to antigravity") {
		t.Error("welcome overlay should be dismissed by any key")
	}
}

// TestApp_AddTaskFlow drives the add-task input end to end.
func TestApp_AddTaskFlow(t *testing.T) {
	setupTest(t)
	app, tr := newTestApp(t, nil)

	app.Update(keyMsg('a'))
	if !app.dayPane.IsAdding() {
		t.Fatal("'a' should open the task input")
	}

	for _, r := range "Ship it" {
		app.Update(keyMsg(r))
	}
	// Typing 'q' inside the input must not quit the app.
	app.Update(keyMsg('q'))
	if app.quitting {
		t.Fatal("typing in input mode quit the app")
	}
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	tasks := tr.TasksOn(uiTestDay)
	if len(tasks) != 1 || tasks[0].Text != "Ship itq" {
		t.Fatalf("expected one task 'Ship itq', got %+v", tasks)
	}
}

// TestApp_AddHabitFlow drives the add-habit input end to end.
func TestApp_AddHabitFlow(t *testing.T) {
	setupTest(t)
	app, tr := newTestApp(t, nil)

	app.Update(keyMsg('A'))
	if !app.dayPane.IsAdding() {
		t.Fatal("'A' should open the habit input")
	}
	for _, r := range "Gym" {
		app.Update(keyMsg(r))
	}
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	habits := tr.Habits()
	if len(habits) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(habits))
	}
	if habits[1].Text != "Gym" {
		t.Errorf("new habit text = %q, want %q", habits[1].Text, "Gym")
	}
}

// TestApp_ConfirmDeleteHabit verifies the confirmation overlay guards habit
// deletion when enabled.
func TestApp_ConfirmDeleteHabit(t *testing.T) {
	setupTest(t)
	app, tr := newTestApp(t, &AppConfig{
		Keys:             &config.KeysConfig{},
		ConfirmDeletions: true,
	})

	app.Update(keyMsg('x'))
	if app.confirmDel == nil {
		t.Fatal("expected confirmation overlay after delete key")
	}
	view := app.View()
	if !strings.Contains(view, "Delete habit?") {
		t.Errorf("overlay missing title, got:\n%s", view)
	}
	if len(tr.Habits()) != 1 {
		t.Fatal("habit deleted before confirmation")
	}

	app.Update(keyMsg('n'))
	if app.confirmDel != nil {
		t.Fatal("overlay should close on 'n'")
	}
	if len(tr.Habits()) != 1 {
		t.Fatal("habit deleted after cancel")
	}

	app.Update(keyMsg('x'))
	app.Update(keyMsg('y'))
	if len(tr.Habits()) != 0 {
		t.Fatal("habit should be deleted after confirmation")
	}
}

// TestApp_ConfirmDeleteBlockedOnPastDay verifies the delete key on a past
// day reports read-only instead of opening the confirmation overlay.
func TestApp_ConfirmDeleteBlockedOnPastDay(t *testing.T) {
	setupTest(t)
	app, tr := newTestApp(t, &AppConfig{
		Keys:             &config.KeysConfig{},
		ConfirmDeletions: true,
	})

	// Backdate the habit so it is listed on the past day.
	created := uiTestDay.AddDate(0, 0, -10)
	doc := tracker.Document{
		Habits:      []tracker.Habit{{ID: "h1", Text: "Read", CreatedAt: &created}},
		Completions: map[string][]string{},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Import(raw); err != nil {
		t.Fatalf("Import: %v", err)
	}

	app.Update(keyMsg('1'))
	app.Update(keyMsg('h'))
	app.Update(keyMsg('2'))

	app.Update(keyMsg('x'))
	if app.confirmDel != nil {
		t.Fatal("overlay should not open on a past day")
	}
	if len(tr.Habits()) != 1 {
		t.Fatal("habit deleted on a past day")
	}
	if !strings.Contains(app.status, "read-only") {
		t.Errorf("expected read-only status, got %q", app.status)
	}
}

// TestApp_DeleteWithoutConfirmation verifies deletion applies immediately
// when confirmations are disabled.
func TestApp_DeleteWithoutConfirmation(t *testing.T) {
	setupTest(t)
	app, tr := newTestApp(t, &AppConfig{
		Keys:             &config.KeysConfig{},
		ConfirmDeletions: false,
	})

	app.Update(keyMsg('x'))
	if app.confirmDel != nil {
		t.Fatal("no overlay expected with confirmations disabled")
	}
	if len(tr.Habits()) != 0 {
		t.Fatal("habit should be deleted immediately")
	}
}

// TestApp_CalendarSelectionDrivesDayPane verifies moving the calendar
// selection repoints the day pane.
func TestApp_CalendarSelectionDrivesDayPane(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, nil)

	app.Update(keyMsg('1'))
	if app.activePane != PaneCalendar {
		t.Fatal("expected calendar pane active")
	}

	app.Update(keyMsg('h'))
	want := uiTestDay.AddDate(0, 0, -1)
	if !sameDate(app.calendarPane.Selected(), want) {
		t.Errorf("selected = %v, want %v", app.calendarPane.Selected(), want)
	}
	if !sameDate(app.dayPane.date, want) {
		t.Errorf("day pane date = %v, want %v", app.dayPane.date, want)
	}

	app.Update(keyMsg('t'))
	if !sameDate(app.dayPane.date, uiTestDay) {
		t.Errorf("today key should reset the day pane to today")
	}
}

// TestApp_HelpOverlayToggle verifies ? opens help and a key closes it.
func TestApp_HelpOverlayToggle(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, nil)

	app.Update(keyMsg('?'))
	if !app.showHelp {
		t.Fatal("expected help overlay")
	}
	if !strings.Contains(app.View(), "Keyboard Shortcuts") {
		t.Error("help overlay content missing")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.showHelp {
		t.Error("esc should close help")
	}
}

// TestApp_QuitRendersGoodbye verifies the quit key produces the exit summary.
func TestApp_QuitRendersGoodbye(t *testing.T) {
	setupTest(t)
	app, tr := newTestApp(t, nil)
	tr.ToggleHabit(tr.Habits()[0].ID, uiTestDay)

	app.Update(keyMsg('q'))
	if !app.quitting {
		t.Fatal("expected quitting state")
	}
	view := app.View()
	if !strings.Contains(view, "Habits: 1/1") {
		t.Errorf("goodbye missing habit summary:\n%s", view)
	}
}

func sameDate(a, b time.Time) bool {
	return dates.SameDay(a, b)
}
