package ui

import (
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lightningx004/habit-antigravity/internal/dates"
	"github.com/lightningx004/habit-antigravity/internal/tracker"
)

func newTestDayPane(t *testing.T) (*DayPane, *tracker.Tracker) {
	t.Helper()
	tr := createTestTracker(t)
	p := NewDayPane(tr, createTestStyles())
	p.SetSize(50, 20)
	p.SetFocused(true)
	return p, tr
}

func typeText(p *DayPane, text string) {
	for _, r := range text {
		p.Update(keyMsg(r))
	}
}

// TestDayPane_EmptyState verifies the hint shown when nothing is tracked.
func TestDayPane_EmptyState(t *testing.T) {
	setupTest(t)
	p, _ := newTestDayPane(t)

	view := p.View()
	if !strings.Contains(view, "Press 'a' for a task") {
		t.Errorf("missing empty-state hint:\n%s", view)
	}

	p.SetDate(uiTestDay.AddDate(0, 0, -3))
	view = p.View()
	if !strings.Contains(view, "Nothing was tracked on this day.") {
		t.Errorf("missing read-only empty-state hint:\n%s", view)
	}
}

// TestDayPane_AddAndToggleTask adds a task through the input and toggles it.
func TestDayPane_AddAndToggleTask(t *testing.T) {
	setupTest(t)
	p, tr := newTestDayPane(t)

	p.Update(keyMsg('a'))
	if !p.IsAdding() {
		t.Fatal("'a' should enter input mode")
	}
	typeText(p, "Water plants")
	changed := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !changed {
		t.Fatal("confirming the input should report a change")
	}

	tasks := tr.TasksOn(uiTestDay)
	if len(tasks) != 1 || tasks[0].Text != "Water plants" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}

	p.Update(keyMsg('d'))
	if !tr.TasksOn(uiTestDay)[0].Completed {
		t.Error("toggle key should complete the task")
	}
	p.Update(keyMsg('d'))
	if tr.TasksOn(uiTestDay)[0].Completed {
		t.Error("second toggle should uncomplete the task")
	}
}

// TestDayPane_CancelInput verifies esc discards the input.
func TestDayPane_CancelInput(t *testing.T) {
	setupTest(t)
	p, tr := newTestDayPane(t)

	p.Update(keyMsg('a'))
	typeText(p, "never mind")
	p.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if p.IsAdding() {
		t.Error("esc should leave input mode")
	}
	if len(tr.TasksOn(uiTestDay)) != 0 {
		t.Error("canceled input still added a task")
	}
}

// TestDayPane_PastDayReadOnly verifies mutations are blocked on past days.
func TestDayPane_PastDayReadOnly(t *testing.T) {
	setupTest(t)
	p, tr := newTestDayPane(t)

	var statusMsg string
	var statusErr bool
	p.SetStatusFunc(func(msg string, isError bool) {
		statusMsg = msg
		statusErr = isError
	})

	p.SetDate(uiTestDay.AddDate(0, 0, -1))

	p.Update(keyMsg('a'))
	if p.IsAdding() {
		t.Error("task input should not open on a past day")
	}
	if !statusErr || !strings.Contains(statusMsg, "read-only") {
		t.Errorf("expected read-only status, got %q", statusMsg)
	}

	p.Update(keyMsg('A'))
	if p.IsAdding() {
		t.Error("habit input should not open on a past day")
	}

	if !strings.Contains(p.View(), "read-only") {
		t.Error("past day view missing read-only tag")
	}
	if len(tr.Habits()) != 0 {
		t.Error("habit appeared despite the guard")
	}
}

// TestDayPane_PastDayHabitDeleteBlocked verifies the delete key cannot
// remove a habit while the pane sits on a past day, even though the habit
// was valid back then.
func TestDayPane_PastDayHabitDeleteBlocked(t *testing.T) {
	setupTest(t)
	p, tr := newTestDayPane(t)

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

	var statusMsg string
	p.SetStatusFunc(func(msg string, isError bool) { statusMsg = msg })

	p.SetDate(uiTestDay.AddDate(0, 0, -2))
	if !strings.Contains(p.View(), "Read") {
		t.Fatal("habit missing from past day list")
	}

	if p.Update(keyMsg('x')) {
		t.Error("delete on a past day should not report a change")
	}
	if len(tr.Habits()) != 1 {
		t.Fatal("habit was deleted on a past day")
	}
	if !strings.Contains(statusMsg, "read-only") {
		t.Errorf("expected read-only status, got %q", statusMsg)
	}

	// Back on today the same key works.
	statusMsg = ""
	p.SetDate(uiTestDay)
	if !p.Update(keyMsg('x')) {
		t.Fatal("delete on today should apply")
	}
	if len(tr.Habits()) != 0 {
		t.Error("habit survived deletion on an editable day")
	}
}

// TestDayPane_FutureDayEditable verifies future days accept toggles.
func TestDayPane_FutureDayEditable(t *testing.T) {
	setupTest(t)
	p, tr := newTestDayPane(t)
	h, err := tr.AddHabit("Stretch", uiTestDay)
	if err != nil {
		t.Fatal(err)
	}

	future := uiTestDay.AddDate(0, 0, 2)
	p.SetDate(future)
	if !strings.Contains(p.View(), "Stretch") {
		t.Fatal("habit missing from future day")
	}

	p.Update(keyMsg('d'))
	if !tr.IsCompleted(h.ID, future) {
		t.Error("toggle on a future day should apply")
	}
}

// TestDayPane_SectionsAndStreaks checks the rendered sections and badges.
func TestDayPane_SectionsAndStreaks(t *testing.T) {
	setupTest(t)
	p, tr := newTestDayPane(t)

	// Seed a habit with history: created five days back, completed
	// yesterday and today.
	created := uiTestDay.AddDate(0, 0, -5)
	doc := tracker.Document{
		Habits: []tracker.Habit{{ID: "h1", Text: "Read", CreatedAt: &created}},
		Completions: map[string][]string{
			dates.DayKey(uiTestDay.AddDate(0, 0, -1)): {"h1"},
			dates.DayKey(uiTestDay):                   {"h1"},
		},
		LocalTasks: map[string][]tracker.TaskEntry{
			dates.DayKey(uiTestDay): {{Text: "Buy milk"}},
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Import(raw); err != nil {
		t.Fatalf("Import: %v", err)
	}
	p.refresh()

	view := p.View()
	if !strings.Contains(view, "HABITS") || !strings.Contains(view, "TASKS") {
		t.Errorf("missing section headers:\n%s", view)
	}
	if !strings.Contains(view, "🔥2") {
		t.Errorf("missing streak badge:\n%s", view)
	}
	if !strings.Contains(view, "1/2 done") {
		t.Errorf("missing day stats:\n%s", view)
	}

	p.SetShowStreaks(false)
	if strings.Contains(p.View(), "🔥") {
		t.Error("streak badge shown with streaks disabled")
	}
}

// TestDayPane_MoveHabit reorders habits with the move keys.
func TestDayPane_MoveHabit(t *testing.T) {
	setupTest(t)
	p, tr := newTestDayPane(t)

	tr.AddHabit("First", uiTestDay)
	tr.AddHabit("Second", uiTestDay)
	tr.AddHabit("Third", uiTestDay)
	p.refresh()

	// Cursor starts on "First"; move it down past "Second".
	p.Update(keyMsg('J'))
	habits := tr.Habits()
	if habits[0].Text != "Second" || habits[1].Text != "First" {
		t.Fatalf("unexpected order after move: %+v", habits)
	}
	if p.cursor != 1 {
		t.Errorf("cursor should follow the moved habit, got %d", p.cursor)
	}

	p.Update(keyMsg('K'))
	habits = tr.Habits()
	if habits[0].Text != "First" {
		t.Errorf("move up should restore order, got %+v", habits)
	}
}

// TestDayPane_CursorBounds verifies navigation clamps at list edges.
func TestDayPane_CursorBounds(t *testing.T) {
	setupTest(t)
	p, tr := newTestDayPane(t)

	tr.AddTask(uiTestDay, "one")
	tr.AddTask(uiTestDay, "two")
	p.refresh()

	p.Update(keyMsg('k'))
	if p.cursor != 0 {
		t.Errorf("cursor moved above the top: %d", p.cursor)
	}
	p.Update(keyMsg('G'))
	if p.cursor != 1 {
		t.Errorf("bottom key: cursor = %d, want 1", p.cursor)
	}
	p.Update(keyMsg('j'))
	if p.cursor != 1 {
		t.Errorf("cursor moved past the bottom: %d", p.cursor)
	}
	p.Update(keyMsg('g'))
	if p.cursor != 0 {
		t.Errorf("top key: cursor = %d, want 0", p.cursor)
	}
}

// TestDayPane_DeleteTask removes the selected task directly.
func TestDayPane_DeleteTask(t *testing.T) {
	setupTest(t)
	p, tr := newTestDayPane(t)

	tr.AddTask(uiTestDay, "doomed")
	p.refresh()

	if !p.Update(keyMsg('x')) {
		t.Fatal("delete should report a change")
	}
	if len(tr.TasksOn(uiTestDay)) != 0 {
		t.Error("task survived deletion")
	}
}

// TestDayPane_MouseWheelMovesCursor verifies wheel scrolling.
func TestDayPane_MouseWheelMovesCursor(t *testing.T) {
	setupTest(t)
	p, tr := newTestDayPane(t)

	tr.AddTask(uiTestDay, "one")
	tr.AddTask(uiTestDay, "two")
	p.refresh()

	p.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if p.cursor != 1 {
		t.Errorf("wheel down: cursor = %d, want 1", p.cursor)
	}
	p.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if p.cursor != 0 {
		t.Errorf("wheel up: cursor = %d, want 0", p.cursor)
	}
}
