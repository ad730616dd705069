package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lightningx004/habit-antigravity/internal/dates"
	"github.com/lightningx004/habit-antigravity/internal/kv"
)

const maxItemTextLen = 200

// Tracker owns the in-memory habit/task state and is the only writer to
// the underlying kv store. It is not safe for concurrent use; the app is
// single-threaded and every mutation runs to completion between events.
//
// Persistence is at-least-once: mutations update memory first, then write
// through persist(). A failed write is reported via the save-error callback
// and the in-memory change is kept, so reads immediately after a write
// always observe it.
type Tracker struct {
	store kv.Store
	data  *Data

	now         func() time.Time
	newID       func() string
	onSaveError func(error)
}

// backupGetter is an optional kv capability: stores that keep a backup of
// the previously written value can offer it for corruption recovery.
type backupGetter interface {
	GetBackup(key string) ([]byte, bool)
}

// New loads state from the store, running the legacy-shape migration
// before anything else reads it. If migration changed anything (or the
// collections did not exist yet), the upgraded state is persisted
// immediately.
func New(store kv.Store) (*Tracker, error) {
	t := &Tracker{
		store: store,
		now:   time.Now,
		newID: newHabitID,
		onSaveError: func(err error) {
			fmt.Fprintf(os.Stderr, "antigravity: save failed: %v\n", err)
		},
	}

	habitsRaw, habitsOK, err := t.loadRaw(keyHabits)
	if err != nil {
		return nil, err
	}
	completionsRaw, completionsOK, err := t.loadRaw(keyCompletions)
	if err != nil {
		return nil, err
	}
	tasksRaw, tasksOK, err := t.loadRaw(keyLocalTasks)
	if err != nil {
		return nil, err
	}

	data, migrated, err := decodeData(habitsRaw, completionsRaw, tasksRaw, t.newID)
	if err != nil {
		return nil, err
	}
	t.data = data

	if migrated || !habitsOK || !completionsOK || !tasksOK {
		if err := t.persist(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// loadRaw reads one collection document, falling back to the store's
// backup copy when the primary value is not valid JSON.
func (t *Tracker) loadRaw(key string) ([]byte, bool, error) {
	raw, ok, err := t.store.Get(key)
	if err != nil {
		return nil, false, err
	}
	if !ok || len(raw) == 0 {
		return nil, ok, nil
	}
	if json.Valid(raw) {
		return raw, true, nil
	}

	if bg, hasBackup := t.store.(backupGetter); hasBackup {
		if bak, ok := bg.GetBackup(key); ok && json.Valid(bak) {
			fmt.Fprintf(os.Stderr, "antigravity: %s is corrupt, recovered from backup\n", key)
			return bak, true, nil
		}
	}
	return nil, false, fmt.Errorf("parse %s: stored document is not valid JSON", key)
}

// SetNowFunc overrides the clock used for "today" decisions. Passing nil
// resets it to time.Now.
func (t *Tracker) SetNowFunc(now func() time.Time) {
	if now == nil {
		t.now = time.Now
		return
	}
	t.now = now
}

// SetIDFunc overrides the habit id generator, for deterministic tests.
// Passing nil resets it to the default generator.
func (t *Tracker) SetIDFunc(newID func() string) {
	if newID == nil {
		t.newID = newHabitID
		return
	}
	t.newID = newID
}

// SetOnSaveError registers the callback invoked when a persistence write
// fails. Passing nil restores the default, which logs to stderr.
func (t *Tracker) SetOnSaveError(fn func(error)) {
	if fn == nil {
		t.onSaveError = func(err error) {
			fmt.Fprintf(os.Stderr, "antigravity: save failed: %v\n", err)
		}
		return
	}
	t.onSaveError = fn
}

// Now returns the current time according to the tracker clock.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// persist writes all three collections to the store.
func (t *Tracker) persist() error {
	var errs []error
	for _, c := range []struct {
		key string
		v   any
	}{
		{keyHabits, t.data.Habits},
		{keyCompletions, t.data.Completions},
		{keyLocalTasks, t.data.LocalTasks},
	} {
		doc, err := json.MarshalIndent(c.v, "", "  ")
		if err != nil {
			errs = append(errs, fmt.Errorf("serialize %s: %w", c.key, err))
			continue
		}
		if err := t.store.Set(c.key, doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// save persists after a mutation. Failures are routed to the save-error
// callback; the in-memory mutation stands regardless.
func (t *Tracker) save() {
	if err := t.persist(); err != nil {
		t.onSaveError(err)
	}
}

// =============================================================================
// Queries
// =============================================================================

// Habits returns the habit sequence in display order. The slice is a copy.
func (t *Tracker) Habits() []Habit {
	return append([]Habit(nil), t.data.Habits...)
}

// Habit looks up a habit by id.
func (t *Tracker) Habit(id string) (Habit, bool) {
	for _, h := range t.data.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// TasksOn returns the local tasks for the day containing date, in order.
// The slice is a copy.
func (t *Tracker) TasksOn(date time.Time) []TaskEntry {
	return append([]TaskEntry(nil), t.data.LocalTasks[dates.DayKey(date)]...)
}

// IsCompleted reports whether the habit is marked complete on the day
// containing date.
func (t *Tracker) IsCompleted(habitID string, date time.Time) bool {
	return t.isCompletedOnKey(habitID, dates.DayKey(date))
}

func (t *Tracker) isCompletedOnKey(habitID, key string) bool {
	for _, id := range t.data.Completions[key] {
		if id == habitID {
			return true
		}
	}
	return false
}

// IsHabitValidOn reports whether the habit counts on the day containing
// date: its creation day is unset or on/before that day.
func (t *Tracker) IsHabitValidOn(h Habit, date time.Time) bool {
	if h.CreatedAt == nil {
		return true
	}
	return !dates.StartOfDay(date).Before(dates.StartOfDay(*h.CreatedAt))
}

// CanEditDay is the single rule gating day-scoped edits: past days are
// read-only, today and the future are editable. Callers use it to disable
// affordances; the mutating operations below also enforce it themselves
// where the day is part of the operation.
func (t *Tracker) CanEditDay(date time.Time) bool {
	return !dates.IsPast(date, t.now())
}

// =============================================================================
// Mutations
// =============================================================================

// AddHabit creates a habit whose first counting day is the day containing
// date. It returns (nil, nil) without mutating anything when that day is
// in the past; the past-day guard is a rejection, not an error.
func (t *Tracker) AddHabit(text string, date time.Time) (*Habit, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("habit text is required")
	}
	if len(text) > maxItemTextLen {
		return nil, fmt.Errorf("habit text too long (max %d)", maxItemTextLen)
	}
	if !t.CanEditDay(date) {
		return nil, nil
	}

	createdAt := dates.StartOfDay(date)
	h := Habit{ID: t.newID(), Text: text, CreatedAt: &createdAt}
	t.data.Habits = append(t.data.Habits, h)
	t.save()
	return &h, nil
}

// AddTask appends a local task to the day containing date, initially not
// completed. Returns false without mutating when the day is in the past.
func (t *Tracker) AddTask(date time.Time, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, fmt.Errorf("task text is required")
	}
	if len(text) > maxItemTextLen {
		return false, fmt.Errorf("task text too long (max %d)", maxItemTextLen)
	}
	if !t.CanEditDay(date) {
		return false, nil
	}

	key := dates.DayKey(date)
	t.data.LocalTasks[key] = append(t.data.LocalTasks[key], TaskEntry{Text: text})
	t.save()
	return true, nil
}

// ToggleHabit flips the habit's completion for the day containing date.
// It reports whether a change was applied: past days and unknown habit ids
// are silent no-ops.
func (t *Tracker) ToggleHabit(habitID string, date time.Time) bool {
	if !t.CanEditDay(date) {
		return false
	}
	if _, ok := t.Habit(habitID); !ok {
		return false
	}

	key := dates.DayKey(date)
	ids := t.data.Completions[key]
	for i, id := range ids {
		if id == habitID {
			ids = append(ids[:i], ids[i+1:]...)
			if len(ids) == 0 {
				delete(t.data.Completions, key)
			} else {
				t.data.Completions[key] = ids
			}
			t.save()
			return true
		}
	}
	t.data.Completions[key] = append(ids, habitID)
	t.save()
	return true
}

// DeleteHabit removes the habit and scrubs its id from every day's
// completion set. The operation is unconditional: the past-day rule for
// deletion applies to the UI's selected day, so it lives at the call site
// (see CanEditDay), not here.
func (t *Tracker) DeleteHabit(habitID string) error {
	found := false
	for i, h := range t.data.Habits {
		if h.ID == habitID {
			t.data.Habits = append(t.data.Habits[:i], t.data.Habits[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("habit not found: %s", habitID)
	}

	for day, ids := range t.data.Completions {
		kept := ids[:0]
		for _, id := range ids {
			if id != habitID {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			delete(t.data.Completions, day)
		} else {
			t.data.Completions[day] = kept
		}
	}

	t.save()
	return nil
}

// ToggleTask flips completion of the task at index within the day
// containing date. Past days and out-of-range indices are silent no-ops;
// the report value says whether a change was applied.
func (t *Tracker) ToggleTask(date time.Time, index int) bool {
	if !t.CanEditDay(date) {
		return false
	}
	key := dates.DayKey(date)
	tasks := t.data.LocalTasks[key]
	if index < 0 || index >= len(tasks) {
		return false
	}
	tasks[index].Completed = !tasks[index].Completed
	t.save()
	return true
}

// DeleteTask removes the task at index within the day containing date.
// When the day's sequence empties, the day entry is removed entirely so
// the map stays sparse.
func (t *Tracker) DeleteTask(date time.Time, index int) bool {
	if !t.CanEditDay(date) {
		return false
	}
	key := dates.DayKey(date)
	tasks := t.data.LocalTasks[key]
	if index < 0 || index >= len(tasks) {
		return false
	}
	tasks = append(tasks[:index], tasks[index+1:]...)
	if len(tasks) == 0 {
		delete(t.data.LocalTasks, key)
	} else {
		t.data.LocalTasks[key] = tasks
	}
	t.save()
	return true
}
