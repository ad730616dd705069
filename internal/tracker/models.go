// Package tracker implements the completion-tracking core of the
// antigravity app: habits, per-day local tasks, dated completions, streaks
// and progress aggregation. State lives in memory on a Tracker and is
// written through a kv.Store after every mutation.
package tracker

import "time"

// Storage keys used against the kv collaborator.
const (
	keyHabits      = "habits"
	keyCompletions = "completions"
	keyLocalTasks  = "localTasks"
)

// Habit is a recurring item tracked across days. The ID is stable for the
// habit's lifetime. CreatedAt, when set, marks the first calendar day the
// habit counts on; nil means the habit is valid for all days (pre-dates the
// cutoff feature).
type Habit struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// TaskEntry is a one-off item scoped to a single day. Tasks carry no id;
// they are addressed by position within their day's sequence.
type TaskEntry struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Data holds the three top-level collections. Completions and LocalTasks
// are keyed by canonical day keys; a missing day key means "nothing that
// day", never an empty entry.
type Data struct {
	Habits      []Habit
	Completions map[string][]string
	LocalTasks  map[string][]TaskEntry
}

// NewData returns an empty, fully initialized Data.
func NewData() *Data {
	return &Data{
		Habits:      []Habit{},
		Completions: map[string][]string{},
		LocalTasks:  map[string][]TaskEntry{},
	}
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	out := &Data{
		Habits:      make([]Habit, len(d.Habits)),
		Completions: make(map[string][]string, len(d.Completions)),
		LocalTasks:  make(map[string][]TaskEntry, len(d.LocalTasks)),
	}
	copy(out.Habits, d.Habits)
	for day, ids := range d.Completions {
		out.Completions[day] = append([]string(nil), ids...)
	}
	for day, tasks := range d.LocalTasks {
		out.LocalTasks[day] = append([]TaskEntry(nil), tasks...)
	}
	return out
}
