package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/lightningx004/habit-antigravity/internal/dates"
)

// decodeData turns the three raw collection documents into Data, upgrading
// legacy shapes along the way:
//
//   - habits stored as bare name strings become records with fresh ids,
//   - completion sets keyed by positional habit index become id lists
//     (indices with no matching habit are dropped),
//   - day keys in the legacy locale-dependent "Mon Jan 02 2006" form are
//     rewritten to canonical YYYY-MM-DD, merging any collisions.
//
// A nil raw document is treated as an absent (empty) collection. The
// returned changed flag reports whether anything was upgraded, so callers
// know to re-persist. Running the decode over already-migrated data is a
// no-op.
func decodeData(habitsRaw, completionsRaw, tasksRaw []byte, newID func() string) (*Data, bool, error) {
	data := NewData()
	changed := false

	habits, indexToID, habitsChanged, err := decodeHabits(habitsRaw, newID)
	if err != nil {
		return nil, false, err
	}
	data.Habits = habits
	changed = changed || habitsChanged

	completions, complChanged, err := decodeCompletions(completionsRaw, indexToID)
	if err != nil {
		return nil, false, err
	}
	data.Completions = completions
	changed = changed || complChanged

	tasks, tasksChanged, err := decodeLocalTasks(tasksRaw)
	if err != nil {
		return nil, false, err
	}
	data.LocalTasks = tasks
	changed = changed || tasksChanged

	return data, changed, nil
}

// decodeHabits decodes the habits sequence. Legacy detection is
// structural: a collection whose first element is a JSON string is treated
// as the old bare-name shape. The returned table maps legacy positional
// indices to the freshly assigned ids; it is nil when no index migration
// applies.
func decodeHabits(raw []byte, newID func() string) ([]Habit, map[int]string, bool, error) {
	if len(raw) == 0 {
		return []Habit{}, nil, false, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, nil, false, fmt.Errorf("parse habits: %w", err)
	}
	if len(elems) == 0 {
		return []Habit{}, nil, false, nil
	}

	var first string
	if err := json.Unmarshal(elems[0], &first); err != nil {
		// Current shape: structured records.
		habits, changed, err := decodeHabitRecords(elems, newID)
		return habits, nil, changed, err
	}

	// Legacy shape: every element is a habit name.
	habits := make([]Habit, 0, len(elems))
	indexToID := make(map[int]string, len(elems))
	for i, elem := range elems {
		var name string
		if err := json.Unmarshal(elem, &name); err != nil {
			return nil, nil, false, fmt.Errorf("parse habits: element %d is not a string in legacy collection", i)
		}
		h := Habit{ID: newID(), Text: name}
		indexToID[i] = h.ID
		habits = append(habits, h)
	}
	return habits, indexToID, true, nil
}

func decodeHabitRecords(elems []json.RawMessage, newID func() string) ([]Habit, bool, error) {
	habits := make([]Habit, 0, len(elems))
	changed := false
	for i, elem := range elems {
		var h Habit
		if err := json.Unmarshal(elem, &h); err != nil {
			return nil, false, fmt.Errorf("parse habits: element %d: %w", i, err)
		}
		// Records without an id can appear after a partial migration
		// failure; repair rather than reject.
		if h.ID == "" {
			h.ID = newID()
			changed = true
		}
		habits = append(habits, h)
	}
	return habits, changed, nil
}

// decodeCompletions decodes the day-key -> completion-set mapping. Each
// stored element is either a habit id string or a legacy positional index;
// indices are mapped through indexToID and dropped when out of range.
func decodeCompletions(raw []byte, indexToID map[int]string) (map[string][]string, bool, error) {
	out := map[string][]string{}
	if len(raw) == 0 {
		return out, false, nil
	}

	var days map[string][]json.RawMessage
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false, fmt.Errorf("parse completions: %w", err)
	}

	changed := false
	for day, elems := range days {
		key, ok := dates.NormalizeKey(day)
		if !ok {
			// Unrecognized key: keep the entry untouched rather than
			// guess. It simply never matches a canonical lookup.
			key = day
		} else if key != day {
			changed = true
		}

		ids := make([]string, 0, len(elems))
		for _, elem := range elems {
			var id string
			if err := json.Unmarshal(elem, &id); err == nil {
				ids = append(ids, id)
				continue
			}
			var index int
			if err := json.Unmarshal(elem, &index); err != nil {
				return nil, false, fmt.Errorf("parse completions: day %q has a non-string, non-index entry", day)
			}
			changed = true
			if mapped, ok := indexToID[index]; ok {
				ids = append(ids, mapped)
			}
			// Out-of-range index: stale data, dropped.
		}

		out[key] = mergeIDs(out[key], ids)
	}
	return out, changed, nil
}

// decodeLocalTasks decodes the day-key -> task-sequence mapping,
// canonicalizing legacy day keys. Colliding days are concatenated.
func decodeLocalTasks(raw []byte) (map[string][]TaskEntry, bool, error) {
	out := map[string][]TaskEntry{}
	if len(raw) == 0 {
		return out, false, nil
	}

	var days map[string][]TaskEntry
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false, fmt.Errorf("parse localTasks: %w", err)
	}

	changed := false
	for day, tasks := range days {
		key, ok := dates.NormalizeKey(day)
		if ok && key != day {
			changed = true
		}
		out[key] = append(out[key], tasks...)
	}
	return out, changed, nil
}

// mergeIDs appends ids to existing, skipping duplicates while preserving
// first-seen order.
func mergeIDs(existing, ids []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(ids))
	out := make([]string, 0, len(existing)+len(ids))
	for _, id := range existing {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
