package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotBackup is returned by Import when the document parses as JSON but
// is missing the collections a backup must carry.
var ErrNotBackup = errors.New("not a valid backup file")

// Document is the portable import/export form of the full tracker state.
type Document struct {
	Habits      []Habit                `json:"habits"`
	Completions map[string][]string    `json:"completions"`
	LocalTasks  map[string][]TaskEntry `json:"localTasks"`
	ExportDate  time.Time              `json:"exportDate"`
}

// Export snapshots the current state as a portable document. The snapshot
// is a deep copy; later mutations do not leak into it.
func (t *Tracker) Export() Document {
	d := t.data.Clone()
	return Document{
		Habits:      d.Habits,
		Completions: d.Completions,
		LocalTasks:  d.LocalTasks,
		ExportDate:  t.now(),
	}
}

// ExportJSON renders the export document as indented JSON.
func (t *Tracker) ExportJSON() ([]byte, error) {
	doc, err := json.MarshalIndent(t.Export(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize backup: %w", err)
	}
	return doc, nil
}

// Import replaces the entire tracker state with the document in raw.
// The document must carry both a habits and a completions collection;
// anything else is rejected with ErrNotBackup and existing state stays
// untouched. Imported data goes through the same legacy migration as
// loaded data, then the new state is persisted.
func (t *Tracker) Import(raw []byte) error {
	var probe struct {
		Habits      json.RawMessage `json:"habits"`
		Completions json.RawMessage `json:"completions"`
		LocalTasks  json.RawMessage `json:"localTasks"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("parse backup: %w", err)
	}
	if probe.Habits == nil || probe.Completions == nil {
		return ErrNotBackup
	}

	data, _, err := decodeData(probe.Habits, probe.Completions, probe.LocalTasks, t.newID)
	if err != nil {
		return fmt.Errorf("parse backup: %w", err)
	}

	t.data = data
	if err := t.persist(); err != nil {
		return err
	}
	return nil
}
