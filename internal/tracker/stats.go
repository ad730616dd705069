package tracker

import (
	"math"
	"time"

	"github.com/lightningx004/habit-antigravity/internal/dates"
)

// successThreshold is the minimum completion percentage for a day to
// count as a success rather than a fail.
const successThreshold = 60

// DayStats aggregates a single day's habit and task counts. Only habits
// valid on the day (creation day on or before it) are counted.
type DayStats struct {
	TotalHabits     int
	CompletedHabits int
	TotalTasks      int
	CompletedTasks  int
}

// Total is the number of countable items on the day.
func (s DayStats) Total() int {
	return s.TotalHabits + s.TotalTasks
}

// Completed is the number of completed items on the day.
func (s DayStats) Completed() int {
	return s.CompletedHabits + s.CompletedTasks
}

// Percent is the day's completion percentage, rounded to the nearest
// integer. ok is false when the day has no countable items.
func (s DayStats) Percent() (pct int, ok bool) {
	total := s.Total()
	if total == 0 {
		return 0, false
	}
	return int(math.Round(float64(s.Completed()) / float64(total) * 100)), true
}

// DayStatus classifies a past-or-present day for calendar styling.
type DayStatus int

const (
	// StatusNone covers future days and days with nothing to do.
	StatusNone DayStatus = iota
	// StatusPerfect is 100% completion.
	StatusPerfect
	// StatusSuccess is at or above the success threshold, below 100%.
	StatusSuccess
	// StatusFail is above zero but below the success threshold.
	StatusFail
	// StatusFailZero is 0% completion on a day that had items.
	StatusFailZero
)

func (s DayStatus) String() string {
	switch s {
	case StatusPerfect:
		return "perfect"
	case StatusSuccess:
		return "success"
	case StatusFail:
		return "fail"
	case StatusFailZero:
		return "fail-zero"
	default:
		return "none"
	}
}

// StatsFor computes the aggregate counts for the day containing date.
func (t *Tracker) StatsFor(date time.Time) DayStats {
	key := dates.DayKey(date)
	var s DayStats
	for _, h := range t.data.Habits {
		if !t.IsHabitValidOn(h, date) {
			continue
		}
		s.TotalHabits++
		if t.isCompletedOnKey(h.ID, key) {
			s.CompletedHabits++
		}
	}
	for _, task := range t.data.LocalTasks[key] {
		s.TotalTasks++
		if task.Completed {
			s.CompletedTasks++
		}
	}
	return s
}

// StatusFor classifies the day containing date. Future days always get
// StatusNone, as do days with no countable items.
func (t *Tracker) StatusFor(date time.Time) DayStatus {
	if dates.StartOfDay(date).After(dates.StartOfDay(t.now())) {
		return StatusNone
	}
	s := t.StatsFor(date)
	total := s.Total()
	if total == 0 {
		return StatusNone
	}
	// Classify on exact counts; Percent() rounds and is for display only.
	done := s.Completed()
	switch {
	case done == total:
		return StatusPerfect
	case done*100 >= successThreshold*total:
		return StatusSuccess
	case done == 0:
		return StatusFailZero
	default:
		return StatusFail
	}
}

// Streak counts consecutive completed days for the habit ending today.
// A day without a completion entry for the habit breaks the run, today
// included: an unticked today always yields zero.
func (t *Tracker) Streak(habitID string) int {
	return t.StreakAt(habitID, t.now())
}

// StreakAt is Streak anchored at an arbitrary day instead of today.
func (t *Tracker) StreakAt(habitID string, date time.Time) int {
	day := dates.StartOfDay(date)
	streak := 0
	for t.isCompletedOnKey(habitID, dates.DayKey(day)) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// YearProgress is the percentage of the year elapsed at the tracker's
// current day.
func (t *Tracker) YearProgress() int {
	return dates.YearProgress(t.now())
}

// MonthProgress is the percentage of the month elapsed at the tracker's
// current day.
func (t *Tracker) MonthProgress() int {
	return dates.MonthProgress(t.now())
}
