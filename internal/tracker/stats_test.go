package tracker

import (
	"testing"
	"time"

	"github.com/lightningx004/habit-antigravity/internal/dates"
)

func TestStatsForCountsOnlyValidHabits(t *testing.T) {
	tr, _ := newTestTracker(t)
	h, _ := tr.AddHabit("Read", testDay)
	tr.ToggleHabit(h.ID, testDay)

	// Stale completion data on a day before the habit existed.
	yesterday := testDay.AddDate(0, 0, -1)
	tr.data.Completions[dates.DayKey(yesterday)] = []string{h.ID}

	today := tr.StatsFor(testDay)
	if today.TotalHabits != 1 || today.CompletedHabits != 1 {
		t.Errorf("today stats = %+v, want 1/1 habits", today)
	}

	before := tr.StatsFor(yesterday)
	if before.TotalHabits != 0 || before.CompletedHabits != 0 {
		t.Errorf("pre-creation stats = %+v, want habit excluded from both counts", before)
	}
}

func TestStatsForIncludesTasks(t *testing.T) {
	tr, _ := newTestTracker(t)
	h, _ := tr.AddHabit("Read", testDay)
	tr.ToggleHabit(h.ID, testDay)
	tr.AddTask(testDay, "one")
	tr.AddTask(testDay, "two")
	tr.ToggleTask(testDay, 0)

	s := tr.StatsFor(testDay)
	want := DayStats{TotalHabits: 1, CompletedHabits: 1, TotalTasks: 2, CompletedTasks: 1}
	if s != want {
		t.Errorf("stats = %+v, want %+v", s, want)
	}
	if pct, ok := s.Percent(); !ok || pct != 67 {
		t.Errorf("percent = %d, %v, want 67, true", pct, ok)
	}
}

func TestPercentEmptyDay(t *testing.T) {
	var s DayStats
	if _, ok := s.Percent(); ok {
		t.Error("empty day reported a percentage")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name      string
		habits    int
		completed int
		want      DayStatus
	}{
		{"all done", 2, 2, StatusPerfect},
		{"three of five", 5, 3, StatusSuccess}, // 60% exactly
		{"two of five", 5, 2, StatusFail},
		{"none done", 3, 0, StatusFailZero},
		// Boundaries hold on exact counts even when the rounded percent
		// would land on 0 or 100.
		{"one of two hundred fifty", 250, 1, StatusFail},
		{"one short of two hundred", 200, 199, StatusSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := newTestTracker(t)
			for i := 0; i < tt.habits; i++ {
				h, _ := tr.AddHabit("habit", testDay)
				if i < tt.completed {
					tr.ToggleHabit(h.ID, testDay)
				}
			}
			if got := tr.StatusFor(testDay); got != tt.want {
				t.Errorf("StatusFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusForNoItems(t *testing.T) {
	tr, _ := newTestTracker(t)
	if got := tr.StatusFor(testDay); got != StatusNone {
		t.Errorf("StatusFor empty day = %v, want none", got)
	}
}

func TestStatusForFutureDay(t *testing.T) {
	tr, _ := newTestTracker(t)
	h, _ := tr.AddHabit("Read", testDay)
	tomorrow := testDay.AddDate(0, 0, 1)
	tr.ToggleHabit(h.ID, tomorrow)

	if got := tr.StatusFor(tomorrow); got != StatusNone {
		t.Errorf("StatusFor future day = %v, want none", got)
	}
}

func TestStreak(t *testing.T) {
	complete := func(tr *Tracker, id string, daysAgo ...int) {
		for _, d := range daysAgo {
			day := dates.DayKey(testDay.AddDate(0, 0, -d))
			tr.data.Completions[day] = append(tr.data.Completions[day], id)
		}
	}

	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"never completed", nil, 0},
		{"today only", []int{0}, 1},
		{"today and yesterday, gap before", []int{0, 1}, 2},
		{"yesterday and before, not today", []int{1, 2}, 0},
		{"long unbroken run", []int{0, 1, 2, 3, 4, 5, 6}, 7},
		{"run with a hole", []int{0, 1, 3, 4}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := newTestTracker(t)
			h, _ := tr.AddHabit("Read", testDay)
			complete(tr, h.ID, tt.daysAgo...)
			if got := tr.Streak(h.ID); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakAt(t *testing.T) {
	tr, _ := newTestTracker(t)
	h, _ := tr.AddHabit("Read", testDay)
	for _, d := range []int{2, 3, 4} {
		key := dates.DayKey(testDay.AddDate(0, 0, -d))
		tr.data.Completions[key] = []string{h.ID}
	}

	if got := tr.StreakAt(h.ID, testDay.AddDate(0, 0, -2)); got != 3 {
		t.Errorf("StreakAt anchor = %d, want 3", got)
	}
	if got := tr.Streak(h.ID); got != 0 {
		t.Errorf("Streak today = %d, want 0", got)
	}
}

func TestCalendarProgress(t *testing.T) {
	tr, _ := newTestTracker(t)

	// June 15th: day 166 of 365, day 15 of 30.
	tr.SetNowFunc(func() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local) })
	if got := tr.YearProgress(); got != 45 {
		t.Errorf("YearProgress = %d, want 45", got)
	}
	if got := tr.MonthProgress(); got != 50 {
		t.Errorf("MonthProgress = %d, want 50", got)
	}
}
