// Package reports provides daily and monthly report generation for the antigravity app.
package reports

import (
	"time"

	"github.com/lightningx004/habit-antigravity/internal/dates"
	"github.com/lightningx004/habit-antigravity/internal/tracker"
)

// Generator creates reports from tracker data.
type Generator struct {
	tr *tracker.Tracker
}

// NewGenerator creates a new report generator.
func NewGenerator(tr *tracker.Tracker) *Generator {
	return &Generator{tr: tr}
}

// GenerateDaily generates a report for a specific date.
func (g *Generator) GenerateDaily(date time.Time) *DailyReport {
	date = dates.StartOfDay(date)

	habits := make([]HabitStatus, 0)
	for _, h := range g.tr.Habits() {
		if !g.tr.IsHabitValidOn(h, date) {
			continue
		}
		habits = append(habits, HabitStatus{
			ID:     h.ID,
			Text:   h.Text,
			Done:   g.tr.IsCompleted(h.ID, date),
			Streak: g.tr.StreakAt(h.ID, date),
		})
	}

	tasks := make([]TaskStatus, 0)
	for _, task := range g.tr.TasksOn(date) {
		tasks = append(tasks, TaskStatus{Text: task.Text, Done: task.Completed})
	}

	pct, _ := g.tr.StatsFor(date).Percent()
	return &DailyReport{
		Date:        date,
		Status:      g.tr.StatusFor(date).String(),
		Percent:     pct,
		Habits:      habits,
		Tasks:       tasks,
		GeneratedAt: g.tr.Now(),
	}
}

// GenerateMonthly generates a report for the calendar month containing date.
// Days after today are not counted; a report for the current month covers
// the month so far.
func (g *Generator) GenerateMonthly(date time.Time) *MonthlyReport {
	year, month, _ := date.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, date.Location())
	daysInMonth := dates.DaysInMonth(first)
	today := dates.StartOfDay(g.tr.Now())

	report := &MonthlyReport{
		Year:        year,
		Month:       month,
		Days:        make([]DaySummary, 0, daysInMonth),
		GeneratedAt: g.tr.Now(),
	}

	completedPerHabit := make(map[string]int)
	activePerHabit := make(map[string]int)

	for i := 0; i < daysInMonth; i++ {
		day := first.AddDate(0, 0, i)
		if day.After(today) {
			break
		}

		stats := g.tr.StatsFor(day)
		status := g.tr.StatusFor(day)
		pct, tracked := stats.Percent()

		report.Days = append(report.Days, DaySummary{
			Date:           dates.DayKey(day),
			DayOfWeek:      day.Weekday().String(),
			Status:         status.String(),
			Percent:        pct,
			HabitsComplete: stats.CompletedHabits,
			HabitsTotal:    stats.TotalHabits,
			TasksComplete:  stats.CompletedTasks,
			TasksTotal:     stats.TotalTasks,
		})

		if tracked {
			report.TrackedDays++
		}
		switch status {
		case tracker.StatusPerfect:
			report.PerfectDays++
		case tracker.StatusSuccess:
			report.SuccessDays++
		case tracker.StatusFail, tracker.StatusFailZero:
			report.FailDays++
		}

		for _, h := range g.tr.Habits() {
			if !g.tr.IsHabitValidOn(h, day) {
				continue
			}
			activePerHabit[h.ID]++
			if g.tr.IsCompleted(h.ID, day) {
				completedPerHabit[h.ID]++
			}
		}
	}

	for _, h := range g.tr.Habits() {
		active := activePerHabit[h.ID]
		if active == 0 {
			continue
		}
		completed := completedPerHabit[h.ID]
		report.Habits = append(report.Habits, HabitMonth{
			ID:             h.ID,
			Text:           h.Text,
			CompletedCount: completed,
			ActiveDays:     active,
			CompletionRate: float64(completed) / float64(active),
			Streak:         g.tr.Streak(h.ID),
		})
	}

	return report
}
