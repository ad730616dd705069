// Package reports provides daily and monthly report generation for the
// antigravity app. Reports aggregate habit completions, local tasks and
// streaks from the tracker.
package reports

import "time"

// DailyReport contains aggregated data for a single day.
type DailyReport struct {
	Date        time.Time     `json:"date"`
	Status      string        `json:"status"`
	Percent     int           `json:"percent"`
	Habits      []HabitStatus `json:"habits"`
	Tasks       []TaskStatus  `json:"tasks"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// MonthlyReport contains aggregated data for a calendar month.
type MonthlyReport struct {
	Year        int           `json:"year"`
	Month       time.Month    `json:"month"`
	Days        []DaySummary  `json:"days"`
	Habits      []HabitMonth  `json:"habits"`
	PerfectDays int           `json:"perfect_days"`
	SuccessDays int           `json:"success_days"`
	FailDays    int           `json:"fail_days"`
	TrackedDays int           `json:"tracked_days"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// HabitStatus represents one habit and its completion on a day.
type HabitStatus struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Done   bool   `json:"done"`
	Streak int    `json:"streak"`
}

// TaskStatus represents a local task and its completion on a day.
type TaskStatus struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// DaySummary provides a quick overview of a single day within a month.
type DaySummary struct {
	Date           string `json:"date"`
	DayOfWeek      string `json:"day_of_week"`
	Status         string `json:"status"`
	Percent        int    `json:"percent"`
	HabitsComplete int    `json:"habits_complete"`
	HabitsTotal    int    `json:"habits_total"`
	TasksComplete  int    `json:"tasks_complete"`
	TasksTotal     int    `json:"tasks_total"`
}

// HabitMonth represents a habit's completion over a month.
type HabitMonth struct {
	ID             string  `json:"id"`
	Text           string  `json:"text"`
	CompletedCount int     `json:"completed_count"`
	ActiveDays     int     `json:"active_days"`
	CompletionRate float64 `json:"completion_rate"`
	Streak         int     `json:"streak"`
}
