// Package reports provides daily and monthly report generation for the antigravity app.
package reports

import (
	"fmt"
	"strings"
)

// FormatDailyMarkdown formats a daily report as Markdown.
func FormatDailyMarkdown(report *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Report - %s\n\n", report.Date.Format("Monday, January 2, 2006"))
	if len(report.Habits) == 0 && len(report.Tasks) == 0 {
		b.WriteString("Nothing tracked on this day.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "**%d%%** complete (%s)\n\n", report.Percent, report.Status)

	if len(report.Habits) > 0 {
		b.WriteString("## Habits\n\n")
		for _, h := range report.Habits {
			fmt.Fprintf(&b, "- %s %s", checkbox(h.Done), h.Text)
			if h.Streak > 1 {
				fmt.Fprintf(&b, " (%d-day streak)", h.Streak)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(report.Tasks) > 0 {
		b.WriteString("## Tasks\n\n")
		for _, task := range report.Tasks {
			fmt.Fprintf(&b, "- %s %s\n", checkbox(task.Done), task.Text)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FormatMonthlyMarkdown formats a monthly report as Markdown.
func FormatMonthlyMarkdown(report *MonthlyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Monthly Report - %s %d\n\n", report.Month, report.Year)

	if report.TrackedDays == 0 {
		b.WriteString("Nothing tracked this month.\n")
		return b.String()
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Tracked days: %d\n", report.TrackedDays)
	fmt.Fprintf(&b, "- Perfect days: %d\n", report.PerfectDays)
	fmt.Fprintf(&b, "- Successful days: %d\n", report.SuccessDays)
	fmt.Fprintf(&b, "- Failed days: %d\n\n", report.FailDays)

	if len(report.Habits) > 0 {
		b.WriteString("## Habits\n\n")
		b.WriteString("| Habit | Done | Rate | Streak |\n")
		b.WriteString("|-------|------|------|--------|\n")
		for _, h := range report.Habits {
			fmt.Fprintf(&b, "| %s | %d/%d | %.0f%% | %d |\n",
				h.Text, h.CompletedCount, h.ActiveDays, h.CompletionRate*100, h.Streak)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Days\n\n")
	for _, d := range report.Days {
		if d.Status == "none" {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s): %d%% - habits %d/%d, tasks %d/%d\n",
			d.Date, d.DayOfWeek[:3], d.Percent,
			d.HabitsComplete, d.HabitsTotal, d.TasksComplete, d.TasksTotal)
	}

	return b.String()
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
