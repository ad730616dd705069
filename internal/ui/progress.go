package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lightningx004/habit-antigravity/internal/dates"
	"github.com/lightningx004/habit-antigravity/internal/tracker"
)

// ProgressPane shows year and month progress, the selected day's completion
// percentage, and current streaks for every habit. It is display-only.
type ProgressPane struct {
	tracker *tracker.Tracker
	date    time.Time
	focused bool
	width   int
	height  int
	styles  *Styles
}

// NewProgressPane creates a new progress pane anchored on today.
func NewProgressPane(tr *tracker.Tracker, styles *Styles) *ProgressPane {
	return &ProgressPane{
		tracker: tr,
		date:    dates.StartOfDay(tr.Now()),
		styles:  styles,
	}
}

// SetDate points the pane at a different day.
func (p *ProgressPane) SetDate(date time.Time) {
	p.date = dates.StartOfDay(date)
}

// SetSize sets the pane dimensions.
func (p *ProgressPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *ProgressPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *ProgressPane) IsFocused() bool {
	return p.focused
}

// renderBar renders a percentage as a fixed-width bar.
func (p *ProgressPane) renderBar(pct, width int) string {
	if width < 4 {
		width = 10
	}
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	return p.styles.ProgressBarFilled.Render(strings.Repeat("█", filled)) +
		p.styles.ProgressBarEmpty.Render(strings.Repeat("░", width-filled))
}

// View renders the progress pane.
func (p *ProgressPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("📈 PROGRESS")
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	barWidth := p.width - 18
	if barWidth < 8 {
		barWidth = 10
	}

	yearPct := p.tracker.YearProgress()
	monthPct := p.tracker.MonthProgress()
	b.WriteString(fmt.Sprintf(" %s %s %s\n",
		p.styles.StatLabelStyle.Render("Year "),
		p.renderBar(yearPct, barWidth),
		p.styles.StatValueStyle.Render(fmt.Sprintf("%3d%%", yearPct))))
	b.WriteString(fmt.Sprintf(" %s %s %s\n",
		p.styles.StatLabelStyle.Render("Month"),
		p.renderBar(monthPct, barWidth),
		p.styles.StatValueStyle.Render(fmt.Sprintf("%3d%%", monthPct))))

	stats := p.tracker.StatsFor(p.date)
	if pct, ok := stats.Percent(); ok {
		b.WriteString(fmt.Sprintf(" %s %s %s\n",
			p.styles.StatLabelStyle.Render("Day  "),
			p.renderBar(pct, barWidth),
			p.styles.StatValueStyle.Render(fmt.Sprintf("%3d%%", pct))))
	} else {
		b.WriteString(fmt.Sprintf(" %s %s\n",
			p.styles.StatLabelStyle.Render("Day  "),
			p.styles.StatLabelStyle.Render("no items")))
	}

	// Streaks
	habits := p.tracker.Habits()
	if len(habits) > 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.SectionStyle.Render(" STREAKS"))
		b.WriteString("\n")

		maxRows := p.height - 9
		if maxRows < 3 {
			maxRows = 5
		}
		for i, h := range habits {
			if i >= maxRows {
				more := p.styles.StatLabelStyle.Render(fmt.Sprintf("  …and %d more", len(habits)-maxRows))
				b.WriteString(more)
				b.WriteString("\n")
				break
			}
			streak := p.tracker.Streak(h.ID)
			name := runewidth.Truncate(h.Text, max(5, p.width-14), "..")
			var badge string
			if streak > 0 {
				badge = p.styles.StreakStyle.Render(fmt.Sprintf("🔥%d", streak))
			} else {
				badge = p.styles.StatLabelStyle.Render("—")
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", p.styles.ItemPendingStyle.Render(name), badge))
		}
	}

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}
