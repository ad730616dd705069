package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lightningx004/habit-antigravity/internal/config"
	"github.com/lightningx004/habit-antigravity/internal/dates"
	"github.com/lightningx004/habit-antigravity/internal/tracker"
)

// CalendarPane renders a month grid where each day cell is colored by its
// completion status. It owns the selected date the rest of the UI follows.
type CalendarPane struct {
	tracker  *tracker.Tracker
	selected time.Time
	focused  bool
	width    int
	height   int
	styles   *Styles

	keys CalendarKeyMap
}

// NewCalendarPane creates a new calendar pane selecting today.
func NewCalendarPane(tr *tracker.Tracker, styles *Styles) *CalendarPane {
	return NewCalendarPaneWithKeys(tr, styles, &config.KeysConfig{})
}

// NewCalendarPaneWithKeys creates a new calendar pane with custom key bindings.
func NewCalendarPaneWithKeys(tr *tracker.Tracker, styles *Styles, keyCfg *config.KeysConfig) *CalendarPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &CalendarPane{
		tracker:  tr,
		selected: dates.StartOfDay(tr.Now()),
		styles:   styles,
		keys:     NewCalendarKeyMap(keyCfg),
	}
}

// Selected returns the currently selected date.
func (p *CalendarPane) Selected() time.Time {
	return p.selected
}

// SetSelected moves the selection to the given date.
func (p *CalendarPane) SetSelected(date time.Time) {
	p.selected = dates.StartOfDay(date)
}

// SetSize sets the pane dimensions.
func (p *CalendarPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *CalendarPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *CalendarPane) IsFocused() bool {
	return p.focused
}

// Update handles messages for the calendar pane. It returns true when the
// selection moved, so the app can refresh the panes that depend on it.
func (p *CalendarPane) Update(msg tea.Msg) bool {
	if !p.focused {
		return false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}

	before := p.selected
	switch {
	case key.Matches(keyMsg, p.keys.PrevDay):
		p.selected = p.selected.AddDate(0, 0, -1)

	case key.Matches(keyMsg, p.keys.NextDay):
		p.selected = p.selected.AddDate(0, 0, 1)

	case key.Matches(keyMsg, p.keys.PrevWeek):
		p.selected = p.selected.AddDate(0, 0, -7)

	case key.Matches(keyMsg, p.keys.NextWeek):
		p.selected = p.selected.AddDate(0, 0, 7)

	case key.Matches(keyMsg, p.keys.PrevMonth):
		p.selected = addMonthClamped(p.selected, -1)

	case key.Matches(keyMsg, p.keys.NextMonth):
		p.selected = addMonthClamped(p.selected, 1)

	case key.Matches(keyMsg, p.keys.Today):
		p.selected = dates.StartOfDay(p.tracker.Now())
	}

	return !p.selected.Equal(before)
}

// addMonthClamped moves by whole months, clamping the day of month so that
// e.g. Jan 31 lands on Feb 28 instead of spilling into March.
func addMonthClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	target := first.AddDate(0, months, 0)
	day := t.Day()
	if last := dates.DaysInMonth(target); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, t.Location())
}

// View renders the calendar pane.
func (p *CalendarPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("📅 " + p.selected.Format("January 2006"))
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 22
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	// Weekday header, Monday first
	b.WriteString(p.styles.WeekdayStyle.Render(" Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	today := dates.StartOfDay(p.tracker.Now())
	first := time.Date(p.selected.Year(), p.selected.Month(), 1, 0, 0, 0, 0, p.selected.Location())
	daysInMonth := dates.DaysInMonth(p.selected)

	// Weekday of the first, shifted so Monday=0.
	offset := (int(first.Weekday()) + 6) % 7

	var row strings.Builder
	row.WriteString(strings.Repeat("   ", offset))

	col := offset
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(p.selected.Year(), p.selected.Month(), day, 0, 0, 0, 0, p.selected.Location())
		row.WriteString(" ")
		row.WriteString(p.renderDayCell(date, day, today))

		col++
		if col == 7 {
			b.WriteString(row.String())
			b.WriteString("\n")
			row.Reset()
			col = 0
		}
	}
	if col > 0 {
		b.WriteString(row.String())
		b.WriteString("\n")
	}

	// Legend
	b.WriteString("\n")
	legend := fmt.Sprintf("%s perfect  %s partial  %s missed",
		p.styles.DayPerfectStyle.Render("●"),
		p.styles.DaySuccessStyle.Render("●"),
		p.styles.DayFailStyle.Render("●"))
	b.WriteString(" " + legend)
	b.WriteString("\n")

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

// renderDayCell renders a single two-character day cell with status coloring.
func (p *CalendarPane) renderDayCell(date time.Time, day int, today time.Time) string {
	cell := fmt.Sprintf("%2d", day)

	if dates.SameDay(date, p.selected) {
		return p.styles.DaySelectedStyle.Render(cell)
	}
	if dates.SameDay(date, today) {
		return p.styles.DayTodayStyle.Render(cell)
	}

	switch p.tracker.StatusFor(date) {
	case tracker.StatusPerfect:
		return p.styles.DayPerfectStyle.Render(cell)
	case tracker.StatusSuccess:
		return p.styles.DaySuccessStyle.Render(cell)
	case tracker.StatusFail:
		return p.styles.DayFailStyle.Render(cell)
	case tracker.StatusFailZero:
		return p.styles.DayFailZeroStyle.Render(cell)
	}
	if date.After(today) {
		return p.styles.DayFutureStyle.Render(cell)
	}
	return p.styles.DayPlainStyle.Render(cell)
}
