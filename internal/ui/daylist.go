package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lightningx004/habit-antigravity/internal/config"
	"github.com/lightningx004/habit-antigravity/internal/dates"
	"github.com/lightningx004/habit-antigravity/internal/tracker"
)

// dayItemKind discriminates entries in the day pane's combined list.
type dayItemKind int

const (
	itemHabit dayItemKind = iota
	itemTask
)

// dayItem is one row of the day pane: either a habit valid on the selected
// day, or a local task belonging to it.
type dayItem struct {
	kind      dayItemKind
	habit     tracker.Habit
	taskIndex int
	task      tracker.TaskEntry
}

// DayPane shows the habits and tasks of the selected day and handles
// toggling, adding, deleting and reordering them.
type DayPane struct {
	tracker *tracker.Tracker
	date    time.Time
	items   []dayItem
	cursor  int
	focused bool
	width   int
	height  int
	styles  *Styles

	addingTask  bool
	addingHabit bool
	input       textinput.Model

	showStreaks bool
	onStatus    func(msg string, isError bool)

	keys      DayKeyMap
	inputKeys InputKeyMap
}

// NewDayPane creates a new day pane anchored on today.
func NewDayPane(tr *tracker.Tracker, styles *Styles) *DayPane {
	return NewDayPaneWithKeys(tr, styles, &config.KeysConfig{})
}

// NewDayPaneWithKeys creates a new day pane with custom key bindings.
func NewDayPaneWithKeys(tr *tracker.Tracker, styles *Styles, keyCfg *config.KeysConfig) *DayPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 200
	ti.Width = 40

	p := &DayPane{
		tracker:     tr,
		date:        dates.StartOfDay(tr.Now()),
		input:       ti,
		styles:      styles,
		showStreaks: true,
		keys:        NewDayKeyMap(keyCfg),
		inputKeys:   NewInputKeyMap(keyCfg),
	}
	p.refresh()
	return p
}

// SetDate points the pane at a different day and rebuilds its list.
func (p *DayPane) SetDate(date time.Time) {
	p.date = dates.StartOfDay(date)
	p.refresh()
}

// SetShowStreaks toggles streak badges next to habits.
func (p *DayPane) SetShowStreaks(show bool) {
	p.showStreaks = show
}

// SetStatusFunc registers a callback for user-facing status messages.
func (p *DayPane) SetStatusFunc(fn func(msg string, isError bool)) {
	p.onStatus = fn
}

// SetSize sets the pane dimensions.
func (p *DayPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-4)
}

// SetFocused sets whether this pane is focused.
func (p *DayPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *DayPane) IsFocused() bool {
	return p.focused
}

// IsAdding returns whether the pane is in text input mode.
func (p *DayPane) IsAdding() bool {
	return p.addingTask || p.addingHabit
}

// refresh rebuilds the combined item list from the tracker.
func (p *DayPane) refresh() {
	p.items = p.items[:0]
	for _, h := range p.tracker.Habits() {
		if p.tracker.IsHabitValidOn(h, p.date) {
			p.items = append(p.items, dayItem{kind: itemHabit, habit: h})
		}
	}
	for i, task := range p.tracker.TasksOn(p.date) {
		p.items = append(p.items, dayItem{kind: itemTask, taskIndex: i, task: task})
	}
	if p.cursor >= len(p.items) {
		p.cursor = max(0, len(p.items)-1)
	}
}

// selectedItem returns the item under the cursor.
func (p *DayPane) selectedItem() (dayItem, bool) {
	if p.cursor < 0 || p.cursor >= len(p.items) {
		return dayItem{}, false
	}
	return p.items[p.cursor], true
}

func (p *DayPane) status(msg string, isError bool) {
	if p.onStatus != nil {
		p.onStatus(msg, isError)
	}
}

// editable reports whether the selected day accepts mutations.
func (p *DayPane) editable() bool {
	return p.tracker.CanEditDay(p.date)
}

// Update handles messages for the day pane. It returns true when tracker
// state changed, so the app can refresh the calendar and progress panes.
func (p *DayPane) Update(msg tea.Msg) bool {
	if p.IsAdding() {
		return p.updateInput(msg)
	}

	if !p.focused {
		return false
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return false
}

func (p *DayPane) updateInput(msg tea.Msg) bool {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch {
		case key.Matches(keyMsg, p.inputKeys.Confirm):
			text := strings.TrimSpace(p.input.Value())
			wasHabit := p.addingHabit
			p.addingTask = false
			p.addingHabit = false
			p.input.Reset()
			p.input.Blur()
			if text == "" {
				return false
			}
			if wasHabit {
				return p.submitHabit(text)
			}
			return p.submitTask(text)

		case key.Matches(keyMsg, p.inputKeys.Cancel):
			p.addingTask = false
			p.addingHabit = false
			p.input.Reset()
			p.input.Blur()
			return false
		}
	}

	p.input, _ = p.input.Update(msg)
	return false
}

func (p *DayPane) submitHabit(text string) bool {
	h, err := p.tracker.AddHabit(text, p.date)
	if err != nil {
		p.status(err.Error(), true)
		return false
	}
	if h == nil {
		p.status("Habits can't start on a past day", true)
		return false
	}
	p.refresh()
	p.status("Habit added", false)
	return true
}

func (p *DayPane) submitTask(text string) bool {
	added, err := p.tracker.AddTask(p.date, text)
	if err != nil {
		p.status(err.Error(), true)
		return false
	}
	if !added {
		p.status("Past days are read-only", true)
		return false
	}
	p.refresh()
	p.status("Task added", false)
	return true
}

func (p *DayPane) handleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, p.keys.Down):
		if len(p.items) > 0 {
			p.cursor = min(p.cursor+1, len(p.items)-1)
		}

	case key.Matches(msg, p.keys.Up):
		if len(p.items) > 0 {
			p.cursor = max(p.cursor-1, 0)
		}

	case key.Matches(msg, p.keys.Top):
		p.cursor = 0

	case key.Matches(msg, p.keys.Bottom):
		if len(p.items) > 0 {
			p.cursor = len(p.items) - 1
		}

	case key.Matches(msg, p.keys.AddTask):
		if !p.editable() {
			p.status("Past days are read-only", true)
			return false
		}
		p.addingTask = true
		p.input.Placeholder = "New task"
		p.input.Focus()

	case key.Matches(msg, p.keys.AddHabit):
		if !p.editable() {
			p.status("Habits can't start on a past day", true)
			return false
		}
		p.addingHabit = true
		p.input.Placeholder = "New habit"
		p.input.Focus()

	case key.Matches(msg, p.keys.Toggle):
		return p.toggleSelected()

	case key.Matches(msg, p.keys.Delete):
		return p.deleteSelected()

	case key.Matches(msg, p.keys.MoveUp):
		return p.moveSelected(-1)

	case key.Matches(msg, p.keys.MoveDown):
		return p.moveSelected(1)
	}
	return false
}

// toggleSelected flips completion of the item under the cursor.
func (p *DayPane) toggleSelected() bool {
	item, ok := p.selectedItem()
	if !ok {
		return false
	}

	var applied bool
	switch item.kind {
	case itemHabit:
		applied = p.tracker.ToggleHabit(item.habit.ID, p.date)
	case itemTask:
		applied = p.tracker.ToggleTask(p.date, item.taskIndex)
	}
	if !applied {
		p.status("Past days are read-only", true)
		return false
	}
	p.refresh()
	return true
}

// deleteSelected removes the item under the cursor. Habit deletion removes
// the habit everywhere, not just on this day.
func (p *DayPane) deleteSelected() bool {
	item, ok := p.selectedItem()
	if !ok {
		p.status("Nothing selected", true)
		return false
	}

	switch item.kind {
	case itemHabit:
		if !p.editable() {
			p.status("Past days are read-only", true)
			return false
		}
		if err := p.tracker.DeleteHabit(item.habit.ID); err != nil {
			p.status(err.Error(), true)
			return false
		}
		p.status("Habit deleted", false)
	case itemTask:
		if !p.tracker.DeleteTask(p.date, item.taskIndex) {
			p.status("Past days are read-only", true)
			return false
		}
		p.status("Task deleted", false)
	}
	p.refresh()
	return true
}

// moveSelected reorders the selected habit by delta positions. Tasks keep
// their day-local order and cannot be moved.
func (p *DayPane) moveSelected(delta int) bool {
	item, ok := p.selectedItem()
	if !ok || item.kind != itemHabit {
		return false
	}

	// Map the pane cursor to the habit's index in the full habit list.
	habits := p.tracker.Habits()
	from := -1
	for i, h := range habits {
		if h.ID == item.habit.ID {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	if !p.tracker.MoveHabit(from, from+delta) {
		return false
	}
	p.refresh()
	// Follow the habit to its new row.
	for i, it := range p.items {
		if it.kind == itemHabit && it.habit.ID == item.habit.ID {
			p.cursor = i
			break
		}
	}
	return true
}

// handleMouse processes mouse events for the day pane.
func (p *DayPane) handleMouse(msg tea.MouseMsg) bool {
	if len(p.items) == 0 {
		return false
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.items)-1)

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return false
		}
		// Rows start after title + separator; section headers add one row
		// per section above the clicked item.
		const headerRows = 2
		row := msg.Y - headerRows
		idx, found := p.itemAtRow(row)
		if !found {
			return false
		}
		p.cursor = idx
		// Click on the checkbox column toggles.
		if msg.X < 6 {
			return p.toggleSelected()
		}
	}
	return false
}

// itemAtRow maps a content row to an item index, accounting for the
// section header lines interleaved with items.
func (p *DayPane) itemAtRow(row int) (int, bool) {
	r := 0
	lastKind := dayItemKind(-1)
	for i, item := range p.items {
		if item.kind != lastKind {
			r++ // section header line
			lastKind = item.kind
		}
		if r == row {
			return i, true
		}
		r++
	}
	return 0, false
}

// View renders the day pane.
func (p *DayPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("☀ " + p.date.Format("Mon Jan 2"))
	if !p.editable() {
		title += " " + p.styles.ReadOnlyTag
	}
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if len(p.items) == 0 && !p.IsAdding() {
		hint := "Nothing here. Press 'a' for a task, 'A' for a habit."
		if !p.editable() {
			hint = "Nothing was tracked on this day."
		}
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  " + hint))
		b.WriteString("\n")
	} else {
		p.renderItems(&b)
	}

	if p.IsAdding() {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render("+ ")
		b.WriteString(prompt + p.input.View())
		b.WriteString("\n")
	}

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}

// renderItems writes the habit and task sections with windowing.
func (p *DayPane) renderItems(b *strings.Builder) {
	maxItems := p.height - 7
	if maxItems < 3 {
		maxItems = 6
	}
	startIdx := 0
	if p.cursor >= maxItems {
		startIdx = p.cursor - maxItems + 1
	}

	lastKind := dayItemKind(-1)
	for i, item := range p.items {
		if i < startIdx || i >= startIdx+maxItems {
			continue
		}
		if item.kind != lastKind {
			switch item.kind {
			case itemHabit:
				b.WriteString(p.styles.SectionStyle.Render(" HABITS"))
			case itemTask:
				b.WriteString(p.styles.SectionStyle.Render(" TASKS"))
			}
			b.WriteString("\n")
			lastKind = item.kind
		}
		b.WriteString(p.renderItem(i, item))
		b.WriteString("\n")
	}

	stats := p.tracker.StatsFor(p.date)
	if pct, ok := stats.Percent(); ok {
		b.WriteString("\n")
		line := fmt.Sprintf("%d/%d done (%d%%)", stats.Completed(), stats.Total(), pct)
		b.WriteString("  " + p.styles.StatLabelStyle.Render(line))
		b.WriteString("\n")
	}
}

// renderItem renders one row of the combined list.
func (p *DayPane) renderItem(i int, item dayItem) string {
	var done bool
	var text, badge string

	switch item.kind {
	case itemHabit:
		done = p.tracker.IsCompleted(item.habit.ID, p.date)
		text = item.habit.Text
		if p.showStreaks {
			if streak := p.tracker.StreakAt(item.habit.ID, p.date); streak > 1 {
				badge = p.styles.StreakStyle.Render(fmt.Sprintf("🔥%d", streak))
			}
		}
	case itemTask:
		done = item.task.Completed
		text = item.task.Text
	}

	checkbox := p.styles.CheckboxPending
	if done {
		checkbox = p.styles.CheckboxDone
	}

	badgeWidth := lipgloss.Width(badge)
	fixedWidth := 6 // leading space + checkbox + space
	if badgeWidth > 0 {
		fixedWidth += badgeWidth + 1
	}
	availableTextWidth := p.width - 4 - fixedWidth
	if availableTextWidth < 5 {
		availableTextWidth = 5
	}
	text = runewidth.Truncate(text, availableTextWidth, "..")

	if i == p.cursor && p.focused && !p.IsAdding() {
		line := fmt.Sprintf("%s %s", checkbox, text)
		if badgeWidth > 0 {
			line += " " + badge
		}
		return p.styles.ItemSelectedStyle.Render(" " + line + " ")
	}

	styled := p.styles.ItemPendingStyle.Render(text)
	if done {
		styled = p.styles.ItemDoneStyle.Render(text)
	}
	line := fmt.Sprintf("  %s %s", checkbox, styled)
	if badgeWidth > 0 {
		line += " " + badge
	}
	return line
}
