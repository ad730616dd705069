// Package ui provides terminal user interface components for the antigravity
// app. This file contains the main App model which coordinates all panes and
// routes messages using the Bubble Tea architecture.
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

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneCalendar PaneID = iota
	PaneDay
	PaneProgress
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows all three panes side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmDeletions      bool
	ShowStreaks           bool
	NarrowLayoutThreshold int
}

// App is the main application model that coordinates all panes.
type App struct {
	tracker      *tracker.Tracker
	styles       *Styles
	config       *AppConfig
	calendarPane *CalendarPane
	dayPane      *DayPane
	progressPane *ProgressPane
	helpOverlay  *HelpOverlay
	confirmDel   *confirmDeleteState
	activePane   PaneID
	layoutMode   LayoutMode
	showHelp     bool
	showWelcome  bool
	today        time.Time
	width        int
	height       int
	status       string
	statusErr    bool
	statusUntil  time.Time
	quitting     bool

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap

	// Pane positions for mouse click detection (x coordinates)
	calendarPaneStart int
	calendarPaneEnd   int
	dayPaneStart      int
	dayPaneEnd        int
	progressPaneStart int
	progressPaneEnd   int
	contentTop        int // Y coordinate where content starts
}

type confirmDeleteState struct {
	title string
	body  string
	apply func() bool
}

// NewApp creates a new application around an already loaded tracker.
func NewApp(tr *tracker.Tracker, styles *Styles, cfg *AppConfig) *App {
	// Use default config if nil
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ConfirmDeletions:      true,
			ShowStreaks:           true,
			NarrowLayoutThreshold: 80,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	// Create panes with config-aware key bindings
	calendarPane := NewCalendarPaneWithKeys(tr, styles, cfg.Keys)
	dayPane := NewDayPaneWithKeys(tr, styles, cfg.Keys)
	progressPane := NewProgressPane(tr, styles)
	helpOverlay := NewHelpOverlay(styles)

	dayPane.SetShowStreaks(cfg.ShowStreaks)

	app := &App{
		tracker:      tr,
		styles:       styles,
		config:       cfg,
		calendarPane: calendarPane,
		dayPane:      dayPane,
		progressPane: progressPane,
		helpOverlay:  helpOverlay,
		activePane:   PaneDay,
		showWelcome:  isFirstRun(tr),
		today:        dates.StartOfDay(tr.Now()),
		keys:         NewGlobalKeyMap(cfg.Keys),
		helpKeys:     DefaultHelpKeyMap(),
	}

	dayPane.SetStatusFunc(app.SetStatus)
	tr.SetOnSaveError(func(err error) {
		app.SetStatus("Save failed: "+err.Error(), true)
	})

	// Set initial focus
	calendarPane.SetFocused(false)
	dayPane.SetFocused(true)
	progressPane.SetFocused(false)

	return app
}

// isFirstRun checks if this appears to be the first time running the app.
// We detect this by looking at the loaded collections.
func isFirstRun(tr *tracker.Tracker) bool {
	doc := tr.Export()
	return len(doc.Habits) == 0 && len(doc.Completions) == 0 && len(doc.LocalTasks) == 0
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the periodic tick. Data is loaded before the app is built.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.showWelcome {
			a.showWelcome = false
			return a, nil
		}

		if a.confirmDel != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				apply := a.confirmDel.apply
				a.confirmDel = nil
				apply()
				return a, nil
			case "n", "N", "esc":
				a.confirmDel = nil
				a.SetStatus("Canceled", false)
				return a, nil
			default:
				return a, nil
			}
		}

		// Help overlay takes priority
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
				return a, nil
			}
			return a, nil
		}

		inInputMode := a.dayPane.IsAdding()

		if !inInputMode {
			// Confirm deletions if enabled.
			if a.config.ConfirmDeletions && a.activePane == PaneDay {
				if key.Matches(msg, a.dayPane.keys.Delete) {
					item, ok := a.dayPane.selectedItem()
					if !ok {
						a.SetStatus("Nothing selected", true)
						return a, nil
					}
					if !a.dayPane.editable() {
						a.SetStatus("Past days are read-only", true)
						return a, nil
					}
					a.confirmDel = a.buildConfirmDelete(item)
					return a, nil
				}
			}

			// Global keys only when not in input mode
			switch {
			case key.Matches(msg, a.keys.Quit):
				a.quitting = true
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil

			case key.Matches(msg, a.keys.NextPane):
				a.switchPane()
				return a, nil

			case key.Matches(msg, a.keys.Pane1):
				a.setActivePane(PaneCalendar)
				return a, nil

			case key.Matches(msg, a.keys.Pane2):
				a.setActivePane(PaneDay)
				return a, nil

			case key.Matches(msg, a.keys.Pane3):
				a.setActivePane(PaneProgress)
				return a, nil
			}
		}

		a.dispatch(msg)
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		// Day rollover: keep "today" fresh so read-only guards and the
		// calendar highlight move at midnight.
		if now := dates.StartOfDay(a.tracker.Now()); !dates.SameDay(now, a.today) {
			if dates.SameDay(a.calendarPane.Selected(), a.today) {
				a.calendarPane.SetSelected(now)
				a.dayPane.SetDate(now)
				a.progressPane.SetDate(now)
			}
			a.today = now
		}
		return a, tickCmd()
	}

	a.dispatch(msg)
	return a, nil
}

// dispatch forwards a message to the active pane and propagates resulting
// state changes to the panes that depend on it.
func (a *App) dispatch(msg tea.Msg) {
	// Input mode belongs to the day pane regardless of focus.
	if a.dayPane.IsAdding() {
		a.dayPane.Update(msg)
		return
	}

	switch a.activePane {
	case PaneCalendar:
		if a.calendarPane.Update(msg) {
			a.dayPane.SetDate(a.calendarPane.Selected())
			a.progressPane.SetDate(a.calendarPane.Selected())
		}
	case PaneDay:
		a.dayPane.Update(msg)
	case PaneProgress:
		// Display-only pane.
	}
}

// buildConfirmDelete captures the pending deletion for the overlay.
func (a *App) buildConfirmDelete(item dayItem) *confirmDeleteState {
	switch item.kind {
	case itemHabit:
		return &confirmDeleteState{
			title: "Delete habit?",
			body:  truncateText(item.habit.Text, 60) + "\n\nThis removes it from every day, past included.",
			apply: a.dayPane.deleteSelected,
		}
	default:
		return &confirmDeleteState{
			title: "Delete task?",
			body:  truncateText(item.task.Text, 60),
			apply: a.dayPane.deleteSelected,
		}
	}
}

// truncateText shortens text for overlay bodies.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-1] + "…"
}

// switchPane cycles through panes.
func (a *App) switchPane() {
	switch a.activePane {
	case PaneCalendar:
		a.setActivePane(PaneDay)
	case PaneDay:
		a.setActivePane(PaneProgress)
	case PaneProgress:
		a.setActivePane(PaneCalendar)
	}
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane

	a.calendarPane.SetFocused(pane == PaneCalendar)
	a.dayPane.SetFocused(pane == PaneDay)
	a.progressPane.SetFocused(pane == PaneProgress)
}

// paneAtPosition returns which pane is at the given X coordinate.
// Returns -1 if no pane is at that position.
func (a *App) paneAtPosition(x int) PaneID {
	if a.layoutMode == LayoutNarrow {
		return a.activePane
	}

	if x >= a.calendarPaneStart && x < a.calendarPaneEnd {
		return PaneCalendar
	}
	if x >= a.dayPaneStart && x < a.dayPaneEnd {
		return PaneDay
	}
	if x >= a.progressPaneStart && x < a.progressPaneEnd {
		return PaneProgress
	}
	return -1
}

// handleMouse routes mouse events to overlays or the clicked pane.
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.showWelcome {
		if msg.Action == tea.MouseActionPress {
			a.showWelcome = false
		}
		return a, nil
	}

	if a.confirmDel != nil {
		if msg.Action == tea.MouseActionPress {
			a.confirmDel = nil
			a.SetStatus("Canceled", false)
		}
		return a, nil
	}

	if a.showHelp {
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return a, nil
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		// In narrow mode, check for tab bar clicks
		if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 {
			tabWidth := a.width / 3
			if msg.X < tabWidth {
				a.setActivePane(PaneCalendar)
			} else if msg.X < tabWidth*2 {
				a.setActivePane(PaneDay)
			} else {
				a.setActivePane(PaneProgress)
			}
			return a, nil
		}

		clickedPane := a.paneAtPosition(msg.X)
		if clickedPane >= 0 && clickedPane != a.activePane {
			a.setActivePane(clickedPane)
		}

		if msg.Y >= a.contentTop && a.activePane == PaneDay {
			localMsg := msg
			localMsg.Y = msg.Y - a.contentTop
			if a.layoutMode == LayoutWide {
				localMsg.X = msg.X - a.dayPaneStart
			}
			a.dayPane.Update(localMsg)
		}

	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if a.activePane == PaneDay {
			localMsg := msg
			localMsg.Y = msg.Y - a.contentTop
			a.dayPane.Update(localMsg)
		}
	}

	return a, nil
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (2) and help bar (1)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	// Content starts after title bar (1 line title + 1 line space)
	a.contentTop = 1

	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80 // Default threshold
	}

	if a.width < threshold {
		// Narrow mode: single focused pane with tab bar
		a.layoutMode = LayoutNarrow

		narrowHeight := contentHeight - 1
		if narrowHeight < 8 {
			narrowHeight = 8
		}

		paneWidth := totalWidth
		if paneWidth < 20 {
			paneWidth = 20
		}

		a.calendarPane.SetSize(paneWidth, narrowHeight)
		a.dayPane.SetSize(paneWidth, narrowHeight)
		a.progressPane.SetSize(paneWidth, narrowHeight)

		a.calendarPaneStart = 0
		a.calendarPaneEnd = a.width
		a.dayPaneStart = 0
		a.dayPaneEnd = a.width
		a.progressPaneStart = 0
		a.progressPaneEnd = a.width
		// Content starts after tab bar in narrow mode
		a.contentTop = 2
	} else {
		// Wide mode: three panes side-by-side
		a.layoutMode = LayoutWide

		var calendarWidth, dayWidth, progressWidth int
		if totalWidth < 120 {
			calendarWidth = (totalWidth * 30) / 100
			dayWidth = (totalWidth * 40) / 100
			progressWidth = totalWidth - calendarWidth - dayWidth - 2
		} else {
			calendarWidth = min((totalWidth*28)/100, 36)
			dayWidth = min((totalWidth*42)/100, 60)
			progressWidth = min(totalWidth-calendarWidth-dayWidth-2, 45)
		}

		a.calendarPane.SetSize(calendarWidth, contentHeight)
		a.dayPane.SetSize(dayWidth, contentHeight)
		a.progressPane.SetSize(progressWidth, contentHeight)

		a.calendarPaneStart = 0
		a.calendarPaneEnd = calendarWidth
		a.dayPaneStart = calendarWidth + 1
		a.dayPaneEnd = a.dayPaneStart + dayWidth
		a.progressPaneStart = a.dayPaneEnd + 1
		a.progressPaneEnd = a.progressPaneStart + progressWidth
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.showWelcome {
		return a.renderWelcome()
	}

	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderWelcome() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to antigravity"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("Tab switches panes. ? opens help.\n"))
	b.WriteString(bodyStyle.Render("Add your first habit with 'A', a one-off task with 'a'.\n"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press any key to continue"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderWideContent renders all three panes side by side.
func (a *App) renderWideContent() string {
	calendarView := a.calendarPane.View()
	dayView := a.dayPane.View()
	progressView := a.progressPane.View()

	return lipgloss.JoinHorizontal(lipgloss.Top, calendarView, " ", dayView, " ", progressView)
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	switch a.activePane {
	case PaneCalendar:
		b.WriteString(a.calendarPane.View())
	case PaneDay:
		b.WriteString(a.dayPane.View())
	case PaneProgress:
		b.WriteString(a.progressPane.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneCalendar, "Calendar"},
		{PaneDay, "Day"},
		{PaneProgress, "Progress"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activePane {
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}
	return tabBar
}

// renderGoodbye shows a short exit message with today's progress.
func (a *App) renderGoodbye() string {
	stats := a.tracker.StatsFor(a.tracker.Now())

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you tomorrow!\n")
	b.WriteString("\n")

	if stats.Total() > 0 {
		pct, _ := stats.Percent()
		b.WriteString("  Today's progress:\n")
		if stats.TotalHabits > 0 {
			b.WriteString(fmt.Sprintf("     Habits: %d/%d\n", stats.CompletedHabits, stats.TotalHabits))
		}
		if stats.TotalTasks > 0 {
			b.WriteString(fmt.Sprintf("     Tasks:  %d/%d\n", stats.CompletedTasks, stats.TotalTasks))
		}
		b.WriteString(fmt.Sprintf("     Day:    %d%%\n", pct))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top title bar with stats and progress.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" antigravity ")

	stats := a.tracker.StatsFor(a.calendarPane.Selected())
	var statsItems []string
	if stats.TotalHabits > 0 {
		statsItems = append(statsItems, fmt.Sprintf("Habits: %d/%d", stats.CompletedHabits, stats.TotalHabits))
	}
	if stats.TotalTasks > 0 {
		statsItems = append(statsItems, fmt.Sprintf("Tasks: %d/%d", stats.CompletedTasks, stats.TotalTasks))
	}
	statsStr := a.styles.StatLabelStyle.Render(strings.Join(statsItems, "  "))

	yearStr := a.styles.StatLabelStyle.Render(fmt.Sprintf("Year %d%%", a.tracker.YearProgress()))

	dateStr := a.tracker.Now().Format("Mon Jan 2 · 15:04")
	date := a.styles.DateStyle.Render(dateStr)

	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(statsStr)
	yearWidth := lipgloss.Width(yearStr)
	dateWidth := lipgloss.Width(date)

	usedWidth := titleWidth + statsWidth + yearWidth + dateWidth
	spacerWidth := a.width - usedWidth - 6
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)

	if statsStr != "" {
		parts = append(parts, "  "+statsStr)
	}

	leftSpacer := strings.Repeat(" ", spacerWidth/2)
	rightSpacer := strings.Repeat(" ", spacerWidth-spacerWidth/2)

	parts = append(parts, leftSpacer)
	parts = append(parts, yearStr)
	parts = append(parts, rightSpacer)
	parts = append(parts, date)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.dayPane.IsAdding() {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	switch a.activePane {
	case PaneCalendar:
		return a.styles.RenderHelp(
			"h/l", "day",
			"j/k", "week",
			"[/]", "month",
			"t", "today",
			"tab", "pane",
			"?", "help",
		)
	case PaneDay:
		return a.styles.RenderHelp(
			"a", "task",
			"A", "habit",
			"d", "done",
			"x", "del",
			"j/k", "nav",
			"tab", "pane",
			"?", "help",
		)
	case PaneProgress:
		return a.styles.RenderHelp(
			"tab", "pane",
			"?", "help",
		)
	}

	return ""
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program with the given tracker, styles, and config.
func Run(tr *tracker.Tracker, styles *Styles, cfg *AppConfig) error {
	app := NewApp(tr, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return err
}
