// Package ui provides terminal user interface components for the antigravity app.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and customization.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/lightningx004/habit-antigravity/internal/config"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextPane key.Binding
	Pane1    key.Binding
	Pane2    key.Binding
	Pane3    key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		NextPane: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextPane, "tab")...),
			key.WithHelp("tab", "next pane"),
		),
		Pane1: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane1, "1")...),
			key.WithHelp("1", "calendar"),
		),
		Pane2: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane2, "2")...),
			key.WithHelp("2", "day"),
		),
		Pane3: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Pane3, "3")...),
			key.WithHelp("3", "progress"),
		),
	}
}

// =============================================================================
// Navigation Keys (shared by list-based panes)
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultNavigationKeyMap returns the default navigation key bindings.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NewNavigationKeyMap(&config.KeysConfig{})
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Top, "g")...),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Bottom, "G")...),
			key.WithHelp("G", "bottom"),
		),
	}
}

// =============================================================================
// Input Keys (shared by text input fields)
// =============================================================================

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// =============================================================================
// Calendar Pane Keys
// =============================================================================

// CalendarKeyMap defines keys for the calendar pane.
type CalendarKeyMap struct {
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
}

// DefaultCalendarKeyMap returns the default calendar pane key bindings.
func DefaultCalendarKeyMap() CalendarKeyMap {
	return NewCalendarKeyMap(&config.KeysConfig{})
}

// NewCalendarKeyMap creates calendar key bindings from config. Week
// movement reuses the shared up/down navigation keys.
func NewCalendarKeyMap(cfg *config.KeysConfig) CalendarKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return CalendarKeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PrevDay, "h", "left")...),
			key.WithHelp("h/←", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextDay, "l", "right")...),
			key.WithHelp("l/→", "next day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PrevMonth, "[")...),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextMonth, "]")...),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Today, "t")...),
			key.WithHelp("t", "today"),
		),
	}
}

// ShortHelp returns the short help for the calendar pane (implements help.KeyMap).
func (k CalendarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.PrevMonth, k.Today}
}

// FullHelp returns the full help for the calendar pane (implements help.KeyMap).
func (k CalendarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek},
		{k.PrevMonth, k.NextMonth, k.Today},
	}
}

// =============================================================================
// Day Pane Keys
// =============================================================================

// DayKeyMap defines keys for the day pane (habits and tasks).
type DayKeyMap struct {
	AddTask  key.Binding
	AddHabit key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	NavigationKeyMap
}

// DefaultDayKeyMap returns the default day pane key bindings.
func DefaultDayKeyMap() DayKeyMap {
	return NewDayKeyMap(&config.KeysConfig{})
}

// NewDayKeyMap creates day pane key bindings from config.
func NewDayKeyMap(cfg *config.KeysConfig) DayKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return DayKeyMap{
		AddTask: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Add, "a")...),
			key.WithHelp("a", "add task"),
		),
		AddHabit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.AddHabit, "A")...),
			key.WithHelp("A", "add habit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Toggle, "d", "enter", " ")...),
			key.WithHelp("d/space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Delete, "x")...),
			key.WithHelp("x", "delete"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys(parseKeys(cfg.MoveUp, "K", "shift+up")...),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys(parseKeys(cfg.MoveDown, "J", "shift+down")...),
			key.WithHelp("J", "move down"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the day pane (implements help.KeyMap).
func (k DayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddTask, k.Toggle, k.Delete, k.Down}
}

// FullHelp returns the full help for the day pane (implements help.KeyMap).
func (k DayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddTask, k.AddHabit, k.Toggle, k.Delete},
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
