package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lightningx004/habit-antigravity/internal/config"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Day status colors for the calendar
	ColorDayPerfect lipgloss.Color
	ColorDaySuccess lipgloss.Color
	ColorDayFail    lipgloss.Color

	// Component styles
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	ItemDoneStyle     lipgloss.Style
	ItemPendingStyle  lipgloss.Style
	ItemSelectedStyle lipgloss.Style
	CheckboxDone      string
	CheckboxPending   string

	SectionStyle lipgloss.Style
	StreakStyle  lipgloss.Style
	ReadOnlyTag  string

	// Calendar cell styles
	DayPerfectStyle  lipgloss.Style
	DaySuccessStyle  lipgloss.Style
	DayFailStyle     lipgloss.Style
	DayFailZeroStyle lipgloss.Style
	DayPlainStyle    lipgloss.Style
	DayFutureStyle   lipgloss.Style
	DaySelectedStyle lipgloss.Style
	DayTodayStyle    lipgloss.Style
	WeekdayStyle     lipgloss.Style

	ProgressBarFilled lipgloss.Style
	ProgressBarEmpty  lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from the given config.
// If a theme color is empty, it uses the appropriate default.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	// Initialize colors from config with fallbacks to defaults
	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorAccent = colorOrDefault(theme.Accent, "#3B82F6")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")
	s.ColorBgLight = lipgloss.Color("#374151")
	s.ColorText = lipgloss.Color("#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	// Day status colors
	s.ColorDayPerfect = colorOrDefault(theme.Perfect, "#10B981")
	s.ColorDaySuccess = colorOrDefault(theme.Success, "#F59E0B")
	s.ColorDayFail = colorOrDefault(theme.Fail, "#EF4444")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	// Date in title bar
	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Pane styles
	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	// Day list item styles
	s.ItemDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Strikethrough(true)

	s.ItemPendingStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.ItemSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.CheckboxDone = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("[✓]")
	s.CheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	s.SectionStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.StreakStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	s.ReadOnlyTag = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Italic(true).
		Render("read-only")

	// Calendar cells
	s.DayPerfectStyle = lipgloss.NewStyle().Foreground(s.ColorDayPerfect).Bold(true)
	s.DaySuccessStyle = lipgloss.NewStyle().Foreground(s.ColorDaySuccess)
	s.DayFailStyle = lipgloss.NewStyle().Foreground(s.ColorDayFail)
	s.DayFailZeroStyle = lipgloss.NewStyle().Foreground(s.ColorDayFail).Faint(true)
	s.DayPlainStyle = lipgloss.NewStyle().Foreground(s.ColorText)
	s.DayFutureStyle = lipgloss.NewStyle().Foreground(s.ColorTextMuted)
	s.DaySelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)
	s.DayTodayStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true).
		Underline(true)
	s.WeekdayStyle = lipgloss.NewStyle().Foreground(s.ColorTextMuted)

	// Progress bars
	s.ProgressBarFilled = lipgloss.NewStyle().Foreground(s.ColorAccent)
	s.ProgressBarEmpty = lipgloss.NewStyle().Foreground(s.ColorBgLight)

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	// Input
	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	// Summary stats
	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		key := keys[i]
		desc := keys[i+1]
		result += s.HelpKeyStyle.Render("["+key+"]") + " " + s.HelpStyle.Render(desc)
	}
	return result
}
