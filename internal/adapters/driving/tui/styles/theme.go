// Package styles holds the palette and lipgloss styles of the TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette.
type Theme struct {
	Accent  lipgloss.Color
	Heading lipgloss.Color
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Bar     lipgloss.Color
	Good    lipgloss.Color
	Caution lipgloss.Color
	Bad     lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#D97706"),
		Heading: lipgloss.Color("#38BDF8"),
		Text:    lipgloss.Color("#E5E7EB"),
		Dim:     lipgloss.Color("#6B7280"),
		Bar:     lipgloss.Color("#1F2937"),
		Good:    lipgloss.Color("#86EFAC"),
		Caution: lipgloss.Color("#FDE68A"),
		Bad:     lipgloss.Color("#FCA5A5"),
	}
}

// Styles are the rendered styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	StatusBar lipgloss.Style
}

// NewStyles derives styles from theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:     theme,
		Title:     fg(theme.Accent).Bold(true),
		Subtitle:  fg(theme.Heading).Bold(true),
		Normal:    fg(theme.Text),
		Muted:     fg(theme.Dim),
		Success:   fg(theme.Good),
		Warning:   fg(theme.Caution),
		Error:     fg(theme.Bad),
		Tab:       fg(theme.Dim).Padding(0, 1),
		ActiveTab: fg(theme.Bar).Background(theme.Accent).Bold(true).Padding(0, 1),
		StatusBar: fg(theme.Dim).Background(theme.Bar).Padding(0, 1),
	}
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// LogLine renders one pipeline log line, coloured by what it reports.
func (s *Styles) LogLine(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "Error"), strings.Contains(trimmed, "] Failed"):
		return s.Error.Render(line)
	case strings.HasPrefix(trimmed, "Warning"), strings.Contains(trimmed, "] Skipping"):
		return s.Warning.Render(line)
	case strings.HasPrefix(trimmed, "---"), strings.HasPrefix(trimmed, "==="):
		return s.Subtitle.Render(line)
	case strings.Contains(trimmed, "] Extracted"), strings.Contains(trimmed, "] Successfully"):
		return s.Success.Render(line)
	default:
		return s.Normal.Render(line)
	}
}
