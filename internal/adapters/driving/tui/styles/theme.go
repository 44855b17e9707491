// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// Theme is the colour palette of the progress view.
type Theme struct {
	Primary    lipgloss.Color // title
	Secondary  lipgloss.Color // running stage
	Foreground lipgloss.Color
	Muted      lipgloss.Color // finished stages, file names, hints
	Success    lipgloss.Color
	Warning    lipgloss.Color // stopped runs
	Error      lipgloss.Color
	Bar        lipgloss.Color // status bar background
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"),
		Secondary:  lipgloss.Color("#06B6D4"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Bar:        lipgloss.Color("#181825"),
	}
}

// Styles contains the lipgloss styles built from a theme.
type Styles struct {
	theme *Theme

	Title     lipgloss.Style
	Stage     lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	StatusBar lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:   theme,
		Title:   fg(theme.Primary).Bold(true),
		Stage:   fg(theme.Secondary).Bold(true),
		Normal:  fg(theme.Foreground),
		Muted:   fg(theme.Muted),
		Error:   fg(theme.Error),
		Success: fg(theme.Success),
		Warning: fg(theme.Warning),
		StatusBar: fg(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// ForStage picks the style a stage label is rendered with.
func (s *Styles) ForStage(stage domain.Stage) lipgloss.Style {
	switch stage {
	case domain.StageComplete:
		return s.Success
	case domain.StageError:
		return s.Error
	case domain.StageStopped:
		return s.Warning
	case domain.StageIdle:
		return s.Muted
	default:
		return s.Stage
	}
}
