// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zaibi117/readme-maker/internal/adapters/driving/tui/keymap"
	"github.com/zaibi117/readme-maker/internal/adapters/driving/tui/styles"
	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// Bar displays pipeline counters and keybinding hints.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	status domain.ProcessingStatus
	done   bool
	width  int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		status: domain.NewStatus(),
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders file and chunk counters.
func (s *Bar) renderLeft() string {
	st := s.status
	if st.Stage == domain.StageError && st.Error != "" {
		return s.styles.Error.Render(fmt.Sprintf("Error: %s", st.Error))
	}

	parts := make([]string, 0, 2)
	if st.TotalFiles > 0 {
		parts = append(parts, fmt.Sprintf("files %d/%d", st.ProcessedFiles, st.TotalFiles))
	}
	if st.TotalChunks > 0 {
		parts = append(parts, fmt.Sprintf("chunks %d/%d", st.ProcessedChunks, st.TotalChunks))
	}
	if len(parts) == 0 {
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Normal.Render(strings.Join(parts, " · "))
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := []key.Binding{s.keymap.Stop, s.keymap.Quit}
	if s.done {
		bindings = []key.Binding{s.keymap.Quit}
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetStatus records the latest processor status.
func (s *Bar) SetStatus(status domain.ProcessingStatus) {
	s.status = status
}

// Status returns the last recorded status.
func (s *Bar) Status() domain.ProcessingStatus {
	return s.status
}

// SetDone switches the hints to the finished state.
func (s *Bar) SetDone(done bool) {
	s.done = done
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
