package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/histnav/internal/theme"
)

// StatusBar shows the mode, the last operation's outcome and the cursor
// position at the bottom of the screen.
type StatusBar struct {
	mode    string
	message string // outcome of the last operation
	isError bool
	pos     int
	total   int
	width   int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "NORMAL",
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the current mode indicator (NORMAL, VISIT, DELETE, ...).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the mode indicator.
func (s *StatusBar) Mode() string {
	return s.mode
}

// SetMessage sets a status message for a successful operation.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError sets a status message for a failed operation.
func (s *StatusBar) SetError(msg string) {
	s.message = msg
	s.isError = true
}

// Message returns the current message and whether it reports a failure.
func (s *StatusBar) Message() (string, bool) {
	return s.message, s.isError
}

// SetPosition sets the 1-based cursor position and the history length.
func (s *StatusBar) SetPosition(pos, total int) {
	s.pos = pos
	s.total = total
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background)

	switch s.mode {
	case "NORMAL":
		modeStyle = modeStyle.Background(t.Primary)
	case "VISIT":
		modeStyle = modeStyle.Background(t.Success)
	case "DELETE":
		modeStyle = modeStyle.Background(t.Error)
	case "SEARCH":
		modeStyle = modeStyle.Background(t.Warning)
	default:
		modeStyle = modeStyle.Background(t.Secondary)
	}
	mode := modeStyle.Render(s.mode)

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	var left string
	if s.message != "" {
		color := t.Info
		if s.isError {
			color = t.Error
		}
		msgStyle := lipgloss.NewStyle().
			Foreground(color).
			Background(t.Surface).
			Padding(0, 1)
		left = msgStyle.Render(s.message)
	}

	posStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		Background(t.Surface).
		Padding(0, 1)
	right := posStyle.Render("empty")
	if s.total > 0 {
		right = posStyle.Render(fmt.Sprintf("%d/%d", s.pos, s.total))
	}

	spacerWidth := s.width - lipgloss.Width(mode) - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return barStyle.Render(mode + left + spacer + right)
}
