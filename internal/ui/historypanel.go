package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/vidyasagar/histnav/internal/theme"
)

// Row is one line of the history panel.
type Row struct {
	URL     string
	Current bool
}

// HistoryPanel displays the navigation history as a scrollable list with
// vim navigation. The selection is independent of the history cursor.
type HistoryPanel struct {
	rows     []Row
	cursor   int
	offset   int // scroll offset for visible window
	match    int // 0-based row of the last search hit, -1 for none
	width    int
	height   int
	lastGKey bool // for gg detection within the panel
}

// NewHistoryPanel creates a new history panel.
func NewHistoryPanel() HistoryPanel {
	return HistoryPanel{match: -1}
}

// SetRows replaces the rows and moves the selection onto the current entry.
func (hp *HistoryPanel) SetRows(rows []Row) {
	hp.rows = rows
	hp.match = -1
	hp.cursor = 0
	for i, r := range rows {
		if r.Current {
			hp.cursor = i
			break
		}
	}
	hp.ensureVisible()
}

// SetSize updates the panel dimensions.
func (hp *HistoryPanel) SetSize(w, h int) {
	hp.width = w
	hp.height = h
	hp.ensureVisible()
}

// Len returns the number of rows.
func (hp *HistoryPanel) Len() int {
	return len(hp.rows)
}

// CursorUp moves the selection up one entry.
func (hp *HistoryPanel) CursorUp() {
	hp.lastGKey = false
	if hp.cursor > 0 {
		hp.cursor--
		hp.ensureVisible()
	}
}

// CursorDown moves the selection down one entry.
func (hp *HistoryPanel) CursorDown() {
	hp.lastGKey = false
	if hp.cursor < len(hp.rows)-1 {
		hp.cursor++
		hp.ensureVisible()
	}
}

// GotoTop selects the first entry.
func (hp *HistoryPanel) GotoTop() {
	hp.lastGKey = false
	hp.cursor = 0
	hp.offset = 0
}

// GotoBottom selects the last entry.
func (hp *HistoryPanel) GotoBottom() {
	hp.lastGKey = false
	if len(hp.rows) > 0 {
		hp.cursor = len(hp.rows) - 1
		hp.ensureVisible()
	}
}

// HandleGKey handles the "g" key for gg detection.
// Returns true if "gg" was completed (go to top).
func (hp *HistoryPanel) HandleGKey() bool {
	if hp.lastGKey {
		hp.GotoTop()
		return true
	}
	hp.lastGKey = true
	return false
}

// ResetGKey resets the g key state (called on any non-g key press).
func (hp *HistoryPanel) ResetGKey() {
	hp.lastGKey = false
}

// Highlight marks the row at the 1-based position as a search hit and
// selects it.
func (hp *HistoryPanel) Highlight(pos int) {
	if pos < 1 || pos > len(hp.rows) {
		hp.match = -1
		return
	}
	hp.match = pos - 1
	hp.cursor = pos - 1
	hp.ensureVisible()
}

// Selected returns the row under the selection, or false if empty.
func (hp *HistoryPanel) Selected() (Row, bool) {
	if hp.cursor < 0 || hp.cursor >= len(hp.rows) {
		return Row{}, false
	}
	return hp.rows[hp.cursor], true
}

// SelectedIndex returns the 0-based selection.
func (hp *HistoryPanel) SelectedIndex() int {
	return hp.cursor
}

type rowKind int

const (
	rowNormal rowKind = iota
	rowCurrent
	rowSelected
	rowMatch
)

// kindOf picks the style of row i. A search hit outranks the selection,
// which Highlight moves onto it.
func (hp *HistoryPanel) kindOf(i int) rowKind {
	switch {
	case i == hp.match:
		return rowMatch
	case i == hp.cursor:
		return rowSelected
	case hp.rows[i].Current:
		return rowCurrent
	}
	return rowNormal
}

// visibleCount returns how many rows fit below the two header lines.
func (hp *HistoryPanel) visibleCount() int {
	available := hp.height - 2
	if available < 1 {
		return 1
	}
	return available
}

// ensureVisible adjusts offset so the cursor is within the visible window.
func (hp *HistoryPanel) ensureVisible() {
	visible := hp.visibleCount()
	if hp.cursor < hp.offset {
		hp.offset = hp.cursor
	}
	if hp.cursor >= hp.offset+visible {
		hp.offset = hp.cursor - visible + 1
	}
	if hp.offset < 0 {
		hp.offset = 0
	}
}

// View renders the history panel.
func (hp *HistoryPanel) View() string {
	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(hp.width).
		Height(hp.height)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(hp.width).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.Selected).
		Bold(true).
		Width(hp.width).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(hp.width).
		Padding(0, 1)

	currentStyle := normalStyle.
		Foreground(t.URL).
		Bold(true)

	matchStyle := normalStyle.
		Foreground(t.Match).
		Underline(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("History (%d)", len(hp.rows))))
	sb.WriteString("\n")

	sepWidth := hp.width - 2
	if sepWidth < 1 {
		sepWidth = 1
	}
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	sb.WriteString("\n")

	if len(hp.rows) == 0 {
		sb.WriteString(dimStyle.Render("History is empty. Press o to visit a URL."))
		return panelStyle.Render(sb.String())
	}

	visible := hp.visibleCount()
	end := hp.offset + visible
	if end > len(hp.rows) {
		end = len(hp.rows)
	}

	// "-> " marker, "NNN " position and padding.
	maxURLWidth := hp.width - 10
	if maxURLWidth < 10 {
		maxURLWidth = 10
	}

	for i := hp.offset; i < end; i++ {
		row := hp.rows[i]

		marker := "   "
		if row.Current {
			marker = "-> "
		}
		url := runewidth.Truncate(row.URL, maxURLWidth, "…")
		line := fmt.Sprintf("%s%3d %s", marker, i+1, url)

		switch hp.kindOf(i) {
		case rowMatch:
			sb.WriteString(matchStyle.Render(line))
		case rowSelected:
			sb.WriteString(selectedStyle.Render(line))
		case rowCurrent:
			sb.WriteString(currentStyle.Render(line))
		default:
			sb.WriteString(normalStyle.Render(line))
		}
		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	return panelStyle.Render(sb.String())
}
