package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vidyasagar/histnav/internal/theme"
)

// PromptType identifies which operation the prompt collects a URL for.
type PromptType int

const (
	PromptNone   PromptType = iota
	PromptVisit             // o / v
	PromptDelete            // d
	PromptSearch            // /
)

// String returns the mode label shown in the status bar.
func (p PromptType) String() string {
	switch p {
	case PromptVisit:
		return "VISIT"
	case PromptDelete:
		return "DELETE"
	case PromptSearch:
		return "SEARCH"
	}
	return "NORMAL"
}

// PromptResult is emitted when a prompt is submitted.
type PromptResult struct {
	Type  PromptType
	Value string
}

// PromptBar reads a URL for visit, delete and search. Recently submitted
// URLs are offered as completions (tab accepts, up/down cycles).
type PromptBar struct {
	input  textinput.Model
	active bool
	ptype  PromptType
	width  int
	recent *lru.Cache[string, struct{}]
}

// NewPromptBar creates a prompt bar that remembers up to size recent URLs
// and accepts at most limit runes (0 for no limit).
func NewPromptBar(size, limit int) PromptBar {
	ti := textinput.New()
	ti.CharLimit = limit
	ti.ShowSuggestions = true

	pb := PromptBar{input: ti}
	if size > 0 {
		pb.recent, _ = lru.New[string, struct{}](size)
	}
	return pb
}

// SetWidth sets the prompt bar width.
func (p *PromptBar) SetWidth(w int) {
	p.width = w
	p.input.Width = w - 12 // account for prompt and padding
}

// Open activates the prompt for the given operation, pre-filled with val.
func (p *PromptBar) Open(pt PromptType, val string) tea.Cmd {
	p.active = true
	p.ptype = pt
	p.input.Reset()
	p.input.SetSuggestions(p.Recent())

	switch pt {
	case PromptVisit:
		p.input.Placeholder = "URL to visit..."
		p.input.Prompt = "visit: "
	case PromptDelete:
		p.input.Placeholder = "URL to delete..."
		p.input.Prompt = "delete: "
	case PromptSearch:
		p.input.Placeholder = "URL to search..."
		p.input.Prompt = "search: "
	}
	if val != "" {
		p.input.SetValue(val)
		p.input.CursorEnd()
	}

	return p.input.Focus()
}

// Close deactivates the prompt.
func (p *PromptBar) Close() {
	p.active = false
	p.ptype = PromptNone
	p.input.Blur()
	p.input.Reset()
}

// IsActive reports whether the prompt is open.
func (p *PromptBar) IsActive() bool {
	return p.active
}

// Type returns the current prompt type.
func (p *PromptBar) Type() PromptType {
	return p.ptype
}

// Value returns the text typed so far.
func (p *PromptBar) Value() string {
	return p.input.Value()
}

// Submit returns the entered URL, remembers it and closes the prompt.
// Only the line ending is stripped; URLs are otherwise taken verbatim.
func (p *PromptBar) Submit() PromptResult {
	val := strings.TrimRight(p.input.Value(), "\r\n")
	result := PromptResult{
		Type:  p.ptype,
		Value: val,
	}
	if val != "" && p.recent != nil {
		p.recent.Add(val, struct{}{})
	}
	p.Close()
	return result
}

// Recent returns remembered URLs, most recently used first.
func (p *PromptBar) Recent() []string {
	if p.recent == nil {
		return nil
	}
	keys := p.recent.Keys()
	slices.Reverse(keys)
	return keys
}

// Update processes messages for the prompt bar.
func (p *PromptBar) Update(msg tea.Msg) (*PromptBar, tea.Cmd) {
	if !p.active {
		return p, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			p.Close()
			return p, nil
		case tea.KeyEnter:
			// Handled by the parent to process the result.
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the prompt bar.
func (p *PromptBar) View() string {
	if !p.active {
		return ""
	}

	t := theme.Current

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Width(p.width - 2)

	return barStyle.Render(p.input.View())
}
