package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/histnav/internal/history"
	"github.com/vidyasagar/histnav/internal/logging"
	"github.com/vidyasagar/histnav/internal/theme"
	"github.com/vidyasagar/histnav/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt      // prompt bar collecting a URL
	ModeHelp        // key reference shown
)

// Options tunes the TUI.
type Options struct {
	Suggestions  int // recent URLs offered by the prompt, 0 disables
	MaxURLLength int // in runes, 0 disables the limit
}

// Model is the top-level bubbletea model for histnav.
type Model struct {
	hist *history.History

	// UI components
	panel  ui.HistoryPanel
	prompt ui.PromptBar
	status ui.StatusBar

	keys   KeyMap
	mode   Mode
	width  int
	height int
	ready  bool
}

// New creates a Model driving h.
func New(h *history.History, opts Options) Model {
	m := Model{
		hist:   h,
		panel:  ui.NewHistoryPanel(),
		prompt: ui.NewPromptBar(opts.Suggestions, opts.MaxURLLength),
		status: ui.NewStatusBar(),
		keys:   DefaultKeyMap(),
		mode:   ModeNormal,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Cursor blink and similar messages.
	var cmd tea.Cmd
	if m.prompt.IsActive() {
		_, cmd = m.prompt.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading histnav..."
	}

	// Layout:
	// [history panel | help]
	// [prompt bar] (if active)
	// [status bar]
	var sections []string

	body := m.panel.View()
	if m.mode == ModeHelp {
		h := m.bodyHeight()
		body = lipgloss.NewStyle().
			Width(m.width).
			Height(h).
			MaxHeight(h).
			Render(ui.RenderHelp(m.helpSections(), m.width))
	}
	sections = append(sections, body)

	if m.prompt.IsActive() {
		sections = append(sections, m.prompt.View())
	}

	sections = append(sections, m.status.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.prompt.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.panel.SetSize(m.width, m.bodyHeight())
}

func (m *Model) bodyHeight() int {
	statusBarHeight := 1
	promptBarHeight := 0
	if m.prompt.IsActive() {
		promptBarHeight = 3 // border adds height
	}
	h := m.height - statusBarHeight - promptBarHeight
	if h < 1 {
		h = 1
	}
	return h
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logging.Trace("key", "key", msg.String(), "mode", m.status.Mode())
	// Always allow Ctrl+C to quit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptMode(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			m.setMode(ModeNormal, "NORMAL")
		}
		return m, nil
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keys while browsing the history list.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.GotoTop) {
		m.panel.HandleGKey()
		return m, nil
	}
	m.panel.ResetGKey()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.SelectDown):
		m.panel.CursorDown()

	case key.Matches(msg, m.keys.SelectUp):
		m.panel.CursorUp()

	case key.Matches(msg, m.keys.GotoBottom):
		m.panel.GotoBottom()

	case key.Matches(msg, m.keys.Visit):
		return m.openPrompt(ui.PromptVisit, "")

	case key.Matches(msg, m.keys.Delete):
		row, _ := m.panel.Selected()
		return m.openPrompt(ui.PromptDelete, row.URL)

	case key.Matches(msg, m.keys.Search):
		return m.openPrompt(ui.PromptSearch, "")

	case key.Matches(msg, m.keys.Back):
		url, err := m.hist.Back()
		if err != nil {
			m.status.SetError("No previous website.")
			return m, nil
		}
		m.status.SetMessage("Went back to: " + url)
		m.refresh()

	case key.Matches(msg, m.keys.Forward):
		url, err := m.hist.Forward()
		if err != nil {
			m.status.SetError("No forward website.")
			return m, nil
		}
		m.status.SetMessage("Went forward to: " + url)
		m.refresh()

	case key.Matches(msg, m.keys.Sort):
		if err := m.hist.Sort(); err != nil {
			m.status.SetError("History is empty, nothing to sort.")
			return m, nil
		}
		m.status.SetMessage("History sorted alphabetically.")
		m.refresh()

	case key.Matches(msg, m.keys.Clear):
		n := m.hist.Clear()
		logging.Info("history cleared", "entries", n)
		m.status.SetMessage("Cleared all history.")
		m.refresh()

	case key.Matches(msg, m.keys.Help):
		m.setMode(ModeHelp, "HELP")
	}

	return m, nil
}

// handlePromptMode routes keys to the prompt bar and applies the result
// on enter.
func (m Model) handlePromptMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		result := m.prompt.Submit()
		m.setMode(ModeNormal, "NORMAL")
		m.apply(result)
		return m, nil
	}

	var cmd tea.Cmd
	_, cmd = m.prompt.Update(msg)
	if !m.prompt.IsActive() {
		// Esc closed the prompt.
		m.setMode(ModeNormal, "NORMAL")
	}
	return m, cmd
}

func (m Model) openPrompt(pt ui.PromptType, val string) (tea.Model, tea.Cmd) {
	cmd := m.prompt.Open(pt, val)
	m.setMode(ModePrompt, pt.String())
	return m, cmd
}

// apply runs the history operation a submitted prompt asked for. An empty
// submission cancels.
func (m *Model) apply(r ui.PromptResult) {
	url := r.Value
	if url == "" {
		return
	}

	switch r.Type {
	case ui.PromptVisit:
		if dropped := m.hist.Visit(url); dropped > 0 {
			logging.Debug("forward history discarded", "entries", dropped)
		}
		logging.Info("visited", "url", url, "len", m.hist.Len())
		m.status.SetMessage("Visited: " + url)
		m.refresh()

	case ui.PromptDelete:
		if err := m.hist.Delete(url); err != nil {
			logging.Debug("delete failed", "err", err)
			m.status.SetError("Website not found: " + url)
			return
		}
		logging.Info("deleted", "url", url, "len", m.hist.Len())
		m.status.SetMessage("Deleted website: " + url)
		m.refresh()

	case ui.PromptSearch:
		e, err := m.hist.Search(url)
		if err != nil {
			m.status.SetError("Website not found in history.")
			return
		}
		m.status.SetMessage(fmt.Sprintf("Website found: %s (position %d)", e.URL, e.Position))
		m.panel.Highlight(e.Position)
	}
}

func (m *Model) setMode(mode Mode, label string) {
	m.mode = mode
	m.status.SetMode(label)
	m.layout()
}

// refresh copies the history into the panel and the status bar.
func (m *Model) refresh() {
	rows := make([]ui.Row, 0, m.hist.Len())
	for url, current := range m.hist.All() {
		rows = append(rows, ui.Row{URL: url, Current: current})
	}
	m.panel.SetRows(rows)

	cur, _ := m.hist.Current()
	m.status.SetPosition(cur.Position, m.hist.Len())
}

func (m Model) helpSections() []ui.HelpSection {
	var out []ui.HelpSection
	for _, s := range m.keys.Sections() {
		hs := ui.HelpSection{Title: s.Name}
		for _, b := range s.Bindings {
			h := b.Help()
			hs.Entries = append(hs.Entries, ui.HelpEntry{Keys: h.Key, Desc: h.Desc})
		}
		out = append(out, hs)
	}
	hs := ui.HelpSection{Title: "Themes"}
	hs.Entries = append(hs.Entries, ui.HelpEntry{
		Keys: "-theme",
		Desc: strings.Join(theme.List(), ", "),
	})
	return append(out, hs)
}
