package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the history TUI.
type KeyMap struct {
	// Selection in the history panel
	SelectDown key.Binding
	SelectUp   key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding

	// History operations
	Visit   key.Binding
	Back    key.Binding
	Forward key.Binding
	Delete  key.Binding
	Search  key.Binding
	Sort    key.Binding
	Clear   key.Binding

	// Actions
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SelectDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "select next entry"),
		),
		SelectUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "select previous entry"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "select first entry"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "select last entry"),
		),
		Visit: key.NewBinding(
			key.WithKeys("o", "v"),
			key.WithHelp("o/v", "visit a URL"),
		),
		Back: key.NewBinding(
			key.WithKeys("H", "h", "left"),
			key.WithHelp("H/h/left", "go back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("L", "l", "right"),
			key.WithHelp("L/l/right", "go forward"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete a URL (first match)"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search a URL (first match)"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort alphabetically"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Sections groups the bindings for the help screen.
func (k KeyMap) Sections() []Section {
	return []Section{
		{"History", []key.Binding{k.Visit, k.Back, k.Forward, k.Delete, k.Search, k.Sort, k.Clear}},
		{"Selection", []key.Binding{k.SelectDown, k.SelectUp, k.GotoTop, k.GotoBottom}},
		{"General", []key.Binding{k.Help, k.Quit}},
	}
}

// Section is a titled group of bindings.
type Section struct {
	Name     string
	Bindings []key.Binding
}
