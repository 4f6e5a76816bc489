package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Cached glamour renderer to avoid recreation on every render call.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	rendererMu          sync.Mutex
)

// HelpEntry is one line of the key reference.
type HelpEntry struct {
	Keys string
	Desc string
}

// HelpSection is a titled group of help entries.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpMarkdown builds the key reference as markdown.
func HelpMarkdown(sections []HelpSection) string {
	var md strings.Builder
	md.WriteString("# Keybindings\n")
	for _, s := range sections {
		md.WriteString("\n## " + s.Title + "\n\n")
		for _, e := range s.Entries {
			md.WriteString("- `" + e.Keys + "` " + e.Desc + "\n")
		}
	}
	md.WriteString("\nPress `?` or `esc` to close.\n")
	return md.String()
}

// RenderHelp renders the key reference for the given width. If glamour
// fails the raw markdown is returned.
func RenderHelp(sections []HelpSection, width int) string {
	md := HelpMarkdown(sections)
	out, err := renderMarkdown(md, width)
	if err != nil {
		return md
	}
	return out
}

// renderMarkdown recreates the renderer only when the width changes.
func renderMarkdown(md string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if cachedRenderer == nil || cachedRendererWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererWidth = width
	}

	return cachedRenderer.Render(md)
}
