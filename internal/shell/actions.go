package shell

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/histnav/internal/history"
	"github.com/vidyasagar/histnav/internal/logging"
)

// action is one numbered menu entry. prompt is set for actions that take a
// URL.
type action struct {
	label  string
	prompt string
	run    func(s *Shell, url string)
}

// exitChoice follows the last action.
const exitChoice = 9

var actions = [exitChoice - 1]action{
	{label: "Visit new website", prompt: "Enter website URL to visit:", run: (*Shell).visit},
	{label: "Display history", run: (*Shell).display},
	{label: "Go back", run: (*Shell).back},
	{label: "Go forward", run: (*Shell).forward},
	{label: "Delete a website", prompt: "Enter website URL to delete:", run: (*Shell).delete},
	{label: "Search a website", prompt: "Enter website URL to search:", run: (*Shell).search},
	{label: "Sort history alphabetically", run: (*Shell).sort},
	{label: "Clear history", run: func(s *Shell, _ string) { s.clear() }},
}

func (s *Shell) visit(url string) {
	if dropped := s.hist.Visit(url); dropped > 0 {
		logging.Debug("forward history discarded", "entries", dropped)
	}
	logging.Info("visited", "url", url, "len", s.hist.Len())
	s.labeled(s.styles.ok, "Visited:", url)
}

func (s *Shell) display(string) {
	seq, err := s.hist.Display()
	if errors.Is(err, history.ErrEmpty) {
		s.println(s.styles.dim.Render("History is empty."))
		return
	}
	s.println(s.styles.title.Render("Browser History:"))
	for url, current := range seq {
		if current {
			s.println(s.styles.current.Render("->") + " " + url + " " + s.styles.current.Render("(current)"))
		} else {
			s.println("   " + url)
		}
	}
}

func (s *Shell) back(string) {
	url, err := s.hist.Back()
	if err != nil {
		s.println(s.styles.fail.Render("No previous website."))
		return
	}
	s.labeled(s.styles.ok, "Went back to:", url)
}

func (s *Shell) forward(string) {
	url, err := s.hist.Forward()
	if err != nil {
		s.println(s.styles.fail.Render("No forward website."))
		return
	}
	s.labeled(s.styles.ok, "Went forward to:", url)
}

func (s *Shell) delete(url string) {
	if err := s.hist.Delete(url); err != nil {
		logging.Debug("delete failed", "err", err)
		s.labeled(s.styles.fail, "Website not found:", url)
		return
	}
	logging.Info("deleted", "url", url, "len", s.hist.Len())
	s.labeled(s.styles.ok, "Deleted website:", url)
}

func (s *Shell) search(url string) {
	e, err := s.hist.Search(url)
	if err != nil {
		s.println(s.styles.fail.Render("Website not found in history."))
		return
	}
	s.labeled(s.styles.ok, "Website found:", fmt.Sprintf("%s (position %d)", e.URL, e.Position))
}

func (s *Shell) sort(string) {
	if err := s.hist.Sort(); err != nil {
		s.println(s.styles.dim.Render("History is empty, nothing to sort."))
		return
	}
	s.println(s.styles.ok.Render("History sorted alphabetically."))
}

func (s *Shell) clear() {
	n := s.hist.Clear()
	logging.Info("history cleared", "entries", n)
	s.println(s.styles.ok.Render("Cleared all history."))
}

// labeled styles the fixed label only. URLs are printed verbatim since
// rendering would expand their tabs.
func (s *Shell) labeled(st lipgloss.Style, label, text string) {
	s.println(st.Render(label) + " " + text)
}
