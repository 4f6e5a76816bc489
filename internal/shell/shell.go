// Package shell implements the numbered line menu that drives a History
// over a plain reader and writer.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/histnav/internal/history"
	"github.com/vidyasagar/histnav/internal/logging"
	"github.com/vidyasagar/histnav/internal/theme"
)

// ErrInvalidChoice is reported for menu input that names no action.
var ErrInvalidChoice = errors.New("invalid choice")

// maxLine bounds a single line of input when URLs are not truncated.
const maxLine = 1 << 20

// Options tunes input handling.
type Options struct {
	MaxURLLength int // in runes, 0 disables truncation
}

// Shell reads menu choices one line at a time and reports on the writer.
type Shell struct {
	hist   *history.History
	in     *bufio.Reader
	inErr  error // read error other than io.EOF
	out    io.Writer
	opts   Options
	styles styles
	err    error // first write error
}

type styles struct {
	title   lipgloss.Style
	prompt  lipgloss.Style
	ok      lipgloss.Style
	fail    lipgloss.Style
	current lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	t := theme.Current
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(t.Primary),
		prompt:  r.NewStyle().Foreground(t.Accent),
		ok:      r.NewStyle().Foreground(t.Success),
		fail:    r.NewStyle().Foreground(t.Error),
		current: r.NewStyle().Bold(true).Foreground(t.URL),
		dim:     r.NewStyle().Foreground(t.TextDim),
	}
}

// New creates a shell over h. Colors are only emitted when out is a
// terminal.
func New(h *history.History, in io.Reader, out io.Writer, opts Options) *Shell {
	return &Shell{
		hist:   h,
		in:     bufio.NewReader(in),
		out:    out,
		opts:   opts,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Run shows the menu and executes choices until the exit choice or the end
// of input. Both clear the history first. Only I/O errors are returned.
func (s *Shell) Run() error {
	for s.err == nil {
		s.menu()
		line, ok := s.readLine()
		if !ok {
			s.println("")
			break
		}

		choice, err := parseChoice(line)
		if err != nil {
			logging.Debug("rejected menu input", "input", line)
			s.println(s.styles.fail.Render("Invalid choice, try again."))
			continue
		}
		if choice == exitChoice {
			break
		}
		if !s.dispatch(actions[choice-1]) {
			break
		}
	}

	if s.err != nil {
		return s.err
	}
	if s.inErr != nil {
		return fmt.Errorf("reading input: %w", s.inErr)
	}
	s.clear()
	s.println("Exiting... Bye!")
	return s.err
}

// dispatch runs a, reading its URL first when it takes one. It reports
// false when input ended at the URL prompt.
func (s *Shell) dispatch(a action) bool {
	logging.Trace("dispatch", "action", a.label)
	var url string
	if a.prompt != "" {
		s.print(s.styles.prompt.Render(a.prompt), " ")
		line, ok := s.readLine()
		if !ok {
			s.println("")
			return false
		}
		url = s.clip(line)
	}
	a.run(s, url)
	return true
}

func (s *Shell) menu() {
	s.println("")
	s.println(s.styles.title.Render("Browser History Manager"))
	for i, a := range actions {
		s.printf("%d. %s\n", i+1, a.label)
	}
	s.printf("%d. Exit\n", exitChoice)
	s.print(s.styles.prompt.Render("Enter your choice:"), " ")
}

// readLine returns the next line without its line ending, or false at the
// end of input. Bytes past lineLimit are read and dropped, so an overlong
// line never ends the session.
func (s *Shell) readLine() (string, bool) {
	limit := s.lineLimit()
	var (
		buf       []byte
		read      bool
		truncated bool
	)
	for {
		chunk, more, err := s.in.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.inErr = err
			}
			if !read {
				return "", false
			}
			break
		}
		read = true
		room := limit - len(buf)
		if len(chunk) > room {
			chunk = chunk[:room]
			truncated = true
		}
		buf = append(buf, chunk...)
		if !more {
			break
		}
	}

	line := string(buf)
	if truncated {
		// The cut may have split a rune.
		for i := 1; i < utf8.UTFMax && len(line) > 0; i++ {
			if r, size := utf8.DecodeLastRuneInString(line); r != utf8.RuneError || size > 1 {
				break
			}
			line = line[:len(line)-1]
		}
	}
	return strings.TrimRight(line, "\r"), true
}

// lineLimit is the number of bytes of a line worth keeping: enough for
// MaxURLLength runes, which clip then cuts exactly.
func (s *Shell) lineLimit() int {
	if n := s.opts.MaxURLLength; n > 0 && n < maxLine/utf8.UTFMax {
		return n * utf8.UTFMax
	}
	return maxLine
}

func (s *Shell) clip(url string) string {
	n := s.opts.MaxURLLength
	if n <= 0 || utf8.RuneCountInString(url) <= n {
		return url
	}
	logging.Warn("url truncated", "limit", n, "length", utf8.RuneCountInString(url))
	return string([]rune(url)[:n])
}

func parseChoice(line string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > exitChoice {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, line)
	}
	return n, nil
}

func (s *Shell) print(a ...any) {
	if s.err == nil {
		_, s.err = fmt.Fprint(s.out, a...)
	}
}

func (s *Shell) println(a ...any) {
	if s.err == nil {
		_, s.err = fmt.Fprintln(s.out, a...)
	}
}

func (s *Shell) printf(format string, a ...any) {
	if s.err == nil {
		_, s.err = fmt.Fprintf(s.out, format, a...)
	}
}
