package shell

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/histnav/internal/history"
	"github.com/vidyasagar/histnav/internal/logging"
)

const menuText = `
Browser History Manager
1. Visit new website
2. Display history
3. Go back
4. Go forward
5. Delete a website
6. Search a website
7. Sort history alphabetically
8. Clear history
9. Exit
Enter your choice: `

func run(t *testing.T, opts Options, lines ...string) (string, *history.History) {
	t.Helper()
	h := history.New()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, New(h, in, &out, opts).Run())
	return out.String(), h
}

// replies strips the menu so only action output remains.
func replies(out string) []string {
	var got []string
	for _, chunk := range strings.Split(out, menuText) {
		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimPrefix(line, "Enter website URL to visit: ")
			line = strings.TrimPrefix(line, "Enter website URL to delete: ")
			line = strings.TrimPrefix(line, "Enter website URL to search: ")
			if line != "" {
				got = append(got, line)
			}
		}
	}
	return got
}

func TestMenuAndExit(t *testing.T) {
	out, _ := run(t, Options{}, "9")
	assert.Equal(t, menuText+"Cleared all history.\nExiting... Bye!\n", out)
}

func TestTranscript(t *testing.T) {
	out, h := run(t, Options{},
		"1", "a.com",
		"1", "b.com",
		"1", "c.com",
		"3", "3",
		"1", "d.com",
		"2",
		"4",
		"3", "3",
		"5", "x.com",
		"6", "a.com",
		"6", "zzz",
		"9",
	)

	assert.Equal(t, []string{
		"Visited: a.com",
		"Visited: b.com",
		"Visited: c.com",
		"Went back to: b.com",
		"Went back to: a.com",
		"Visited: d.com",
		"Browser History:",
		"   a.com",
		"-> d.com (current)",
		"No forward website.",
		"Went back to: a.com",
		"No previous website.",
		"Website not found: x.com",
		"Website found: a.com (position 1)",
		"Website not found in history.",
		"Cleared all history.",
		"Exiting... Bye!",
	}, replies(out))
	assert.Equal(t, 0, h.Len(), "exit clears the history")
}

func TestDeleteAndSort(t *testing.T) {
	out, _ := run(t, Options{},
		"7",
		"1", "c.com",
		"1", "a.com",
		"1", "b.com",
		"5", "b.com",
		"1", "b.com",
		"7",
		"2",
		"8",
		"2",
	)

	assert.Equal(t, []string{
		"History is empty, nothing to sort.",
		"Visited: c.com",
		"Visited: a.com",
		"Visited: b.com",
		"Deleted website: b.com",
		"Visited: b.com",
		"History sorted alphabetically.",
		"Browser History:",
		"   a.com",
		"   b.com",
		"-> c.com (current)",
		"Cleared all history.",
		"History is empty.",
		"Cleared all history.",
		"Exiting... Bye!",
	}, replies(out))
}

func TestInvalidChoice(t *testing.T) {
	out, _ := run(t, Options{}, "0", "10", "abc", "", " 2 ", "9")
	assert.Equal(t, []string{
		"Invalid choice, try again.",
		"Invalid choice, try again.",
		"Invalid choice, try again.",
		"Invalid choice, try again.",
		"History is empty.",
		"Cleared all history.",
		"Exiting... Bye!",
	}, replies(out))
}

func TestParseChoice(t *testing.T) {
	n, err := parseChoice(" 7\r")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = parseChoice("1.5")
	assert.True(t, errors.Is(err, ErrInvalidChoice))
}

func TestEndOfInputExits(t *testing.T) {
	h := history.New()
	var out bytes.Buffer
	require.NoError(t, New(h, strings.NewReader("1\na.com\n"), &out, Options{}).Run())
	assert.True(t, strings.HasSuffix(out.String(), "\nCleared all history.\nExiting... Bye!\n"))
	assert.Equal(t, 0, h.Len())

	out.Reset()
	require.NoError(t, New(h, strings.NewReader("1\n"), &out, Options{}).Run())
	assert.NotContains(t, out.String(), "Visited:")
	assert.Contains(t, out.String(), "Exiting... Bye!")
}

func TestCRLFInput(t *testing.T) {
	out, _ := run(t, Options{}, "1\r", "a.com\r", "6\r", "a.com\r", "9\r")
	assert.Contains(t, replies(out), "Website found: a.com (position 1)")
}

func TestLongURLIsTruncated(t *testing.T) {
	long := strings.Repeat("é", 12)
	out, _ := run(t, Options{MaxURLLength: 5}, "1", long, "6", "ééééé", "9")
	assert.Equal(t, []string{
		"Visited: ééééé",
		"Website found: ééééé (position 1)",
		"Cleared all history.",
		"Exiting... Bye!",
	}, replies(out))
}

func TestURLsAreEchoedVerbatim(t *testing.T) {
	out, _ := run(t, Options{},
		"1", "a\tb",
		"1", "c\td",
		"3",
		"2",
		"6", "a\tb",
		"9",
	)
	assert.Equal(t, []string{
		"Visited: a\tb",
		"Visited: c\td",
		"Went back to: a\tb",
		"Browser History:",
		"-> a\tb (current)",
		"   c\td",
		"Website found: a\tb (position 1)",
		"Cleared all history.",
		"Exiting... Bye!",
	}, replies(out))
}

func TestOverlongLineKeepsSession(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	kept := strings.Repeat("x", 2048)

	out, _ := run(t, Options{MaxURLLength: 2048}, "1", long, "2", "9")
	assert.Equal(t, []string{
		"Visited: " + kept,
		"Browser History:",
		"-> " + kept + " (current)",
		"Cleared all history.",
		"Exiting... Bye!",
	}, replies(out))

	out, h := run(t, Options{}, "1", long, "9")
	assert.Contains(t, out, "Visited: "+strings.Repeat("x", maxLine)+"\n")
	assert.Equal(t, 0, h.Len())
}

func TestTruncationDropsSplitRune(t *testing.T) {
	// Three runes keep twelve bytes, which ends inside the fourth euro sign.
	s := New(history.New(), strings.NewReader("a€€€€\n"), io.Discard, Options{MaxURLLength: 3})
	line, ok := s.readLine()
	require.True(t, ok)
	assert.Equal(t, "a€€€", line)
	assert.Equal(t, "a€€", s.clip(line))

	s = New(history.New(), strings.NewReader("aé\n"), io.Discard, Options{MaxURLLength: 1})
	line, ok = s.readLine()
	require.True(t, ok)
	assert.Equal(t, "aé", line)
}

func TestReadErrorIsReturned(t *testing.T) {
	in := io.MultiReader(strings.NewReader("2\n"), iotest.ErrReader(errors.New("disk gone")))
	var out bytes.Buffer
	err := New(history.New(), in, &out, Options{}).Run()
	assert.EqualError(t, err, "reading input: disk gone")
	assert.Contains(t, out.String(), "History is empty.")
	assert.NotContains(t, out.String(), "Exiting... Bye!")
}

func TestDispatchIsTraced(t *testing.T) {
	t.Cleanup(func() { logging.Init(nil, slog.LevelInfo) })

	var buf bytes.Buffer
	logging.Init(&buf, logging.LevelTrace)
	run(t, Options{}, "1", "a.com", "9")

	logs := buf.String()
	assert.Contains(t, logs, "level=TRACE")
	assert.Contains(t, logs, "msg=dispatch")
	assert.Contains(t, logs, `action="Visit new website"`)
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("broken pipe")
	}
	w.n--
	return len(p), nil
}

func TestWriteErrorStopsLoop(t *testing.T) {
	in := strings.NewReader(strings.Repeat("2\n", 1000))
	err := New(history.New(), in, &failingWriter{n: 3}, Options{}).Run()
	assert.EqualError(t, err, "broken pipe")
}
