package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	url     string
	current bool
}

func rows(h *History) []row {
	var out []row
	for url, cur := range h.All() {
		out = append(out, row{url, cur})
	}
	return out
}

func visitAll(h *History, urls ...string) {
	for _, u := range urls {
		h.Visit(u)
	}
}

func currentURL(t *testing.T, h *History) string {
	t.Helper()
	e, ok := h.Current()
	require.True(t, ok, "expected a current entry")
	return e.URL
}

func TestVisitKeepsInsertionOrder(t *testing.T) {
	for n := 1; n <= 6; n++ {
		h := New()
		var want []string
		for i := 0; i < n; i++ {
			u := string(rune('a'+i)) + ".com"
			h.Visit(u)
			want = append(want, u)
		}
		assert.Equal(t, want, h.URLs())
		assert.Equal(t, n, h.Len())

		e, ok := h.Current()
		require.True(t, ok)
		assert.Equal(t, n, e.Position)
		assert.Equal(t, want[n-1], e.URL)
	}
}

func TestVisitTruncatesForwardHistory(t *testing.T) {
	h := New()
	visitAll(h, "A", "B", "C")

	_, err := h.Back()
	require.NoError(t, err)
	_, err = h.Back()
	require.NoError(t, err)

	dropped := h.Visit("D")
	assert.Equal(t, 2, dropped)
	assert.Equal(t, []row{{"A", false}, {"D", true}}, rows(h))
	assert.False(t, h.CanGoForward())
}

func TestBackOnEmptyHistory(t *testing.T) {
	h := New()
	_, err := h.Back()
	assert.ErrorIs(t, err, ErrNoPrevious)
	assert.Equal(t, 0, h.Len())

	visitAll(h, "A", "B")
	h.Clear()
	_, err = h.Back()
	assert.ErrorIs(t, err, ErrNoPrevious)
	_, ok := h.Current()
	assert.False(t, ok)
}

func TestBackForward(t *testing.T) {
	h := New()
	visitAll(h, "A", "B", "C")

	_, err := h.Forward()
	assert.ErrorIs(t, err, ErrNoNext)

	url, err := h.Back()
	require.NoError(t, err)
	assert.Equal(t, "B", url)

	url, err = h.Back()
	require.NoError(t, err)
	assert.Equal(t, "A", url)

	_, err = h.Back()
	assert.ErrorIs(t, err, ErrNoPrevious)
	assert.Equal(t, "A", currentURL(t, h))

	url, err = h.Forward()
	require.NoError(t, err)
	assert.Equal(t, "B", url)
	assert.True(t, h.CanGoBack())
	assert.True(t, h.CanGoForward())
}

func TestDeleteMissingLeavesHistoryUnchanged(t *testing.T) {
	h := New()
	visitAll(h, "A", "B", "C")
	before := rows(h)

	err := h.Delete("x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "x")
	assert.Equal(t, before, rows(h))
	assert.Equal(t, 3, h.Len())
}

func TestDeleteCurrentRetargetsCursor(t *testing.T) {
	tests := []struct {
		name    string
		visits  []string
		backs   int
		del     string
		want    []row
		wantCur string
	}{
		{
			name:    "moves to successor",
			visits:  []string{"A", "B", "C"},
			backs:   1,
			del:     "B",
			want:    []row{{"A", false}, {"C", true}},
			wantCur: "C",
		},
		{
			name:    "moves to predecessor when last",
			visits:  []string{"A", "B", "C"},
			del:     "C",
			want:    []row{{"A", false}, {"B", true}},
			wantCur: "B",
		},
		{
			name:   "becomes absent when only entry",
			visits: []string{"A"},
			del:    "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			visitAll(h, tt.visits...)
			for i := 0; i < tt.backs; i++ {
				_, err := h.Back()
				require.NoError(t, err)
			}

			require.NoError(t, h.Delete(tt.del))
			assert.Equal(t, tt.want, rows(h))

			e, ok := h.Current()
			if tt.wantCur == "" {
				assert.False(t, ok)
				assert.Equal(t, 0, h.Len())
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantCur, e.URL)
		})
	}
}

func TestDeleteFirstMatchOnly(t *testing.T) {
	h := New()
	visitAll(h, "A", "B", "A", "C")

	require.NoError(t, h.Delete("A"))
	assert.Equal(t, []string{"B", "A", "C"}, h.URLs())
	assert.Equal(t, "C", currentURL(t, h))

	require.NoError(t, h.Delete("B"))
	_, err := h.Back()
	require.NoError(t, err)
	assert.Equal(t, "A", currentURL(t, h))
	_, err = h.Back()
	assert.ErrorIs(t, err, ErrNoPrevious)
}

func TestDeleteHeadAndTailRelinks(t *testing.T) {
	h := New()
	visitAll(h, "A", "B", "C", "D")
	_, err := h.Back()
	require.NoError(t, err)

	require.NoError(t, h.Delete("A"))
	require.NoError(t, h.Delete("D"))
	assert.Equal(t, []row{{"B", false}, {"C", true}}, rows(h))

	url, err := h.Back()
	require.NoError(t, err)
	assert.Equal(t, "B", url)
	_, err = h.Back()
	assert.ErrorIs(t, err, ErrNoPrevious)
}

func TestFreedSlotsAreReused(t *testing.T) {
	h := New()
	visitAll(h, "A", "B", "C", "D")
	for i := 0; i < 3; i++ {
		_, err := h.Back()
		require.NoError(t, err)
	}
	h.Visit("E")
	require.NoError(t, h.Delete("A"))
	visitAll(h, "F", "G", "H")

	assert.Equal(t, []string{"E", "F", "G", "H"}, h.URLs())
	assert.Len(t, h.nodes, 4)

	var back []string
	for h.CanGoBack() {
		url, err := h.Back()
		require.NoError(t, err)
		back = append(back, url)
	}
	assert.Equal(t, []string{"G", "F", "E"}, back)
}

func TestSearchReturnsFirstOccurrence(t *testing.T) {
	h := New()
	visitAll(h, "A", "B", "A")

	e, err := h.Search("A")
	require.NoError(t, err)
	assert.Equal(t, Entry{Position: 1, URL: "A"}, e)

	e, err = h.Search("B")
	require.NoError(t, err)
	assert.Equal(t, 2, e.Position)

	_, err = h.Search("Z")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 3, currentPosition(t, h))
}

func currentPosition(t *testing.T, h *History) int {
	t.Helper()
	e, ok := h.Current()
	require.True(t, ok)
	return e.Position
}

func TestSort(t *testing.T) {
	h := New()
	visitAll(h, "C", "A", "B")

	require.NoError(t, h.Sort())
	assert.Equal(t, []string{"A", "B", "C"}, h.URLs())
}

func TestSortIsBytewise(t *testing.T) {
	h := New()
	visitAll(h, "b.com", "B.com", "a.com", "https://z", "A.com", "b.com")

	require.NoError(t, h.Sort())
	assert.Equal(t, []string{"A.com", "B.com", "a.com", "b.com", "b.com", "https://z"}, h.URLs())
}

func TestSortKeepsCursorRank(t *testing.T) {
	h := New()
	visitAll(h, "C", "A", "B")
	_, err := h.Back()
	require.NoError(t, err)
	require.Equal(t, "A", currentURL(t, h))

	require.NoError(t, h.Sort())
	assert.Equal(t, []row{{"A", false}, {"B", true}, {"C", false}}, rows(h))
	assert.Equal(t, 2, currentPosition(t, h))
}

func TestSortEmpty(t *testing.T) {
	h := New()
	assert.ErrorIs(t, h.Sort(), ErrEmpty)
	assert.Equal(t, 0, h.Len())
}

func TestClear(t *testing.T) {
	h := New()
	visitAll(h, "A", "B", "C")
	assert.Equal(t, 3, h.Clear())

	_, err := h.Display()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, 0, h.Clear())

	h.Visit("X")
	assert.Equal(t, []row{{"X", true}}, rows(h))
	assert.False(t, h.CanGoBack())
	assert.False(t, h.CanGoForward())
}

func TestDisplayIsRestartable(t *testing.T) {
	h := New()
	visitAll(h, "A", "B", "C")
	_, err := h.Back()
	require.NoError(t, err)

	seq, err := h.Display()
	require.NoError(t, err)

	collect := func() []row {
		var out []row
		for url, cur := range seq {
			out = append(out, row{url, cur})
		}
		return out
	}
	first := collect()
	assert.Equal(t, first, collect())
	assert.Equal(t, []row{{"A", false}, {"B", true}, {"C", false}}, first)

	for url := range seq {
		assert.Equal(t, "A", url)
		break
	}
}
