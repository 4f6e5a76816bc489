package history

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

var (
	// ErrNoPrevious is returned by Back when there is nothing behind the cursor.
	ErrNoPrevious = errors.New("no previous website")
	// ErrNoNext is returned by Forward when there is nothing ahead of the cursor.
	ErrNoNext = errors.New("no forward website")
	// ErrNotFound is returned by Delete and Search when no entry matches.
	ErrNotFound = errors.New("website not found")
	// ErrEmpty is returned by operations that need at least one entry.
	ErrEmpty = errors.New("history is empty")
)

const none = -1

// node is one slot in the arena. Links are indices into History.nodes.
type node struct {
	url  string
	prev int
	next int
}

// Entry is a read-only view of a history entry.
type Entry struct {
	Position int // 1-based rank in forward order
	URL      string
}

// History manages a back/forward navigation list with a movable cursor.
//
// Entries live in an arena and are linked by index; removed slots are
// recycled through a free list. The zero value is not usable, use New.
type History struct {
	nodes []node
	free  []int
	head  int
	tail  int
	cur   int
	size  int
}

// New creates an empty navigation history.
func New() *History {
	return &History{
		head: none,
		tail: none,
		cur:  none,
	}
}

// Visit adds url after the current entry, dropping every entry that was
// ahead of it. The new entry becomes the last and the current one.
// It returns how many forward entries were discarded.
func (h *History) Visit(url string) int {
	dropped := 0
	for h.cur != h.tail {
		last := h.tail
		h.unlink(last)
		h.release(last)
		dropped++
	}

	idx := h.alloc(url)
	if h.tail == none {
		h.head = idx
	} else {
		h.nodes[h.tail].next = idx
		h.nodes[idx].prev = h.tail
	}
	h.tail = idx
	h.cur = idx
	h.size++
	return dropped
}

// All returns the entries in forward order paired with whether each one is
// the current entry. The sequence can be ranged over any number of times.
func (h *History) All() iter.Seq2[string, bool] {
	return func(yield func(string, bool) bool) {
		for i := h.head; i != none; i = h.nodes[i].next {
			if !yield(h.nodes[i].url, i == h.cur) {
				return
			}
		}
	}
}

// Display is All, but reports ErrEmpty instead of an empty sequence.
func (h *History) Display() (iter.Seq2[string, bool], error) {
	if h.size == 0 {
		return nil, ErrEmpty
	}
	return h.All(), nil
}

// URLs returns a snapshot of the URLs in forward order.
func (h *History) URLs() []string {
	urls := make([]string, 0, h.size)
	for url := range h.All() {
		urls = append(urls, url)
	}
	return urls
}

// Back moves one step back and returns the URL now current.
func (h *History) Back() (string, error) {
	if !h.CanGoBack() {
		return "", ErrNoPrevious
	}
	h.cur = h.nodes[h.cur].prev
	return h.nodes[h.cur].url, nil
}

// Forward moves one step forward and returns the URL now current.
func (h *History) Forward() (string, error) {
	if !h.CanGoForward() {
		return "", ErrNoNext
	}
	h.cur = h.nodes[h.cur].next
	return h.nodes[h.cur].url, nil
}

// CanGoBack reports whether there is a previous entry.
func (h *History) CanGoBack() bool {
	return h.cur != none && h.nodes[h.cur].prev != none
}

// CanGoForward reports whether there is a next entry.
func (h *History) CanGoForward() bool {
	return h.cur != none && h.nodes[h.cur].next != none
}

// Current returns the current entry, or false if history is empty.
func (h *History) Current() (Entry, bool) {
	if h.cur == none {
		return Entry{}, false
	}
	pos := 1
	for i := h.head; i != h.cur; i = h.nodes[i].next {
		pos++
	}
	return Entry{Position: pos, URL: h.nodes[h.cur].url}, true
}

// Delete removes the first entry whose URL equals url exactly. When the
// removed entry was current, the cursor moves to its successor, or its
// predecessor when it was last.
func (h *History) Delete(url string) error {
	idx, _ := h.find(url)
	if idx == none {
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	}

	n := h.nodes[idx]
	if h.cur == idx {
		switch {
		case n.next != none:
			h.cur = n.next
		case n.prev != none:
			h.cur = n.prev
		default:
			h.cur = none
		}
	}
	h.unlink(idx)
	h.release(idx)
	return nil
}

// Search returns the first entry whose URL equals url exactly.
func (h *History) Search(url string) (Entry, error) {
	idx, pos := h.find(url)
	if idx == none {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	return Entry{Position: pos, URL: h.nodes[idx].url}, nil
}

// Sort orders the entries by URL, byte by byte. URLs are moved between the
// existing slots, so the cursor stays at the same rank rather than following
// the URL it pointed at.
func (h *History) Sort() error {
	if h.size == 0 {
		return ErrEmpty
	}
	urls := h.URLs()
	slices.SortStableFunc(urls, strings.Compare)
	k := 0
	for i := h.head; i != none; i = h.nodes[i].next {
		h.nodes[i].url = urls[k]
		k++
	}
	return nil
}

// Clear removes every entry and returns how many there were.
func (h *History) Clear() int {
	n := h.size
	h.nodes = nil
	h.free = nil
	h.head, h.tail, h.cur = none, none, none
	h.size = 0
	return n
}

// Len returns the total number of entries.
func (h *History) Len() int {
	return h.size
}

// find scans forward for url and returns its slot and 1-based position.
func (h *History) find(url string) (int, int) {
	pos := 1
	for i := h.head; i != none; i = h.nodes[i].next {
		if h.nodes[i].url == url {
			return i, pos
		}
		pos++
	}
	return none, 0
}

func (h *History) alloc(url string) int {
	n := node{url: url, prev: none, next: none}
	if k := len(h.free); k > 0 {
		idx := h.free[k-1]
		h.free = h.free[:k-1]
		h.nodes[idx] = n
		return idx
	}
	h.nodes = append(h.nodes, n)
	return len(h.nodes) - 1
}

// unlink detaches idx from its neighbors and fixes head and tail.
func (h *History) unlink(idx int) {
	n := h.nodes[idx]
	if n.prev != none {
		h.nodes[n.prev].next = n.next
	} else {
		h.head = n.next
	}
	if n.next != none {
		h.nodes[n.next].prev = n.prev
	} else {
		h.tail = n.prev
	}
	h.size--
}

func (h *History) release(idx int) {
	h.nodes[idx] = node{prev: none, next: none}
	h.free = append(h.free, idx)
}
