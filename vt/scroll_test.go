package vt

import (
	"fmt"
	"strings"
	"testing"
)

// TestScrollUp tests SU - ESC[<n>S: scroll the whole grid up.
func TestScrollUp(t *testing.T) {
	h := NewTestHarness(3, 5)
	h.SendSeq("aaa\r\nbbb\r\nccc")

	h.SendSeq("\x1b[S")

	h.AssertText(t, 0, 0, "bbb")
	h.AssertText(t, 1, 0, "ccc")
	h.AssertRowBlank(t, 2)
	// The evicted row is the newest scrollback entry
	if n := h.GetScrollbackLength(); n != 1 {
		t.Fatalf("Expected 1 scrollback row, got %d", n)
	}
	sb := h.term.Scrollback()
	if sb[0][0].Rune != 'a' {
		t.Errorf("Scrollback top should hold the evicted row, got %q", sb[0][0].Rune)
	}
}

// TestScrollUpMultiple tests SU with an explicit count.
func TestScrollUpMultiple(t *testing.T) {
	h := NewTestHarness(4, 5)
	h.SendSeq("aaa\r\nbbb\r\nccc\r\nddd")

	h.SendSeq("\x1b[3S")

	h.AssertText(t, 0, 0, "ddd")
	h.AssertRowBlank(t, 1)
	h.AssertRowBlank(t, 2)
	h.AssertRowBlank(t, 3)
	if n := h.GetScrollbackLength(); n != 3 {
		t.Errorf("Expected 3 scrollback rows, got %d", n)
	}
}

// TestScrollDown tests SD - ESC[<n>T: scroll down, discarding bottom rows.
func TestScrollDown(t *testing.T) {
	h := NewTestHarness(3, 5)
	h.SendSeq("aaa\r\nbbb\r\nccc")

	h.SendSeq("\x1b[T")

	h.AssertRowBlank(t, 0)
	h.AssertText(t, 1, 0, "aaa")
	h.AssertText(t, 2, 0, "bbb")
	// ccc fell off the bottom; reverse-scrolled content has no history
	if n := h.GetScrollbackLength(); n != 0 {
		t.Errorf("Scroll down must not feed scrollback, got %d rows", n)
	}
}

// TestScrollCountClamping verifies counts beyond the grid height behave as
// a full-grid scroll instead of corrupting state.
func TestScrollCountClamping(t *testing.T) {
	h := NewTestHarness(3, 5)
	h.SendSeq("aaa\r\nbbb\r\nccc")

	h.SendSeq("\x1b[99S")

	for row := 0; row < 3; row++ {
		h.AssertRowBlank(t, row)
	}
	if n := h.GetScrollbackLength(); n != 3 {
		t.Errorf("Expected all 3 rows in scrollback, got %d", n)
	}
}

// TestScrollbackCap verifies the scrollback never exceeds its cap no matter
// how many lines scroll past, and that the oldest rows are dropped first.
func TestScrollbackCap(t *testing.T) {
	const limit = 10
	h := NewTestHarness(3, 10, WithMaxScrollback(limit))

	for i := 0; i < 50; i++ {
		h.SendSeq(fmt.Sprintf("line%d\r\n", i))
	}

	if n := h.GetScrollbackLength(); n != limit {
		t.Fatalf("Scrollback should be capped at %d, got %d", limit, n)
	}

	// 50 lines printed on a 3-row grid: 48 scrolled off, the last 10 of
	// them retained, oldest first.
	sb := h.term.Scrollback()
	first := strings.TrimRight(serializeRow(sb[0]), " ")
	if first != "line38" {
		t.Errorf("Oldest retained row should be line38, got %q", first)
	}
	last := strings.TrimRight(serializeRow(sb[limit-1]), " ")
	if last != "line47" {
		t.Errorf("Newest retained row should be line47, got %q", last)
	}
}

// TestScrollbackDisabled verifies a zero cap keeps scrollback empty.
func TestScrollbackDisabled(t *testing.T) {
	h := NewTestHarness(3, 10, WithMaxScrollback(0))

	for i := 0; i < 20; i++ {
		h.SendSeq("x\r\n")
	}

	if n := h.GetScrollbackLength(); n != 0 {
		t.Errorf("Scrollback disabled but holds %d rows", n)
	}
}

// TestScrollbackRowWidthInvariant verifies rows entering the scrollback
// keep exactly cols cells.
func TestScrollbackRowWidthInvariant(t *testing.T) {
	h := NewTestHarness(3, 7)
	h.SendSeq("a\r\nbb\r\nccc\r\ndddd\r\neeeee")

	for i, row := range h.term.Scrollback() {
		if len(row) != 7 {
			t.Errorf("Scrollback row %d has %d cells, want 7", i, len(row))
		}
	}
}

// TestLineFeedScrollsAtBottom verifies LF on the last row scrolls and the
// evicted row lands in scrollback.
func TestLineFeedScrollsAtBottom(t *testing.T) {
	h := NewTestHarness(2, 5)
	h.SendSeq("one")
	h.SendSeq("\n") // row 1
	h.SendSeq("two")
	h.AssertCursor(t, 1, 3)

	h.SendSeq("\n") // at bottom: scroll

	h.AssertText(t, 0, 0, "two")
	h.AssertRowBlank(t, 1)
	h.AssertCursor(t, 1, 0)
	if n := h.GetScrollbackLength(); n != 1 {
		t.Errorf("Expected 1 scrollback row, got %d", n)
	}
}
