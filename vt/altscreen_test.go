// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package vt

import (
	"reflect"
	"testing"
)

// TestAltScreenEnterExit verifies the main screen, scrollback and cursor
// survive an alternate-screen round trip exactly.
func TestAltScreenEnterExit(t *testing.T) {
	for _, mode := range []string{"47", "1049"} {
		t.Run("mode "+mode, func(t *testing.T) {
			h := NewTestHarness(3, 10)
			// Build up grid content plus some scrollback
			h.SendSeq("one\r\ntwo\r\nthree\r\nfour\r\nfive")
			h.SendSeq("\x1b[2;4H")

			wantGrid := h.term.Grid()
			wantSB := h.term.Scrollback()
			wantRow, wantCol := h.GetCursor()

			h.SendSeq("\x1b[?" + mode + "h")
			if !h.term.IsAlternateScreen() {
				t.Fatal("Alternate screen should be engaged")
			}
			h.AssertCursor(t, 0, 0)
			for row := 0; row < 3; row++ {
				h.AssertRowBlank(t, row)
			}

			// Scribble over the alternate screen
			h.SendSeq("\x1b[31mGARBAGE\r\nMORE\r\nROWS\r\nSCROLLED")

			h.SendSeq("\x1b[?" + mode + "l")
			if h.term.IsAlternateScreen() {
				t.Fatal("Alternate screen should be released")
			}

			if !reflect.DeepEqual(h.term.Grid(), wantGrid) {
				t.Error("Grid not restored exactly")
			}
			if !reflect.DeepEqual(h.term.Scrollback(), wantSB) {
				t.Error("Scrollback not restored exactly")
			}
			h.AssertCursor(t, wantRow, wantCol)
		})
	}
}

// TestAltScreenNoScrollback verifies rows scrolled off the alternate screen
// are discarded rather than growing the main scrollback.
func TestAltScreenNoScrollback(t *testing.T) {
	h := NewTestHarness(2, 10)
	h.SendSeq("main\r\nlines\r\nhere") // creates scrollback
	before := h.GetScrollbackLength()
	if before == 0 {
		t.Fatal("Setup should have produced scrollback")
	}

	h.SendSeq("\x1b[?1049h")
	for i := 0; i < 10; i++ {
		h.SendSeq("alt\r\n")
	}
	if n := h.GetScrollbackLength(); n != 0 {
		t.Errorf("Alternate screen scrollback should read empty, got %d", n)
	}

	h.SendSeq("\x1b[?1049l")
	if n := h.GetScrollbackLength(); n != before {
		t.Errorf("Main scrollback changed across alt screen: %d -> %d", before, n)
	}
}

// TestAltScreenNoNesting verifies a second enter and a stray exit are no-ops.
func TestAltScreenNoNesting(t *testing.T) {
	h := NewTestHarness(2, 10)
	h.SendSeq("keep")

	h.SendSeq("\x1b[?1049h")
	h.SendSeq("altcontent")
	h.SendSeq("\x1b[?1049h") // already engaged: must not re-snapshot
	h.AssertText(t, 0, 0, "altcontent")

	h.SendSeq("\x1b[?1049l")
	h.AssertText(t, 0, 0, "keep")

	h.SendSeq("\x1b[?1049l") // not engaged: no-op
	h.AssertText(t, 0, 0, "keep")
	if h.term.IsAlternateScreen() {
		t.Error("Terminal should be on the main screen")
	}
}

// TestAltScreenClear verifies a hard reset while the alternate screen is
// engaged drops back to a pristine main screen.
func TestAltScreenClear(t *testing.T) {
	h := NewTestHarness(2, 10)
	h.SendSeq("main")
	h.SendSeq("\x1b[?1049h")
	h.SendSeq("alt")

	h.term.Clear()

	if h.term.IsAlternateScreen() {
		t.Error("Clear should leave the alternate screen")
	}
	h.AssertRowBlank(t, 0)
	h.AssertRowBlank(t, 1)
	h.AssertCursor(t, 0, 0)
}
