// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/terminal_altscreen.go
// Summary: Alternate-screen snapshot and restore for full-screen programs.
// Usage: Part of the Terminal grid engine; driven by DECSET/DECRST 47/1049.

package vt

// enterAltScreen snapshots the main screen and swaps in a blank grid with
// the cursor homed. While engaged, scrolled-off rows are discarded instead
// of feeding the scrollback. Entering twice is a no-op: nesting is not
// supported.
func (t *Terminal) enterAltScreen() {
	if t.altActive {
		return
	}
	t.saved = &savedScreen{
		grid:       t.grid,
		scrollback: t.scrollback,
		row:        t.cursorRow,
		col:        t.cursorCol,
	}
	t.altActive = true
	t.grid = blankGrid(t.rows, t.cols)
	t.scrollback = nil
	t.cursorRow, t.cursorCol = 0, 0
	t.markAllDirty()
}

// exitAltScreen restores the exact snapshot taken on entry, grid, scrollback
// and cursor alike, and discards the alternate content. A no-op when the
// alternate screen is not engaged.
func (t *Terminal) exitAltScreen() {
	if !t.altActive {
		return
	}
	t.grid = t.saved.grid
	t.scrollback = t.saved.scrollback
	t.cursorRow, t.cursorCol = t.saved.row, t.saved.col
	t.saved = nil
	t.altActive = false
	t.markAllDirty()
}
