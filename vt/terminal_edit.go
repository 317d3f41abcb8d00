// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/terminal_edit.go
// Summary: Line insertion and deletion at the cursor row.
// Usage: Part of the Terminal grid engine.

package vt

// insertLines implements CSI L: open n blank lines at the cursor row,
// pushing the rows below downward. Rows pushed past the bottom are dropped;
// the grid keeps exactly rows lines and the scrollback is not involved.
func (t *Terminal) insertLines(n int) {
	if n <= 0 {
		return
	}
	if n > t.rows-t.cursorRow {
		n = t.rows - t.cursorRow
	}
	for row := t.rows - 1; row >= t.cursorRow+n; row-- {
		t.grid[row] = t.grid[row-n]
	}
	for row := t.cursorRow; row < t.cursorRow+n; row++ {
		t.grid[row] = blankRow(t.cols)
	}
	t.markAllDirty()
}

// deleteLines implements CSI M: remove n lines at the cursor row, pulling
// the rows below upward and appending blanks at the bottom.
func (t *Terminal) deleteLines(n int) {
	if n <= 0 {
		return
	}
	if n > t.rows-t.cursorRow {
		n = t.rows - t.cursorRow
	}
	for row := t.cursorRow; row < t.rows-n; row++ {
		t.grid[row] = t.grid[row+n]
	}
	for row := t.rows - n; row < t.rows; row++ {
		t.grid[row] = blankRow(t.cols)
	}
	t.markAllDirty()
}
