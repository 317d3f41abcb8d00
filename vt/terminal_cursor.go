// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/terminal_cursor.go
// Summary: Cursor movement, control characters and save/restore.
// Usage: Part of the Terminal grid engine.

package vt

// setCursor places the cursor at an absolute position, clamped into the
// grid. Explicit positioning always lands inside [0,rows)×[0,cols), so any
// pending wrap is cancelled.
func (t *Terminal) setCursor(row, col int) {
	if row < 0 {
		row = 0
	}
	if row >= t.rows {
		row = t.rows - 1
	}
	if col < 0 {
		col = 0
	}
	if col >= t.cols {
		col = t.cols - 1
	}
	t.cursorRow = row
	t.cursorCol = col
}

// moveCursor shifts the cursor relatively, clamped to the grid. Rows never
// wrap into each other.
func (t *Terminal) moveCursor(dRow, dCol int) {
	t.setCursor(t.cursorRow+dRow, t.cursorCol+dCol)
}

// lineFeed starts a fresh line: column 0 of the next row, scrolling when
// the cursor is already on the last row. Any pending wrap is cancelled.
func (t *Terminal) lineFeed() {
	t.cursorCol = 0
	t.index()
}

// index moves the cursor down one row with the column untouched, scrolling
// at the bottom. ESC D reaches this directly.
func (t *Terminal) index() {
	if t.cursorRow < t.rows-1 {
		t.cursorRow++
	} else {
		t.scrollUp(1)
	}
}

func (t *Terminal) carriageReturn() {
	t.cursorCol = 0
}

// backspace moves the cursor one column left, stopping at column 0.
func (t *Terminal) backspace() {
	if t.cursorCol > 0 {
		t.cursorCol--
	}
}

// tab advances to the next multiple-of-8 column, clamped to the last column.
func (t *Terminal) tab() {
	col := (t.cursorCol/8 + 1) * 8
	if col > t.cols-1 {
		col = t.cols - 1
	}
	t.cursorCol = col
}

// reverseIndex moves the cursor up one row, scrolling the grid down when it
// is already on the top row.
func (t *Terminal) reverseIndex() {
	if t.cursorRow == 0 {
		t.scrollDown(1)
	} else {
		t.cursorRow--
	}
}

// saveCursor records the cursor position. ESC 7, CSI s and their restore
// counterparts share this single slot.
func (t *Terminal) saveCursor() {
	t.savedRow, t.savedCol = t.cursorRow, t.cursorCol
}

func (t *Terminal) restoreCursor() {
	t.setCursor(t.savedRow, t.savedCol)
}
