// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/terminal_erase.go
// Summary: Erase-in-display/line, in-row character edits and the hard reset.
// Usage: Part of the Terminal grid engine.

package vt

// Clear is the hard reset: blank grid, empty scrollback, cursor home,
// default attributes, parser back to ground state. Unlike CSI 2J it leaves
// nothing of the previous session behind, including an engaged alternate
// screen.
func (t *Terminal) Clear() {
	t.altActive = false
	t.saved = nil
	t.grid = blankGrid(t.rows, t.cols)
	t.scrollback = nil
	t.cursorRow, t.cursorCol = 0, 0
	t.savedRow, t.savedCol = 0, 0
	t.curFG, t.curBG, t.curAttr = DefaultFG, DefaultBG, 0
	t.cursorVisible = true
	t.appCursorKeys = false
	t.parser.reset()
	t.markAllDirty()
}

// effectiveCol is the column erase and edit operations anchor at: the cursor
// column, or the last column when a wrap is pending.
func (t *Terminal) effectiveCol() int {
	if t.cursorCol >= t.cols {
		return t.cols - 1
	}
	return t.cursorCol
}

// eraseDisplay implements CSI J. The cursor position is left untouched.
func (t *Terminal) eraseDisplay(mode int) {
	col := t.effectiveCol()
	switch mode {
	case 0: // cursor to end of screen
		t.blankCells(t.grid[t.cursorRow], col, t.cols)
		for row := t.cursorRow + 1; row < t.rows; row++ {
			t.grid[row] = blankRow(t.cols)
		}
	case 1: // start of screen through cursor
		for row := 0; row < t.cursorRow; row++ {
			t.grid[row] = blankRow(t.cols)
		}
		t.blankCells(t.grid[t.cursorRow], 0, col+1)
	case 2:
		for row := range t.grid {
			t.grid[row] = blankRow(t.cols)
		}
	case 3:
		for row := range t.grid {
			t.grid[row] = blankRow(t.cols)
		}
		t.scrollback = nil
	}
	t.markAllDirty()
}

// eraseLine implements CSI K on the cursor's row.
func (t *Terminal) eraseLine(mode int) {
	row := t.grid[t.cursorRow]
	col := t.effectiveCol()
	switch mode {
	case 0:
		t.blankCells(row, col, t.cols)
	case 1:
		t.blankCells(row, 0, col+1)
	case 2:
		t.grid[t.cursorRow] = blankRow(t.cols)
	}
	t.markDirty(t.cursorRow)
}

// eraseChars implements CSI X: blank n cells at the cursor without shifting.
func (t *Terminal) eraseChars(n int) {
	if n <= 0 {
		return
	}
	col := t.effectiveCol()
	end := col + n
	if end > t.cols {
		end = t.cols
	}
	t.blankCells(t.grid[t.cursorRow], col, end)
	t.markDirty(t.cursorRow)
}

// deleteChars implements CSI P: remove n cells at the cursor, shift the rest
// of the row left and pad with default cells on the right.
func (t *Terminal) deleteChars(n int) {
	if n <= 0 {
		return
	}
	col := t.effectiveCol()
	if n > t.cols-col {
		n = t.cols - col
	}
	row := t.grid[t.cursorRow]
	for x := col; x < t.cols-n; x++ {
		row[x] = row[x+n]
	}
	for x := t.cols - n; x < t.cols; x++ {
		row[x] = blankCell()
	}
	fixWidePairs(row)
	t.markDirty(t.cursorRow)
}

// insertChars implements CSI @: open n blank cells at the cursor, shifting
// the rest of the row right; cells pushed past the edge are lost.
func (t *Terminal) insertChars(n int) {
	if n <= 0 {
		return
	}
	col := t.effectiveCol()
	if n > t.cols-col {
		n = t.cols - col
	}
	row := t.grid[t.cursorRow]
	for x := t.cols - 1; x >= col+n; x-- {
		row[x] = row[x-n]
	}
	for x := col; x < col+n; x++ {
		row[x] = blankCell()
	}
	fixWidePairs(row)
	t.markDirty(t.cursorRow)
}

// blankCells blanks [from, to) in a row and repairs any wide pair the range
// boundary cut in half.
func (t *Terminal) blankCells(row []Cell, from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(row) {
		to = len(row)
	}
	for x := from; x < to; x++ {
		row[x] = blankCell()
	}
	fixWidePairs(row)
}

// fixWidePairs blanks orphaned halves of wide-character pairs after an edit.
// A placeholder is identifiable by its zero rune: nothing else writes one.
func fixWidePairs(row []Cell) {
	for x := 0; x < len(row); x++ {
		if row[x].Wide {
			if x+1 < len(row) && row[x+1].Rune == 0 {
				x++ // intact pair
				continue
			}
			row[x] = blankCell()
		} else if row[x].Rune == 0 {
			row[x] = blankCell()
		}
	}
}
