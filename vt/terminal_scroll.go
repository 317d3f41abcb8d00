// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/terminal_scroll.go
// Summary: Whole-grid scrolling and the bounded scrollback FIFO.
// Usage: Part of the Terminal grid engine.

package vt

// scrollUp removes n rows from the top of the grid and appends blank rows at
// the bottom. Evicted rows feed the scrollback unless the alternate screen
// is engaged. The cursor does not move.
func (t *Terminal) scrollUp(n int) {
	if n <= 0 {
		return
	}
	if n > t.rows {
		n = t.rows
	}
	for i := 0; i < n; i++ {
		evicted := t.grid[0]
		copy(t.grid, t.grid[1:])
		t.grid[t.rows-1] = blankRow(t.cols)
		if !t.altActive {
			t.scrollback = appendScrollback(t.scrollback, evicted, t.maxScrollback)
		}
	}
	t.markAllDirty()
}

// scrollDown shifts the grid down by n rows, inserting blanks at the top.
// Rows pushed off the bottom are discarded: reverse-scrolled content has no
// prior history, so it never reaches the scrollback.
func (t *Terminal) scrollDown(n int) {
	if n <= 0 {
		return
	}
	if n > t.rows {
		n = t.rows
	}
	for i := t.rows - 1; i >= n; i-- {
		t.grid[i] = t.grid[i-n]
	}
	for i := 0; i < n; i++ {
		t.grid[i] = blankRow(t.cols)
	}
	t.markAllDirty()
}

// appendScrollback pushes a row onto the scrollback, dropping the oldest
// rows once the cap is exceeded. A cap of zero disables scrollback.
func appendScrollback(sb [][]Cell, row []Cell, max int) [][]Cell {
	if max <= 0 {
		return sb
	}
	sb = append(sb, row)
	if len(sb) > max {
		overflow := len(sb) - max
		sb = append(sb[:0], sb[overflow:]...)
	}
	return sb
}
