// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/terminal_resize.go
// Summary: Grid reshaping on terminal resize.
// Usage: Part of the Terminal grid engine; driven by the session host on
//        window size changes.

package vt

// Resize reshapes the grid to rows×cols. Row contents are truncated or
// padded on the right; on row-count shrink the removed top rows move into
// the scrollback (discarded while the alternate screen is engaged), on
// growth blank rows are appended at the bottom. Requests below 1×1 are
// clamped, never producing an empty grid. The cursor is clamped into the
// new bounds, following its row's content when rows were evicted.
func (t *Terminal) Resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if rows == t.rows && cols == t.cols {
		return
	}

	var evicted int
	if t.altActive {
		// The alternate grid never exchanges rows with the scrollback.
		t.grid, evicted = reshapeGrid(t.grid, rows, cols, nil, 0)
		if t.saved != nil {
			for i, row := range t.saved.scrollback {
				t.saved.scrollback[i] = reshapeRow(row, cols)
			}
			var savedEvicted int
			t.saved.grid, savedEvicted = reshapeGrid(t.saved.grid, rows, cols, &t.saved.scrollback, t.maxScrollback)
			t.saved.row = clampInt(t.saved.row-savedEvicted, 0, rows-1)
			t.saved.col = clampInt(t.saved.col, 0, cols-1)
		}
	} else {
		for i, row := range t.scrollback {
			t.scrollback[i] = reshapeRow(row, cols)
		}
		t.grid, evicted = reshapeGrid(t.grid, rows, cols, &t.scrollback, t.maxScrollback)
	}

	t.rows, t.cols = rows, cols
	t.cursorRow = clampInt(t.cursorRow-evicted, 0, rows-1)
	t.cursorCol = clampInt(t.cursorCol, 0, cols-1)
	t.savedRow = clampInt(t.savedRow, 0, rows-1)
	t.savedCol = clampInt(t.savedCol, 0, cols-1)
	t.markAllDirty()
}

// reshapeGrid adjusts a grid to the new dimensions. Rows evicted by a
// shrink are pushed onto *sb when given; the eviction count is returned so
// callers can shift cursor positions with the content.
func reshapeGrid(grid [][]Cell, rows, cols int, sb *[][]Cell, max int) ([][]Cell, int) {
	for i, row := range grid {
		grid[i] = reshapeRow(row, cols)
	}

	evicted := 0
	if len(grid) > rows {
		evicted = len(grid) - rows
		if sb != nil {
			for _, row := range grid[:evicted] {
				*sb = appendScrollback(*sb, row, max)
			}
		}
		grid = append([][]Cell(nil), grid[evicted:]...)
	}
	for len(grid) < rows {
		grid = append(grid, blankRow(cols))
	}
	return grid, evicted
}

// reshapeRow pads or truncates one row to the new width, keeping the
// exactly-cols invariant and never leaving half a wide pair at the edge.
func reshapeRow(row []Cell, cols int) []Cell {
	switch {
	case len(row) > cols:
		row = append([]Cell(nil), row[:cols]...)
		if row[cols-1].Wide {
			row[cols-1] = blankCell()
		}
	case len(row) < cols:
		padded := make([]Cell, cols)
		copy(padded, row)
		for i := len(row); i < cols; i++ {
			padded[i] = blankCell()
		}
		row = padded
	}
	return row
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
