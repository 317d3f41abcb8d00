// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/testharness.go
// Summary: Test harness for terminal control sequence testing.
// Usage: Used by test files to send sequences and verify grid state.
// Notes: Provides helpers for systematic testing of all control sequences.

package vt

import (
	"fmt"
	"strings"
	"testing"
)

// TestHarness provides utilities for testing Terminal control sequences.
type TestHarness struct {
	term *Terminal
}

// NewTestHarness creates a new test harness with the specified grid size.
func NewTestHarness(rows, cols int, opts ...Option) *TestHarness {
	return &TestHarness{term: New(rows, cols, opts...)}
}

// SendSeq sends a control sequence string to the terminal.
// Example: h.SendSeq("\x1b[5A") sends "cursor up 5"
func (h *TestHarness) SendSeq(seq string) {
	h.term.Process([]byte(seq))
}

// SendBytes feeds a raw byte slice, useful for split or invalid UTF-8.
func (h *TestHarness) SendBytes(b []byte) {
	h.term.Process(b)
}

// SendText places printable text directly, bypassing the parser.
func (h *TestHarness) SendText(text string) {
	for _, r := range text {
		h.term.putChar(r)
	}
}

// GetCell returns the cell at the specified grid position (0-based).
func (h *TestHarness) GetCell(row, col int) Cell {
	if row < 0 || row >= h.term.rows || col < 0 || col >= h.term.cols {
		return Cell{} // out of bounds
	}
	return h.term.grid[row][col]
}

// GetCursor returns the current cursor position (0-based).
func (h *TestHarness) GetCursor() (row, col int) {
	return h.term.CursorPosition()
}

// GetCurrentAttr returns the current text attributes.
func (h *TestHarness) GetCurrentAttr() Attribute {
	return h.term.curAttr
}

// GetSize returns the grid size.
func (h *TestHarness) GetSize() (rows, cols int) {
	return h.term.Dimensions()
}

// GetScrollbackLength returns the number of lines in the scrollback.
func (h *TestHarness) GetScrollbackLength() int {
	return len(h.term.scrollback)
}

// AssertCell verifies that a cell matches the expected value.
func (h *TestHarness) AssertCell(t *testing.T, row, col int, expected Cell) {
	t.Helper()
	actual := h.GetCell(row, col)

	if actual.Rune != expected.Rune {
		t.Errorf("Cell[%d,%d] rune: expected %q, got %q", row, col, expected.Rune, actual.Rune)
	}

	// Only check style fields if expected has them set
	if expected.FG.Mode != ColorModeDefault && actual.FG != expected.FG {
		t.Errorf("Cell[%d,%d] FG: expected %+v, got %+v", row, col, expected.FG, actual.FG)
	}
	if expected.BG.Mode != ColorModeDefault && actual.BG != expected.BG {
		t.Errorf("Cell[%d,%d] BG: expected %+v, got %+v", row, col, expected.BG, actual.BG)
	}
	if expected.Attr&AttrBold != 0 && actual.Attr&AttrBold == 0 {
		t.Errorf("Cell[%d,%d] should be bold", row, col)
	}
	if expected.Attr&AttrUnderline != 0 && actual.Attr&AttrUnderline == 0 {
		t.Errorf("Cell[%d,%d] should be underlined", row, col)
	}
	if expected.Attr&AttrReverse != 0 && actual.Attr&AttrReverse == 0 {
		t.Errorf("Cell[%d,%d] should be reverse", row, col)
	}
}

// AssertRune verifies that a cell contains the expected rune (ignores style).
func (h *TestHarness) AssertRune(t *testing.T, row, col int, expectedRune rune) {
	t.Helper()
	actual := h.GetCell(row, col)
	if actual.Rune != expectedRune {
		t.Errorf("Cell[%d,%d] rune: expected %q, got %q", row, col, expectedRune, actual.Rune)
	}
}

// AssertText verifies a run of cells on one row matches expected text.
func (h *TestHarness) AssertText(t *testing.T, row, col int, expectedText string) {
	t.Helper()
	for i, expectedRune := range expectedText {
		h.AssertRune(t, row, col+i, expectedRune)
	}
}

// AssertCursor verifies the cursor is at the expected position.
func (h *TestHarness) AssertCursor(t *testing.T, expectedRow, expectedCol int) {
	t.Helper()
	actualRow, actualCol := h.GetCursor()
	if actualRow != expectedRow || actualCol != expectedCol {
		t.Errorf("Cursor position: expected (%d,%d), got (%d,%d)",
			expectedRow, expectedCol, actualRow, actualCol)
	}
}

// AssertBlank verifies that a cell is blank (space or null rune).
func (h *TestHarness) AssertBlank(t *testing.T, row, col int) {
	t.Helper()
	actual := h.GetCell(row, col)
	if actual.Rune != 0 && actual.Rune != ' ' {
		t.Errorf("Cell[%d,%d] should be blank, got %q", row, col, actual.Rune)
	}
}

// AssertRowBlank verifies an entire row is blank.
func (h *TestHarness) AssertRowBlank(t *testing.T, row int) {
	t.Helper()
	_, cols := h.GetSize()
	for col := 0; col < cols; col++ {
		h.AssertBlank(t, row, col)
	}
}

// Dump returns a visual representation of the grid for debugging.
// Shows all visible rows with the cursor position marked.
func (h *TestHarness) Dump() string {
	rows, cols := h.GetSize()
	cursorRow, cursorCol := h.GetCursor()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Terminal %dx%d (cursor at %d,%d)\n", rows, cols, cursorRow, cursorCol))
	sb.WriteString(strings.Repeat("=", cols) + "\n")

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := h.GetCell(row, col)
			if row == cursorRow && col == cursorCol {
				sb.WriteString("[") // Mark cursor position
			} else if cell.Rune == 0 {
				sb.WriteString(" ")
			} else {
				sb.WriteRune(cell.Rune)
			}
		}
		sb.WriteString(fmt.Sprintf(" |%d\n", row))
	}

	sb.WriteString(strings.Repeat("=", cols) + "\n")
	return sb.String()
}

// Reset resets the terminal to its initial state (ESC c).
func (h *TestHarness) Reset() {
	h.SendSeq("\x1bc")
}

// FillWithPattern fills the grid with a test pattern.
// Useful for setting up known initial state.
func (h *TestHarness) FillWithPattern(pattern string) {
	rows, cols := h.GetSize()
	h.Reset()

	// Fill each row completely - cursor will auto-wrap at the right edge
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := (row*cols + col) % len(pattern)
			h.term.putChar(rune(pattern[idx]))
		}
	}

	// Reset cursor to home
	h.SendSeq("\x1b[H")
}
