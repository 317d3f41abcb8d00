// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/terminal.go
// Summary: The terminal-grid emulator: visible grid, cursor, scrollback.
// Usage: Feed child-process output through Process; read back grid state
//        with the query surface. Callers must serialize access themselves.
// Notes: Process is a pure synchronous state transformer; it never blocks,
//        never returns an error and never allocates beyond the scrollback cap.

package vt

import (
	"log"
	"os"
	"sort"

	"github.com/mattn/go-runewidth"
)

// DefaultMaxScrollback is the scrollback row cap used when no
// WithMaxScrollback option is given.
const DefaultMaxScrollback = 2000

// Terminal maintains a rows×cols cell grid, cursor, bounded scrollback and
// an alternate screen, mutated exclusively by the byte stream handed to
// Process and by the Resize/Clear control surface.
type Terminal struct {
	rows, cols int
	grid       [][]Cell

	// cursorCol may equal cols: the cursor then sits past the last column
	// with a wrap pending before the next character is written.
	cursorRow, cursorCol int
	savedRow, savedCol   int

	curFG, curBG Color
	curAttr      Attribute

	scrollback    [][]Cell
	maxScrollback int

	altActive bool
	saved     *savedScreen

	cursorVisible bool
	appCursorKeys bool

	parser *parser

	dirty    map[int]bool
	allDirty bool

	titleChanged func(string)
	respond      func([]byte)
	debug        bool
}

// savedScreen is the snapshot taken when the alternate screen is entered and
// consumed when it is left.
type savedScreen struct {
	grid       [][]Cell
	scrollback [][]Cell
	row, col   int
}

// Option configures a Terminal at construction time.
type Option func(*Terminal)

// WithMaxScrollback caps the scrollback row count. Zero disables scrollback
// entirely; negative values are treated as zero.
func WithMaxScrollback(n int) Option {
	return func(t *Terminal) {
		if n < 0 {
			n = 0
		}
		t.maxScrollback = n
	}
}

// WithTitleChangeHandler registers a callback invoked with the payload of
// OSC 0/2 title sequences.
func WithTitleChangeHandler(handler func(string)) Option {
	return func(t *Terminal) { t.titleChanged = handler }
}

// WithResponseWriter registers the sink for terminal query responses
// (cursor-position and device-attribute reports). Typically the PTY writer.
func WithResponseWriter(writer func([]byte)) Option {
	return func(t *Terminal) { t.respond = writer }
}

// New creates a terminal with the given grid size. Sizes below 1×1 are
// clamped; an empty grid can never be constructed.
func New(rows, cols int, opts ...Option) *Terminal {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	t := &Terminal{
		rows:          rows,
		cols:          cols,
		maxScrollback: DefaultMaxScrollback,
		curFG:         DefaultFG,
		curBG:         DefaultBG,
		cursorVisible: true,
		dirty:         make(map[int]bool),
		allDirty:      true,
		debug:         os.Getenv("TEXELVT_DEBUG") != "",
	}
	for _, opt := range opts {
		opt(t)
	}
	t.grid = blankGrid(rows, cols)
	t.parser = newParser(t)
	return t
}

// Process consumes a chunk of raw output from the child process. Any chunk
// size and any split point is fine, including mid-escape-sequence and
// mid-codepoint; state carries over to the next call.
func (t *Terminal) Process(data []byte) {
	t.parser.process(data)
}

// Dimensions returns the current grid size.
func (t *Terminal) Dimensions() (rows, cols int) {
	return t.rows, t.cols
}

// CursorPosition returns the cursor location. col == cols means the cursor
// is past the right edge with a wrap pending.
func (t *Terminal) CursorPosition() (row, col int) {
	return t.cursorRow, t.cursorCol
}

// CursorVisible reports whether DECTCEM currently shows the cursor.
func (t *Terminal) CursorVisible() bool {
	return t.cursorVisible
}

// AppCursorKeys reports whether DECCKM application cursor-key mode is on,
// which switches arrow keys from CSI to SS3 encodings.
func (t *Terminal) AppCursorKeys() bool {
	return t.appCursorKeys
}

// IsAlternateScreen reports whether the alternate screen is engaged.
func (t *Terminal) IsAlternateScreen() bool {
	return t.altActive
}

// Grid returns a copy of the visible cell grid.
func (t *Terminal) Grid() [][]Cell {
	return copyGrid(t.grid)
}

// Scrollback returns a copy of the scrollback rows, oldest first. It is
// empty while the alternate screen is engaged.
func (t *Terminal) Scrollback() [][]Cell {
	return copyGrid(t.scrollback)
}

// DirtyRows returns the rows mutated since the last ClearDirty, in order.
// The bool is set when everything changed at once (scroll, clear, resize)
// and the row list should be ignored.
func (t *Terminal) DirtyRows() ([]int, bool) {
	if t.allDirty {
		return nil, true
	}
	rows := make([]int, 0, len(t.dirty))
	for row := range t.dirty {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows, false
}

// ClearDirty resets change tracking, typically after a frame was drawn.
func (t *Terminal) ClearDirty() {
	t.allDirty = false
	for row := range t.dirty {
		delete(t.dirty, row)
	}
}

// putChar writes one decoded character at the cursor using the active
// attributes, wrapping and scrolling as needed.
func (t *Terminal) putChar(r rune) {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		// Combining marks and other zero-width runes occupy no cell.
		return
	}

	if t.cursorCol+w > t.cols {
		t.lineFeed()
	}

	row := t.grid[t.cursorRow]
	t.clearWideAt(row, t.cursorCol)
	row[t.cursorCol] = Cell{Rune: r, FG: t.curFG, BG: t.curBG, Attr: t.curAttr, Wide: w == 2}
	if w == 2 {
		if t.cursorCol+1 < t.cols {
			t.clearWideAt(row, t.cursorCol+1)
			row[t.cursorCol+1] = Cell{FG: t.curFG, BG: t.curBG, Attr: t.curAttr}
		}
	}
	t.cursorCol += w
	if t.cursorCol > t.cols {
		t.cursorCol = t.cols
	}
	t.markDirty(t.cursorRow)
}

// clearWideAt blanks the partner cell when position x overlaps half of a
// wide-character pair, so no orphaned halves survive an overwrite.
func (t *Terminal) clearWideAt(row []Cell, x int) {
	if x < 0 || x >= len(row) {
		return
	}
	if row[x].Wide && x+1 < len(row) {
		row[x+1] = blankCell()
	}
	if x > 0 && row[x-1].Wide {
		row[x-1] = blankCell()
	}
}

// setTitle forwards an OSC title to the registered handler, if any.
func (t *Terminal) setTitle(title string) {
	if t.titleChanged != nil {
		t.titleChanged(title)
	}
}

func (t *Terminal) markDirty(row int) {
	if !t.allDirty {
		t.dirty[row] = true
	}
}

func (t *Terminal) markAllDirty() {
	t.allDirty = true
	for row := range t.dirty {
		delete(t.dirty, row)
	}
}

func (t *Terminal) debugf(format string, args ...interface{}) {
	if !t.debug {
		return
	}
	log.Printf(format, args...)
}

// --- Cell and grid helpers ---

func blankCell() Cell {
	return Cell{Rune: ' ', FG: DefaultFG, BG: DefaultBG}
}

func blankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = blankCell()
	}
	return row
}

func blankGrid(rows, cols int) [][]Cell {
	grid := make([][]Cell, rows)
	for i := range grid {
		grid[i] = blankRow(cols)
	}
	return grid
}

func copyGrid(src [][]Cell) [][]Cell {
	dst := make([][]Cell, len(src))
	for i, row := range src {
		dst[i] = append([]Cell(nil), row...)
	}
	return dst
}
