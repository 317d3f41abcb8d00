// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvt/session"
	"github.com/framegrace/texelvt/vt"
)

type fakeCell struct {
	r     rune
	style tcell.Style
}

// fakeDriver records SetContent calls so tests can inspect what a frame
// painted without a real terminal.
type fakeDriver struct {
	width, height int
	cells         map[[2]int]fakeCell
	clears, shows int
	events        chan tcell.Event
}

func newFakeDriver(width, height int) *fakeDriver {
	return &fakeDriver{
		width:  width,
		height: height,
		cells:  make(map[[2]int]fakeCell),
		events: make(chan tcell.Event, 8),
	}
}

func (d *fakeDriver) Init() error            { return nil }
func (d *fakeDriver) Fini()                  {}
func (d *fakeDriver) Size() (int, int)       { return d.width, d.height }
func (d *fakeDriver) SetStyle(tcell.Style)   {}
func (d *fakeDriver) HideCursor()            {}
func (d *fakeDriver) Show()                  { d.shows++ }
func (d *fakeDriver) PollEvent() tcell.Event { return <-d.events }

func (d *fakeDriver) Clear() {
	d.clears++
	d.cells = make(map[[2]int]fakeCell)
}

func (d *fakeDriver) PostEvent(ev tcell.Event) error {
	d.events <- ev
	return nil
}

func (d *fakeDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	d.cells[[2]int{x, y}] = fakeCell{r: mainc, style: style}
}

func (d *fakeDriver) GetContent(x, y int) (rune, []rune, tcell.Style, int) {
	c, ok := d.cells[[2]int{x, y}]
	if !ok {
		return ' ', nil, tcell.StyleDefault, 1
	}
	return c.r, nil, c.style, 1
}

func (d *fakeDriver) wasSet(x, y int) bool {
	_, ok := d.cells[[2]int{x, y}]
	return ok
}

// frameFor builds a render frame straight from a terminal, the way the
// viewer does through session.Snapshot.
func frameFor(term *vt.Terminal, cursorVisible bool) session.Frame {
	row, col := term.CursorPosition()
	return session.Frame{
		Cells:         term.Grid(),
		CursorRow:     row,
		CursorCol:     col,
		CursorVisible: cursorVisible,
	}
}

func TestDrawPlainFrame(t *testing.T) {
	term := vt.New(2, 5)
	term.Process([]byte("hi"))

	d := newFakeDriver(5, 2)
	NewRenderer().Draw(d, frameFor(term, false))

	ch, _, style, _ := d.GetContent(0, 0)
	if ch != 'h' {
		t.Errorf("cell (0,0) = %q, want 'h'", ch)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("default foreground = %v, want white", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("default background = %v, want black", bg)
	}

	if ch, _, _, _ := d.GetContent(1, 0); ch != 'i' {
		t.Errorf("cell (1,0) = %q, want 'i'", ch)
	}
	if d.clears != 1 || d.shows != 1 {
		t.Errorf("clears=%d shows=%d, want 1 and 1", d.clears, d.shows)
	}
}

func TestDrawCursorOverlay(t *testing.T) {
	term := vt.New(2, 5)
	term.Process([]byte("ab\x1b[1;2H"))

	d := newFakeDriver(5, 2)
	NewRenderer().Draw(d, frameFor(term, true))

	_, _, style, _ := d.GetContent(1, 0)
	if _, _, attr := style.Decompose(); attr&tcell.AttrReverse == 0 {
		t.Error("cursor cell should be reverse-video")
	}
	_, _, style, _ = d.GetContent(0, 0)
	if _, _, attr := style.Decompose(); attr&tcell.AttrReverse != 0 {
		t.Error("non-cursor cell should not be reverse-video")
	}
}

func TestDrawCursorHidden(t *testing.T) {
	term := vt.New(2, 5)
	term.Process([]byte("ab"))

	d := newFakeDriver(5, 2)
	NewRenderer().Draw(d, frameFor(term, false))

	for pos, cell := range d.cells {
		if _, _, attr := cell.style.Decompose(); attr&tcell.AttrReverse != 0 {
			t.Errorf("cell %v reverse-video with cursor hidden", pos)
		}
	}
}

func TestDrawPendingWrapCursorClamped(t *testing.T) {
	term := vt.New(1, 3)
	term.Process([]byte("abc"))
	if _, col := term.CursorPosition(); col != 3 {
		t.Fatalf("cursor col = %d, want pending-wrap position 3", col)
	}

	d := newFakeDriver(3, 1)
	NewRenderer().Draw(d, frameFor(term, true))

	_, _, style, _ := d.GetContent(2, 0)
	if _, _, attr := style.Decompose(); attr&tcell.AttrReverse == 0 {
		t.Error("pending-wrap cursor should be drawn on the last column")
	}
}

func TestDrawSkipsWidePlaceholder(t *testing.T) {
	term := vt.New(1, 4)
	term.Process([]byte("世x"))

	d := newFakeDriver(4, 1)
	NewRenderer().Draw(d, frameFor(term, false))

	if ch, _, _, _ := d.GetContent(0, 0); ch != '世' {
		t.Errorf("cell (0,0) = %q, want wide rune", ch)
	}
	if d.wasSet(1, 0) {
		t.Error("placeholder column should not be painted")
	}
	if ch, _, _, _ := d.GetContent(2, 0); ch != 'x' {
		t.Errorf("cell (2,0) = %q, want 'x'", ch)
	}
}

func TestDrawCursorOnPlaceholderMovesToLead(t *testing.T) {
	term := vt.New(1, 4)
	term.Process([]byte("世\x1b[1;2H"))

	d := newFakeDriver(4, 1)
	NewRenderer().Draw(d, frameFor(term, true))

	_, _, style, _ := d.GetContent(0, 0)
	if _, _, attr := style.Decompose(); attr&tcell.AttrReverse == 0 {
		t.Error("cursor on a placeholder should highlight the wide lead cell")
	}
}

func TestStyleColorModes(t *testing.T) {
	term := vt.New(1, 10)
	term.Process([]byte("\x1b[31ma\x1b[38;5;196mb\x1b[38;2;1;2;3mc"))

	d := newFakeDriver(10, 1)
	NewRenderer().Draw(d, frameFor(term, false))

	_, _, style, _ := d.GetContent(0, 0)
	if fg, _, _ := style.Decompose(); fg != tcell.NewRGBColor(128, 0, 0) {
		t.Errorf("named red = %v, want xterm maroon", fg)
	}
	_, _, style, _ = d.GetContent(1, 0)
	if fg, _, _ := style.Decompose(); fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("palette 196 = %v, want pure red", fg)
	}
	_, _, style, _ = d.GetContent(2, 0)
	if fg, _, _ := style.Decompose(); fg != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("truecolor = %v, want RGB(1,2,3)", fg)
	}
}

func TestStyleAttributes(t *testing.T) {
	term := vt.New(1, 10)
	term.Process([]byte("\x1b[1;3;4mx"))

	d := newFakeDriver(10, 1)
	NewRenderer().Draw(d, frameFor(term, false))

	_, _, style, _ := d.GetContent(0, 0)
	_, _, attr := style.Decompose()
	if attr&tcell.AttrBold == 0 {
		t.Error("bold not mapped")
	}
	if attr&tcell.AttrItalic == 0 {
		t.Error("italic not mapped")
	}
	if attr&tcell.AttrUnderline == 0 {
		t.Error("underline not mapped")
	}
	if attr&tcell.AttrDim != 0 {
		t.Error("dim set without SGR 2")
	}
}

func TestSetDefaultColors(t *testing.T) {
	term := vt.New(1, 5)
	term.Process([]byte("x"))

	r := NewRenderer()
	r.SetDefaultColors(tcell.ColorRed, tcell.ColorBlue)

	d := newFakeDriver(5, 1)
	r.Draw(d, frameFor(term, false))

	_, _, style, _ := d.GetContent(0, 0)
	fg, bg, _ := style.Decompose()
	if fg != tcell.ColorRed || bg != tcell.ColorBlue {
		t.Errorf("default colors = %v/%v, want red/blue", fg, bg)
	}
}
