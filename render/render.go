// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/render.go
// Summary: Paints session frames onto a tcell screen.
// Usage: Create a Renderer, then call Draw with the driver and the latest
//        Frame whenever the session signals a refresh.
// Notes: Each renderer owns a local color palette, so two terminals on one
//        screen can be themed independently.

package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvt/session"
	"github.com/framegrace/texelvt/vt"
)

// Palette slots 0-255 hold the xterm colors; the two extra slots hold the
// colors used for cells that carry no explicit foreground or background.
const (
	paletteDefaultFG = 256
	paletteDefaultBG = 257
)

// Renderer converts engine cells into tcell styles and draws frames.
type Renderer struct {
	palette [258]tcell.Color
}

// NewRenderer builds a renderer with the standard xterm palette and a
// white-on-black default.
func NewRenderer() *Renderer {
	return &Renderer{palette: defaultPalette()}
}

// SetDefaultColors overrides the colors used for unstyled cells.
func (r *Renderer) SetDefaultColors(fg, bg tcell.Color) {
	r.palette[paletteDefaultFG] = fg
	r.palette[paletteDefaultBG] = bg
}

// defaultPalette resolves all 256 xterm entries to true RGB so the displayed
// colors do not depend on the outer terminal's theme.
func defaultPalette() [258]tcell.Color {
	var p [258]tcell.Color
	for i := 0; i < 256; i++ {
		red, green, blue := vt.PaletteRGB(uint8(i))
		p[i] = tcell.NewRGBColor(int32(red), int32(green), int32(blue))
	}
	p[paletteDefaultFG] = p[15] // White
	p[paletteDefaultBG] = p[0]  // Black
	return p
}

// color translates an engine color to a tcell color through the palette.
func (r *Renderer) color(c vt.Color, def int) tcell.Color {
	switch c.Mode {
	case vt.ColorModeNamed, vt.ColorModePalette:
		return r.palette[c.Value]
	case vt.ColorModeRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return r.palette[def]
	}
}

// styleFor maps one cell's colors and attributes to a tcell style.
func (r *Renderer) styleFor(cell vt.Cell) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(r.color(cell.FG, paletteDefaultFG)).
		Background(r.color(cell.BG, paletteDefaultBG))
	style = style.Bold(cell.Attr&vt.AttrBold != 0)
	style = style.Dim(cell.Attr&vt.AttrDim != 0)
	style = style.Italic(cell.Attr&vt.AttrItalic != 0)
	style = style.Underline(cell.Attr&vt.AttrUnderline != 0)
	style = style.Reverse(cell.Attr&vt.AttrReverse != 0)
	return style
}

// Draw paints the frame onto the driver and flushes it. The cursor is shown
// as a reverse-video overlay on its cell.
func (r *Renderer) Draw(d ScreenDriver, frame session.Frame) {
	d.Clear()

	cursorRow, cursorCol := frame.CursorRow, frame.CursorCol
	if cursorRow >= 0 && cursorRow < len(frame.Cells) {
		row := frame.Cells[cursorRow]
		// The cursor may rest one past the last column with a wrap pending,
		// or on the placeholder half of a wide pair; pull it onto a drawable
		// cell in both cases.
		if cursorCol >= len(row) {
			cursorCol = len(row) - 1
		}
		if cursorCol > 0 && row[cursorCol].Rune == 0 {
			cursorCol--
		}
	}

	for y, row := range frame.Cells {
		for x := 0; x < len(row); x++ {
			cell := row[x]
			if cell.Rune == 0 {
				// Placeholder half of a wide pair; tcell reserves the
				// column itself when the wide rune is set.
				continue
			}
			style := r.styleFor(cell)
			if frame.CursorVisible && y == cursorRow && x == cursorCol {
				style = style.Reverse(true)
			}
			d.SetContent(x, y, cell.Rune, nil, style)
		}
	}
	d.Show()
}
