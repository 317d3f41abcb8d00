// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/serialize.go
// Summary: Serialization of grid state back into ANSI-annotated text.
// Usage: Lines/VisibleLines produce strings that recreate the visible
//        state when fed to a terminal of the same width.

package vt

import (
	"strconv"
	"strings"
)

// Lines returns the full buffer, scrollback first and the live grid after
// it, one string per row with embedded SGR sequences for any non-default
// styling. Trailing cells that are blank in every respect are trimmed.
func (t *Terminal) Lines() []string {
	lines := make([]string, 0, len(t.scrollback)+t.rows)
	for _, row := range t.scrollback {
		lines = append(lines, serializeRow(row))
	}
	for _, row := range t.grid {
		lines = append(lines, serializeRow(row))
	}
	return lines
}

// VisibleLines returns only the live grid rows, serialized like Lines.
func (t *Terminal) VisibleLines() []string {
	lines := make([]string, 0, t.rows)
	for _, row := range t.grid {
		lines = append(lines, serializeRow(row))
	}
	return lines
}

func serializeRow(row []Cell) string {
	end := len(row)
	for end > 0 && isBlankDefault(row[end-1]) {
		end--
	}
	if end == 0 {
		return ""
	}

	var b strings.Builder
	cur := styleOf(Cell{})
	styled := false
	for _, c := range row[:end] {
		if c.Rune == 0 {
			// Spacer half of a wide pair; the lead rune already
			// covers both columns.
			continue
		}
		if s := styleOf(c); s != cur {
			b.WriteString(sgrFor(s))
			cur = s
			styled = s != styleOf(Cell{})
		}
		b.WriteRune(c.Rune)
	}
	if styled {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

// cellStyle is the visual tuple a serialized SGR has to reproduce.
type cellStyle struct {
	fg   Color
	bg   Color
	attr Attribute
}

func styleOf(c Cell) cellStyle {
	return cellStyle{fg: c.FG, bg: c.BG, attr: c.Attr}
}

// sgrFor renders one style change. The parameter list always begins with
// a reset so the sequence stands alone regardless of preceding state.
func sgrFor(s cellStyle) string {
	params := []string{"0"}
	if s.attr&AttrBold != 0 {
		params = append(params, "1")
	}
	if s.attr&AttrDim != 0 {
		params = append(params, "2")
	}
	if s.attr&AttrItalic != 0 {
		params = append(params, "3")
	}
	if s.attr&AttrUnderline != 0 {
		params = append(params, "4")
	}
	if s.attr&AttrReverse != 0 {
		params = append(params, "7")
	}
	params = appendColorParams(params, s.fg, false)
	params = appendColorParams(params, s.bg, true)
	return "\x1b[" + strings.Join(params, ";") + "m"
}

func appendColorParams(params []string, c Color, background bool) []string {
	base := 30
	ext := "38"
	if background {
		base = 40
		ext = "48"
	}
	switch c.Mode {
	case ColorModeNamed:
		if c.Value < 8 {
			params = append(params, strconv.Itoa(base+int(c.Value)))
		} else {
			params = append(params, strconv.Itoa(base+60+int(c.Value)-8))
		}
	case ColorModePalette:
		params = append(params, ext, "5", strconv.Itoa(int(c.Value)))
	case ColorModeRGB:
		params = append(params, ext, "2",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)))
	}
	return params
}

func isBlankDefault(c Cell) bool {
	return c.Rune == ' ' && c.Attr == 0 && !c.Wide &&
		c.FG.Mode == ColorModeDefault && c.BG.Mode == ColorModeDefault
}
