// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/terminal_sgr.go
// Summary: SGR (Select Graphic Rendition) - text attributes and colors.
// Usage: Part of the Terminal grid engine.

package vt

// handleSGR processes one SGR parameter list, left to right. Unknown codes
// are skipped without aborting the remaining codes in the same sequence.
func (t *Terminal) handleSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			t.resetAttributes()
		case p == 1:
			t.curAttr |= AttrBold
		case p == 2:
			t.curAttr |= AttrDim
		case p == 3:
			t.curAttr |= AttrItalic
		case p == 4:
			t.curAttr |= AttrUnderline
		case p == 7:
			t.curAttr |= AttrReverse
		case p == 22:
			t.curAttr &^= AttrBold | AttrDim
		case p == 23:
			t.curAttr &^= AttrItalic
		case p == 24:
			t.curAttr &^= AttrUnderline
		case p == 27:
			t.curAttr &^= AttrReverse
		case p >= 30 && p <= 37:
			t.curFG = Color{Mode: ColorModeNamed, Value: uint8(p - 30)}
		case p == 38:
			if color, skip, ok := extendedColor(params[i+1:]); ok {
				t.curFG = color
				i += skip
			}
		case p == 39:
			t.curFG = DefaultFG
		case p >= 40 && p <= 47:
			t.curBG = Color{Mode: ColorModeNamed, Value: uint8(p - 40)}
		case p == 48:
			if color, skip, ok := extendedColor(params[i+1:]); ok {
				t.curBG = color
				i += skip
			}
		case p == 49:
			t.curBG = DefaultBG
		case p >= 90 && p <= 97:
			t.curFG = Color{Mode: ColorModeNamed, Value: uint8(p - 90 + 8)}
		case p >= 100 && p <= 107:
			t.curBG = Color{Mode: ColorModeNamed, Value: uint8(p - 100 + 8)}
		}
	}
}

// extendedColor decodes the parameters following an SGR 38/48 introducer:
// 5;index selects from the 256-color palette, 2;r;g;b is a true-color
// triple. The tags keep palette index 16 distinct from RGB(0,0,16). Returns
// the number of parameters consumed after the introducer.
func extendedColor(rest []int) (Color, int, bool) {
	if len(rest) >= 2 && rest[0] == 5 {
		idx := uint8(rest[1])
		if idx < 16 {
			// Palette slots 0-15 are the named colors.
			return Color{Mode: ColorModeNamed, Value: idx}, 2, true
		}
		return Color{Mode: ColorModePalette, Value: idx}, 2, true
	}
	if len(rest) >= 4 && rest[0] == 2 {
		return Color{
			Mode: ColorModeRGB,
			R:    uint8(rest[1]),
			G:    uint8(rest[2]),
			B:    uint8(rest[3]),
		}, 4, true
	}
	return Color{}, 0, false
}

// resetAttributes restores the default style: no colors, all flags off.
func (t *Terminal) resetAttributes() {
	t.curFG = DefaultFG
	t.curBG = DefaultBG
	t.curAttr = 0
}
