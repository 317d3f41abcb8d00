// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/cell.go
// Summary: Cell, attribute and color types for the terminal grid.
// Usage: Shared by the parser, the grid store and the serializer.
// Notes: Keeps styling data independent of any rendering backend.

package vt

type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// String returns a human-readable representation of the attribute flags.
func (a Attribute) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	if a&AttrBold != 0 {
		parts = append(parts, "bold")
	}
	if a&AttrDim != 0 {
		parts = append(parts, "dim")
	}
	if a&AttrItalic != 0 {
		parts = append(parts, "italic")
	}
	if a&AttrUnderline != 0 {
		parts = append(parts, "underline")
	}
	if a&AttrReverse != 0 {
		parts = append(parts, "reverse")
	}
	if len(parts) == 0 {
		return "unknown"
	}
	result := parts[0]
	for i := 1; i < len(parts); i++ {
		result += "|" + parts[i]
	}
	return result
}

// ColorMode defines the type of color stored.
type ColorMode int

const (
	ColorModeDefault ColorMode = iota // Default terminal color
	ColorModeNamed                    // The 16 basic ANSI colors (0-15)
	ColorModePalette                  // 256-color palette index
	ColorModeRGB                      // 24-bit "true" color
)

// Color represents a color in one of several modes. The mode tag keeps a
// palette index from ever being confused with an RGB triple that happens to
// share its byte values.
type Color struct {
	Mode    ColorMode
	Value   uint8 // Color code for Named (0-15) and Palette (0-255) modes
	R, G, B uint8 // Channel values for RGB mode
}

// Cell represents a single character cell on the screen.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
	Attr Attribute
	Wide bool // True if this cell holds a two-column character; the next cell is its placeholder
}

// --- Predefined default colors for convenience ---
var (
	DefaultFG = Color{Mode: ColorModeDefault}
	DefaultBG = Color{Mode: ColorModeDefault}
)
