// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/palette.go
// Summary: xterm 256-color palette tables as pure functions.
// Usage: Render backends resolve Named/Palette colors to RGB through these.

package vt

// ansiRGB holds the RGB values of the 16 basic ANSI colors, following the
// standard xterm palette.
var ansiRGB = [16][3]uint8{
	{0, 0, 0},       // Black
	{128, 0, 0},     // Maroon
	{0, 128, 0},     // Green
	{128, 128, 0},   // Olive
	{0, 0, 128},     // Navy
	{128, 0, 128},   // Purple
	{0, 128, 128},   // Teal
	{192, 192, 192}, // Silver
	{128, 128, 128}, // Grey
	{255, 0, 0},     // Red
	{0, 255, 0},     // Lime
	{255, 255, 0},   // Yellow
	{0, 0, 255},     // Blue
	{255, 0, 255},   // Fuchsia
	{0, 255, 255},   // Aqua
	{255, 255, 255}, // White
}

// cubeLevels are the six channel intensities of the xterm 6x6x6 color cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// PaletteRGB returns the xterm RGB triple for a 256-color palette index:
// indices 0-15 are the ANSI colors, 16-231 the 6x6x6 cube, 232-255 the
// 24-step grayscale ramp.
func PaletteRGB(index uint8) (r, g, b uint8) {
	switch {
	case index < 16:
		c := ansiRGB[index]
		return c[0], c[1], c[2]
	case index < 232:
		n := int(index) - 16
		return cubeLevels[n/36], cubeLevels[(n/6)%6], cubeLevels[n%6]
	default:
		gray := uint8(8 + int(index-232)*10)
		return gray, gray, gray
	}
}
