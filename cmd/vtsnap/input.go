// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/vtsnap/input.go
// Summary: Expands human-readable key markers in -send strings to the bytes
//          a terminal would transmit.

package main

import (
	"bytes"
	"strings"
)

// parseInput converts a string with embedded key markers to raw input bytes.
// "hello<Enter>" becomes "hello\r"; unknown markers pass through unchanged.
func parseInput(input string) []byte {
	var out bytes.Buffer
	for i := 0; i < len(input); {
		if input[i] == '<' {
			if end := strings.IndexByte(input[i:], '>'); end > 0 {
				out.Write(markerBytes(input[i : i+end+1]))
				i += end + 1
				continue
			}
		}
		out.WriteByte(input[i])
		i++
	}
	return out.Bytes()
}

// markerBytes translates one <...> key marker.
func markerBytes(marker string) []byte {
	switch marker {
	case "<Enter>", "<Return>", "<CR>":
		return []byte{'\r'}
	case "<Escape>", "<Esc>":
		return []byte{0x1b}
	case "<Tab>":
		return []byte{'\t'}
	case "<Backspace>", "<BS>":
		return []byte{0x7f}
	case "<Space>":
		return []byte{' '}
	case "<Up>":
		return []byte("\x1b[A")
	case "<Down>":
		return []byte("\x1b[B")
	case "<Right>":
		return []byte("\x1b[C")
	case "<Left>":
		return []byte("\x1b[D")
	}

	if strings.HasPrefix(marker, "<Ctrl-") && len(marker) == 8 {
		switch c := marker[6]; {
		case c >= 'a' && c <= 'z':
			return []byte{c - 'a' + 1}
		case c >= 'A' && c <= 'Z':
			return []byte{c - 'A' + 1}
		}
	}

	// Not a marker we know; keep it literal.
	return []byte(marker)
}
