// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/keymap.go
// Summary: Translates tcell key events into the byte sequences a terminal
//          sends for them.

package render

import "github.com/gdamore/tcell/v2"

// KeyBytes returns the escape sequence or literal bytes for a key event.
// appCursor selects the SS3 arrow encodings used while DECCKM application
// cursor-key mode is active. A nil result means the key has no encoding.
func KeyBytes(ev *tcell.EventKey, appCursor bool) []byte {
	switch ev.Key() {
	case tcell.KeyUp:
		if appCursor {
			return []byte("\x1bOA")
		}
		return []byte("\x1b[A")
	case tcell.KeyDown:
		if appCursor {
			return []byte("\x1bOB")
		}
		return []byte("\x1b[B")
	case tcell.KeyRight:
		if appCursor {
			return []byte("\x1bOC")
		}
		return []byte("\x1b[C")
	case tcell.KeyLeft:
		if appCursor {
			return []byte("\x1bOD")
		}
		return []byte("\x1b[D")
	case tcell.KeyHome:
		return []byte("\x1b[H")
	case tcell.KeyEnd:
		return []byte("\x1b[F")
	case tcell.KeyInsert:
		return []byte("\x1b[2~")
	case tcell.KeyDelete:
		return []byte("\x1b[3~")
	case tcell.KeyPgUp:
		return []byte("\x1b[5~")
	case tcell.KeyPgDn:
		return []byte("\x1b[6~")
	case tcell.KeyF1:
		return []byte("\x1bOP")
	case tcell.KeyF2:
		return []byte("\x1bOQ")
	case tcell.KeyF3:
		return []byte("\x1bOR")
	case tcell.KeyF4:
		return []byte("\x1bOS")
	case tcell.KeyF5:
		return []byte("\x1b[15~")
	case tcell.KeyF6:
		return []byte("\x1b[17~")
	case tcell.KeyF7:
		return []byte("\x1b[18~")
	case tcell.KeyF8:
		return []byte("\x1b[19~")
	case tcell.KeyF9:
		return []byte("\x1b[20~")
	case tcell.KeyF10:
		return []byte("\x1b[21~")
	case tcell.KeyF11:
		return []byte("\x1b[23~")
	case tcell.KeyF12:
		return []byte("\x1b[24~")
	case tcell.KeyEnter:
		return []byte("\r")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		// KeyBackspace is Ctrl-H, KeyBackspace2 the real backspace key.
		return []byte{'\b'}
	case tcell.KeyTab:
		return []byte("\t")
	case tcell.KeyEsc:
		return []byte("\x1b")
	default:
		// Printable runes and Ctrl combinations arrive as their literal
		// rune value.
		if ev.Rune() == 0 {
			return nil
		}
		return []byte(string(ev.Rune()))
	}
}
