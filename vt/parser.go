// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/parser.go
// Summary: Byte-fed escape-sequence state machine with UTF-8 reassembly.
// Usage: Owned by Terminal; Process hands it raw PTY output in any chunking.
// Notes: Never fails on malformed input; unknown sequences are consumed silently.

package vt

import "strconv"

type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCSI       // just after ESC [, before any parameter byte
	stateCSIParam  // accumulating parameters
	stateOSC       // accumulating the numeric OSC command
	stateOSCParam  // accumulating the OSC payload
	stateCharset   // after ESC ( ) * +, one designator byte follows
	stateDCS       // inside a device control string, discarded until ST
	stateDCSEscape // saw ESC inside a DCS, deciding if it ends the string
)

const (
	maxCSIParams  = 32
	maxParamValue = 65535
	maxOSCPayload = 4096
)

// parser turns a raw byte stream into grid operations on its Terminal. It is
// resumable at any byte boundary: escape sequences and multi-byte UTF-8
// characters may be split across Process calls arbitrarily.
type parser struct {
	term  *Terminal
	state parserState

	params       []int
	currentParam int
	private      bool

	oscCmd     int
	oscPayload []rune

	utf8Buf   [4]byte
	utf8Len   int // expected length of the pending sequence, 0 if none
	utf8Count int // bytes collected so far
}

func newParser(t *Terminal) *parser {
	return &parser{
		term:       t,
		state:      stateGround,
		params:     make([]int, 0, 16),
		oscPayload: make([]rune, 0, 128),
	}
}

// reset returns the parser to its initial state, dropping any pending
// escape sequence or partial UTF-8 character.
func (p *parser) reset() {
	p.state = stateGround
	p.params = p.params[:0]
	p.currentParam = 0
	p.private = false
	p.oscCmd = 0
	p.oscPayload = p.oscPayload[:0]
	p.utf8Len = 0
	p.utf8Count = 0
}

func (p *parser) process(data []byte) {
	for _, b := range data {
		p.processByte(b)
	}
}

func (p *parser) processByte(b byte) {
	// A pending multi-byte character takes precedence over everything:
	// continuation bytes complete it, anything else flushes a replacement
	// and is then reprocessed on its own.
	if p.utf8Len > 0 {
		p.continueUTF8(b)
		return
	}
	if b >= 0x80 {
		p.startUTF8(b)
		return
	}
	p.processRune(rune(b))
}

func (p *parser) startUTF8(b byte) {
	switch {
	case b < 0xC0: // continuation byte with nothing pending
		p.processRune('�')
	case b < 0xE0:
		p.utf8Buf[0] = b
		p.utf8Len = 2
		p.utf8Count = 1
	case b < 0xF0:
		p.utf8Buf[0] = b
		p.utf8Len = 3
		p.utf8Count = 1
	case b < 0xF8:
		p.utf8Buf[0] = b
		p.utf8Len = 4
		p.utf8Count = 1
	default:
		p.processRune('�')
	}
}

func (p *parser) continueUTF8(b byte) {
	if b < 0x80 || b >= 0xC0 {
		// The sequence was cut short. Emit a replacement for it and
		// reprocess the interrupting byte from scratch.
		p.utf8Len = 0
		p.utf8Count = 0
		p.processRune('�')
		p.processByte(b)
		return
	}

	p.utf8Buf[p.utf8Count] = b
	p.utf8Count++

	if p.utf8Count == p.utf8Len {
		r := p.decodeUTF8()
		p.utf8Len = 0
		p.utf8Count = 0
		p.processRune(r)
	}
}

// decodeUTF8 decodes the collected bytes, substituting U+FFFD for overlong
// encodings, surrogates and out-of-range values.
func (p *parser) decodeUTF8() rune {
	switch p.utf8Len {
	case 2:
		r := rune(p.utf8Buf[0]&0x1F)<<6 | rune(p.utf8Buf[1]&0x3F)
		if r < 0x80 {
			return '�'
		}
		return r
	case 3:
		r := rune(p.utf8Buf[0]&0x0F)<<12 | rune(p.utf8Buf[1]&0x3F)<<6 | rune(p.utf8Buf[2]&0x3F)
		if r < 0x800 || (r >= 0xD800 && r <= 0xDFFF) {
			return '�'
		}
		return r
	case 4:
		r := rune(p.utf8Buf[0]&0x07)<<18 | rune(p.utf8Buf[1]&0x3F)<<12 |
			rune(p.utf8Buf[2]&0x3F)<<6 | rune(p.utf8Buf[3]&0x3F)
		if r < 0x10000 || r > 0x10FFFF {
			return '�'
		}
		return r
	default:
		return '�'
	}
}

func (p *parser) processRune(r rune) {
	switch p.state {
	case stateGround:
		p.processGround(r)
	case stateEscape:
		p.processEscape(r)
	case stateCSI:
		p.processCSIEntry(r)
	case stateCSIParam:
		p.processCSIParam(r)
	case stateOSC:
		p.processOSCCmd(r)
	case stateOSCParam:
		p.processOSCPayload(r)
	case stateCharset:
		p.processCharset(r)
	case stateDCS:
		if r == '\x1b' {
			p.state = stateDCSEscape
		}
	case stateDCSEscape:
		p.processDCSEscape(r)
	}
}

func (p *parser) processGround(r rune) {
	switch r {
	case '\x1b':
		p.state = stateEscape
	case '\n':
		p.term.lineFeed()
	case '\r':
		p.term.carriageReturn()
	case '\b':
		p.term.backspace()
	case '\t':
		p.term.tab()
	case '\a':
		// Bell, ignored.
	default:
		if r >= ' ' && r != 0x7F {
			p.term.putChar(r)
		}
	}
}

func (p *parser) processEscape(r rune) {
	switch r {
	case '[':
		p.state = stateCSI
		p.params = p.params[:0]
		p.currentParam = 0
		p.private = false
	case ']':
		p.state = stateOSC
		p.oscCmd = 0
		p.oscPayload = p.oscPayload[:0]
	case '7':
		p.term.saveCursor()
		p.state = stateGround
	case '8':
		p.term.restoreCursor()
		p.state = stateGround
	case 'M':
		p.term.reverseIndex()
		p.state = stateGround
	case 'D':
		p.term.index()
		p.state = stateGround
	case 'E':
		p.term.lineFeed()
		p.state = stateGround
	case 'c':
		p.term.Clear()
	case '(', ')', '*', '+':
		p.state = stateCharset
	case 'P':
		p.state = stateDCS
	case '=', '>':
		// Keypad application/numeric mode, ignored.
		p.state = stateGround
	default:
		p.term.debugf("parser: unhandled ESC %q", r)
		p.state = stateGround
	}
}

// processCharset consumes the designator byte of an ESC ( sequence. Charset
// switching itself is not emulated; the byte just must not reach the grid.
func (p *parser) processCharset(r rune) {
	if r == '\x1b' {
		p.state = stateEscape
		return
	}
	p.state = stateGround
}

func (p *parser) processDCSEscape(r rune) {
	switch r {
	case '\\':
		p.state = stateGround
	case '\x1b':
		// Still a candidate terminator.
	default:
		p.state = stateDCS
	}
}

func (p *parser) processCSIEntry(r rune) {
	switch {
	case r >= '0' && r <= '9':
		p.currentParam = int(r - '0')
		p.state = stateCSIParam
	case r == ';' || r == ':':
		p.pushParam()
		p.state = stateCSIParam
	case r >= '<' && r <= '?':
		p.private = true
		p.state = stateCSIParam
	case r == '\x1b':
		p.state = stateEscape
	case r >= '@' && r <= '~':
		p.finishCSI(r)
	}
}

func (p *parser) processCSIParam(r rune) {
	switch {
	case r >= '0' && r <= '9':
		if p.currentParam < maxParamValue {
			p.currentParam = p.currentParam*10 + int(r-'0')
		}
	case r == ';' || r == ':':
		p.pushParam()
	case r >= '<' && r <= '?':
		p.private = true
	case r == '\x1b':
		p.state = stateEscape
	case r >= '@' && r <= '~':
		p.finishCSI(r)
	}
}

func (p *parser) pushParam() {
	if len(p.params) < maxCSIParams {
		p.params = append(p.params, p.currentParam)
	}
	p.currentParam = 0
}

func (p *parser) finishCSI(final rune) {
	p.pushParam()
	p.term.handleCSI(final, p.params, p.private)
	p.state = stateGround
}

func (p *parser) processOSCCmd(r rune) {
	switch {
	case r >= '0' && r <= '9':
		if p.oscCmd < maxParamValue {
			p.oscCmd = p.oscCmd*10 + int(r-'0')
		}
	case r == ';':
		p.state = stateOSCParam
	case r == '\a':
		p.finishOSC()
		p.state = stateGround
	case r == '\x1b':
		p.finishOSC()
		p.state = stateEscape
	default:
		// Not a numeric command; swallow the rest of the sequence.
		p.oscCmd = -1
		p.state = stateOSCParam
	}
}

func (p *parser) processOSCPayload(r rune) {
	switch r {
	case '\a':
		p.finishOSC()
		p.state = stateGround
	case '\x1b':
		p.finishOSC()
		p.state = stateEscape
	default:
		if len(p.oscPayload) < maxOSCPayload {
			p.oscPayload = append(p.oscPayload, r)
		}
	}
}

// finishOSC dispatches a completed OSC sequence. Titles (OSC 0 and 2) reach
// the optional handler; everything else is discarded.
func (p *parser) finishOSC() {
	if p.oscCmd == 0 || p.oscCmd == 2 {
		p.term.setTitle(string(p.oscPayload))
	}
	p.oscCmd = 0
	p.oscPayload = p.oscPayload[:0]
}

// handleCSI maps a completed CSI sequence onto a grid mutation. Missing or
// zero parameters default to 1 except where zero is meaningful (erase modes
// and SGR codes). Unknown finals are dropped without disturbing the stream.
func (t *Terminal) handleCSI(final rune, params []int, private bool) {
	if private {
		t.handlePrivateCSI(final, params)
		return
	}

	param := func(i, def int) int {
		if i < len(params) && params[i] != 0 {
			return params[i]
		}
		return def
	}

	switch final {
	case 'A':
		t.moveCursor(-param(0, 1), 0)
	case 'B':
		t.moveCursor(param(0, 1), 0)
	case 'C':
		t.moveCursor(0, param(0, 1))
	case 'D':
		t.moveCursor(0, -param(0, 1))
	case 'E':
		t.setCursor(t.cursorRow+param(0, 1), 0)
	case 'F':
		t.setCursor(t.cursorRow-param(0, 1), 0)
	case 'G':
		t.setCursor(t.cursorRow, param(0, 1)-1)
	case 'd':
		t.setCursor(param(0, 1)-1, t.cursorCol)
	case 'H', 'f':
		t.setCursor(param(0, 1)-1, param(1, 1)-1)
	case 'J':
		t.eraseDisplay(param(0, 0))
	case 'K':
		t.eraseLine(param(0, 0))
	case 'L':
		t.insertLines(param(0, 1))
	case 'M':
		t.deleteLines(param(0, 1))
	case 'P':
		t.deleteChars(param(0, 1))
	case '@':
		t.insertChars(param(0, 1))
	case 'S':
		t.scrollUp(param(0, 1))
	case 'T':
		t.scrollDown(param(0, 1))
	case 'X':
		t.eraseChars(param(0, 1))
	case 'm':
		t.handleSGR(params)
	case 's':
		t.saveCursor()
	case 'u':
		t.restoreCursor()
	case 'r':
		// DECSTBM. Scroll regions are parsed but not honored; the grid
		// always scrolls as a whole.
	case 'n':
		if param(0, 0) == 6 {
			t.reportCursorPosition()
		}
	case 'c':
		t.reportDeviceAttributes()
	case 'h', 'l':
		// ANSI modes (IRM, LNM, ...) are not supported.
	default:
		t.debugf("parser: unhandled CSI %q %v", final, params)
	}
}

func (t *Terminal) handlePrivateCSI(final rune, params []int) {
	switch final {
	case 'h', 'l':
		for _, mode := range params {
			switch mode {
			case 1:
				t.appCursorKeys = final == 'h'
			case 47, 1049:
				if final == 'h' {
					t.enterAltScreen()
				} else {
					t.exitAltScreen()
				}
			case 25:
				t.cursorVisible = final == 'h'
			}
		}
	default:
		t.debugf("parser: unhandled private CSI %q %v", final, params)
	}
}

// reportCursorPosition answers DSR 6 with a 1-indexed CPR on the response
// writer, when one is configured.
func (t *Terminal) reportCursorPosition() {
	if t.respond == nil {
		return
	}
	row, col := t.cursorRow+1, t.cursorCol+1
	if col > t.cols {
		col = t.cols
	}
	t.respond([]byte("\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "R"))
}

// reportDeviceAttributes answers a primary DA query with a VT220-class
// identity claiming color support.
func (t *Terminal) reportDeviceAttributes() {
	if t.respond == nil {
		return
	}
	t.respond([]byte("\x1b[?62;22c"))
}
