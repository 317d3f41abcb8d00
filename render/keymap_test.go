package render

import (
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyBytes(t *testing.T) {
	cases := []struct {
		name      string
		ev        *tcell.EventKey
		appCursor bool
		want      string
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), false, "\x1b[A"},
		{"up application mode", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), true, "\x1bOA"},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), false, "\x1b[B"},
		{"left application mode", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), true, "\x1bOD"},
		{"home", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), false, "\x1b[H"},
		{"end", tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone), false, "\x1b[F"},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), false, "\x1b[3~"},
		{"page up", tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), false, "\x1b[5~"},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), false, "\x1bOP"},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), false, "\x1b[15~"},
		{"f12", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), false, "\x1b[24~"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false, "\r"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), false, "\t"},
		{"escape", tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), false, "\x1b"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), false, "\b"},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false, "q"},
		{"utf8 rune", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), false, "é"},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 3, tcell.ModCtrl), false, "\x03"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := KeyBytes(tc.ev, tc.appCursor)
			if !bytes.Equal(got, []byte(tc.want)) {
				t.Errorf("KeyBytes = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKeyBytesUnmappedKey(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyF13, 0, tcell.ModNone)
	if got := KeyBytes(ev, false); got != nil {
		t.Errorf("unmapped key produced %q, want nil", got)
	}
}

// Arrow encodings must follow the mode the application chose, since full
// screen programs redefine them via DECCKM.
func TestKeyBytesArrowsFollowMode(t *testing.T) {
	arrows := []struct {
		key      tcell.Key
		csi, ss3 string
	}{
		{tcell.KeyUp, "\x1b[A", "\x1bOA"},
		{tcell.KeyDown, "\x1b[B", "\x1bOB"},
		{tcell.KeyRight, "\x1b[C", "\x1bOC"},
		{tcell.KeyLeft, "\x1b[D", "\x1bOD"},
	}
	for _, a := range arrows {
		ev := tcell.NewEventKey(a.key, 0, tcell.ModNone)
		if got := KeyBytes(ev, false); !bytes.Equal(got, []byte(a.csi)) {
			t.Errorf("key %v normal mode = %q, want %q", a.key, got, a.csi)
		}
		if got := KeyBytes(ev, true); !bytes.Equal(got, []byte(a.ss3)) {
			t.Errorf("key %v application mode = %q, want %q", a.key, got, a.ss3)
		}
	}
}
