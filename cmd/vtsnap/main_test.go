package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseInputPlainText(t *testing.T) {
	if got := parseInput("hello"); !bytes.Equal(got, []byte("hello")) {
		t.Errorf("parseInput = %q", got)
	}
}

func TestParseInputMarkers(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello<Enter>", "hello\r"},
		{":q<Enter>", ":q\r"},
		{"<Esc>:wq<CR>", "\x1b:wq\r"},
		{"<Tab>ab<Tab>", "\tab\t"},
		{"<Up><Down><Left><Right>", "\x1b[A\x1b[B\x1b[D\x1b[C"},
		{"<Ctrl-C>", "\x03"},
		{"<Ctrl-c>", "\x03"},
		{"<Space>x<Backspace>", " x\x7f"},
		{"a<b", "a<b"},           // unterminated marker stays literal
		{"<Weird>", "<Weird>"},   // unknown marker stays literal
		{"1<2 and 2>1", "1<2 and 2>1"},
	}
	for _, tc := range cases {
		if got := parseInput(tc.in); !bytes.Equal(got, []byte(tc.want)) {
			t.Errorf("parseInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSnapshotStreamPlain(t *testing.T) {
	var out bytes.Buffer
	opt := options{rows: 3, cols: 10, scrollback: 100}
	if err := snapshotStream(strings.NewReader("one\r\ntwo"), &out, opt); err != nil {
		t.Fatalf("snapshotStream: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	if lines[0] != "one" || lines[1] != "two" || lines[2] != "" {
		t.Errorf("lines = %q", lines)
	}
}

func TestSnapshotStreamVisibleOnly(t *testing.T) {
	var out bytes.Buffer
	opt := options{rows: 2, cols: 10, scrollback: 100, visible: true}
	input := "a\r\nb\r\nc\r\nd" // two rows scroll off into scrollback
	if err := snapshotStream(strings.NewReader(input), &out, opt); err != nil {
		t.Fatalf("snapshotStream: %v", err)
	}
	got := strings.TrimRight(out.String(), "\n")
	if got != "c\nd" {
		t.Errorf("visible grid = %q, want %q", got, "c\nd")
	}
}

func TestSnapshotStreamIncludesScrollback(t *testing.T) {
	var out bytes.Buffer
	opt := options{rows: 2, cols: 10, scrollback: 100}
	input := "a\r\nb\r\nc\r\nd"
	if err := snapshotStream(strings.NewReader(input), &out, opt); err != nil {
		t.Fatalf("snapshotStream: %v", err)
	}
	got := strings.TrimRight(out.String(), "\n")
	if got != "a\nb\nc\nd" {
		t.Errorf("full buffer = %q, want %q", got, "a\nb\nc\nd")
	}
}

func TestSnapshotStreamKeepsStyling(t *testing.T) {
	var out bytes.Buffer
	opt := options{rows: 1, cols: 10, scrollback: 0, visible: true}
	if err := snapshotStream(strings.NewReader("\x1b[31mred"), &out, opt); err != nil {
		t.Fatalf("snapshotStream: %v", err)
	}
	if !strings.Contains(out.String(), "\x1b[0;31m") {
		t.Errorf("styled output lost its SGR sequence: %q", out.String())
	}
}
