// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/vtsnap/main.go
// Summary: Captures what a command leaves on a terminal screen: runs it on a
//          PTY, feeds the output through the grid engine and prints the
//          serialized result.
// Usage: `vtsnap ls -l` for one-shot commands, `vtsnap -send ':q<Enter>' vim`
//        for interactive ones, or pipe recorded output straight into
//        `vtsnap < capture.raw`.
// Notes: Output lines carry their SGR styling, so they replay correctly when
//        written back to a terminal.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/framegrace/texelvt/vt"
)

type options struct {
	rows, cols  int
	scrollback  int
	visible     bool
	interactive bool
	send        string
	timeout     time.Duration
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("vtsnap", flag.ContinueOnError)
	rows := fs.Int("rows", 24, "Terminal rows")
	cols := fs.Int("cols", 80, "Terminal columns")
	scrollback := fs.Int("scrollback", vt.DefaultMaxScrollback, "Scrollback rows to retain")
	visible := fs.Bool("visible", false, "Print only the final visible grid, without scrollback")
	interactive := fs.Bool("interactive", false, "Connect your keyboard to the command and mirror its output live")
	send := fs.String("send", "", "Input to send to the command; <Enter>, <Esc>, <Ctrl-X> markers are expanded")
	timeout := fs.Duration("timeout", 0, "Kill the command and snapshot anyway after this long (0 waits for exit)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	opt := options{
		rows:        *rows,
		cols:        *cols,
		scrollback:  *scrollback,
		visible:     *visible,
		interactive: *interactive,
		send:        *send,
		timeout:     *timeout,
	}

	if fs.NArg() == 0 {
		return snapshotStream(os.Stdin, os.Stdout, opt)
	}
	return snapshotCommand(fs.Arg(0), fs.Args()[1:], os.Stdout, opt)
}

// snapshotStream replays already-captured terminal output from r through the
// engine and prints the result.
func snapshotStream(r io.Reader, w io.Writer, opt options) error {
	vterm := vt.New(opt.rows, opt.cols, vt.WithMaxScrollback(opt.scrollback))
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			vterm.Process(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
	return printSnapshot(w, vterm, opt.visible)
}

// snapshotCommand runs the command on a PTY sized to the requested grid and
// snapshots the terminal state it leaves behind.
func snapshotCommand(command string, args []string, w io.Writer, opt options) error {
	cmd := exec.Command(command, args...)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("COLUMNS=%d", opt.cols),
		fmt.Sprintf("LINES=%d", opt.rows),
		"TERM=xterm-256color",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(opt.rows),
		Cols: uint16(opt.cols),
	})
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	if opt.interactive {
		// Hand the user's keyboard to the child and restore the outer
		// terminal once the session ends.
		oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("make stdin raw: %w", err)
		}
		defer term.Restore(int(os.Stdin.Fd()), oldState)
		go io.Copy(ptmx, os.Stdin)
	} else {
		// Raw mode on the PTY disables echo, so query responses and -send
		// input do not bounce back into the capture.
		if _, err := term.MakeRaw(int(ptmx.Fd())); err != nil {
			return fmt.Errorf("make pty raw: %w", err)
		}
	}

	var mu sync.Mutex
	vterm := vt.New(opt.rows, opt.cols,
		vt.WithMaxScrollback(opt.scrollback),
		vt.WithResponseWriter(func(b []byte) {
			ptmx.Write(b)
		}),
	)

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				mu.Lock()
				vterm.Process(buf[:n])
				mu.Unlock()
				if opt.interactive {
					os.Stdout.Write(buf[:n])
				}
			}
			if err != nil {
				return
			}
		}
	}()

	if opt.send != "" {
		if _, err := ptmx.Write(parseInput(opt.send)); err != nil {
			return fmt.Errorf("send input: %w", err)
		}
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	if opt.timeout > 0 {
		select {
		case <-waitErr:
		case <-time.After(opt.timeout):
			if cmd.Process != nil {
				cmd.Process.Kill()
			}
			<-waitErr
		}
	} else {
		<-waitErr
	}

	// Let the reader drain whatever the child wrote on its way out; force
	// it loose if something still holds the slave side open.
	select {
	case <-readDone:
	case <-time.After(2 * time.Second):
		ptmx.Close()
		<-readDone
	}

	if opt.interactive {
		// Start the snapshot on a clean line after the mirrored session.
		fmt.Fprintln(w)
	}
	return printSnapshot(w, vterm, opt.visible)
}

func printSnapshot(w io.Writer, vterm *vt.Terminal, visible bool) error {
	var lines []string
	if visible {
		lines = vterm.VisibleLines()
	} else {
		lines = vterm.Lines()
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
	return nil
}
