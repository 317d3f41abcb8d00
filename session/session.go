// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/session.go
// Summary: Hosts a child process on a pseudo-terminal and feeds its output
//          through a vt.Terminal.
// Usage: Create with New, size with Resize, then call Run (blocking). Read
//        grid state through Snapshot or the line accessors; forward user
//        input with Write.
// Notes: The engine itself is not safe for concurrent use; every access in
//        this package goes through one mutex, making the session the single
//        logical writer the engine requires.

package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"

	"github.com/framegrace/texelvt/vt"
)

// Frame is a point-in-time copy of the visible terminal state, safe to hand
// to a renderer while the session keeps processing output.
type Frame struct {
	Cells         [][]vt.Cell
	CursorRow     int
	CursorCol     int
	CursorVisible bool
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithSize sets the initial grid size before the child starts. The default
// is 24x80.
func WithSize(rows, cols int) Option {
	return func(s *Session) {
		if rows > 0 {
			s.rows = rows
		}
		if cols > 0 {
			s.cols = cols
		}
	}
}

// WithMaxScrollback caps the engine's scrollback row count.
func WithMaxScrollback(n int) Option {
	return func(s *Session) { s.maxScrollback = n }
}

// WithEnv appends extra environment variables to the child's environment.
func WithEnv(env ...string) Option {
	return func(s *Session) { s.env = append(s.env, env...) }
}

// Session owns one child process attached to a PTY and the terminal grid
// built from its output.
type Session struct {
	command       string
	args          []string
	env           []string
	maxScrollback int

	mu    sync.Mutex
	rows  int
	cols  int
	cmd   *exec.Cmd
	pty   *os.File
	term  *vt.Terminal
	title string

	refresh  chan<- bool
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New prepares a session running command with the given arguments. Nothing
// starts until Run is called; Resize and the query surface work immediately.
func New(command string, args []string, opts ...Option) *Session {
	s := &Session{
		command:       command,
		args:          args,
		rows:          24,
		cols:          80,
		maxScrollback: vt.DefaultMaxScrollback,
		stop:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Both handlers are invoked from inside Process, which only ever runs
	// with s.mu held, so they touch session state without re-locking.
	s.term = vt.New(s.rows, s.cols,
		vt.WithMaxScrollback(s.maxScrollback),
		vt.WithTitleChangeHandler(func(title string) {
			s.title = title
			s.notify()
		}),
		vt.WithResponseWriter(func(b []byte) {
			if s.pty != nil {
				s.pty.Write(b)
			}
		}),
	)
	return s
}

// SetRefreshNotifier registers a channel that receives a (non-blocking)
// signal whenever new output changed the grid.
func (s *Session) SetRefreshNotifier(refresh chan<- bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = refresh
}

func (s *Session) notify() {
	if s.refresh == nil {
		return
	}
	select {
	case s.refresh <- true:
	default:
	}
}

// Run starts the child on a PTY sized to the current grid and blocks until
// it exits and its final output has been applied to the grid.
func (s *Session) Run() error {
	s.mu.Lock()
	rows, cols := s.rows, s.cols
	env := s.env
	s.mu.Unlock()

	cmd := exec.Command(s.command, s.args...)
	cmd.Env = append(append(os.Environ(), "TERM=xterm-256color"), env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	s.mu.Lock()
	s.cmd = cmd
	s.pty = ptmx
	s.mu.Unlock()

	s.wg.Add(1)
	go s.readLoop(ptmx)

	waitErr := cmd.Wait()
	s.wg.Wait()
	return waitErr
}

// readLoop pumps PTY output chunks into the engine. Chunks arrive in
// whatever sizes the kernel hands out; the engine reassembles split escape
// sequences and UTF-8 characters itself.
func (s *Session) readLoop(ptmx *os.File) {
	defer s.wg.Done()
	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.term.Process(buf[:n])
			s.notify()
			s.mu.Unlock()
		}
		if err != nil {
			select {
			case <-s.stop:
				// Stop closed the PTY under us; not worth logging.
			default:
				if err != io.EOF && !errors.Is(err, os.ErrClosed) && !errors.Is(err, syscall.EIO) {
					log.Printf("session: pty read: %v", err)
				}
			}
			return
		}
	}
}

// Write forwards input bytes (keystrokes, paste data) to the child.
func (s *Session) Write(b []byte) (int, error) {
	s.mu.Lock()
	ptmx := s.pty
	s.mu.Unlock()
	if ptmx == nil {
		return 0, errors.New("session: not started")
	}
	return ptmx.Write(b)
}

// Resize reshapes the grid and propagates the new size to the child's PTY.
func (s *Session) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows, s.cols = rows, cols
	s.term.Resize(rows, cols)
	if s.pty != nil {
		if err := pty.Setsize(s.pty, &pty.Winsize{
			Rows: uint16(rows),
			Cols: uint16(cols),
		}); err != nil {
			log.Printf("session: set pty size: %v", err)
		}
	}
}

// Stop terminates the session: the PTY is closed to unblock the reader and
// the child receives SIGTERM. Safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)

		s.mu.Lock()
		ptmx, cmd := s.pty, s.cmd
		s.mu.Unlock()

		if ptmx != nil {
			ptmx.Close()
		}
		if cmd != nil && cmd.Process != nil {
			cmd.Process.Signal(syscall.SIGTERM)
		}
	})
}

// Snapshot copies the visible grid and cursor for rendering.
func (s *Session) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, col := s.term.CursorPosition()
	return Frame{
		Cells:         s.term.Grid(),
		CursorRow:     row,
		CursorCol:     col,
		CursorVisible: s.term.CursorVisible(),
	}
}

// Lines returns the whole buffer serialized: scrollback, then the grid.
func (s *Session) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.Lines()
}

// VisibleLines returns only the live grid, serialized.
func (s *Session) VisibleLines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.VisibleLines()
}

// Title returns the window title most recently announced via OSC 0/2, or
// the empty string.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// AppCursorKeys reports whether the child switched the terminal into DECCKM
// application cursor-key mode. Key encoders need this for arrow keys.
func (s *Session) AppCursorKeys() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.AppCursorKeys()
}

// Dimensions returns the current grid size.
func (s *Session) Dimensions() (rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term.Dimensions()
}
