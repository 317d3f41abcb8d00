// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelvt/main.go
// Summary: Interactive terminal viewer: runs a shell inside the grid engine
//          and draws it on a tcell screen.
// Usage: Run `texelvt` for your login shell, or `texelvt -shell CMD [args]`.
//        The viewer exits when the child process does.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvt/render"
	"github.com/framegrace/texelvt/session"
	"github.com/framegrace/texelvt/vt"
)

// screenFactory is swapped for a simulation screen in tests.
var screenFactory = tcell.NewScreen

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelvt", flag.ContinueOnError)
	shell := fs.String("shell", defaultShell(), "Command to run inside the terminal")
	scrollback := fs.Int("scrollback", vt.DefaultMaxScrollback, "Scrollback rows to retain")
	logPath := fs.String("log", "", "File to append diagnostic logs to")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	// The screen owns the controlling terminal, so stdlib log output has to
	// go to a file or nowhere at all.
	if *logPath != "" {
		file, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer file.Close()
		log.SetOutput(file)
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		log.SetOutput(io.Discard)
	}

	sess := session.New(*shell, fs.Args(), session.WithMaxScrollback(*scrollback))
	return view(sess)
}

// view runs the session inside a full-screen event loop until the child
// exits.
func view(sess *session.Session) error {
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	driver := render.NewTcellScreenDriver(screen)
	if err := driver.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer driver.Fini()
	driver.Clear()
	driver.Underlying().EnablePaste()

	width, height := driver.Size()
	sess.Resize(height, width)

	refresh := make(chan bool, 1)
	sess.SetRefreshNotifier(refresh)

	renderer := render.NewRenderer()
	draw := func() {
		renderer.Draw(driver, sess.Snapshot())
	}

	runErr := make(chan error, 1)
	go func() {
		err := sess.Run()
		runErr <- err
		// Wake the event loop so it notices the exit.
		driver.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	defer sess.Stop()

	go func() {
		for range refresh {
			driver.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	draw()

	var pasteBuffer []byte
	var inPaste bool

	for {
		select {
		case err := <-runErr:
			// Show whatever the child wrote on its way out before the
			// screen is torn down.
			draw()
			return err
		default:
		}

		ev := driver.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventInterrupt:
			draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			sess.Resize(h, w)
			draw()
		case *tcell.EventPaste:
			if tev.Start() {
				inPaste = true
				pasteBuffer = nil
			} else if tev.End() {
				inPaste = false
				if len(pasteBuffer) > 0 {
					if _, err := sess.Write(pasteBuffer); err != nil {
						log.Printf("texelvt: paste write: %v", err)
					}
				}
				pasteBuffer = nil
			}
		case *tcell.EventKey:
			if inPaste {
				if tev.Key() == tcell.KeyRune {
					pasteBuffer = append(pasteBuffer, []byte(string(tev.Rune()))...)
				} else if tev.Key() == tcell.KeyEnter || tev.Key() == tcell.KeyLF {
					pasteBuffer = append(pasteBuffer, '\n')
				}
				continue
			}
			if keyBytes := render.KeyBytes(tev, sess.AppCursorKeys()); keyBytes != nil {
				if _, err := sess.Write(keyBytes); err != nil {
					log.Printf("texelvt: key write: %v", err)
				}
			}
		}
	}
}

func defaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}
