// Package terminal owns the controlling terminal: raw mode around each key
// read, restoration of the original line settings, and decoding of key
// presses into navigation events.
package terminal

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// RawMode switches a terminal into raw mode and back. Restore must be safe to
// call when raw mode is not active.
type RawMode interface {
	MakeRaw() error
	Restore() error
}

// Session holds the terminal settings saved when it was opened. Close puts
// them back; every exit path of the program must reach Close.
type Session struct {
	fd       int
	tty      bool
	original *term.State
	raw      *term.State

	getState func(fd int) (*term.State, error)
	makeRaw  func(fd int) (*term.State, error)
	restore  func(fd int, st *term.State) error
}

// Open saves the current settings of f. When f is not a terminal (piped
// input, tests) the session is inert and every method is a no-op.
func Open(f *os.File) (*Session, error) {
	s := newSession(int(f.Fd()), isatty.IsTerminal(f.Fd()))
	if !s.tty {
		return s, nil
	}
	st, err := s.getState(s.fd)
	if err != nil {
		return nil, fmt.Errorf("save terminal state: %w", err)
	}
	s.original = st
	return s, nil
}

func newSession(fd int, tty bool) *Session {
	return &Session{
		fd:       fd,
		tty:      tty,
		getState: term.GetState,
		makeRaw:  term.MakeRaw,
		restore:  term.Restore,
	}
}

// IsTerminal reports whether raw mode will actually be applied.
func (s *Session) IsTerminal() bool { return s.tty }

// MakeRaw enters raw mode. Calling it while already raw does nothing.
func (s *Session) MakeRaw() error {
	if !s.tty || s.raw != nil {
		return nil
	}
	st, err := s.makeRaw(s.fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	s.raw = st
	return nil
}

// Restore leaves raw mode, returning to the settings in effect before the
// matching MakeRaw. It is a no-op when raw mode is not active.
func (s *Session) Restore() error {
	if s.raw == nil {
		return nil
	}
	prev := s.raw
	s.raw = nil
	if err := s.restore(s.fd, prev); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Close restores the settings saved by Open. It may be called more than once.
func (s *Session) Close() error {
	s.raw = nil
	if s.original == nil {
		return nil
	}
	orig := s.original
	s.original = nil
	if err := s.restore(s.fd, orig); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Width returns the column count of f, or 0 when it is not a terminal.
func Width(f *os.File) int {
	if !isatty.IsTerminal(f.Fd()) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}

// rawMode returns s as a RawMode, or nil when there is no session.
func (s *Session) rawMode() RawMode {
	if s == nil {
		return nil
	}
	return s
}
