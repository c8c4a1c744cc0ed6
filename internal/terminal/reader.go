package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/muesli/cancelreader"

	"github.com/oakwood-commons/nmosnav/pkg/logger"
)

// ErrInputClosed is returned when the input stream ends.
var ErrInputClosed = errors.New("input closed")

// canceler is satisfied by cancelreader.CancelReader. Readers without it
// cannot be interrupted mid-read and rely on Ctrl+C bytes alone.
type canceler interface {
	Cancel() bool
}

// Reader turns raw key bytes into events. It knows nothing about what is on
// screen.
type Reader struct {
	in   io.Reader
	mode RawMode
	log  logr.Logger
	buf  [1]byte
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLogger attaches a logger for decode tracing at V(2).
func WithLogger(l logr.Logger) ReaderOption {
	return func(r *Reader) { r.log = l }
}

// NewReader reads key bytes from in, switching mode to raw for the duration
// of each ReadEvent. A nil mode means the input is never put into raw mode.
func NewReader(in io.Reader, mode RawMode, opts ...ReaderOption) *Reader {
	if mode == nil {
		mode = noopMode{}
	}
	r := &Reader{in: in, mode: mode, log: *logger.GetNoopLogger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFileReader reads keys from f. When s is a terminal, f is wrapped in a
// cancelable reader so an interrupt can end a blocked read. Regular files,
// pipes and /dev/null are read directly: they cannot be polled, and a read
// on them ends with EOF rather than blocking. The returned close func
// releases the reader.
func NewFileReader(f *os.File, s *Session, opts ...ReaderOption) (*Reader, func() error) {
	if s == nil || !s.IsTerminal() {
		return NewReader(f, s.rawMode(), opts...), noopClose
	}
	cr, err := cancelreader.NewReader(f)
	if err != nil {
		r := NewReader(f, s, opts...)
		r.log.V(1).Info("cancelable reader unavailable, reading directly", "error", err.Error())
		return r, noopClose
	}
	return NewReader(cr, s, opts...), cr.Close
}

func noopClose() error { return nil }

// ReadEvent blocks until a recognised key arrives. Raw mode is held only
// while waiting and is restored before ReadEvent returns, whatever the
// outcome. Ctrl+C and cancellation of ctx both yield EventInterrupt with a
// nil error. Escape sequences other than up, down and left arrows are
// swallowed, as is every other byte.
func (r *Reader) ReadEvent(ctx context.Context) (ev Event, err error) {
	if ctx.Err() != nil {
		return EventInterrupt, nil
	}
	if err := r.mode.MakeRaw(); err != nil {
		return EventInterrupt, err
	}
	defer func() {
		if rerr := r.mode.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	if c, ok := r.in.(canceler); ok {
		stop := context.AfterFunc(ctx, func() { c.Cancel() })
		defer stop()
	}

	for {
		b, err := r.readByte(ctx)
		if err != nil {
			return r.interrupted(ctx, err)
		}
		switch b {
		case keyCtrlC:
			return EventInterrupt, nil
		case keyCR, keyLF:
			return EventSelect, nil
		case keyEscape:
			ev, ok, err := r.readEscape(ctx)
			if err != nil {
				return r.interrupted(ctx, err)
			}
			if ok {
				return ev, nil
			}
		default:
			r.log.V(2).Info("ignored key", "byte", b)
		}
	}
}

// readEscape consumes the two bytes after ESC.
func (r *Reader) readEscape(ctx context.Context) (Event, bool, error) {
	first, err := r.readByte(ctx)
	if err != nil {
		return 0, false, err
	}
	second, err := r.readByte(ctx)
	if err != nil {
		return 0, false, err
	}
	if first != csiIntro {
		r.log.V(2).Info("ignored escape sequence", "seq", []byte{first, second})
		return 0, false, nil
	}
	switch second {
	case arrowUp:
		return EventUp, true, nil
	case arrowDown:
		return EventDown, true, nil
	case arrowLeft:
		return EventBack, true, nil
	default:
		r.log.V(2).Info("ignored escape sequence", "seq", []byte{first, second})
		return 0, false, nil
	}
}

func (r *Reader) readByte(ctx context.Context) (byte, error) {
	for {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		n, err := r.in.Read(r.buf[:])
		if n == 1 {
			return r.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// interrupted maps a read failure to its outcome: cancellation is an
// ordinary interrupt, end of input is ErrInputClosed.
func (r *Reader) interrupted(ctx context.Context, err error) (Event, error) {
	switch {
	case ctx.Err() != nil, errors.Is(err, cancelreader.ErrCanceled):
		return EventInterrupt, nil
	case errors.Is(err, io.EOF):
		return EventInterrupt, ErrInputClosed
	default:
		return EventInterrupt, fmt.Errorf("read key: %w", err)
	}
}

type noopMode struct{}

func (noopMode) MakeRaw() error { return nil }
func (noopMode) Restore() error { return nil }
