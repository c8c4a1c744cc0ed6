// Package navigator drives a browsing session: it fetches the URL on top of
// the history, shows it as a menu or a document, reads one key at a time and
// moves through the resource tree until the operator leaves or a fetch fails.
package navigator

import (
	"context"
	"errors"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/nmosnav/internal/fetcher"
	"github.com/oakwood-commons/nmosnav/internal/jsondoc"
	"github.com/oakwood-commons/nmosnav/internal/terminal"
	"github.com/oakwood-commons/nmosnav/pkg/logger"
)

// AtRootNotice is shown when Back is pressed with nothing left to pop.
const AtRootNotice = "Already at root."

// Fetcher retrieves and classifies one URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) fetcher.Resource
}

// EventReader blocks for the next navigation key.
type EventReader interface {
	ReadEvent(ctx context.Context) (terminal.Event, error)
}

// View draws screens. *formatter.Screen implements it.
type View interface {
	Begin(url string, depth int)
	Document(node *jsondoc.Node)
	Menu(labels []string, highlighted int)
	Notice(msg string)
	Message(msg string)
}

// Reason says why a session ended.
type Reason int

const (
	// ReasonUserExit: Exit was selected from a menu.
	ReasonUserExit Reason = iota
	// ReasonFatalError: a fetch failed or the keyboard could not be read.
	ReasonFatalError
	// ReasonInterrupted: Ctrl+C, SIGINT or the end of input.
	ReasonInterrupted
)

func (r Reason) String() string {
	switch r {
	case ReasonUserExit:
		return "user-exit"
	case ReasonFatalError:
		return "fatal-error"
	case ReasonInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Outcome is the terminal state of a session.
type Outcome struct {
	Reason Reason
	// Err is set for ReasonFatalError.
	Err error
}

// Navigator is single-use: create one per session with New and call Run once.
type Navigator struct {
	fetcher Fetcher
	input   EventReader
	view    View
	history *History

	// notice is printed under the next screen drawn.
	notice string
}

// New creates a Navigator whose history starts at root.
func New(root string, f Fetcher, in EventReader, v View) *Navigator {
	return &Navigator{
		fetcher: f,
		input:   in,
		view:    v,
		history: NewHistory(root),
	}
}

// History exposes the stack read-only, for callers that report where the
// session ended.
func (n *Navigator) History() []string {
	return n.history.Entries()
}

// step is the result of handling one screen: either keep browsing (done is
// false) or stop with outcome.
type step struct {
	done    bool
	outcome Outcome
}

var browsing = step{}

func stop(reason Reason, err error) step {
	return step{done: true, outcome: Outcome{Reason: reason, Err: err}}
}

// Run browses until the session terminates. It never returns a fetch error
// as a Go error: fetch failures are printed and reported through Outcome.
func (n *Navigator) Run(ctx context.Context) Outcome {
	lgr := logger.FromContext(ctx)
	for {
		url := n.history.Current()
		depth := n.history.Depth()
		lgr.V(1).Info("fetching", logger.URLKey, url, logger.DepthKey, depth)

		res := n.fetcher.Fetch(ctx, url)
		if ctx.Err() != nil {
			return n.finish(lgr, stop(ReasonInterrupted, nil))
		}

		var st step
		switch res.Kind {
		case fetcher.KindCollection:
			st = n.collection(ctx, lgr, url, res.Options)
		case fetcher.KindDocument:
			st = n.document(ctx, lgr, url, res.Document)
		default:
			n.view.Message(res.Message())
			st = stop(ReasonFatalError, res.Err)
		}
		if st.done {
			return n.finish(lgr, st)
		}
	}
}

func (n *Navigator) finish(lgr *logr.Logger, st step) Outcome {
	if st.outcome.Err != nil {
		lgr.Error(st.outcome.Err, "session ended", logger.ReasonKey, st.outcome.Reason.String())
	} else {
		lgr.V(1).Info("session ended", logger.ReasonKey, st.outcome.Reason.String())
	}
	return st.outcome
}

// document shows a leaf and waits for Back. Up, Down and Select do nothing.
func (n *Navigator) document(ctx context.Context, lgr *logr.Logger, url string, doc *jsondoc.Node) step {
	n.view.Begin(url, n.history.Depth())
	n.view.Document(doc)
	n.flushNotice()

	for {
		ev, err := n.input.ReadEvent(ctx)
		if err != nil {
			return readFailure(err)
		}
		switch ev {
		case terminal.EventBack:
			n.back(lgr)
			return browsing
		case terminal.EventInterrupt:
			return stop(ReasonInterrupted, nil)
		default:
			lgr.V(2).Info("ignored on document", "event", ev.String())
		}
	}
}

// collection shows the menu for options and handles keys until the
// operator selects an entry or goes back.
func (n *Navigator) collection(ctx context.Context, lgr *logr.Logger, url string, options []string) step {
	menu := NewMenu(options)
	pending := n.takeNotice()

	for {
		n.view.Begin(url, n.history.Depth())
		n.view.Menu(menu.Labels(), menu.Index())
		if pending != "" {
			n.view.Notice(pending)
			pending = ""
		}

		ev, err := n.input.ReadEvent(ctx)
		if err != nil {
			return readFailure(err)
		}
		switch ev {
		case terminal.EventUp:
			menu.Up()
		case terminal.EventDown:
			menu.Down()
		case terminal.EventSelect:
			if menu.IsExit() {
				return stop(ReasonUserExit, nil)
			}
			next := url + menu.Selected()
			lgr.V(1).Info("select", logger.URLKey, next)
			n.history.Push(next)
			return browsing
		case terminal.EventBack:
			n.back(lgr)
			return browsing
		case terminal.EventInterrupt:
			return stop(ReasonInterrupted, nil)
		}
	}
}

// back pops the history; at the root it queues the at-root notice instead.
func (n *Navigator) back(lgr *logr.Logger) {
	if n.history.Pop() {
		lgr.V(1).Info("back", logger.URLKey, n.history.Current())
		return
	}
	n.notice = AtRootNotice
}

func (n *Navigator) takeNotice() string {
	msg := n.notice
	n.notice = ""
	return msg
}

func (n *Navigator) flushNotice() {
	if msg := n.takeNotice(); msg != "" {
		n.view.Notice(msg)
	}
}

func readFailure(err error) step {
	if errors.Is(err, terminal.ErrInputClosed) {
		return stop(ReasonInterrupted, nil)
	}
	return stop(ReasonFatalError, err)
}
