package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/oakwood-commons/nmosnav/internal/jsondoc"
)

// ClearScreen moves the cursor home and erases the display below it.
const ClearScreen = "\x1b[H\x1b[J"

// Screen writes whole views to the terminal. Every view starts with a clear
// and a header naming the URL being shown.
type Screen struct {
	out    io.Writer
	styler *Styler
	width  int
}

// NewScreen creates a Screen. width is the terminal width in cells; zero
// disables truncation.
func NewScreen(out io.Writer, s *Styler, width int) *Screen {
	if s == nil {
		s = NewStyler(Palette{}, true)
	}
	return &Screen{out: out, styler: s, width: width}
}

// Styler exposes the colors the screen renders with.
func (sc *Screen) Styler() *Styler { return sc.styler }

// Begin clears the screen and prints the header for url. depth is the
// history depth, 1 at the root.
func (sc *Screen) Begin(url string, depth int) {
	suffix := fmt.Sprintf("  [%d]", depth)
	header := fitWidth(url, sc.width-len(suffix))
	sc.write(ClearScreen)
	sc.writeLines(sc.styler.Header(header)+sc.styler.Notice(suffix), "")
}

// Document prints a colorized document.
func (sc *Screen) Document(node *jsondoc.Node) {
	sc.writeLines(RenderDocument(node, sc.styler)...)
}

// Menu prints labels with the highlighted row marked.
func (sc *Screen) Menu(labels []string, highlighted int) {
	sc.writeLines(RenderMenu(labels, highlighted, sc.width, sc.styler)...)
}

// Notice prints an informational line such as the at-root message.
func (sc *Screen) Notice(msg string) {
	sc.writeLines(sc.styler.Notice(msg))
}

// Message prints an uncolored line: fetch errors and the farewell.
func (sc *Screen) Message(msg string) {
	sc.writeLines(msg)
}

func (sc *Screen) writeLines(lines ...string) {
	if len(lines) == 0 {
		return
	}
	sc.write(strings.Join(lines, "\n") + "\n")
}

func (sc *Screen) write(s string) {
	_, _ = io.WriteString(sc.out, s)
}
