package formatter

import (
	"github.com/mattn/go-runewidth"
)

// ExitLabel is the synthetic last entry of every collection menu.
const ExitLabel = "Exit"

const (
	cursorMarker = "> "
	rowPadding   = "  "
	ellipsis     = "…"
)

// MenuLabels returns options followed by a single ExitLabel. A literal "Exit"
// in options is removed from its position so it shows up only once, last.
func MenuLabels(options []string) []string {
	labels := make([]string, 0, len(options)+1)
	for _, o := range options {
		if o == ExitLabel {
			continue
		}
		labels = append(labels, o)
	}
	return append(labels, ExitLabel)
}

// RenderMenu returns one line per label. The highlighted row starts with
// "> " and is colored; the rest start with two spaces. A positive width
// truncates rows that would wrap.
func RenderMenu(labels []string, highlighted int, width int, s *Styler) []string {
	out := make([]string, 0, len(labels))
	for i, label := range labels {
		label = fitWidth(label, width-len(cursorMarker))
		if i == highlighted {
			out = append(out, s.Cursor(cursorMarker+label))
			continue
		}
		out = append(out, rowPadding+label)
	}
	return out
}

// fitWidth truncates s to width display cells. Non-positive widths disable it.
func fitWidth(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}
