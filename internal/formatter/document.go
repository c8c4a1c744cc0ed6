package formatter

import (
	"strings"

	"github.com/oakwood-commons/nmosnav/internal/jsondoc"
)

// IndentWidth is the number of spaces per nesting level in document output.
const IndentWidth = 2

// LineKind classifies one line of a rendered document. Each kind owns a
// single foreground color.
type LineKind int

const (
	// LinePlain is an array element scalar; it keeps the default color.
	LinePlain LineKind = iota
	// LineKeyValue is an object member: "key": value.
	LineKeyValue
	// LineBrace opens or closes an object.
	LineBrace
	// LineBracket opens or closes an array.
	LineBracket
)

func (k LineKind) String() string {
	switch k {
	case LineKeyValue:
		return "key-value"
	case LineBrace:
		return "brace"
	case LineBracket:
		return "bracket"
	default:
		return "plain"
	}
}

// DocLine is one uncolored document line. For LineKeyValue, Key holds the
// quoted key and Text the value (an opener such as "{" for nested
// containers); for every other kind Text holds the whole content. Text
// includes any trailing comma.
type DocLine struct {
	Kind  LineKind
	Depth int
	Key   string
	Text  string
}

// Plain returns the line as it would appear in uncolored JSON output.
func (l DocLine) Plain() string {
	indent := strings.Repeat(" ", l.Depth*IndentWidth)
	if l.Kind == LineKeyValue {
		return indent + l.Key + ": " + l.Text
	}
	return indent + l.Text
}

// Render colors the line content; indentation stays unstyled.
func (l DocLine) Render(s *Styler) string {
	indent := strings.Repeat(" ", l.Depth*IndentWidth)
	switch l.Kind {
	case LineKeyValue:
		return indent + s.Key(l.Key) + ": " + s.Value(l.Text)
	case LineBrace:
		return indent + s.Brace(l.Text)
	case LineBracket:
		return indent + s.Bracket(l.Text)
	default:
		return indent + l.Text
	}
}

// DocumentLines walks the parsed tree and produces the lines of its 2-space
// indented JSON form, members in document order. Classification comes from
// the tree structure, so string values containing quotes, braces or colons
// never change a line's kind.
func DocumentLines(node *jsondoc.Node) []DocLine {
	if node == nil {
		return nil
	}
	w := &docWalker{}
	w.value(node, 0, "", false)
	return w.lines
}

// RenderDocument returns the colored lines of node.
func RenderDocument(node *jsondoc.Node, s *Styler) []string {
	lines := DocumentLines(node)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Render(s))
	}
	return out
}

type docWalker struct {
	lines []DocLine
}

func (w *docWalker) emit(kind LineKind, depth int, key, text string) {
	w.lines = append(w.lines, DocLine{Kind: kind, Depth: depth, Key: key, Text: text})
}

// value emits node at depth. key is the quoted member name, empty for array
// elements and the root.
func (w *docWalker) value(node *jsondoc.Node, depth int, key string, comma bool) {
	tail := ""
	if comma {
		tail = ","
	}

	if !node.IsContainer() {
		if key != "" {
			w.emit(LineKeyValue, depth, key, node.Scalar()+tail)
		} else {
			w.emit(LinePlain, depth, "", node.Scalar()+tail)
		}
		return
	}

	open, closing, closeKind := "{", "}", LineBrace
	if node.Kind == jsondoc.Array {
		open, closing, closeKind = "[", "]", LineBracket
	}
	if key != "" {
		w.emit(LineKeyValue, depth, key, open)
	} else {
		w.emit(closeKind, depth, "", open)
	}

	if node.Kind == jsondoc.Object {
		for i, m := range node.Members {
			w.value(m.Value, depth+1, jsondoc.Quote(m.Key), i < len(node.Members)-1)
		}
	} else {
		for i, item := range node.Items {
			w.value(item, depth+1, "", i < len(node.Items)-1)
		}
	}
	w.emit(closeKind, depth, "", closing+tail)
}
