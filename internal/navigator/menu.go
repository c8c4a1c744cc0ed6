package navigator

import "github.com/oakwood-commons/nmosnav/internal/formatter"

// MenuState is the cursor over one collection screen.
type MenuState struct {
	labels []string
	index  int
}

// NewMenu builds the menu for a collection: its options followed by Exit.
func NewMenu(options []string) *MenuState {
	return &MenuState{labels: formatter.MenuLabels(options)}
}

// Up moves the cursor one row up, wrapping from the first row to the last.
func (m *MenuState) Up() {
	n := len(m.labels)
	m.index = (m.index - 1 + n) % n
}

// Down moves the cursor one row down, wrapping from the last row to the first.
func (m *MenuState) Down() {
	m.index = (m.index + 1) % len(m.labels)
}

func (m *MenuState) Index() int       { return m.index }
func (m *MenuState) Labels() []string { return m.labels }
func (m *MenuState) Selected() string { return m.labels[m.index] }

// IsExit reports whether the cursor sits on the Exit row.
func (m *MenuState) IsExit() bool {
	return m.Selected() == formatter.ExitLabel
}
