package formatter

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	defaultKeyColor     = lipgloss.Color("#61AFEF")
	defaultValueColor   = lipgloss.Color("#98C379")
	defaultBraceColor   = lipgloss.Color("#E5C07B")
	defaultBracketColor = lipgloss.Color("#C678DD")
	defaultHeaderColor  = lipgloss.Color("#56B6C2")
	defaultCursorColor  = lipgloss.Color("#E06C75")
	defaultNoticeColor  = lipgloss.Color("#ABB2BF")
)

// Palette holds one foreground color per rendered element. Nil fields fall
// back to the built-in 24-bit defaults.
type Palette struct {
	Key     color.Color
	Value   color.Color
	Brace   color.Color
	Bracket color.Color
	Header  color.Color
	Cursor  color.Color
	Notice  color.Color
}

// DefaultPalette returns the built-in colors.
func DefaultPalette() Palette {
	return Palette{}.withDefaults()
}

func (p Palette) withDefaults() Palette {
	if p.Key == nil {
		p.Key = defaultKeyColor
	}
	if p.Value == nil {
		p.Value = defaultValueColor
	}
	if p.Brace == nil {
		p.Brace = defaultBraceColor
	}
	if p.Bracket == nil {
		p.Bracket = defaultBracketColor
	}
	if p.Header == nil {
		p.Header = defaultHeaderColor
	}
	if p.Cursor == nil {
		p.Cursor = defaultCursorColor
	}
	if p.Notice == nil {
		p.Notice = defaultNoticeColor
	}
	return p
}

// Styler applies palette colors as foreground escapes. A colorless Styler
// returns text untouched, which is what --no-color and non-TTY output use.
type Styler struct {
	palette   Palette
	colorless bool

	key, value, brace, bracket, header, cursor, notice lipgloss.Style
}

// NewStyler builds a Styler from p, filling unset colors with defaults.
func NewStyler(p Palette, colorless bool) *Styler {
	p = p.withDefaults()
	return &Styler{
		palette:   p,
		colorless: colorless,
		key:       lipgloss.NewStyle().Foreground(p.Key),
		value:     lipgloss.NewStyle().Foreground(p.Value),
		brace:     lipgloss.NewStyle().Foreground(p.Brace),
		bracket:   lipgloss.NewStyle().Foreground(p.Bracket),
		header:    lipgloss.NewStyle().Foreground(p.Header).Bold(true),
		cursor:    lipgloss.NewStyle().Foreground(p.Cursor).Bold(true),
		notice:    lipgloss.NewStyle().Foreground(p.Notice),
	}
}

// Palette returns the resolved colors.
func (s *Styler) Palette() Palette { return s.palette }

// Colorless reports whether styling is disabled.
func (s *Styler) Colorless() bool { return s.colorless }

func (s *Styler) render(st lipgloss.Style, text string) string {
	if s.colorless || text == "" {
		return text
	}
	return st.Render(text)
}

func (s *Styler) Key(text string) string     { return s.render(s.key, text) }
func (s *Styler) Value(text string) string   { return s.render(s.value, text) }
func (s *Styler) Brace(text string) string   { return s.render(s.brace, text) }
func (s *Styler) Bracket(text string) string { return s.render(s.bracket, text) }
func (s *Styler) Header(text string) string  { return s.render(s.header, text) }
func (s *Styler) Cursor(text string) string  { return s.render(s.cursor, text) }
func (s *Styler) Notice(text string) string  { return s.render(s.notice, text) }
