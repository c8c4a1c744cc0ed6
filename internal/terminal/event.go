package terminal

// Event is a decoded key press.
type Event int

const (
	EventUp Event = iota
	EventDown
	EventSelect
	EventBack
	EventInterrupt
)

func (e Event) String() string {
	switch e {
	case EventUp:
		return "up"
	case EventDown:
		return "down"
	case EventSelect:
		return "select"
	case EventBack:
		return "back"
	case EventInterrupt:
		return "interrupt"
	default:
		return "unknown"
	}
}

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
	keyCR     = '\r'
	keyLF     = '\n'
	csiIntro  = '['
	arrowUp   = 'A'
	arrowDown = 'B'
	arrowLeft = 'D'
)
