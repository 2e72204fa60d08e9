package core

// Key identifies a physical key the game reacts to, abstracted from the
// platform's key codes.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
	KeyReturn
	KeyBackspace
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeySpace:
		return "Space"
	case KeyEscape:
		return "Escape"
	case KeyReturn:
		return "Return"
	case KeyBackspace:
		return "Backspace"
	default:
		return "Unknown"
	}
}

// EventKind discriminates input events.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventChar // Printable character entry (for initials)
	EventQuit // Window closed, Ctrl+C, session hangup
)

// Event is one discrete input event. Platforms queue events between
// frames and hand the whole batch to the game once per tick.
type Event struct {
	Kind EventKind
	Key  Key  // Set for EventKeyDown / EventKeyUp
	Rune rune // Set for EventChar
}

// KeyDown builds a key-press event.
func KeyDown(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

// KeyUp builds a key-release event.
func KeyUp(k Key) Event {
	return Event{Kind: EventKeyUp, Key: k}
}

// Char builds a character-entry event.
func Char(r rune) Event {
	return Event{Kind: EventChar, Rune: r}
}

// Quit builds a quit event.
func Quit() Event {
	return Event{Kind: EventQuit}
}

// IsKeyDown reports whether e is a press of k.
func (e Event) IsKeyDown(k Key) bool {
	return e.Kind == EventKeyDown && e.Key == k
}
