package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/breakout/internal/core"
)

// Terminals report key presses only. A held arrow key produces a burst of
// repeats, so a release is assumed once the repeats stop arriving.
const (
	// Delay before the terminal starts auto-repeating a held key.
	firstRepeatTimeout = 550 * time.Millisecond
	// Gap between two auto-repeats.
	repeatTimeout = 150 * time.Millisecond
)

// KeyMap defines the key bindings for the game.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Launch    key.Binding
	Confirm   key.Binding
	Delete    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Launch, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Launch},
		{k.Confirm, k.Delete, k.Quit, k.ForceQuit},
	}
}

// DefaultKeyMap returns the default bindings. Letters are reserved for
// typing initials, so none is bound.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move right"),
		),
		Launch: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save initials"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Events translates a key message into game events.
func (k KeyMap) Events(msg tea.KeyMsg) []core.Event {
	switch {
	case key.Matches(msg, k.ForceQuit):
		return []core.Event{core.Quit()}
	case key.Matches(msg, k.Quit):
		return []core.Event{core.KeyDown(core.KeyEscape)}
	case key.Matches(msg, k.Left):
		return []core.Event{core.KeyDown(core.KeyLeft)}
	case key.Matches(msg, k.Right):
		return []core.Event{core.KeyDown(core.KeyRight)}
	case key.Matches(msg, k.Launch):
		return []core.Event{core.KeyDown(core.KeySpace)}
	case key.Matches(msg, k.Confirm):
		return []core.Event{core.KeyDown(core.KeyReturn)}
	case key.Matches(msg, k.Delete):
		return []core.Event{core.KeyDown(core.KeyBackspace)}
	}

	if msg.Type == tea.KeyRunes {
		events := make([]core.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, core.Char(r))
		}
		return events
	}
	return nil
}

// heldKeys tracks arrow keys seen as pressed and synthesizes their release.
type heldKeys struct {
	keys map[core.Key]*heldKey
}

type heldKey struct {
	lastSeen  time.Time
	repeating bool
}

func newHeldKeys() *heldKeys {
	return &heldKeys{keys: make(map[core.Key]*heldKey)}
}

// Filter passes events through, dropping auto-repeats of held arrows. A
// new arrow press releases the other arrow, since terminals only repeat
// the most recent key.
func (h *heldKeys) Filter(events []core.Event, now time.Time) []core.Event {
	out := make([]core.Event, 0, len(events))
	for _, ev := range events {
		if ev.Kind != core.EventKeyDown || (ev.Key != core.KeyLeft && ev.Key != core.KeyRight) {
			out = append(out, ev)
			continue
		}

		if k, ok := h.keys[ev.Key]; ok {
			k.lastSeen = now
			k.repeating = true
			continue
		}

		for other := range h.keys {
			delete(h.keys, other)
			out = append(out, core.KeyUp(other))
		}
		h.keys[ev.Key] = &heldKey{lastSeen: now}
		out = append(out, ev)
	}
	return out
}

// Expire releases keys whose repeats have stopped.
func (h *heldKeys) Expire(now time.Time) []core.Event {
	var out []core.Event
	for _, k := range []core.Key{core.KeyLeft, core.KeyRight} {
		held, ok := h.keys[k]
		if !ok {
			continue
		}
		timeout := firstRepeatTimeout
		if held.repeating {
			timeout = repeatTimeout
		}
		if now.Sub(held.lastSeen) > timeout {
			delete(h.keys, k)
			out = append(out, core.KeyUp(k))
		}
	}
	return out
}
