package listnav

import "github.com/grindlemire/floatui/internal/dom"

// KeyMap is a list of key bindings. It is a value computed for the current
// state, not a registration.
type KeyMap []KeyBinding

// KeyBinding associates a key pattern with a handler.
type KeyBinding struct {
	Pattern KeyPattern
	Handler func(*dom.KeyEvent)
	Stop    bool // If true, the event is consumed and stops propagating
}

// KeyPattern identifies which key events match a binding.
type KeyPattern struct {
	Key           dom.Key      // Specific key, or 0
	Rune          rune         // Specific rune, or 0
	AnyRune       bool         // Match any printable character
	Mod           dom.Modifier // Required modifiers (when non-zero, event must have exactly these mods)
	RequireNoMods bool         // When true, event must have no modifiers (Mod field is ignored)
}

// OnKey creates a binding that consumes the key.
func OnKey(key dom.Key, handler func(*dom.KeyEvent)) KeyBinding {
	return KeyBinding{
		Pattern: KeyPattern{Key: key, RequireNoMods: true},
		Handler: handler,
		Stop:    true,
	}
}

// OnRunes creates a binding for all printable characters.
func OnRunes(handler func(*dom.KeyEvent)) KeyBinding {
	return KeyBinding{
		Pattern: KeyPattern{AnyRune: true},
		Handler: handler,
		Stop:    true,
	}
}

func (p KeyPattern) matches(ev *dom.KeyEvent) bool {
	if p.RequireNoMods && ev.Mod != dom.ModNone {
		return false
	}
	if p.Mod != 0 && ev.Mod != p.Mod {
		return false
	}

	if p.AnyRune && ev.Key == dom.KeyRune {
		return true
	}
	if p.Rune != 0 && ev.Rune == p.Rune && ev.Key == dom.KeyRune {
		return true
	}
	if p.Key != 0 && ev.Key == p.Key {
		return true
	}
	return false
}

// Dispatch runs the first binding matching ev and reports whether one did.
// A Stop binding prevents the default action and stops propagation.
func (km KeyMap) Dispatch(ev *dom.KeyEvent) bool {
	for _, b := range km {
		if !b.Pattern.matches(ev) {
			continue
		}
		b.Handler(ev)
		if b.Stop {
			ev.PreventDefault()
			ev.StopPropagation()
		}
		return true
	}
	return false
}
