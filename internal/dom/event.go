package dom

// EventType identifies a kind of event.
type EventType int

const (
	EventPointerDown EventType = iota
	EventPointerUp
	EventPointerMove
	EventPointerEnter
	EventPointerLeave
	EventClick
	EventContextMenu
	EventKeyDown
	EventFocus
	EventBlur
	EventFocusIn
	EventFocusOut
	EventScroll
)

var eventTypeNames = [...]string{
	EventPointerDown:  "pointerdown",
	EventPointerUp:    "pointerup",
	EventPointerMove:  "pointermove",
	EventPointerEnter: "pointerenter",
	EventPointerLeave: "pointerleave",
	EventClick:        "click",
	EventContextMenu:  "contextmenu",
	EventKeyDown:      "keydown",
	EventFocus:        "focus",
	EventBlur:         "blur",
	EventFocusIn:      "focusin",
	EventFocusOut:     "focusout",
	EventScroll:       "scroll",
}

// String returns the DOM event name.
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Bubbles reports whether events of this type propagate to ancestors.
func (t EventType) Bubbles() bool {
	switch t {
	case EventPointerEnter, EventPointerLeave, EventFocus, EventBlur, EventScroll:
		return false
	}
	return true
}

// Event is the interface implemented by every dispatched event.
// Use a type switch to handle specific event types.
type Event interface {
	// Type returns the event type.
	Type() EventType
	// Base returns the shared dispatch state.
	Base() *EventBase
}

// EventBase carries dispatch state shared by all event kinds.
type EventBase struct {
	// Target is the node the event was dispatched to.
	Target *Node
	// CurrentTarget is the node whose listener is running.
	CurrentTarget *Node

	typ              EventType
	stopped          bool
	defaultPrevented bool
}

// Base returns the receiver, so EventBase satisfies part of Event when embedded.
func (b *EventBase) Base() *EventBase { return b }

// Type returns the event type.
func (b *EventBase) Type() EventType { return b.typ }

// StopPropagation prevents listeners on further nodes from running.
func (b *EventBase) StopPropagation() { b.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (b *EventBase) PropagationStopped() bool { return b.stopped }

// PreventDefault marks the event's default action as cancelled.
func (b *EventBase) PreventDefault() { b.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (b *EventBase) DefaultPrevented() bool { return b.defaultPrevented }

// MouseButton represents which mouse button was involved in an event.
type MouseButton int

const (
	// MouseLeft is the left (primary) mouse button.
	MouseLeft MouseButton = iota
	// MouseMiddle is the middle mouse button (scroll wheel click).
	MouseMiddle
	// MouseRight is the right (secondary) mouse button.
	MouseRight
	// MouseNone indicates no button (used for motion events).
	MouseNone
)

// PointerType is the input device behind a pointer event.
type PointerType int

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

// String returns the DOM pointerType name.
func (p PointerType) String() string {
	switch p {
	case PointerTouch:
		return "touch"
	case PointerPen:
		return "pen"
	default:
		return "mouse"
	}
}

// PointerEvent represents pointer input (press, release, motion, enter, leave, click).
type PointerEvent struct {
	EventBase
	// X is the viewport column/pixel position.
	X float64
	// Y is the viewport row/pixel position.
	Y float64
	// Button is which mouse button was involved.
	Button MouseButton
	// PointerType is the device that produced the event.
	PointerType PointerType
	// Mod contains modifier flags (Ctrl, Alt, Shift).
	Mod Modifier
	// RelatedTarget is the node the pointer came from (enter) or went to (leave).
	RelatedTarget *Node
}

// KeyEvent represents a keyboard input event.
type KeyEvent struct {
	EventBase
	// Key is the key pressed. For printable characters, this is KeyRune.
	Key Key
	// Rune is the character for KeyRune events. Zero for special keys.
	Rune rune
	// Mod contains modifier flags (Ctrl, Alt, Shift).
	Mod Modifier
}

// IsRune returns true if this is a printable character event.
func (e *KeyEvent) IsRune() bool {
	return e.Key == KeyRune
}

// Char returns the rune if this is a KeyRune event, or 0 otherwise.
func (e *KeyEvent) Char() rune {
	if e.Key == KeyRune {
		return e.Rune
	}
	if e.Key == KeySpace {
		return ' '
	}
	return 0
}

// FocusEvent represents focus moving between nodes.
type FocusEvent struct {
	EventBase
	// RelatedTarget is the node losing focus (focus) or gaining it (blur).
	RelatedTarget *Node
	// Visible is true when the focus came from the keyboard, the equivalent
	// of :focus-visible. Pointer-origin focus has Visible false.
	Visible bool
}

// ScrollEvent is dispatched to a scroll container, or to the document when the
// viewport scrolls.
type ScrollEvent struct {
	EventBase
}

// NewPointerEvent creates a pointer event of the given type.
func NewPointerEvent(typ EventType, x, y float64) *PointerEvent {
	return &PointerEvent{EventBase: EventBase{typ: typ}, X: x, Y: y, Button: MouseNone}
}

// NewKeyEvent creates a keydown event.
func NewKeyEvent(key Key, r rune, mod Modifier) *KeyEvent {
	return &KeyEvent{EventBase: EventBase{typ: EventKeyDown}, Key: key, Rune: r, Mod: mod}
}

// RuneKey creates a keydown event for a printable character.
func RuneKey(r rune) *KeyEvent {
	return NewKeyEvent(KeyRune, r, ModNone)
}
