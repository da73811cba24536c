// Package openstate holds the open/closed state machine every popup shares.
//
// A Controller moves through Closed, Opening, Open and Closing. Interaction
// hooks never write the state; they call RequestOpen and RequestClose with a
// Reason, which consumers can veto before anything changes.
package openstate

import "fmt"

// State is the lifecycle state of a popup.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsOpen reports whether the popup is visible or becoming visible.
func (s State) IsOpen() bool {
	return s == Opening || s == Open
}

// Transitioning reports whether an enter or exit transition is in flight.
func (s State) Transitioning() bool {
	return s == Opening || s == Closing
}

// Reason says why an open or close was requested. The set is closed.
type Reason string

const (
	ReasonHover          Reason = "hover"
	ReasonFocus          Reason = "focus"
	ReasonClick          Reason = "click"
	ReasonEscapeKey      Reason = "escape-key"
	ReasonOutsidePress   Reason = "outside-press"
	ReasonProgrammatic   Reason = "programmatic"
	ReasonListNavigation Reason = "list-navigation"
	ReasonAncestorScroll Reason = "ancestor-scroll"
	ReasonFocusOut       Reason = "focus-out"
)

// Reasons lists every valid reason.
var Reasons = []Reason{
	ReasonHover,
	ReasonFocus,
	ReasonClick,
	ReasonEscapeKey,
	ReasonOutsidePress,
	ReasonProgrammatic,
	ReasonListNavigation,
	ReasonAncestorScroll,
	ReasonFocusOut,
}

// Valid reports whether r is one of the defined reasons.
func (r Reason) Valid() bool {
	for _, v := range Reasons {
		if r == v {
			return true
		}
	}
	return false
}

// String returns the reason value.
func (r Reason) String() string {
	return string(r)
}
