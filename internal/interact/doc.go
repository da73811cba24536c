// Package interact wires user input to a popup's open state.
//
// Each hook (UseHover, UseFocus, UseClick, UseDismiss, UseRole,
// UseClientPoint) registers its own listeners on the document tree and
// returns a disposer. Hooks only request transitions from the shared
// openstate.Controller; none of them writes state directly, and a hook that
// panics inside its handler does not stop its siblings.
package interact
