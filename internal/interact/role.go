package interact

import (
	"strconv"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
)

// Role is the ARIA pattern a popup follows.
type Role string

const (
	RoleTooltip     Role = "tooltip"
	RoleDialog      Role = "dialog"
	RoleAlertDialog Role = "alertdialog"
	RoleMenu        Role = "menu"
	RoleListbox     Role = "listbox"
	RoleSelect      Role = "select"
	RoleLabel       Role = "label"
)

// floatingRole returns the role attribute for the floating element.
func (r Role) floatingRole() string {
	switch r {
	case RoleSelect:
		return "listbox"
	case RoleLabel:
		return ""
	}
	return string(r)
}

// hasPopup returns the aria-haspopup value for the trigger, or "".
func (r Role) hasPopup() string {
	switch r {
	case RoleMenu:
		return "menu"
	case RoleListbox, RoleSelect:
		return "listbox"
	case RoleDialog, RoleAlertDialog:
		return "dialog"
	}
	return ""
}

// describes reports whether the trigger is described by, rather than
// controlling, the floating element.
func (r Role) describes() bool {
	return r == RoleTooltip || r == RoleLabel
}

// UseRole writes the ARIA attributes for role onto the trigger and the
// floating element and keeps the open-dependent ones current. The returned
// Cancel removes every attribute it set.
func UseRole(ctx *Context, role Role) loop.Cancel {
	trigger, floating := ctx.trigger, ctx.floating

	floating.SetAttr("id", ctx.id)
	if fr := role.floatingRole(); fr != "" {
		floating.SetAttr("role", fr)
	}
	if hp := role.hasPopup(); hp != "" {
		trigger.SetAttr("aria-haspopup", hp)
	}
	if role == RoleSelect {
		trigger.SetAttr("role", "combobox")
	}

	sync := func(open bool) {
		if role.describes() {
			if open {
				trigger.SetAttr("aria-describedby", ctx.id)
			} else {
				trigger.RemoveAttr("aria-describedby")
			}
			return
		}
		trigger.SetAttr("aria-expanded", strconv.FormatBool(open))
		if open {
			trigger.SetAttr("aria-controls", ctx.id)
		} else {
			trigger.RemoveAttr("aria-controls")
		}
	}
	sync(ctx.ctrl.Open())

	unsub := ctx.ctrl.Subscribe(func(ch openstate.Change) {
		sync(ch.To.IsOpen())
	})

	return ctx.Own(loop.Once(func() {
		unsub()
		for _, a := range []string{"aria-haspopup", "aria-expanded", "aria-controls", "aria-describedby"} {
			trigger.RemoveAttr(a)
		}
		if role == RoleSelect {
			trigger.RemoveAttr("role")
		}
		floating.RemoveAttr("role")
		floating.RemoveAttr("id")
	}))
}

// ItemProps are the attributes of one item inside a menu or listbox.
type ItemProps struct {
	Role     string
	Selected bool
	Active   bool
	Disabled bool
}

// ItemPropsFor returns the item role for a popup role.
func ItemPropsFor(role Role, selected, active, disabled bool) ItemProps {
	item := "option"
	if role == RoleMenu {
		item = "menuitem"
	}
	return ItemProps{Role: item, Selected: selected, Active: active, Disabled: disabled}
}

// Apply writes the props to n.
func (p ItemProps) Apply(n *dom.Node) {
	n.SetAttr("role", p.Role)
	if p.Role == "option" {
		n.SetAttr("aria-selected", strconv.FormatBool(p.Selected))
	}
	if p.Disabled {
		n.SetAttr("aria-disabled", "true")
	} else {
		n.RemoveAttr("aria-disabled")
	}
	if p.Active {
		n.SetAttr("data-highlighted", "")
	} else {
		n.RemoveAttr("data-highlighted")
	}
}
