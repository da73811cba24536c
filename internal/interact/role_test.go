package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grindlemire/floatui/internal/openstate"
)

func TestUseRole(t *testing.T) {
	type tc struct {
		role         Role
		floatingRole string
		closed       map[string]string
		open         map[string]string
	}

	tests := map[string]tc{
		"menu": {
			role:         RoleMenu,
			floatingRole: "menu",
			closed:       map[string]string{"aria-haspopup": "menu", "aria-expanded": "false"},
			open:         map[string]string{"aria-haspopup": "menu", "aria-expanded": "true", "aria-controls": "pop"},
		},
		"dialog": {
			role:         RoleDialog,
			floatingRole: "dialog",
			closed:       map[string]string{"aria-haspopup": "dialog", "aria-expanded": "false"},
			open:         map[string]string{"aria-haspopup": "dialog", "aria-expanded": "true", "aria-controls": "pop"},
		},
		"select": {
			role:         RoleSelect,
			floatingRole: "listbox",
			closed:       map[string]string{"role": "combobox", "aria-haspopup": "listbox", "aria-expanded": "false"},
			open:         map[string]string{"role": "combobox", "aria-haspopup": "listbox", "aria-expanded": "true", "aria-controls": "pop"},
		},
		"tooltip": {
			role:         RoleTooltip,
			floatingRole: "tooltip",
			closed:       map[string]string{},
			open:         map[string]string{"aria-describedby": "pop"},
		},
		"label": {
			role:   RoleLabel,
			closed: map[string]string{},
			open:   map[string]string{"aria-describedby": "pop"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, WithID("pop"))
			cancel := UseRole(f.ctx, tt.role)

			id, _ := f.floating.Attr("id")
			assert.Equal(t, "pop", id)
			role, _ := f.floating.Attr("role")
			assert.Equal(t, tt.floatingRole, role)
			assert.Equal(t, tt.closed, f.trigger.Attrs())

			openNow(f.ctx)
			assert.Equal(t, tt.open, f.trigger.Attrs())

			f.ctrl.RequestClose(openstate.ReasonProgrammatic, nil)
			assert.Equal(t, tt.closed, f.trigger.Attrs())

			cancel()
			assert.Empty(t, f.trigger.Attrs())
			assert.Empty(t, f.floating.Attrs())
		})
	}
}

func TestItemProps(t *testing.T) {
	type tc struct {
		props    ItemProps
		expected map[string]string
	}

	tests := map[string]tc{
		"menu item": {
			props:    ItemPropsFor(RoleMenu, false, false, false),
			expected: map[string]string{"role": "menuitem"},
		},
		"selected option": {
			props:    ItemPropsFor(RoleListbox, true, true, false),
			expected: map[string]string{"role": "option", "aria-selected": "true", "data-highlighted": ""},
		},
		"disabled option": {
			props:    ItemPropsFor(RoleSelect, false, false, true),
			expected: map[string]string{"role": "option", "aria-selected": "false", "aria-disabled": "true"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			n := f.doc.CreateElement("item")
			n.SetAttr("data-highlighted", "")
			tt.props.Apply(n)
			assert.Equal(t, tt.expected, n.Attrs())
		})
	}
}
