package floatui

import (
	"time"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/interact"
	"github.com/grindlemire/floatui/internal/openstate"
)

// DefaultTooltipDelay is the hover open delay of a tooltip outside a warm
// delay group.
const DefaultTooltipDelay = 600 * time.Millisecond

// Tooltip describes its trigger. It opens on hover after a delay and on
// keyboard focus, stays open while the pointer crosses to it, and closes
// when the trigger is pressed.
type Tooltip struct {
	*Popup
}

// NewTooltip creates a tooltip above trigger. Pass WithDelayGroup to let
// neighbouring tooltips open instantly once one is showing.
func NewTooltip(doc *dom.Document, trigger, floating *dom.Node, opts ...Option) (*Tooltip, error) {
	cfg := defaultConfig()
	cfg.kind = "tooltip"
	cfg.placement = Top
	delay := DefaultTooltipDelay
	cfg.openDelay = &delay
	cfg.interactions = Interactions{
		Hover:   &HoverOptions{SafePolygon: interact.NewSafePolygon(SafePolygonOptions{})},
		Focus:   &FocusOptions{},
		Dismiss: &DismissOptions{},
		Role:    RoleTooltip,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	p, err := newPopup(doc, trigger, floating, cfg)
	if err != nil {
		return nil, err
	}
	p.own(trigger.AddEventListener(dom.EventPointerDown, func(e dom.Event) {
		p.ctrl.RequestClose(openstate.ReasonClick, e)
	}))
	return &Tooltip{Popup: p}, nil
}

// MustNewTooltip is like NewTooltip but panics on error.
func MustNewTooltip(doc *dom.Document, trigger, floating *dom.Node, opts ...Option) *Tooltip {
	t, err := NewTooltip(doc, trigger, floating, opts...)
	if err != nil {
		panic(err)
	}
	return t
}
