package floatui

import (
	"fmt"
	"slices"
	"time"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/interact"
	"github.com/grindlemire/floatui/internal/listnav"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/placement"
)

// Option is a functional option for configuring a Popup or one of the
// components built on it.
type Option func(*config) error

// Interactions selects the hooks a Popup installs. A nil field leaves the
// hook out.
type Interactions struct {
	Hover       *HoverOptions
	Focus       *FocusOptions
	Click       *ClickOptions
	Dismiss     *DismissOptions
	ClientPoint *ClientPointOptions
	// Role writes ARIA attributes when set.
	Role Role
}

type config struct {
	sched     loop.Scheduler
	placement Placement
	strategy  Strategy
	rtl       bool

	sideOffset   float64
	alignOffset  float64
	padding      geom.Edges
	boundary     []*dom.Node
	arrow        *dom.Node
	arrowPadding float64
	layoutSync   bool

	openDelay     *time.Duration
	closeDelay    *time.Duration
	openDuration  time.Duration
	closeDuration time.Duration
	initialOpen   bool

	modal        bool
	dismissible  bool
	onOpenChange func(open bool, d *ChangeDetails)
	interactions Interactions

	kind     string
	tree     *interact.Tree
	parentID string
	group    *interact.DelayGroup

	// list components
	listOpts     []listnav.Option
	onItemSelect func(index int, label string)

	// select
	value         string
	onValueChange func(value string)
	alignItem     bool

	// itemAnchor returns the node to align over the anchor, or nil to use
	// the regular placement pipeline.
	itemAnchor func() *dom.Node
}

func defaultConfig() config {
	return config{
		placement:    Bottom,
		strategy:     Absolute,
		dismissible:  true,
		kind:         "popup",
		interactions: Interactions{Dismiss: &DismissOptions{}},
	}
}

// WithScheduler sets the scheduler timers, frames and transitions run on.
// It is required.
func WithScheduler(s Scheduler) Option {
	return func(c *config) error {
		if s == nil {
			return ErrNoScheduler
		}
		c.sched = s
		return nil
	}
}

// WithPlacement sets the preferred side and alignment. Default is Bottom.
func WithPlacement(p Placement) Option {
	return func(c *config) error {
		if !slices.Contains(placement.AllPlacements, p) {
			return fmt.Errorf("%w: side %d align %d", ErrInvalidPlacement, p.Side, p.Align)
		}
		c.placement = p
		return nil
	}
}

// WithSideOffset sets the gap between the anchor and the popup.
func WithSideOffset(n float64) Option {
	return func(c *config) error {
		c.sideOffset = n
		return nil
	}
}

// WithAlignOffset skids the popup along the anchor's cross axis.
func WithAlignOffset(n float64) Option {
	return func(c *config) error {
		c.alignOffset = n
		return nil
	}
}

// WithCollisionPadding keeps the popup this far inside the collision
// boundary. Negative padding is not allowed.
func WithCollisionPadding(e Edges) Option {
	return func(c *config) error {
		if e.Top < 0 || e.Right < 0 || e.Bottom < 0 || e.Left < 0 {
			return fmt.Errorf("collision padding must be >= 0, got %+v", e)
		}
		c.padding = e
		return nil
	}
}

// WithCollisionBoundary replaces the clipping ancestors with the given
// nodes as the region the popup must stay inside.
func WithCollisionBoundary(nodes ...*dom.Node) Option {
	return func(c *config) error {
		for i, n := range nodes {
			if n == nil {
				return fmt.Errorf("collision boundary %d is nil", i)
			}
		}
		c.boundary = nodes
		return nil
	}
}

// WithOpenDelay sets the hover open delay.
func WithOpenDelay(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return fmt.Errorf("open delay must be >= 0, got %s", d)
		}
		c.openDelay = &d
		return nil
	}
}

// WithCloseDelay sets the hover close delay.
func WithCloseDelay(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return fmt.Errorf("close delay must be >= 0, got %s", d)
		}
		c.closeDelay = &d
		return nil
	}
}

// WithTransitionDurations sets how long Opening and Closing last. Zero
// settles on the next frame.
func WithTransitionDurations(open, close time.Duration) Option {
	return func(c *config) error {
		if open < 0 || close < 0 {
			return fmt.Errorf("transition durations must be >= 0, got %s/%s", open, close)
		}
		c.openDuration, c.closeDuration = open, close
		return nil
	}
}

// WithDefaultOpen starts the popup open.
func WithDefaultOpen(open bool) Option {
	return func(c *config) error {
		c.initialOpen = open
		return nil
	}
}

// WithModal makes presses outside the popup and focus leaving it keep the
// popup open.
func WithModal(modal bool) Option {
	return func(c *config) error {
		c.modal = modal
		return nil
	}
}

// WithDismissible controls whether Escape and outside presses close the
// popup. Default true.
func WithDismissible(dismissible bool) Option {
	return func(c *config) error {
		c.dismissible = dismissible
		return nil
	}
}

// WithArrow positions node as the popup's arrow, kept padding away from the
// popup's corners.
func WithArrow(node *dom.Node, padding float64) Option {
	return func(c *config) error {
		if node == nil {
			return fmt.Errorf("arrow node is nil")
		}
		if padding < 0 {
			return fmt.Errorf("arrow padding must be >= 0, got %v", padding)
		}
		c.arrow = node
		c.arrowPadding = padding
		return nil
	}
}

// WithStrategy sets the positioning strategy. Default is Absolute.
func WithStrategy(s Strategy) Option {
	return func(c *config) error {
		if s != Absolute && s != Fixed {
			return fmt.Errorf("unknown strategy %d", s)
		}
		c.strategy = s
		return nil
	}
}

// WithRTL lays out start and end alignments right to left.
func WithRTL(rtl bool) Option {
	return func(c *config) error {
		c.rtl = rtl
		return nil
	}
}

// WithLayoutSync moves the floating node's layout rect to every computed
// position, for hosts that lay out from the engine instead of from styles.
func WithLayoutSync() Option {
	return func(c *config) error {
		c.layoutSync = true
		return nil
	}
}

// WithTree places the popup in tree as a root popup.
func WithTree(tree *Tree) Option {
	return func(c *config) error {
		if tree == nil {
			return fmt.Errorf("tree is nil")
		}
		c.tree = tree
		c.parentID = ""
		return nil
	}
}

// WithParent nests the popup under parent: it shares parent's tree, closes
// with it and counts as inside it for outside presses.
func WithParent(parent *Popup) Option {
	return func(c *config) error {
		if parent == nil {
			return fmt.Errorf("parent popup is nil")
		}
		c.tree = parent.Tree()
		c.parentID = parent.ID()
		return nil
	}
}

// WithDelayGroup shares hover open delays with the group's other members.
func WithDelayGroup(g *DelayGroup) Option {
	return func(c *config) error {
		c.group = g
		return nil
	}
}

// WithOnOpenChange is called before every open or close. Calling
// d.Cancel keeps the current state.
func WithOnOpenChange(fn func(open bool, d *ChangeDetails)) Option {
	return func(c *config) error {
		c.onOpenChange = fn
		return nil
	}
}

// WithInteractions replaces the set of interaction hooks. The default is
// dismiss only.
func WithInteractions(in Interactions) Option {
	return func(c *config) error {
		c.interactions = in
		return nil
	}
}

// WithKind names the popup type. Popups of one kind share a dismiss stack,
// so Escape closes the innermost of them first.
func WithKind(kind string) Option {
	return func(c *config) error {
		if kind == "" {
			return fmt.Errorf("kind must not be empty")
		}
		c.kind = kind
		return nil
	}
}

// WithListNavigation configures the list navigation of a Menu or Select.
func WithListNavigation(opts ...ListOption) Option {
	return func(c *config) error {
		c.listOpts = append(c.listOpts, opts...)
		return nil
	}
}

// WithOnItemSelect is called when a Menu item is chosen by click, Enter or
// Space. Submenus inherit it from their parent unless they set their own.
func WithOnItemSelect(fn func(index int, label string)) Option {
	return func(c *config) error {
		c.onItemSelect = fn
		return nil
	}
}

// WithValue sets the initially selected value of a Select.
func WithValue(v string) Option {
	return func(c *config) error {
		c.value = v
		return nil
	}
}

// WithOnValueChange is called when a Select's value changes.
func WithOnValueChange(fn func(value string)) Option {
	return func(c *config) error {
		c.onValueChange = fn
		return nil
	}
}

// WithAlignItemToTrigger overlays a Select's selected option on its
// trigger instead of placing the list beside it.
func WithAlignItemToTrigger(align bool) Option {
	return func(c *config) error {
		c.alignItem = align
		return nil
	}
}
