// types.go re-exports the engine's types from the internal packages.
// Any changes to the internal types must be mirrored here.
package floatui

import (
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/interact"
	"github.com/grindlemire/floatui/internal/listnav"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
	"github.com/grindlemire/floatui/internal/placement"
)

// Rect is a rectangle in viewport coordinates.
type Rect = geom.Rect

// Point is an x/y coordinate.
type Point = geom.Point

// Size is a width/height pair.
type Size = geom.Size

// Edges is padding on four sides (top, right, bottom, left).
type Edges = geom.Edges

// EdgeAll returns equal padding on every side.
func EdgeAll(n float64) Edges {
	return geom.EdgeAll(n)
}

// Side is the edge of the anchor a popup sits against.
type Side = placement.Side

const (
	SideTop    = placement.SideTop
	SideRight  = placement.SideRight
	SideBottom = placement.SideBottom
	SideLeft   = placement.SideLeft
)

// Align is the alignment of a popup along the anchor's cross axis.
type Align = placement.Align

const (
	AlignStart  = placement.AlignStart
	AlignCenter = placement.AlignCenter
	AlignEnd    = placement.AlignEnd
)

// Placement is a side plus an alignment.
type Placement = placement.Placement

var (
	Top         = placement.Top
	TopStart    = placement.TopStart
	TopEnd      = placement.TopEnd
	Right       = placement.Right
	RightStart  = placement.RightStart
	RightEnd    = placement.RightEnd
	Bottom      = placement.Bottom
	BottomStart = placement.BottomStart
	BottomEnd   = placement.BottomEnd
	Left        = placement.Left
	LeftStart   = placement.LeftStart
	LeftEnd     = placement.LeftEnd
)

// ParsePlacement parses "bottom", "top-start", "left-end" and so on.
func ParsePlacement(s string) (Placement, error) {
	return placement.ParsePlacement(s)
}

// Strategy is the CSS positioning strategy a popup is laid out with.
type Strategy = placement.Strategy

const (
	Absolute = placement.Absolute
	Fixed    = placement.Fixed
)

// State is the lifecycle state of a popup.
type State = openstate.State

const (
	Closed  = openstate.Closed
	Opening = openstate.Opening
	Open    = openstate.Open
	Closing = openstate.Closing
)

// Reason says why a popup opened or closed.
type Reason = openstate.Reason

const (
	ReasonHover          = openstate.ReasonHover
	ReasonFocus          = openstate.ReasonFocus
	ReasonClick          = openstate.ReasonClick
	ReasonEscapeKey      = openstate.ReasonEscapeKey
	ReasonOutsidePress   = openstate.ReasonOutsidePress
	ReasonProgrammatic   = openstate.ReasonProgrammatic
	ReasonListNavigation = openstate.ReasonListNavigation
	ReasonAncestorScroll = openstate.ReasonAncestorScroll
	ReasonFocusOut       = openstate.ReasonFocusOut
)

// ChangeDetails is passed to WithOnOpenChange. Calling Cancel vetoes the
// change.
type ChangeDetails = openstate.ChangeDetails

// Change is one state change delivered to Subscribe.
type Change = openstate.Change

// Cancel undoes a registration. Calling it more than once is a no-op.
type Cancel = loop.Cancel

// Scheduler supplies time, timers and frames to the engine.
type Scheduler = loop.Scheduler

// Document, Node and the references a popup can anchor to.
type (
	Document       = dom.Document
	Node           = dom.Node
	Reference      = dom.Reference
	VirtualElement = dom.VirtualElement
	PointAnchor    = dom.PointAnchor
)

// Interaction hook options.
type (
	HoverOptions       = interact.HoverOptions
	FocusOptions       = interact.FocusOptions
	ClickOptions       = interact.ClickOptions
	DismissOptions     = interact.DismissOptions
	ClientPointOptions = interact.ClientPointOptions
	SafePolygonOptions = interact.SafePolygonOptions
	GroupOptions       = interact.GroupOptions
	Role               = interact.Role
)

const (
	RoleTooltip     = interact.RoleTooltip
	RoleDialog      = interact.RoleDialog
	RoleAlertDialog = interact.RoleAlertDialog
	RoleMenu        = interact.RoleMenu
	RoleListbox     = interact.RoleListbox
	RoleSelect      = interact.RoleSelect
	RoleLabel       = interact.RoleLabel
)

// SafePolygon keeps a hover popup open while the pointer crosses to it.
type SafePolygon = interact.SafePolygon

// NewSafePolygon creates a SafePolygon. Each popup needs its own.
func NewSafePolygon(opts SafePolygonOptions) *SafePolygon {
	return interact.NewSafePolygon(opts)
}

// DelayGroup lets sibling hover popups skip the open delay once one of them
// is open.
type DelayGroup = interact.DelayGroup

// NewDelayGroup creates a DelayGroup timed on sched.
func NewDelayGroup(sched Scheduler, opts GroupOptions) *DelayGroup {
	return interact.NewDelayGroup(sched, opts)
}

// Tree links nested popups.
type Tree = interact.Tree

// NewTree creates an empty popup tree.
func NewTree() *Tree {
	return interact.NewTree()
}

// ListOption configures the list navigation of a Menu or Select.
type ListOption = listnav.Option

// Orientation is the arrow-key axis of a list.
type Orientation = listnav.Orientation

const (
	Vertical   = listnav.Vertical
	Horizontal = listnav.Horizontal
	Both       = listnav.Both
)

// DefaultTypeaheadTimeout is how long typed characters accumulate into one
// typeahead query.
const DefaultTypeaheadTimeout = listnav.DefaultTypeaheadTimeout

// List navigation options.
var (
	ListLoop             = listnav.WithLoop
	ListOrientation      = listnav.WithOrientation
	ListRTL              = listnav.WithRTL
	ListTypeaheadTimeout = listnav.WithTypeaheadTimeout
	ListWithoutTypeahead = listnav.WithoutTypeahead
	ListDisabledIndices  = listnav.WithDisabledIndices
)
