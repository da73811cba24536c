package floatui

import (
	"strconv"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/openstate"
	"github.com/grindlemire/floatui/internal/placement"
)

// Attribute and custom property names written to the floating element, the
// anchor and the arrow. Stylesheets select against them.
const (
	AttrOpen          = "data-open"
	AttrClosed        = "data-closed"
	AttrStartingStyle = "data-starting-style"
	AttrEndingStyle   = "data-ending-style"
	AttrSide          = "data-side"
	AttrAlign         = "data-align"
	AttrInstant       = "data-instant"
	AttrAnchorHidden  = "data-anchor-hidden"
	AttrPopupOpen     = "data-popup-open"
	AttrUncentered    = "data-uncentered"

	VarAvailableWidth  = "--available-width"
	VarAvailableHeight = "--available-height"
	VarAnchorWidth     = "--anchor-width"
	VarAnchorHeight    = "--anchor-height"
	VarTransformOrigin = "--transform-origin"
)

// Layout is the computed position of a popup, the same data the popup
// writes as attributes and styles.
type Layout struct {
	// X and Y are the left and top style values for Strategy: relative to
	// the offset parent for Absolute and to the viewport for Fixed.
	X, Y float64
	// Rect is the popup's rect in viewport coordinates.
	Rect      Rect
	Placement Placement
	Strategy  Strategy
	// ItemAligned is set when a Select overlays its selected item on the
	// anchor; Placement then does not describe the popup's side.
	ItemAligned bool

	AvailableWidth  float64
	AvailableHeight float64
	AnchorWidth     float64
	AnchorHeight    float64
	TransformOrigin string

	// Arrow is nil without WithArrow.
	Arrow *ArrowLayout
	// AnchorHidden is set when the anchor is clipped away or detached.
	AnchorHidden bool
	// NoFit is set when no placement fit and the least bad one was used.
	NoFit bool
}

// ArrowLayout positions the arrow relative to the popup.
type ArrowLayout struct {
	X, Y float64
	// Uncentered is set when the arrow could not point at the anchor's
	// center.
	Uncentered bool
}

// Side returns the data-side value: the placement side, or "none" for an
// item-aligned Select.
func (l Layout) Side() string {
	if l.ItemAligned {
		return "none"
	}
	return l.Placement.Side.String()
}

func (p *Popup) layoutFrom(res placement.Computed, ref geom.Rect, size geom.Size) Layout {
	l := Layout{
		X:            res.X,
		Y:            res.Y,
		Rect:         res.Rect(size),
		Placement:    res.Placement,
		Strategy:     res.Strategy,
		ItemAligned:  p.alignedItem() != nil,
		AnchorWidth:  ref.Width,
		AnchorHeight: ref.Height,
	}
	if res.Strategy == placement.Absolute {
		if op := dom.OffsetParent(p.floating); op != nil {
			br := op.BoundingRect()
			sx, sy := op.ScrollOffset()
			l.X, l.Y = res.X-br.X+sx, res.Y-br.Y+sy
		}
	}
	if s := res.Data.Size; s != nil {
		l.AvailableWidth, l.AvailableHeight = s.AvailableWidth, s.AvailableHeight
	}
	if h := res.Data.Hide; h != nil {
		l.AnchorHidden = h.ReferenceHidden
		l.NoFit = h.NoFit
	}
	var arrowSize geom.Size
	if a := res.Data.Arrow; a != nil && p.cfg.arrow != nil {
		arrowSize = p.cfg.arrow.Size()
		l.Arrow = arrowLayout(a, res.Placement.Side, size, arrowSize)
	}
	l.TransformOrigin = transformOrigin(res.Placement.Side, ref, l.Rect, l.Arrow, arrowSize, p.cfg.sideOffset)
	return l
}

// arrowLayout puts the arrow on the popup edge facing the anchor.
func arrowLayout(a *placement.ArrowData, side placement.Side, floating, arrow geom.Size) *ArrowLayout {
	out := &ArrowLayout{Uncentered: a.CenterOffset != 0}
	if a.Axis == geom.AxisX {
		out.X = a.Offset
	} else {
		out.Y = a.Offset
	}
	switch side {
	case placement.SideBottom:
		out.Y = -arrow.Height
	case placement.SideTop:
		out.Y = floating.Height
	case placement.SideRight:
		out.X = -arrow.Width
	case placement.SideLeft:
		out.X = floating.Width
	}
	return out
}

// transformOrigin points at the anchor's center, or the arrow's, from the
// popup edge facing the anchor.
func transformOrigin(side placement.Side, ref, floating geom.Rect, arrow *ArrowLayout, arrowSize geom.Size, gap float64) string {
	c := ref.Center()
	cx, cy := c.X-floating.X, c.Y-floating.Y
	if arrow != nil {
		cx, cy = arrow.X+arrowSize.Width/2, arrow.Y+arrowSize.Height/2
	}
	switch side {
	case placement.SideTop:
		return px(cx) + " " + px(floating.Height+gap)
	case placement.SideRight:
		return px(-gap) + " " + px(cy)
	case placement.SideLeft:
		return px(floating.Width+gap) + " " + px(cy)
	default:
		return px(cx) + " " + px(-gap)
	}
}

func px(v float64) string {
	if v == 0 {
		return "0px"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// applyLayout writes the positional part of the output contract.
func (p *Popup) applyLayout() {
	l, fl := p.layout, p.floating

	fl.SetStyle("position", l.Strategy.String())
	fl.SetStyle("left", px(l.X))
	fl.SetStyle("top", px(l.Y))
	fl.SetStyle(VarAvailableWidth, px(l.AvailableWidth))
	fl.SetStyle(VarAvailableHeight, px(l.AvailableHeight))
	fl.SetStyle(VarAnchorWidth, px(l.AnchorWidth))
	fl.SetStyle(VarAnchorHeight, px(l.AnchorHeight))
	fl.SetStyle(VarTransformOrigin, l.TransformOrigin)

	fl.SetAttr(AttrSide, l.Side())
	fl.SetAttr(AttrAlign, l.Placement.Align.String())
	setFlag(fl, AttrAnchorHidden, l.AnchorHidden)

	if a := p.cfg.arrow; a != nil && l.Arrow != nil {
		a.SetStyle("left", px(l.Arrow.X))
		a.SetStyle("top", px(l.Arrow.Y))
		a.SetAttr(AttrSide, l.Side())
		setFlag(a, AttrUncentered, l.Arrow.Uncentered)
	}

	if p.cfg.layoutSync && p.hasLayout {
		rect := l.Rect
		if fl.Connected() {
			// Layout rects are in document space; keep the node's current
			// scroll translation.
			cur, vis := fl.Layout(), fl.BoundingRect()
			rect = rect.Translate(cur.X-vis.X, cur.Y-vis.Y)
		}
		fl.SetRect(rect)
	}
}

// reflect writes the state part of the output contract.
func (p *Popup) reflect() {
	state := p.ctrl.State()
	fl := p.floating

	setFlag(fl, AttrOpen, state.IsOpen())
	setFlag(fl, AttrClosed, !state.IsOpen())
	setFlag(fl, AttrStartingStyle, state == openstate.Opening)
	setFlag(fl, AttrEndingStyle, state == openstate.Closing)
	if instant := p.ctx.Instant(); instant != "" && state != openstate.Closed {
		fl.SetAttr(AttrInstant, instant)
	} else {
		fl.RemoveAttr(AttrInstant)
	}
	setFlag(p.anchor, AttrPopupOpen, state.IsOpen())
}

func setFlag(n *dom.Node, attr string, on bool) {
	if on {
		n.SetAttr(attr, "")
	} else {
		n.RemoveAttr(attr)
	}
}

// alignItem overlays item on the reference: the popup moves so the item's
// top-left meets the reference's.
func alignItem(item, floating *dom.Node) placement.Middleware {
	return placement.Middleware{
		Name: "alignItem",
		Fn: func(s *placement.State) *placement.Reset {
			il, fl := item.Layout(), floating.Layout()
			s.X = s.Rects.Reference.X - (il.X - fl.X)
			s.Y = s.Rects.Reference.Y - (il.Y - fl.Y)
			return nil
		},
	}
}
