package placement

import "github.com/grindlemire/floatui/internal/geom"

// ElementContext selects whose clipping context an overflow check uses.
type ElementContext int

const (
	// FloatingElement checks the floating element against its own clipping
	// context (default).
	FloatingElement ElementContext = iota
	// ReferenceElement checks the reference against its clipping context.
	ReferenceElement
)

// Other returns the opposite element context.
func (c ElementContext) Other() ElementContext {
	if c == FloatingElement {
		return ReferenceElement
	}
	return FloatingElement
}

// RootBoundary is the outermost rect overflow is measured against.
type RootBoundary int

const (
	// RootViewport is the visible viewport (default).
	RootViewport RootBoundary = iota
	// RootDocument is the whole scrollable document.
	RootDocument
)

// Boundary lists explicit clipping rects in viewport coordinates. A nil
// Boundary means the clipping ancestors of the element being checked.
type Boundary []geom.Rect

// ClipRequest describes one clipping rect query.
type ClipRequest struct {
	Element  ElementContext
	Boundary Boundary
	Root     RootBoundary
	Strategy Strategy
}

// Platform answers geometry questions the engine cannot answer from rects
// alone.
type Platform interface {
	// ClippingRect returns the region the element in req may occupy: the
	// intersection of its boundary rects and the root boundary. The result
	// may have negative extent when the rects do not overlap.
	ClippingRect(req ClipRequest) geom.Rect
}

// Measurer is implemented by platforms that can re-measure the reference and
// floating element after a middleware changed them (Size.Apply).
type Measurer interface {
	Measure() (Rects, bool)
}

// Static is a Platform with fixed clipping rects for hosts without a node
// tree. Zero Document and Reference fall back to Viewport.
type Static struct {
	Viewport geom.Rect
	// Document is the scrollable document rect used by RootDocument.
	Document geom.Rect
	// Reference is the clip of the reference's own ancestors, used by Hide.
	Reference geom.Rect
}

var _ Platform = Static{}

// ClippingRect intersects the boundary rects with the root rect.
func (p Static) ClippingRect(req ClipRequest) geom.Rect {
	root := p.Viewport
	if req.Root == RootDocument && !p.Document.IsEmpty() {
		root = p.Document
	}
	rects := req.Boundary
	if rects == nil && req.Element == ReferenceElement && !p.Reference.IsEmpty() {
		rects = Boundary{p.Reference}
	}
	out := root
	for _, r := range rects {
		out = out.Clip(r)
	}
	return out
}

// unbounded stands in when Config.Platform is nil.
var unbounded = Static{Viewport: geom.NewRect(-1e9, -1e9, 2e9, 2e9)}
