package placement

import "github.com/grindlemire/floatui/internal/geom"

// OverflowOptions configures DetectOverflow.
type OverflowOptions struct {
	Boundary       Boundary
	RootBoundary   RootBoundary
	ElementContext ElementContext
	// AltBoundary checks the element against the other element's clipping
	// context.
	AltBoundary bool
	Padding     geom.Edges
}

// DetectOverflow returns how far the element overflows its clipping rect on
// each side. Positive values overflow; negative values are room to spare.
// Padding shrinks the clipping rect.
func DetectOverflow(s *State, opts OverflowOptions) geom.Edges {
	clipFor := opts.ElementContext
	if opts.AltBoundary {
		clipFor = clipFor.Other()
	}
	clip := s.Platform.ClippingRect(ClipRequest{
		Element:  clipFor,
		Boundary: opts.Boundary,
		Root:     opts.RootBoundary,
		Strategy: s.Strategy,
	})

	rect := s.FloatingRect()
	if opts.ElementContext == ReferenceElement {
		rect = s.Rects.Reference
	}

	return geom.Edges{
		Top:    clip.Y - rect.Y + opts.Padding.Top,
		Right:  rect.Right() - clip.Right() + opts.Padding.Right,
		Bottom: rect.Bottom() - clip.Bottom() + opts.Padding.Bottom,
		Left:   clip.X - rect.X + opts.Padding.Left,
	}
}

// alignmentSides returns the pair of cross-axis sides Flip and AutoPlacement
// check for an aligned placement: the side the floating element grows toward
// first, then its opposite.
func alignmentSides(p Placement, rects Rects, rtl bool) (Side, Side) {
	axis := p.AlignmentAxis()
	var main Side
	if axis == geom.AxisX {
		startAlign := AlignStart
		if rtl {
			startAlign = AlignEnd
		}
		main = SideLeft
		if p.Align == startAlign {
			main = SideRight
		}
	} else {
		main = SideTop
		if p.Align == AlignStart {
			main = SideBottom
		}
	}
	if rects.Reference.Length(axis) > rects.Floating.Length(axis) {
		main = main.Opposite()
	}
	return main, main.Opposite()
}
