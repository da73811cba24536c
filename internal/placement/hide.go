package placement

import "github.com/grindlemire/floatui/internal/geom"

// HideStrategy selects what Hide checks.
type HideStrategy int

const (
	// ReferenceHidden checks whether the reference is fully clipped.
	ReferenceHidden HideStrategy = iota
	// Escaped checks whether the floating element left the reference's
	// clipping context.
	Escaped
)

// HideOptions configures Hide.
type HideOptions struct {
	Strategy     HideStrategy
	Padding      geom.Edges
	Boundary     Boundary
	RootBoundary RootBoundary
}

// Hide reports visibility problems in Data.Hide without moving anything. Use
// one Hide per strategy; results merge.
func Hide(opts HideOptions) Middleware {
	return Middleware{
		Name: "hide",
		Fn: func(s *State) *Reset {
			base := OverflowOptions{
				Boundary:     opts.Boundary,
				RootBoundary: opts.RootBoundary,
				Padding:      opts.Padding,
			}
			h := s.Data.hide()
			switch opts.Strategy {
			case Escaped:
				base.AltBoundary = true
				offsets := sideOffsets(DetectOverflow(s, base), s.Rects.Floating)
				h.EscapedOffsets = offsets
				h.Escaped = anySideFullyClipped(offsets)
			default:
				base.ElementContext = ReferenceElement
				offsets := sideOffsets(DetectOverflow(s, base), s.Rects.Reference)
				h.ReferenceHiddenOffsets = offsets
				h.ReferenceHidden = anySideFullyClipped(offsets)
			}
			return nil
		},
	}
}

// sideOffsets turns overflow into "how far past fully clipped" per side.
func sideOffsets(overflow geom.Edges, r geom.Rect) geom.Edges {
	return geom.Edges{
		Top:    overflow.Top - r.Height,
		Right:  overflow.Right - r.Width,
		Bottom: overflow.Bottom - r.Height,
		Left:   overflow.Left - r.Width,
	}
}

func anySideFullyClipped(offsets geom.Edges) bool {
	return offsets.Top >= 0 || offsets.Right >= 0 || offsets.Bottom >= 0 || offsets.Left >= 0
}
