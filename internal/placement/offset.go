package placement

import "github.com/grindlemire/floatui/internal/geom"

// OffsetOptions configures Offset.
type OffsetOptions struct {
	// MainAxis is the gap between reference and floating element (sideOffset).
	MainAxis float64
	// CrossAxis skids the floating element along the alignment axis
	// (alignOffset). Positive values move toward the end in LTR.
	CrossAxis float64
	// AlignmentAxis, when set, replaces CrossAxis for aligned placements and
	// is negated for end alignment so it always points away from the edge.
	AlignmentAxis *float64
}

// Offset moves the floating element away from the reference and along it.
func Offset(opts OffsetOptions) Middleware {
	return Middleware{
		Name: "offset",
		Fn: func(s *State) *Reset {
			// An arrow alignment reset already carries this offset.
			if d := s.Data.Offset; d != nil && d.Placement == s.Placement &&
				s.Data.Arrow != nil && s.Data.Arrow.AlignmentOffset != 0 {
				return nil
			}

			mainMulti := 1.0
			if s.Placement.Side.isOrigin() {
				mainMulti = -1
			}
			crossMulti := 1.0
			isVertical := s.Placement.SideAxis() == geom.AxisY
			if s.RTL && isVertical {
				crossMulti = -1
			}

			cross := opts.CrossAxis
			if opts.AlignmentAxis != nil && s.Placement.Align != AlignCenter {
				cross = *opts.AlignmentAxis
				if s.Placement.Align == AlignEnd {
					cross = -cross
				}
			}

			var dx, dy float64
			if isVertical {
				dx, dy = cross*crossMulti, opts.MainAxis*mainMulti
			} else {
				dx, dy = opts.MainAxis*mainMulti, cross*crossMulti
			}
			s.X += dx
			s.Y += dy
			s.Data.Offset = &OffsetData{X: dx, Y: dy, Placement: s.Placement}
			return nil
		},
	}
}
