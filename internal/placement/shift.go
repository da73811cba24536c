package placement

import "github.com/grindlemire/floatui/internal/geom"

// Limiter constrains the coordinates Shift settled on.
type Limiter func(s *State, x, y float64) (float64, float64)

// ShiftOptions configures Shift. The zero value shifts along the alignment
// axis only.
type ShiftOptions struct {
	SkipMainAxis bool
	// CrossAxis also shifts along the side axis, letting the floating element
	// overlap the reference.
	CrossAxis    bool
	Limiter      Limiter
	Padding      geom.Edges
	Boundary     Boundary
	RootBoundary RootBoundary
}

// Shift slides the floating element along the reference so it stays inside
// the boundary minus padding. It never changes the side.
func Shift(opts ShiftOptions) Middleware {
	return Middleware{
		Name: "shift",
		Fn: func(s *State) *Reset {
			x0, y0 := s.X, s.Y
			sideAxis := s.Placement.SideAxis()
			alignAxis := sideAxis.Other()

			overflow := DetectOverflow(s, OverflowOptions{
				Boundary:     opts.Boundary,
				RootBoundary: opts.RootBoundary,
				Padding:      opts.Padding,
			})

			x, y := s.X, s.Y
			clampAxis := func(axis geom.Axis) {
				coord := s.Coord(axis)
				lo, hi := overflow.Left, overflow.Right
				if axis == geom.AxisY {
					lo, hi = overflow.Top, overflow.Bottom
				}
				v := geom.Clamp(coord+lo, coord, coord-hi)
				if axis == geom.AxisX {
					x = v
				} else {
					y = v
				}
			}
			if !opts.SkipMainAxis {
				clampAxis(alignAxis)
			}
			if opts.CrossAxis {
				clampAxis(sideAxis)
			}

			if opts.Limiter != nil {
				x, y = opts.Limiter(s, x, y)
			}
			s.X, s.Y = x, y
			s.Data.Shift = &ShiftData{
				X:        x - x0,
				Y:        y - y0,
				EnabledX: (alignAxis == geom.AxisX && !opts.SkipMainAxis) || (sideAxis == geom.AxisX && opts.CrossAxis),
				EnabledY: (alignAxis == geom.AxisY && !opts.SkipMainAxis) || (sideAxis == geom.AxisY && opts.CrossAxis),
			}
			return nil
		},
	}
}

// LimitShiftOptions configures LimitShift. The zero value limits along the
// alignment axis and the side axis.
type LimitShiftOptions struct {
	// Offset keeps this much of the floating element overlapping the
	// reference on the alignment axis.
	Offset        float64
	SkipMainAxis  bool
	SkipCrossAxis bool
}

// LimitShift stops Shift from detaching the floating element from the
// reference: it may slide only until its far edge meets the reference edge.
func LimitShift(opts LimitShiftOptions) Limiter {
	return func(s *State, x, y float64) (float64, float64) {
		ref, fl := s.Rects.Reference, s.Rects.Floating
		sideAxis := s.Placement.SideAxis()
		alignAxis := sideAxis.Other()
		coords := map[geom.Axis]float64{geom.AxisX: x, geom.AxisY: y}

		if !opts.SkipMainAxis {
			lo := ref.Start(alignAxis) - fl.Length(alignAxis) + opts.Offset
			hi := ref.End(alignAxis) - opts.Offset
			coords[alignAxis] = geom.Clamp(lo, coords[alignAxis], hi)
		}
		if !opts.SkipCrossAxis {
			var offset float64
			if d := s.Data.Offset; d != nil {
				if sideAxis == geom.AxisX {
					offset = d.X
				} else {
					offset = d.Y
				}
			}
			lo := ref.Start(sideAxis) - fl.Length(sideAxis)
			hi := ref.End(sideAxis)
			if s.Placement.Side.isOrigin() {
				lo += offset
			} else {
				hi += offset
			}
			coords[sideAxis] = geom.Clamp(lo, coords[sideAxis], hi)
		}
		return coords[geom.AxisX], coords[geom.AxisY]
	}
}
