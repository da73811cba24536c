package placement

import "github.com/grindlemire/floatui/internal/geom"

// SizeOptions configures Size.
type SizeOptions struct {
	Padding      geom.Edges
	Boundary     Boundary
	RootBoundary RootBoundary
	// Apply receives the available space so the consumer can cap the
	// floating element and scroll its content. It may resize the floating
	// element; a Measurer platform then re-measures and the pipeline resets.
	Apply func(s *State, availableWidth, availableHeight float64)
}

// Size reports how much room the floating element has on its side of the
// reference.
func Size(opts SizeOptions) Middleware {
	return Middleware{
		Name: "size",
		Fn: func(s *State) *Reset {
			overflow := DetectOverflow(s, OverflowOptions{
				Boundary:     opts.Boundary,
				RootBoundary: opts.RootBoundary,
				Padding:      opts.Padding,
			})
			fl := s.Rects.Floating
			isYAxis := s.Placement.SideAxis() == geom.AxisY

			var heightSide, widthSide Side
			if isYAxis {
				heightSide = s.Placement.Side
				endAlign := AlignEnd
				if s.RTL {
					endAlign = AlignStart
				}
				widthSide = SideRight
				if s.Placement.Align == endAlign {
					widthSide = SideLeft
				}
			} else {
				widthSide = s.Placement.Side
				heightSide = SideBottom
				if s.Placement.Align == AlignEnd {
					heightSide = SideTop
				}
			}

			maxHeight := fl.Height - overflow.Top - overflow.Bottom
			maxWidth := fl.Width - overflow.Left - overflow.Right
			availableHeight := min(fl.Height-heightSide.of(overflow), maxHeight)
			availableWidth := min(fl.Width-widthSide.of(overflow), maxWidth)

			if shift := s.Data.Shift; shift != nil {
				if shift.EnabledX {
					availableWidth = maxWidth
				}
				if shift.EnabledY {
					availableHeight = maxHeight
				}
			}
			if s.Data.Shift == nil && s.Placement.Align == AlignCenter {
				// Centered and unshifted: the element grows on both sides, so
				// the tighter side bounds the total.
				xMin, xMax := max(overflow.Left, 0), max(overflow.Right, 0)
				yMin, yMax := max(overflow.Top, 0), max(overflow.Bottom, 0)
				if isYAxis {
					if xMin != 0 || xMax != 0 {
						availableWidth = fl.Width - 2*(xMin+xMax)
					} else {
						availableWidth = fl.Width - 2*max(overflow.Left, overflow.Right)
					}
				} else {
					if yMin != 0 || yMax != 0 {
						availableHeight = fl.Height - 2*(yMin+yMax)
					} else {
						availableHeight = fl.Height - 2*max(overflow.Top, overflow.Bottom)
					}
				}
			}
			availableWidth = max(availableWidth, 0)
			availableHeight = max(availableHeight, 0)

			s.Data.Size = &SizeData{AvailableWidth: availableWidth, AvailableHeight: availableHeight}
			if opts.Apply == nil {
				return nil
			}
			opts.Apply(s, availableWidth, availableHeight)

			m, ok := s.Platform.(Measurer)
			if !ok {
				return nil
			}
			rects, ok := m.Measure()
			if ok && rects.Floating.Size() != fl.Size() {
				return &Reset{Rects: true}
			}
			return nil
		},
	}
}
