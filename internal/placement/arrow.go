package placement

import "github.com/grindlemire/floatui/internal/geom"

// ArrowOptions configures Arrow.
type ArrowOptions struct {
	// Size is the arrow element's size.
	Size geom.Size
	// Padding keeps the arrow away from the floating element's corners.
	Padding geom.Edges
}

// Arrow centers an arrow on the reference along the alignment axis, clamped
// into the floating element. When an aligned placement leaves the arrow off
// the reference, the floating element is nudged and the pipeline restarts.
func Arrow(opts ArrowOptions) Middleware {
	return Middleware{
		Name: "arrow",
		Fn: func(s *State) *Reset {
			axis := s.Placement.AlignmentAxis()
			ref, fl := s.Rects.Reference, s.Rects.Floating
			coord := s.Coord(axis)
			arrowLen := opts.Size.Length(axis)
			clientSize := fl.Length(axis)

			endDiff := ref.Length(axis) + ref.Start(axis) - coord - clientSize
			startDiff := coord - ref.Start(axis)
			centerToReference := endDiff/2 - startDiff/2

			padStart, padEnd := opts.Padding.Left, opts.Padding.Right
			if axis == geom.AxisY {
				padStart, padEnd = opts.Padding.Top, opts.Padding.Bottom
			}
			largest := clientSize/2 - arrowLen/2 - 1
			minPad := min(padStart, largest)
			maxPad := min(padEnd, largest)

			lo := minPad
			hi := clientSize - arrowLen - maxPad
			center := clientSize/2 - arrowLen/2 + centerToReference
			offset := geom.Clamp(lo, center, hi)

			edgePad := maxPad
			if center < lo {
				edgePad = minPad
			}
			shouldAddOffset := s.Data.Arrow == nil &&
				s.Placement.Align != AlignCenter &&
				center != offset &&
				ref.Length(axis)/2-edgePad-arrowLen/2 < 0

			var alignmentOffset, kept float64
			if s.Data.Arrow != nil {
				kept = s.Data.Arrow.AlignmentOffset
			}
			if shouldAddOffset {
				if center < lo {
					alignmentOffset = center - lo
				} else {
					alignmentOffset = center - hi
				}
			}

			s.SetCoord(axis, coord+alignmentOffset)
			s.Data.Arrow = &ArrowData{
				Axis:            axis,
				Offset:          offset,
				CenterOffset:    center - offset - alignmentOffset,
				AlignmentOffset: alignmentOffset,
			}
			if !shouldAddOffset {
				s.Data.Arrow.AlignmentOffset = kept
			}
			if shouldAddOffset {
				return &Reset{}
			}
			return nil
		},
	}
}
