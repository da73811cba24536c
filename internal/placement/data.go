package placement

import "github.com/grindlemire/floatui/internal/geom"

// MiddlewareData collects what each middleware reports. A nil field means the
// middleware did not run or had nothing to report.
type MiddlewareData struct {
	Offset        *OffsetData
	Flip          *FlipData
	Shift         *ShiftData
	Size          *SizeData
	Arrow         *ArrowData
	Hide          *HideData
	AutoPlacement *AutoPlacementData
}

// OffsetData is the translation Offset applied.
type OffsetData struct {
	X, Y      float64
	Placement Placement
}

// PlacementOverflow records the overflow measured for one tried placement.
// Overflows[0] is the main side; further entries are the alignment sides.
type PlacementOverflow struct {
	Placement Placement
	Overflows []float64
}

// FlipData tracks which fallback Flip is on and what it measured.
type FlipData struct {
	Index     int
	Overflows []PlacementOverflow
}

// ShiftData is the translation Shift applied and which axes it checked.
type ShiftData struct {
	X, Y     float64
	EnabledX bool
	EnabledY bool
}

// SizeData is the room left for the floating element in the boundary.
type SizeData struct {
	AvailableWidth  float64
	AvailableHeight float64
}

// ArrowData positions the arrow along Axis, relative to the floating element.
type ArrowData struct {
	Axis geom.Axis
	// Offset is the arrow's start coordinate along Axis.
	Offset float64
	// CenterOffset is how far the arrow is from the reference center; nonzero
	// means it was clamped and is not centered on the reference.
	CenterOffset float64
	// AlignmentOffset is the shift applied to the floating element so the
	// arrow could stay on the reference.
	AlignmentOffset float64
}

// X returns the arrow's left coordinate and whether it applies.
func (a *ArrowData) X() (float64, bool) {
	return a.Offset, a.Axis == geom.AxisX
}

// Y returns the arrow's top coordinate and whether it applies.
func (a *ArrowData) Y() (float64, bool) {
	return a.Offset, a.Axis == geom.AxisY
}

// HideData reports visibility problems without changing the position.
type HideData struct {
	// ReferenceHidden is set when the reference is fully clipped by its own
	// clipping ancestors.
	ReferenceHidden        bool
	ReferenceHiddenOffsets geom.Edges
	// Escaped is set when the floating element is fully outside the
	// reference's clipping context.
	Escaped        bool
	EscapedOffsets geom.Edges
	// NoFit is set when no candidate placement fit and the least overflowing
	// one was used.
	NoFit bool
}

// Hidden reports whether the consumer should visually hide the popup.
func (h *HideData) Hidden() bool {
	return h != nil && (h.ReferenceHidden || h.Escaped)
}

// AutoPlacementData tracks AutoPlacement's progress through candidates.
type AutoPlacementData struct {
	Index     int
	Overflows []PlacementOverflow
}

func (d *MiddlewareData) hide() *HideData {
	if d.Hide == nil {
		d.Hide = &HideData{}
	}
	return d.Hide
}
