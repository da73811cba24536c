package placement

import (
	"cmp"
	"slices"

	"github.com/grindlemire/floatui/internal/geom"
)

// FallbackStrategy picks a placement when no candidate fits.
type FallbackStrategy int

const (
	// BestFit uses the candidate with the least total overflow.
	BestFit FallbackStrategy = iota
	// InitialPlacement returns to the requested placement.
	InitialPlacement
)

// AxisSideDirection adds perpendicular-side fallbacks to Flip.
type AxisSideDirection int

const (
	// AxisSideNone adds no perpendicular fallbacks.
	AxisSideNone AxisSideDirection = iota
	// AxisSideStart tries the start-side perpendicular placement first.
	AxisSideStart
	// AxisSideEnd tries the end-side perpendicular placement first.
	AxisSideEnd
)

// FlipOptions configures Flip. The zero value checks both axes and flips
// alignment for aligned placements.
type FlipOptions struct {
	SkipMainAxis  bool
	SkipCrossAxis bool
	// FallbackPlacements replaces the default candidates (the opposite side,
	// plus alignment flips for aligned placements).
	FallbackPlacements        []Placement
	FallbackStrategy          FallbackStrategy
	FallbackAxisSideDirection AxisSideDirection
	// NoFlipAlignment stops Flip from trying the opposite alignment.
	NoFlipAlignment bool
	Padding         geom.Edges
	Boundary        Boundary
	RootBoundary    RootBoundary
}

// Flip moves the floating element to another side when the current one
// overflows. Candidates are tried in order; when none fits it settles on the
// least bad one and sets Data.Hide.NoFit.
func Flip(opts FlipOptions) Middleware {
	return Middleware{
		Name: "flip",
		Fn: func(s *State) *Reset {
			// The arrow moved the floating element to stay on the reference;
			// measuring now would fight it.
			if s.Data.Arrow != nil && s.Data.Arrow.AlignmentOffset != 0 {
				return nil
			}

			initial := s.InitialPlacement
			initialSideAxis := initial.SideAxis()
			placements := append([]Placement{initial}, flipFallbacks(initial, opts, s.RTL)...)

			overflow := DetectOverflow(s, OverflowOptions{
				Boundary:     opts.Boundary,
				RootBoundary: opts.RootBoundary,
				Padding:      opts.Padding,
			})

			var overflows []float64
			if !opts.SkipMainAxis {
				overflows = append(overflows, s.Placement.Side.of(overflow))
			}
			if !opts.SkipCrossAxis {
				a, b := alignmentSides(s.Placement, s.Rects, s.RTL)
				overflows = append(overflows, a.of(overflow), b.of(overflow))
			}

			var prev FlipData
			if s.Data.Flip != nil {
				prev = *s.Data.Flip
			}
			history := append(slices.Clone(prev.Overflows), PlacementOverflow{Placement: s.Placement, Overflows: overflows})

			if allFit(overflows) {
				return nil
			}

			next := prev.Index + 1
			if next < len(placements) {
				s.Data.Flip = &FlipData{Index: next, Overflows: history}
				p := placements[next]
				return &Reset{Placement: &p}
			}
			s.Data.Flip = &FlipData{Index: next, Overflows: history}

			// Every candidate was tried. Prefer one whose main side fits,
			// least cross overflow first.
			var fitting []PlacementOverflow
			for _, d := range history {
				if len(d.Overflows) == 0 || d.Overflows[0] <= 0 {
					fitting = append(fitting, d)
				}
			}
			slices.SortStableFunc(fitting, func(a, b PlacementOverflow) int {
				return cmp.Compare(at(a.Overflows, 1), at(b.Overflows, 1))
			})

			var reset Placement
			if len(fitting) > 0 {
				reset = fitting[0].Placement
			} else {
				s.Data.hide().NoFit = true
				switch opts.FallbackStrategy {
				case InitialPlacement:
					reset = initial
				default:
					reset = bestFit(history, opts.FallbackAxisSideDirection != AxisSideNone, initialSideAxis)
				}
			}
			if reset != s.Placement {
				return &Reset{Placement: &reset}
			}
			return nil
		},
	}
}

func flipFallbacks(initial Placement, opts FlipOptions, rtl bool) []Placement {
	if opts.FallbackPlacements != nil {
		return slices.Clone(opts.FallbackPlacements)
	}
	var out []Placement
	if initial.Align == AlignCenter || opts.NoFlipAlignment {
		out = []Placement{initial.Opposite()}
	} else {
		out = expandedPlacements(initial)
	}
	if opts.FallbackAxisSideDirection != AxisSideNone {
		out = append(out, oppositeAxisPlacements(initial, !opts.NoFlipAlignment, opts.FallbackAxisSideDirection, rtl)...)
	}
	return out
}

// expandedPlacements returns the alignment flip, the side flip and both.
func expandedPlacements(p Placement) []Placement {
	opp := p.Opposite()
	return []Placement{p.OppositeAlign(), opp, opp.OppositeAlign()}
}

// oppositeAxisPlacements returns the perpendicular sides, in the order
// implied by dir and writing direction.
func oppositeAxisPlacements(p Placement, flipAlign bool, dir AxisSideDirection, rtl bool) []Placement {
	isStart := dir == AxisSideStart
	var sides []Side
	switch p.Side {
	case SideTop, SideBottom:
		lr := []Side{SideLeft, SideRight}
		rl := []Side{SideRight, SideLeft}
		if isStart != rtl {
			sides = lr
		} else {
			sides = rl
		}
	default:
		if isStart {
			sides = []Side{SideTop, SideBottom}
		} else {
			sides = []Side{SideBottom, SideTop}
		}
	}

	out := make([]Placement, 0, len(sides)*2)
	for _, side := range sides {
		out = append(out, Placement{Side: side, Align: p.Align})
	}
	if p.Align != AlignCenter && flipAlign {
		for _, side := range sides {
			out = append(out, Placement{Side: side, Align: p.Align.Opposite()})
		}
	}
	return out
}

// bestFit returns the tried placement with the smallest positive overflow
// sum. With perpendicular fallbacks only the initial axis and vertical sides
// qualify.
func bestFit(history []PlacementOverflow, axisFallbacks bool, initialSideAxis geom.Axis) Placement {
	type scored struct {
		p     Placement
		total float64
	}
	var cands []scored
	for _, d := range history {
		if axisFallbacks {
			axis := d.Placement.SideAxis()
			if axis != initialSideAxis && axis != geom.AxisY {
				continue
			}
		}
		var total float64
		for _, o := range d.Overflows {
			if o > 0 {
				total += o
			}
		}
		cands = append(cands, scored{p: d.Placement, total: total})
	}
	if len(cands) == 0 {
		return history[0].Placement
	}
	slices.SortStableFunc(cands, func(a, b scored) int { return cmp.Compare(a.total, b.total) })
	return cands[0].p
}

func allFit(overflows []float64) bool {
	for _, o := range overflows {
		if o > 0 {
			return false
		}
	}
	return true
}

func at(vs []float64, i int) float64 {
	if i < len(vs) {
		return vs[i]
	}
	return 0
}
