package placement

import (
	"cmp"
	"slices"

	"github.com/grindlemire/floatui/internal/geom"
)

// AutoPlacementOptions configures AutoPlacement.
type AutoPlacementOptions struct {
	// Alignment restricts candidates to one alignment (plus its opposite
	// unless NoAutoAlignment). Nil means unaligned placements only.
	Alignment         *Align
	NoAutoAlignment   bool
	AllowedPlacements []Placement
	// CrossAxis ranks aligned candidates by main plus alignment overflow.
	CrossAxis    bool
	Padding      geom.Edges
	Boundary     Boundary
	RootBoundary RootBoundary
}

// AutoPlacement measures every candidate and picks the one with the most
// space, ignoring the requested side. Do not combine with Flip.
func AutoPlacement(opts AutoPlacementOptions) Middleware {
	return Middleware{
		Name: "autoPlacement",
		Fn: func(s *State) *Reset {
			placements := autoPlacementList(opts)
			if len(placements) == 0 {
				return nil
			}

			var prev AutoPlacementData
			if s.Data.AutoPlacement != nil {
				prev = *s.Data.AutoPlacement
			}
			if prev.Index >= len(placements) {
				return nil
			}
			current := placements[prev.Index]
			if s.Placement != current {
				return &Reset{Placement: &placements[0]}
			}

			overflow := DetectOverflow(s, OverflowOptions{
				Boundary:     opts.Boundary,
				RootBoundary: opts.RootBoundary,
				Padding:      opts.Padding,
			})
			a, b := alignmentSides(current, s.Rects, s.RTL)
			history := append(slices.Clone(prev.Overflows), PlacementOverflow{
				Placement: current,
				Overflows: []float64{current.Side.of(overflow), a.of(overflow), b.of(overflow)},
			})

			next := prev.Index + 1
			s.Data.AutoPlacement = &AutoPlacementData{Index: next, Overflows: history}
			if next < len(placements) {
				p := placements[next]
				return &Reset{Placement: &p}
			}

			type ranked struct {
				p     Placement
				score float64
				fits  bool
			}
			rankedList := make([]ranked, 0, len(history))
			for _, d := range history {
				score := d.Overflows[0]
				if d.Placement.Align != AlignCenter && opts.CrossAxis {
					score += d.Overflows[1]
				}
				checked := d.Overflows
				if d.Placement.Align != AlignCenter {
					checked = checked[:2]
				}
				rankedList = append(rankedList, ranked{p: d.Placement, score: score, fits: allFit(checked)})
			}
			slices.SortStableFunc(rankedList, func(a, b ranked) int { return cmp.Compare(a.score, b.score) })

			reset := rankedList[0].p
			for _, r := range rankedList {
				if r.fits {
					reset = r.p
					break
				}
			}
			if reset != s.Placement {
				return &Reset{Placement: &reset}
			}
			return nil
		},
	}
}

func autoPlacementList(opts AutoPlacementOptions) []Placement {
	allowed := opts.AllowedPlacements
	if allowed == nil {
		allowed = AllPlacements
	}
	if opts.Alignment == nil {
		var out []Placement
		for _, p := range allowed {
			if p.Align == AlignCenter {
				out = append(out, p)
			}
		}
		return out
	}

	align := *opts.Alignment
	var sorted []Placement
	for _, p := range allowed {
		if p.Align == align {
			sorted = append(sorted, p)
		}
	}
	for _, p := range allowed {
		if p.Align != align {
			sorted = append(sorted, p)
		}
	}
	var out []Placement
	for _, p := range sorted {
		if p.Align == align || (!opts.NoAutoAlignment && p.Align != AlignCenter) {
			out = append(out, p)
		}
	}
	return out
}
