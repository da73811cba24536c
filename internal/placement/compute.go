package placement

import (
	"go.uber.org/zap"

	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/pkg/debug"
)

// maxResets bounds how often middleware can restart the pipeline.
const maxResets = 50

// Rects holds the reference rect in viewport coordinates and the floating
// element's size (its X and Y are always zero).
type Rects struct {
	Reference geom.Rect
	Floating  geom.Rect
}

// Config is the input to Compute. The zero value places the floating element
// below the reference, centered, with no middleware and no boundary.
type Config struct {
	Placement  Placement
	Strategy   Strategy
	Middleware []Middleware
	Platform   Platform
	RTL        bool
}

// Computed is the output of one full pipeline pass.
type Computed struct {
	X, Y      float64
	Placement Placement
	Strategy  Strategy
	Data      MiddlewareData
}

// Rect returns the floating element's final rect.
func (c Computed) Rect(floating geom.Size) geom.Rect {
	return geom.NewRect(c.X, c.Y, floating.Width, floating.Height)
}

// State is threaded through the middleware pipeline. Middleware read and
// write X, Y and Data; a placement change goes through Reset.
type State struct {
	X, Y             float64
	InitialPlacement Placement
	Placement        Placement
	Strategy         Strategy
	Rects            Rects
	Data             MiddlewareData
	Platform         Platform
	RTL              bool
}

// Coord returns the coordinate along axis a.
func (s *State) Coord(a geom.Axis) float64 {
	if a == geom.AxisX {
		return s.X
	}
	return s.Y
}

// SetCoord sets the coordinate along axis a.
func (s *State) SetCoord(a geom.Axis, v float64) {
	if a == geom.AxisX {
		s.X = v
	} else {
		s.Y = v
	}
}

// FloatingRect returns the floating rect at the current coordinates.
func (s *State) FloatingRect() geom.Rect {
	return s.Rects.Floating.At(s.X, s.Y)
}

// Reset restarts the pipeline from the first middleware. A nil Placement with
// Rects false keeps the current coordinates; otherwise they are recomputed
// from the (new) placement.
type Reset struct {
	Placement *Placement
	Rects     bool
}

// Middleware is one named step of the pipeline.
type Middleware struct {
	Name string
	Fn   func(s *State) *Reset
}

// Compute places a floating element of the given size against reference.
func Compute(reference geom.Rect, floating geom.Size, cfg Config) Computed {
	platform := cfg.Platform
	if platform == nil {
		platform = unbounded
	}
	s := &State{
		InitialPlacement: cfg.Placement,
		Placement:        cfg.Placement,
		Strategy:         cfg.Strategy,
		Rects: Rects{
			Reference: reference,
			Floating:  geom.NewRect(0, 0, floating.Width, floating.Height),
		},
		Platform: platform,
		RTL:      cfg.RTL,
	}
	s.X, s.Y = coordsFromPlacement(s.Rects, s.Placement, s.RTL)

	resets := 0
	for i := 0; i < len(cfg.Middleware); i++ {
		mw := cfg.Middleware[i]
		if mw.Fn == nil {
			continue
		}
		reset := mw.Fn(s)
		if reset == nil {
			continue
		}
		if resets >= maxResets {
			debug.Logger().Warn("placement: reset limit reached",
				zap.String("middleware", mw.Name),
				zap.Stringer("placement", s.Placement),
			)
			continue
		}
		resets++
		recompute := false
		if reset.Placement != nil {
			s.Placement = *reset.Placement
			recompute = true
		}
		if reset.Rects {
			if m, ok := platform.(Measurer); ok {
				if rects, ok := m.Measure(); ok {
					s.Rects = rects
				}
			}
			recompute = true
		}
		if recompute {
			s.X, s.Y = coordsFromPlacement(s.Rects, s.Placement, s.RTL)
		}
		debug.Log("placement: %s reset to %s (%d)", mw.Name, s.Placement, resets)
		i = -1
	}

	return Computed{
		X:         s.X,
		Y:         s.Y,
		Placement: s.Placement,
		Strategy:  s.Strategy,
		Data:      s.Data,
	}
}

// coordsFromPlacement puts the floating element flush against the
// reference's side and aligns it along the cross axis. In RTL, start and end
// swap for top and bottom placements. For a point reference, start and end
// put the floating element's edge on the point.
func coordsFromPlacement(rects Rects, p Placement, rtl bool) (float64, float64) {
	ref, fl := rects.Reference, rects.Floating
	sideAxis := p.SideAxis()
	alignAxis := sideAxis.Other()
	isVertical := sideAxis == geom.AxisY

	centerX := ref.X + ref.Width/2 - fl.Width/2
	centerY := ref.Y + ref.Height/2 - fl.Height/2

	var x, y float64
	switch p.Side {
	case SideTop:
		x, y = centerX, ref.Y-fl.Height
	case SideBottom:
		x, y = centerX, ref.Bottom()
	case SideRight:
		x, y = ref.Right(), centerY
	case SideLeft:
		x, y = ref.X-fl.Width, centerY
	}

	refLen := ref.Length(alignAxis)
	common := refLen/2 - fl.Length(alignAxis)/2
	dir := 1.0
	if rtl && isVertical {
		dir = -1
	}

	var shift float64
	switch p.Align {
	case AlignStart:
		shift = -common * dir
	case AlignEnd:
		shift = common * dir
	}
	if alignAxis == geom.AxisX {
		x += shift
	} else {
		y += shift
	}
	return x, y
}
