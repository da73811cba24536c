package interact

import (
	"math"
	"time"

	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/placement"
)

// SafePolygonOptions configures SafePolygon.
type SafePolygonOptions struct {
	// Buffer widens the region around the exit point, in pixels or cells.
	Buffer float64
	// RequireIntent closes when the pointer lingers or crawls inside the
	// triangle instead of heading for the floating element.
	RequireIntent bool
	// MinSpeed is the slowest movement, in units per millisecond, that still
	// counts as intent. Defaults to 0.1.
	MinSpeed float64
}

// SafePolygon keeps a hover popup open while the pointer travels from the
// trigger toward the floating element through empty space. The region is a
// heuristic: a triangle from the exit point to the floating element's near
// edge, plus the rectangular gap between the two boxes.
type SafePolygon struct {
	opts SafePolygonOptions

	exit     geom.Point
	side     placement.Side
	lastPt   geom.Point
	lastTime time.Time
	tracking bool
}

// NewSafePolygon creates a SafePolygon handler.
func NewSafePolygon(opts SafePolygonOptions) *SafePolygon {
	if opts.MinSpeed <= 0 {
		opts.MinSpeed = 0.1
	}
	return &SafePolygon{opts: opts}
}

// Start begins tracking from the point the pointer left the trigger.
func (sp *SafePolygon) Start(exit geom.Point, trigger, floating geom.Rect, now time.Time) {
	sp.exit = exit
	sp.side = SideOf(trigger, floating)
	sp.lastPt = exit
	sp.lastTime = now
	sp.tracking = true
}

// Stop ends tracking.
func (sp *SafePolygon) Stop() {
	sp.tracking = false
}

// Tracking reports whether Start was called without a Stop.
func (sp *SafePolygon) Tracking() bool {
	return sp.tracking
}

// Allow reports whether the pointer at p, at time now, may keep the popup
// open.
func (sp *SafePolygon) Allow(p geom.Point, trigger, floating geom.Rect, now time.Time) bool {
	if p.In(floating) || p.In(trigger) {
		sp.lastPt, sp.lastTime = p, now
		return true
	}

	if sp.opts.RequireIntent {
		dt := now.Sub(sp.lastTime)
		if dt > 0 {
			dist := math.Hypot(p.X-sp.lastPt.X, p.Y-sp.lastPt.Y)
			if dist/(float64(dt)/float64(time.Millisecond)) < sp.opts.MinSpeed {
				return false
			}
		}
	}
	sp.lastPt, sp.lastTime = p, now

	if p.In(Trough(trigger, floating, sp.side)) {
		return true
	}
	return Triangle(sp.exit, floating, sp.side, sp.opts.Buffer).Contains(p)
}

// SideOf returns which side of trigger the floating element sits on.
func SideOf(trigger, floating geom.Rect) placement.Side {
	switch {
	case floating.Y >= trigger.Bottom():
		return placement.SideBottom
	case floating.Bottom() <= trigger.Y:
		return placement.SideTop
	case floating.X >= trigger.Right():
		return placement.SideRight
	case floating.Right() <= trigger.X:
		return placement.SideLeft
	}
	// Overlapping boxes: pick by center offset.
	dx := floating.Center().X - trigger.Center().X
	dy := floating.Center().Y - trigger.Center().Y
	if math.Abs(dy) >= math.Abs(dx) {
		if dy >= 0 {
			return placement.SideBottom
		}
		return placement.SideTop
	}
	if dx >= 0 {
		return placement.SideRight
	}
	return placement.SideLeft
}

// Trough is the rectangle spanning the gap between trigger and floating
// along the side axis, as wide as the narrower of the two boxes.
func Trough(trigger, floating geom.Rect, side placement.Side) geom.Rect {
	switch side {
	case placement.SideBottom:
		lo, hi := narrower(trigger, floating, geom.AxisX)
		return geom.RectFromEdges(lo, trigger.Bottom()-1, hi, floating.Y+1)
	case placement.SideTop:
		lo, hi := narrower(trigger, floating, geom.AxisX)
		return geom.RectFromEdges(lo, floating.Bottom()-1, hi, trigger.Y+1)
	case placement.SideRight:
		lo, hi := narrower(trigger, floating, geom.AxisY)
		return geom.RectFromEdges(trigger.Right()-1, lo, floating.X+1, hi)
	default:
		lo, hi := narrower(trigger, floating, geom.AxisY)
		return geom.RectFromEdges(floating.Right()-1, lo, trigger.X+1, hi)
	}
}

func narrower(a, b geom.Rect, axis geom.Axis) (float64, float64) {
	if b.Length(axis) > a.Length(axis) {
		return a.Start(axis), a.End(axis)
	}
	return b.Start(axis), b.End(axis)
}

// Triangle spans from the exit point (pushed back by buffer) to the two
// corners of the floating element's near edge.
func Triangle(exit geom.Point, floating geom.Rect, side placement.Side, buffer float64) geom.Polygon {
	switch side {
	case placement.SideBottom:
		apex := geom.Pt(exit.X, exit.Y-buffer)
		return geom.Polygon{apex, geom.Pt(floating.X-buffer, floating.Y), geom.Pt(floating.Right()+buffer, floating.Y)}
	case placement.SideTop:
		apex := geom.Pt(exit.X, exit.Y+buffer)
		return geom.Polygon{apex, geom.Pt(floating.X-buffer, floating.Bottom()), geom.Pt(floating.Right()+buffer, floating.Bottom())}
	case placement.SideRight:
		apex := geom.Pt(exit.X-buffer, exit.Y)
		return geom.Polygon{apex, geom.Pt(floating.X, floating.Y-buffer), geom.Pt(floating.X, floating.Bottom()+buffer)}
	default:
		apex := geom.Pt(exit.X+buffer, exit.Y)
		return geom.Polygon{apex, geom.Pt(floating.Right(), floating.Y-buffer), geom.Pt(floating.Right(), floating.Bottom()+buffer)}
	}
}
