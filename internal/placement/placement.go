package placement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/grindlemire/floatui/internal/geom"
)

// ErrInvalidPlacement is returned when a placement string cannot be parsed.
var ErrInvalidPlacement = errors.New("placement: invalid placement")

// Side is the edge of the reference the floating element sits against.
// SideBottom is the zero value. Opposite sides are two apart.
type Side int

const (
	SideBottom Side = iota
	SideLeft
	SideTop
	SideRight
)

var sideNames = [...]string{
	SideBottom: "bottom",
	SideLeft:   "left",
	SideTop:    "top",
	SideRight:  "right",
}

// String returns the lowercase side name.
func (s Side) String() string {
	if int(s) < 0 || int(s) >= len(sideNames) {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// Opposite returns the side across the reference.
func (s Side) Opposite() Side {
	return (s + 2) % 4
}

// Axis returns the axis the floating element is offset along. Top and bottom
// sides live on the y axis.
func (s Side) Axis() geom.Axis {
	if s == SideTop || s == SideBottom {
		return geom.AxisY
	}
	return geom.AxisX
}

// isOrigin reports whether the side faces the coordinate origin.
func (s Side) isOrigin() bool {
	return s == SideTop || s == SideLeft
}

// of returns the component of e facing side s.
func (s Side) of(e geom.Edges) float64 {
	switch s {
	case SideTop:
		return e.Top
	case SideRight:
		return e.Right
	case SideBottom:
		return e.Bottom
	default:
		return e.Left
	}
}

// Align is the alignment of the floating element along the reference's
// cross axis. AlignCenter is the zero value.
type Align int

const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
)

// String returns "center", "start" or "end".
func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	default:
		return "center"
	}
}

// Opposite swaps start and end. Center is its own opposite.
func (a Align) Opposite() Align {
	switch a {
	case AlignStart:
		return AlignEnd
	case AlignEnd:
		return AlignStart
	default:
		return AlignCenter
	}
}

// Placement is a side plus an alignment.
type Placement struct {
	Side  Side
	Align Align
}

var (
	Top         = Placement{Side: SideTop}
	TopStart    = Placement{Side: SideTop, Align: AlignStart}
	TopEnd      = Placement{Side: SideTop, Align: AlignEnd}
	Right       = Placement{Side: SideRight}
	RightStart  = Placement{Side: SideRight, Align: AlignStart}
	RightEnd    = Placement{Side: SideRight, Align: AlignEnd}
	Bottom      = Placement{Side: SideBottom}
	BottomStart = Placement{Side: SideBottom, Align: AlignStart}
	BottomEnd   = Placement{Side: SideBottom, Align: AlignEnd}
	Left        = Placement{Side: SideLeft}
	LeftStart   = Placement{Side: SideLeft, Align: AlignStart}
	LeftEnd     = Placement{Side: SideLeft, Align: AlignEnd}
)

// AllPlacements lists every placement, side by side, center first.
var AllPlacements = []Placement{
	Top, TopStart, TopEnd,
	Right, RightStart, RightEnd,
	Bottom, BottomStart, BottomEnd,
	Left, LeftStart, LeftEnd,
}

// ParsePlacement parses "bottom", "top-start", "left-end" and so on.
// "-center" is accepted as an explicit spelling of the bare side.
func ParsePlacement(s string) (Placement, error) {
	side, align, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "-")

	var p Placement
	switch side {
	case "top":
		p.Side = SideTop
	case "right":
		p.Side = SideRight
	case "bottom":
		p.Side = SideBottom
	case "left":
		p.Side = SideLeft
	default:
		return Placement{}, fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
	}

	switch align {
	case "", "center":
		p.Align = AlignCenter
	case "start":
		p.Align = AlignStart
	case "end":
		p.Align = AlignEnd
	default:
		return Placement{}, fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
	}
	return p, nil
}

// MustParsePlacement is like ParsePlacement but panics on error.
func MustParsePlacement(s string) Placement {
	p, err := ParsePlacement(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical form, e.g. "bottom-start" or "top".
func (p Placement) String() string {
	if p.Align == AlignCenter {
		return p.Side.String()
	}
	return p.Side.String() + "-" + p.Align.String()
}

// SideAxis is the axis the side offsets along.
func (p Placement) SideAxis() geom.Axis {
	return p.Side.Axis()
}

// AlignmentAxis is the cross axis alignment applies to.
func (p Placement) AlignmentAxis() geom.Axis {
	return p.Side.Axis().Other()
}

// Opposite flips the side and keeps the alignment.
func (p Placement) Opposite() Placement {
	return Placement{Side: p.Side.Opposite(), Align: p.Align}
}

// OppositeAlign keeps the side and swaps start and end.
func (p Placement) OppositeAlign() Placement {
	return Placement{Side: p.Side, Align: p.Align.Opposite()}
}

// Strategy is the CSS positioning strategy the coordinates are for.
type Strategy int

const (
	// Absolute coordinates are relative to the offset parent.
	Absolute Strategy = iota
	// Fixed coordinates are relative to the viewport.
	Fixed
)

// String returns "absolute" or "fixed".
func (s Strategy) String() string {
	if s == Fixed {
		return "fixed"
	}
	return "absolute"
}
