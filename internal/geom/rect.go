package geom

// Rect represents a rectangle in a single coordinate space.
// X and Y are the top-left corner; Width and Height are dimensions.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromEdges builds a Rect from its four edge coordinates.
// The result may have negative dimensions when right < left or bottom < top.
func RectFromEdges(left, top, right, bottom float64) Rect {
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Size returns the dimensions of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Contains returns true if the point (x, y) is inside the rectangle.
// Points on the left and top edges are inside; points on the right and bottom edges are outside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsRect returns true if the other rectangle is fully contained within this rectangle.
func (r Rect) ContainsRect(other Rect) bool {
	if other.IsEmpty() {
		return true
	}
	if r.IsEmpty() {
		return false
	}
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Inset returns a new Rect inset by the given Edges.
// Positive values shrink the rectangle; negative values expand it.
func (r Rect) Inset(edges Edges) Rect {
	return Rect{
		X:      r.X + edges.Left,
		Y:      r.Y + edges.Top,
		Width:  r.Width - edges.Left - edges.Right,
		Height: r.Height - edges.Top - edges.Bottom,
	}
}

// Outset returns a new Rect expanded outward by the given Edges.
func (r Rect) Outset(edges Edges) Rect {
	return Rect{
		X:      r.X - edges.Left,
		Y:      r.Y - edges.Top,
		Width:  r.Width + edges.Left + edges.Right,
		Height: r.Height + edges.Top + edges.Bottom,
	}
}

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// At returns a Rect of the same size with its origin at (x, y).
func (r Rect) At(x, y float64) Rect {
	return Rect{X: x, Y: y, Width: r.Width, Height: r.Height}
}

// Intersect returns the intersection of two rectangles.
// If the rectangles don't overlap, returns an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	clipped := r.Clip(other)
	if clipped.IsEmpty() {
		return Rect{}
	}
	return clipped
}

// Clip returns the edge-wise intersection of two rectangles without
// normalizing disjoint results. Disjoint inputs produce a rect with negative
// width or height positioned between them, which keeps overflow arithmetic
// against nested clipping ancestors meaningful.
func (r Rect) Clip(other Rect) Rect {
	return RectFromEdges(
		max(r.X, other.X),
		max(r.Y, other.Y),
		min(r.Right(), other.Right()),
		min(r.Bottom(), other.Bottom()),
	)
}

// Union returns the smallest rectangle that contains both rectangles.
// If either rectangle is empty, returns the other rectangle.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return RectFromEdges(
		min(r.X, other.X),
		min(r.Y, other.Y),
		max(r.Right(), other.Right()),
		max(r.Bottom(), other.Bottom()),
	)
}

// Intersects returns true if the two rectangles overlap.
// Touching edges do not count as overlapping.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// OverlapArea returns the area shared by both rectangles.
func (r Rect) OverlapArea(other Rect) float64 {
	return r.Intersect(other).Area()
}

// Clamp constrains a point to be within the rectangle bounds.
func (r Rect) Clamp(x, y float64) (float64, float64) {
	if r.IsEmpty() {
		return r.X, r.Y
	}
	return Clamp(r.X, x, r.Right()), Clamp(r.Y, y, r.Bottom())
}

// Start returns the leading edge coordinate along axis.
func (r Rect) Start(a Axis) float64 {
	if a == AxisX {
		return r.X
	}
	return r.Y
}

// End returns the trailing edge coordinate along axis.
func (r Rect) End(a Axis) float64 {
	if a == AxisX {
		return r.Right()
	}
	return r.Bottom()
}

// Length returns the extent of the rectangle along axis.
func (r Rect) Length(a Axis) float64 {
	if a == AxisX {
		return r.Width
	}
	return r.Height
}

// Clamp restricts v to [lo, hi]. When lo > hi, lo wins so a too-small
// boundary still pins the value to its leading edge.
func Clamp(lo, v, hi float64) float64 {
	return max(lo, min(v, hi))
}
