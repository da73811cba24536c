package geom

// Point represents an (X, Y) coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns a new Point offset by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns a new Point with other subtracted.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// In returns true if the point is inside the given rectangle.
func (p Point) In(r Rect) bool {
	return r.Contains(p.X, p.Y)
}

// Coord returns the coordinate along axis.
func (p Point) Coord(a Axis) float64 {
	if a == AxisX {
		return p.X
	}
	return p.Y
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Length returns the extent along axis.
func (s Size) Length(a Axis) float64 {
	if a == AxisX {
		return s.Width
	}
	return s.Height
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}
