package geom

// Polygon is a closed shape given by its vertices in order.
type Polygon []Point

// Contains reports whether p lies inside the polygon using even-odd ray
// casting. Points exactly on an edge may land on either side.
func (poly Polygon) Contains(p Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (poly Polygon) Bounds() Rect {
	if len(poly) == 0 {
		return Rect{}
	}
	left, top := poly[0].X, poly[0].Y
	right, bottom := left, top
	for _, p := range poly[1:] {
		left = min(left, p.X)
		top = min(top, p.Y)
		right = max(right, p.X)
		bottom = max(bottom, p.Y)
	}
	return RectFromEdges(left, top, right, bottom)
}
