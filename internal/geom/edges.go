package geom

// Edges represents values for four sides of a box. It is used both for
// padding and for signed overflow amounts.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n float64) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// EdgeSymmetric creates Edges with vertical (top/bottom) and horizontal (left/right) values.
func EdgeSymmetric(v, h float64) Edges {
	return Edges{Top: v, Right: h, Bottom: v, Left: h}
}

// EdgeTRBL creates Edges following CSS order: Top, Right, Bottom, Left.
func EdgeTRBL(t, r, b, l float64) Edges {
	return Edges{Top: t, Right: r, Bottom: b, Left: l}
}

// Horizontal returns the sum of Left and Right.
func (e Edges) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the sum of Top and Bottom.
func (e Edges) Vertical() float64 {
	return e.Top + e.Bottom
}

// IsZero returns true if all edge values are zero.
func (e Edges) IsZero() bool {
	return e.Top == 0 && e.Right == 0 && e.Bottom == 0 && e.Left == 0
}

// Max returns the largest of the four values.
func (e Edges) Max() float64 {
	return max(e.Top, e.Right, e.Bottom, e.Left)
}

// Fits reports whether no edge overflows (every value is <= 0).
func (e Edges) Fits() bool {
	return e.Max() <= 0
}

// PositiveSum adds only the overflowing (positive) edges.
func (e Edges) PositiveSum() float64 {
	return max(e.Top, 0) + max(e.Right, 0) + max(e.Bottom, 0) + max(e.Left, 0)
}
