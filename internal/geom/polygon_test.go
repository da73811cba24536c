package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygon_Contains(t *testing.T) {
	triangle := Polygon{Pt(0, 0), Pt(10, 0), Pt(0, 10)}

	type tc struct {
		point    Point
		expected bool
	}

	tests := map[string]tc{
		"inside near corner": {point: Pt(1, 1), expected: true},
		"inside middle":      {point: Pt(3, 3), expected: true},
		"beyond hypotenuse":  {point: Pt(8, 8), expected: false},
		"left of shape":      {point: Pt(-1, 2), expected: false},
		"below shape":        {point: Pt(2, 11), expected: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, triangle.Contains(tt.point))
		})
	}
}

func TestPolygon_Bounds(t *testing.T) {
	poly := Polygon{Pt(5, 2), Pt(-3, 8), Pt(10, 4)}

	assert.Equal(t, NewRect(-3, 2, 13, 6), poly.Bounds())
	assert.Equal(t, Rect{}, Polygon{}.Bounds())
}
