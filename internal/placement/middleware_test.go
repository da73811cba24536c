package placement

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/floatui/internal/geom"
)

func TestOffset(t *testing.T) {
	type tc struct {
		placement Placement
		opts      OffsetOptions
		rtl       bool
		expected  OffsetData
	}

	three := 3.0
	tests := map[string]tc{
		"bottom gap":           {placement: Bottom, opts: OffsetOptions{MainAxis: 8}, expected: OffsetData{Y: 8, Placement: Bottom}},
		"top gap and skid":     {placement: Top, opts: OffsetOptions{MainAxis: 8, CrossAxis: 5}, expected: OffsetData{X: 5, Y: -8, Placement: Top}},
		"top skid rtl":         {placement: Top, opts: OffsetOptions{CrossAxis: 5}, rtl: true, expected: OffsetData{X: -5, Placement: Top}},
		"left gap":             {placement: Left, opts: OffsetOptions{MainAxis: 8, CrossAxis: 5}, expected: OffsetData{X: -8, Y: 5, Placement: Left}},
		"alignment axis end":   {placement: BottomEnd, opts: OffsetOptions{CrossAxis: 9, AlignmentAxis: &three}, expected: OffsetData{X: -3, Placement: BottomEnd}},
		"alignment axis start": {placement: BottomStart, opts: OffsetOptions{AlignmentAxis: &three}, expected: OffsetData{X: 3, Placement: BottomStart}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ref := geom.NewRect(100, 100, 50, 20)
			floating := geom.Size{Width: 40, Height: 10}
			base := Compute(ref, floating, Config{Placement: tt.placement, RTL: tt.rtl})
			got := Compute(ref, floating, Config{
				Placement:  tt.placement,
				RTL:        tt.rtl,
				Middleware: []Middleware{Offset(tt.opts)},
			})

			require.NotNil(t, got.Data.Offset)
			if diff := cmp.Diff(tt.expected, *got.Data.Offset); diff != "" {
				t.Errorf("offset data mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, base.X+tt.expected.X, got.X)
			assert.Equal(t, base.Y+tt.expected.Y, got.Y)
		})
	}
}

func TestShift(t *testing.T) {
	type tc struct {
		reference geom.Rect
		opts      ShiftOptions
		expectedX float64
		expectedY float64
	}

	tests := map[string]tc{
		"fits untouched": {
			reference: geom.NewRect(300, 100, 20, 20),
			expectedX: 260,
			expectedY: 120,
		},
		"clamped at left edge": {
			reference: geom.NewRect(0, 100, 20, 20),
			expectedX: 0,
			expectedY: 120,
		},
		"clamped with padding": {
			reference: geom.NewRect(790, 100, 10, 20),
			opts:      ShiftOptions{Padding: geom.EdgeAll(5)},
			expectedX: 695,
			expectedY: 120,
		},
		"side axis untouched by default": {
			reference: geom.NewRect(300, 590, 20, 20),
			expectedX: 260,
			expectedY: 610,
		},
		"cross axis pulls into view": {
			reference: geom.NewRect(300, 590, 20, 20),
			opts:      ShiftOptions{CrossAxis: true},
			expectedX: 260,
			expectedY: 570,
		},
		"limit keeps attachment": {
			reference: geom.NewRect(-50, 100, 20, 20),
			opts:      ShiftOptions{Limiter: LimitShift(LimitShiftOptions{})},
			expectedX: -30,
			expectedY: 120,
		},
		"limit with overlap offset": {
			reference: geom.NewRect(-50, 100, 20, 20),
			opts:      ShiftOptions{Limiter: LimitShift(LimitShiftOptions{Offset: 10})},
			expectedX: -40,
			expectedY: 120,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Compute(tt.reference, geom.Size{Width: 100, Height: 30}, Config{
				Placement:  Bottom,
				Platform:   viewport(800, 600),
				Middleware: []Middleware{Shift(tt.opts)},
			})

			assert.Equal(t, tt.expectedX, got.X, "x")
			assert.Equal(t, tt.expectedY, got.Y, "y")
			assert.Equal(t, Bottom, got.Placement, "shift never changes side")
			require.NotNil(t, got.Data.Shift)
			assert.True(t, got.Data.Shift.EnabledX)
			assert.Equal(t, tt.opts.CrossAxis, got.Data.Shift.EnabledY)
		})
	}
}

func TestSize(t *testing.T) {
	type tc struct {
		middleware []Middleware
		expected   SizeData
	}

	var applied SizeData
	apply := func(_ *State, w, h float64) { applied = SizeData{AvailableWidth: w, AvailableHeight: h} }

	tests := map[string]tc{
		"centered without shift": {
			middleware: []Middleware{Size(SizeOptions{Apply: apply})},
			expected:   SizeData{AvailableWidth: 250, AvailableHeight: 480},
		},
		"after shift uses the whole width": {
			middleware: []Middleware{Shift(ShiftOptions{}), Size(SizeOptions{Apply: apply})},
			expected:   SizeData{AvailableWidth: 800, AvailableHeight: 480},
		},
		"padding shrinks the room": {
			middleware: []Middleware{Shift(ShiftOptions{}), Size(SizeOptions{Padding: geom.EdgeAll(10), Apply: apply})},
			expected:   SizeData{AvailableWidth: 780, AvailableHeight: 470},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			applied = SizeData{}
			got := Compute(geom.NewRect(100, 100, 50, 20), geom.Size{Width: 100, Height: 30}, Config{
				Placement:  Bottom,
				Platform:   viewport(800, 600),
				Middleware: tt.middleware,
			})

			require.NotNil(t, got.Data.Size)
			assert.Equal(t, tt.expected, *got.Data.Size)
			assert.Equal(t, tt.expected, applied)
		})
	}
}

// resizingPlatform shrinks the floating element to whatever Size.Apply asked
// for and reports it back through Measure.
type resizingPlatform struct {
	Static
	rects Rects
}

func (p *resizingPlatform) Measure() (Rects, bool) {
	return p.rects, true
}

func TestSize_ApplyResizeResets(t *testing.T) {
	ref := geom.NewRect(100, 500, 50, 20)
	platform := &resizingPlatform{
		Static: viewport(800, 600),
		rects:  Rects{Reference: ref, Floating: geom.NewRect(0, 0, 100, 200)},
	}
	applies := 0

	got := Compute(ref, geom.Size{Width: 100, Height: 200}, Config{
		Placement: Bottom,
		Platform:  platform,
		Middleware: []Middleware{Size(SizeOptions{
			Apply: func(_ *State, _, h float64) {
				applies++
				platform.rects.Floating.Height = min(platform.rects.Floating.Height, h)
			},
		})},
	})

	assert.Equal(t, 2, applies, "one pass to shrink, one to settle")
	assert.Equal(t, float64(80), got.Data.Size.AvailableHeight)
	assert.Equal(t, float64(520), got.Y)
}

func TestArrow(t *testing.T) {
	type tc struct {
		placement Placement
		reference geom.Rect
		opts      ArrowOptions
		expectedX float64
		expected  ArrowData
	}

	tests := map[string]tc{
		"centered on reference": {
			placement: Bottom,
			reference: geom.NewRect(100, 100, 50, 20),
			opts:      ArrowOptions{Size: geom.Size{Width: 10, Height: 5}},
			expectedX: 75,
			expected:  ArrowData{Axis: geom.AxisX, Offset: 45},
		},
		"small reference nudges aligned floating element": {
			placement: BottomStart,
			reference: geom.NewRect(100, 100, 10, 20),
			opts:      ArrowOptions{Size: geom.Size{Width: 10, Height: 5}, Padding: geom.EdgeAll(5)},
			expectedX: 95,
			expected:  ArrowData{Axis: geom.AxisX, Offset: 5, AlignmentOffset: -5},
		},
		"side placement uses the y axis": {
			placement: Right,
			reference: geom.NewRect(100, 100, 50, 20),
			opts:      ArrowOptions{Size: geom.Size{Width: 5, Height: 10}},
			expectedX: 150,
			expected:  ArrowData{Axis: geom.AxisY, Offset: 10},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Compute(tt.reference, geom.Size{Width: 100, Height: 30}, Config{
				Placement:  tt.placement,
				Platform:   viewport(800, 600),
				Middleware: []Middleware{Offset(OffsetOptions{}), Flip(FlipOptions{}), Arrow(tt.opts)},
			})

			require.NotNil(t, got.Data.Arrow)
			assert.Equal(t, tt.expected, *got.Data.Arrow)
			assert.Equal(t, tt.expectedX, got.X)
		})
	}
}

func TestArrow_Accessors(t *testing.T) {
	a := &ArrowData{Axis: geom.AxisY, Offset: 7}

	_, okX := a.X()
	y, okY := a.Y()

	assert.False(t, okX)
	assert.True(t, okY)
	assert.Equal(t, float64(7), y)
}

func TestHide(t *testing.T) {
	type tc struct {
		reference       geom.Rect
		strategy        HideStrategy
		referenceHidden bool
		escaped         bool
	}

	tests := map[string]tc{
		"reference visible": {
			reference: geom.NewRect(10, 100, 50, 20),
		},
		"reference scrolled out of its container": {
			reference:       geom.NewRect(10, 250, 50, 20),
			referenceHidden: true,
		},
		"floating inside reference context": {
			reference: geom.NewRect(10, 100, 50, 20),
			strategy:  Escaped,
		},
		"floating escaped reference context": {
			reference: geom.NewRect(10, 190, 50, 20),
			strategy:  Escaped,
			escaped:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			platform := Static{
				Viewport:  geom.NewRect(0, 0, 800, 600),
				Reference: geom.NewRect(0, 0, 200, 200),
			}
			got := Compute(tt.reference, geom.Size{Width: 100, Height: 30}, Config{
				Placement:  Bottom,
				Platform:   platform,
				Middleware: []Middleware{Hide(HideOptions{Strategy: tt.strategy})},
			})

			require.NotNil(t, got.Data.Hide)
			assert.Equal(t, tt.referenceHidden, got.Data.Hide.ReferenceHidden)
			assert.Equal(t, tt.escaped, got.Data.Hide.Escaped)
			assert.Equal(t, tt.referenceHidden || tt.escaped, got.Data.Hide.Hidden())
			assert.False(t, got.Data.Hide.NoFit)
		})
	}
}

func TestHide_KeepsNoFit(t *testing.T) {
	got := Compute(
		geom.NewRect(350, 290, 100, 40),
		geom.Size{Width: 200, Height: 400},
		Config{
			Placement: Top,
			Platform:  viewport(800, 600),
			Middleware: []Middleware{
				Flip(FlipOptions{SkipCrossAxis: true}),
				Hide(HideOptions{}),
			},
		},
	)

	require.NotNil(t, got.Data.Hide)
	assert.True(t, got.Data.Hide.NoFit)
	assert.False(t, got.Data.Hide.ReferenceHidden)
}

func TestAutoPlacement(t *testing.T) {
	type tc struct {
		reference geom.Rect
		opts      AutoPlacementOptions
		expected  Placement
	}

	start := AlignStart
	tests := map[string]tc{
		"corner picks the roomiest side": {
			reference: geom.NewRect(10, 10, 20, 20),
			expected:  Right,
		},
		"bottom edge picks top": {
			reference: geom.NewRect(350, 560, 100, 20),
			opts:      AutoPlacementOptions{AllowedPlacements: []Placement{Top, Bottom}},
			expected:  Top,
		},
		"aligned candidates": {
			reference: geom.NewRect(10, 560, 100, 20),
			opts:      AutoPlacementOptions{Alignment: &start, AllowedPlacements: []Placement{TopStart, TopEnd, BottomStart, BottomEnd}},
			expected:  TopStart,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Compute(tt.reference, geom.Size{Width: 100, Height: 100}, Config{
				Placement:  Top,
				Platform:   viewport(800, 600),
				Middleware: []Middleware{AutoPlacement(tt.opts)},
			})

			assert.Equal(t, tt.expected, got.Placement)
		})
	}
}

func TestAutoPlacementList(t *testing.T) {
	end := AlignEnd

	unaligned := autoPlacementList(AutoPlacementOptions{})
	aligned := autoPlacementList(AutoPlacementOptions{Alignment: &end})
	strict := autoPlacementList(AutoPlacementOptions{Alignment: &end, NoAutoAlignment: true})

	assert.Equal(t, []Placement{Top, Right, Bottom, Left}, unaligned)
	assert.Equal(t, []Placement{TopEnd, RightEnd, BottomEnd, LeftEnd, TopStart, RightStart, BottomStart, LeftStart}, aligned)
	assert.Equal(t, []Placement{TopEnd, RightEnd, BottomEnd, LeftEnd}, strict)
}

func TestStatic_ClippingRect(t *testing.T) {
	p := Static{
		Viewport:  geom.NewRect(0, 0, 800, 600),
		Document:  geom.NewRect(0, -200, 800, 2000),
		Reference: geom.NewRect(100, 100, 200, 200),
	}

	assert.Equal(t, p.Viewport, p.ClippingRect(ClipRequest{}))
	assert.Equal(t, p.Document, p.ClippingRect(ClipRequest{Root: RootDocument}))
	assert.Equal(t, p.Reference, p.ClippingRect(ClipRequest{Element: ReferenceElement}))
	assert.Equal(t, geom.NewRect(0, 0, 50, 50),
		p.ClippingRect(ClipRequest{Boundary: Boundary{geom.NewRect(-10, -10, 60, 60)}}))
}
