package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/grindlemire/floatui"
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/loop"
)

// scenario is one positioning problem. Rects are in document coordinates;
// the document scroll is subtracted before placement.
type scenario struct {
	Placement   string  `toml:"placement"`
	Strategy    string  `toml:"strategy"`
	SideOffset  float64 `toml:"side_offset"`
	AlignOffset float64 `toml:"align_offset"`
	Padding     float64 `toml:"padding"`
	RTL         bool    `toml:"rtl"`

	Viewport sizeSpec   `toml:"viewport"`
	Content  *sizeSpec  `toml:"content"`
	Scroll   pointSpec  `toml:"scroll"`
	Anchor   rectSpec   `toml:"anchor"`
	Floating sizeSpec   `toml:"floating"`
	Boundary *rectSpec  `toml:"boundary"`
	Arrow    *arrowSpec `toml:"arrow"`
}

type sizeSpec struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type pointSpec struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

type rectSpec struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

func (r rectSpec) rect() geom.Rect {
	return geom.NewRect(r.X, r.Y, r.Width, r.Height)
}

type arrowSpec struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Padding float64 `toml:"padding"`
}

// decodeScenario reads a TOML scenario. Unknown keys are rejected so a typo
// does not silently fall back to a default.
func decodeScenario(r io.Reader) (scenario, error) {
	sc := scenario{Placement: "bottom", Strategy: "absolute"}
	md, err := toml.NewDecoder(r).Decode(&sc)
	if err != nil {
		return scenario{}, fmt.Errorf("decoding scenario: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return scenario{}, fmt.Errorf("unknown scenario keys: %s", strings.Join(keys, ", "))
	}
	return sc, sc.validate()
}

func (sc scenario) validate() error {
	if sc.Viewport.Width <= 0 || sc.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must have a positive size, got %vx%v", sc.Viewport.Width, sc.Viewport.Height)
	}
	if sc.Floating.Width <= 0 || sc.Floating.Height <= 0 {
		return fmt.Errorf("floating must have a positive size, got %vx%v", sc.Floating.Width, sc.Floating.Height)
	}
	if sc.Anchor.Width < 0 || sc.Anchor.Height < 0 {
		return fmt.Errorf("anchor size must be >= 0")
	}
	return nil
}

func parseStrategy(s string) (floatui.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "absolute":
		return floatui.Absolute, nil
	case "fixed":
		return floatui.Fixed, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want absolute or fixed)", s)
	}
}

// solve builds the scenario's document, opens a popup on it and returns the
// settled layout.
func solve(sc scenario) (floatui.Layout, error) {
	pl, err := floatui.ParsePlacement(sc.Placement)
	if err != nil {
		return floatui.Layout{}, err
	}
	strategy, err := parseStrategy(sc.Strategy)
	if err != nil {
		return floatui.Layout{}, err
	}

	doc := dom.NewDocument(sc.Viewport.Width, sc.Viewport.Height)
	if sc.Content != nil {
		doc.SetContentSize(sc.Content.Width, sc.Content.Height)
	}
	doc.ScrollTo(sc.Scroll.X, sc.Scroll.Y)

	add := func(parent *dom.Node, name string, r geom.Rect) *dom.Node {
		n := parent.AppendChild(doc.CreateElement(name))
		n.SetRect(r)
		return n
	}
	anchor := add(doc.Root(), "anchor", sc.Anchor.rect())
	floating := add(doc.Root(), "floating", geom.NewRect(0, 0, sc.Floating.Width, sc.Floating.Height))

	clock := loop.NewManual()
	opts := []floatui.Option{
		floatui.WithScheduler(clock),
		floatui.WithPlacement(pl),
		floatui.WithStrategy(strategy),
		floatui.WithSideOffset(sc.SideOffset),
		floatui.WithAlignOffset(sc.AlignOffset),
		floatui.WithCollisionPadding(floatui.EdgeAll(sc.Padding)),
		floatui.WithRTL(sc.RTL),
	}
	if sc.Boundary != nil {
		opts = append(opts, floatui.WithCollisionBoundary(add(doc.Root(), "boundary", sc.Boundary.rect())))
	}
	if sc.Arrow != nil {
		arrow := add(floating, "arrow", geom.NewRect(0, 0, sc.Arrow.Width, sc.Arrow.Height))
		opts = append(opts, floatui.WithArrow(arrow, sc.Arrow.Padding))
	}

	p, err := floatui.NewPopup(doc, anchor, floating, opts...)
	if err != nil {
		return floatui.Layout{}, err
	}
	defer p.Dispose()

	p.RequestOpen(floatui.ReasonProgrammatic)
	clock.Frame()

	l, ok := p.Layout()
	if !ok {
		return floatui.Layout{}, fmt.Errorf("popup was not positioned")
	}
	return l, nil
}
