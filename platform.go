package floatui

import (
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/placement"
)

// platform answers clipping queries from the document tree.
type platform struct {
	doc      *dom.Document
	ref      dom.Reference
	floating *dom.Node
}

var (
	_ placement.Platform = (*platform)(nil)
	_ placement.Measurer = (*platform)(nil)
)

// ClippingRect returns the clipping ancestors' intersection for the element
// in req, or the explicit boundary rects intersected with the root.
func (p *platform) ClippingRect(req placement.ClipRequest) geom.Rect {
	root := dom.RootViewport
	if req.Root == placement.RootDocument {
		root = dom.RootDocument
	}

	node := p.floating
	if req.Element == placement.ReferenceElement {
		node = dom.ReferenceNode(p.ref)
	}

	if req.Boundary != nil {
		out := p.doc.RootRect(root)
		for _, r := range req.Boundary {
			out = out.Clip(r)
		}
		return out
	}
	if node == nil || (req.Strategy == placement.Fixed && node == p.floating) {
		return p.doc.RootRect(root)
	}
	return dom.ClippingRect(node, root)
}

// Measure re-reads the reference rect and the floating size after a
// middleware resized the floating element.
func (p *platform) Measure() (placement.Rects, bool) {
	if !dom.ReferenceConnected(p.ref) {
		return placement.Rects{}, false
	}
	size := p.floating.Size()
	return placement.Rects{
		Reference: p.ref.BoundingRect(),
		Floating:  geom.NewRect(0, 0, size.Width, size.Height),
	}, true
}
