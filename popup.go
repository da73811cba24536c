package floatui

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/grindlemire/floatui/internal/autoupdate"
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/interact"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
	"github.com/grindlemire/floatui/internal/placement"
	"github.com/grindlemire/floatui/pkg/debug"
)

var (
	// ErrNilDocument is returned when a popup is created without a document.
	ErrNilDocument = errors.New("floatui: document is required")
	// ErrNilAnchor is returned when a popup is created without an anchor.
	ErrNilAnchor = errors.New("floatui: anchor is required")
	// ErrNilFloating is returned when a popup is created without a floating
	// element.
	ErrNilFloating = errors.New("floatui: floating element is required")
	// ErrNoScheduler is returned when WithScheduler is missing or nil.
	ErrNoScheduler = errors.New("floatui: scheduler is required (use WithScheduler)")
	// ErrInvalidPlacement is returned for an unknown side or alignment.
	ErrInvalidPlacement = placement.ErrInvalidPlacement
)

// Popup positions one floating element against an anchor and wires the
// interaction hooks that open and close it. It is not safe for concurrent
// use; drive it from the scheduler's goroutine.
type Popup struct {
	cfg      config
	doc      *dom.Document
	anchor   *dom.Node
	floating *dom.Node

	ctrl *openstate.Controller
	ctx  *interact.Context

	layout    Layout
	hasLayout bool
	stopAuto  loop.Cancel
	group     loop.Group
	disposed  bool
}

// NewPopup creates a closed popup. anchor receives the interaction
// listeners and is the placement reference until SetReference replaces it.
func NewPopup(doc *dom.Document, anchor, floating *dom.Node, opts ...Option) (*Popup, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return newPopup(doc, anchor, floating, cfg)
}

// MustNewPopup is like NewPopup but panics on error.
func MustNewPopup(doc *dom.Document, anchor, floating *dom.Node, opts ...Option) *Popup {
	p, err := NewPopup(doc, anchor, floating, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func newPopup(doc *dom.Document, anchor, floating *dom.Node, cfg config) (*Popup, error) {
	switch {
	case doc == nil:
		return nil, ErrNilDocument
	case anchor == nil:
		return nil, ErrNilAnchor
	case floating == nil:
		return nil, ErrNilFloating
	case cfg.sched == nil:
		return nil, ErrNoScheduler
	}

	p := &Popup{cfg: cfg, doc: doc, anchor: anchor, floating: floating}

	ctrl, err := openstate.New(cfg.sched,
		openstate.WithName(cfg.kind),
		openstate.WithInitialOpen(cfg.initialOpen),
		openstate.WithOpenDuration(cfg.openDuration),
		openstate.WithCloseDuration(cfg.closeDuration),
		openstate.WithOnOpenChange(p.veto),
	)
	if err != nil {
		return nil, fmt.Errorf("creating open state: %w", err)
	}

	ctxOpts := []interact.ContextOption{interact.WithKind(cfg.kind)}
	if cfg.tree != nil {
		ctxOpts = append(ctxOpts, interact.WithTree(cfg.tree, cfg.parentID))
	}
	ctx, err := interact.NewContext(doc, cfg.sched, anchor, floating, ctrl, ctxOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating popup context: %w", err)
	}
	p.ctrl, p.ctx = ctrl, ctx

	p.group.Add(ctrl.Subscribe(p.onChange))
	p.group.Add(ctx.OnReferenceChange(p.onReferenceChange))
	p.install()

	if ctrl.State().IsOpen() {
		p.startAutoUpdate()
	}
	p.reflect()

	debug.Logger().Debug("floatui: popup created",
		zap.String("id", ctx.ID()),
		zap.String("kind", cfg.kind),
		zap.Stringer("placement", cfg.placement),
	)
	return p, nil
}

// install wires the configured interaction hooks.
func (p *Popup) install() {
	in := p.cfg.interactions
	ctx := p.ctx

	if in.Hover != nil {
		h := *in.Hover
		if p.cfg.openDelay != nil {
			h.OpenDelay = *p.cfg.openDelay
		}
		if p.cfg.closeDelay != nil {
			h.CloseDelay = *p.cfg.closeDelay
		}
		if p.cfg.group != nil {
			h.Group = p.cfg.group
		}
		p.group.Add(interact.UseHover(ctx, h))
	}
	if in.Focus != nil {
		p.group.Add(interact.UseFocus(ctx, *in.Focus))
	}
	if in.ClientPoint != nil {
		p.group.Add(interact.UseClientPoint(ctx, *in.ClientPoint))
	}
	if in.Click != nil {
		p.group.Add(interact.UseClick(ctx, *in.Click))
	}
	if in.Dismiss != nil {
		p.group.Add(interact.UseDismiss(ctx, *in.Dismiss))
	}
	if in.Role != "" {
		p.group.Add(interact.UseRole(ctx, in.Role))
	}
}

// veto applies the modal and dismissible settings before the user hook.
func (p *Popup) veto(open bool, d *ChangeDetails) {
	if !open {
		switch d.Reason {
		case ReasonEscapeKey, ReasonOutsidePress:
			if !p.cfg.dismissible {
				d.Cancel()
				return
			}
		}
		if p.cfg.modal && (d.Reason == ReasonOutsidePress || d.Reason == ReasonFocusOut) {
			d.Cancel()
			return
		}
	}
	if p.cfg.onOpenChange != nil {
		p.cfg.onOpenChange(open, d)
	}
}

func (p *Popup) onChange(ch openstate.Change) {
	switch ch.To {
	case openstate.Opening:
		if p.stopAuto == nil {
			p.startAutoUpdate()
		}
	case openstate.Closing:
		p.restoreFocus(ch.Reason)
	case openstate.Closed:
		p.stopAutoUpdate()
		if ch.From != openstate.Closing {
			p.restoreFocus(ch.Reason)
		}
	}
	p.reflect()
	debug.Log("floatui: %s %s -> %s (%s)", p.ctx.ID(), ch.From, ch.To, ch.Reason)
}

func (p *Popup) onReferenceChange(dom.Reference) {
	if p.stopAuto == nil {
		return
	}
	p.stopAutoUpdate()
	p.startAutoUpdate()
}

// startAutoUpdate computes the position now and keeps it current until
// stopAutoUpdate.
func (p *Popup) startAutoUpdate() {
	ref := p.ctx.Reference()
	_, virtual := ref.(*dom.VirtualElement)
	poll := virtual && dom.ReferenceNode(ref) == nil
	p.stopAuto = autoupdate.AutoUpdate(ref, p.floating, p.cfg.sched, p.Update,
		autoupdate.WithAnimationFrame(poll),
	)
}

func (p *Popup) stopAutoUpdate() {
	if p.stopAuto != nil {
		p.stopAuto()
		p.stopAuto = nil
	}
}

// restoreFocus moves focus back to the anchor when it was inside the popup.
func (p *Popup) restoreFocus(reason Reason) {
	active := p.doc.ActiveElement()
	if active == nil || !p.floating.Contains(active) || !p.anchor.Connected() {
		return
	}
	visible := reason == ReasonEscapeKey || reason == ReasonListNavigation
	p.doc.Focus(p.anchor, visible)
}

// Update recomputes the position and writes it to the floating element.
// It runs automatically while the popup is not closed.
func (p *Popup) Update() {
	ref := p.ctx.Reference()
	if !dom.ReferenceConnected(ref) {
		// Keep the last known position.
		p.layout.AnchorHidden = true
		p.applyLayout()
		return
	}

	refRect := ref.BoundingRect()
	size := p.floating.Size()
	res := placement.Compute(refRect, size, placement.Config{
		Placement:  p.cfg.placement,
		Strategy:   p.cfg.strategy,
		Middleware: p.middleware(),
		Platform:   &platform{doc: p.doc, ref: ref, floating: p.floating},
		RTL:        p.cfg.rtl,
	})
	p.layout = p.layoutFrom(res, refRect, size)
	p.hasLayout = true
	p.applyLayout()
}

// middleware builds the placement pipeline for the current configuration.
func (p *Popup) middleware() []placement.Middleware {
	boundary := p.boundary()
	pad := p.cfg.padding

	var mw []placement.Middleware
	if item := p.alignedItem(); item != nil {
		mw = append(mw,
			alignItem(item, p.floating),
			placement.Shift(placement.ShiftOptions{CrossAxis: true, Padding: pad, Boundary: boundary}),
		)
	} else {
		mw = append(mw,
			placement.Offset(placement.OffsetOptions{MainAxis: p.cfg.sideOffset, CrossAxis: p.cfg.alignOffset}),
			placement.Flip(placement.FlipOptions{Padding: pad, Boundary: boundary}),
			placement.Shift(placement.ShiftOptions{
				Padding:  pad,
				Boundary: boundary,
				Limiter:  placement.LimitShift(placement.LimitShiftOptions{}),
			}),
		)
	}
	mw = append(mw, placement.Size(placement.SizeOptions{Padding: pad, Boundary: boundary}))
	if p.cfg.arrow != nil {
		mw = append(mw, placement.Arrow(placement.ArrowOptions{
			Size:    p.cfg.arrow.Size(),
			Padding: EdgeAll(p.cfg.arrowPadding),
		}))
	}
	return append(mw, placement.Hide(placement.HideOptions{Strategy: placement.ReferenceHidden}))
}

func (p *Popup) alignedItem() *dom.Node {
	if p.cfg.itemAnchor == nil {
		return nil
	}
	return p.cfg.itemAnchor()
}

func (p *Popup) boundary() placement.Boundary {
	if len(p.cfg.boundary) == 0 {
		return nil
	}
	out := make(placement.Boundary, 0, len(p.cfg.boundary))
	for _, n := range p.cfg.boundary {
		out = append(out, n.BoundingRect())
	}
	return out
}

// ID returns the popup id, also written as the floating element's id.
func (p *Popup) ID() string { return p.ctx.ID() }

// Document returns the popup's document.
func (p *Popup) Document() *dom.Document { return p.doc }

// Anchor returns the node interaction listeners attach to.
func (p *Popup) Anchor() *dom.Node { return p.anchor }

// Floating returns the floating element.
func (p *Popup) Floating() *dom.Node { return p.floating }

// Tree returns the tree the popup belongs to.
func (p *Popup) Tree() *Tree { return p.ctx.Tree() }

// Scheduler returns the scheduler the popup runs on.
func (p *Popup) Scheduler() Scheduler { return p.cfg.sched }

// State returns the lifecycle state.
func (p *Popup) State() State { return p.ctrl.State() }

// IsOpen reports whether the popup is opening or open.
func (p *Popup) IsOpen() bool { return p.ctrl.Open() }

// Reason returns the reason of the last accepted open or close.
func (p *Popup) Reason() Reason { return p.ctrl.Reason() }

// RequestOpen asks the popup to open. It reports whether the request was
// accepted.
func (p *Popup) RequestOpen(reason Reason) bool {
	return p.ctrl.RequestOpen(reason, nil)
}

// RequestClose asks the popup to close. It reports whether the request was
// accepted.
func (p *Popup) RequestClose(reason Reason) bool {
	return p.ctrl.RequestClose(reason, nil)
}

// SetOpen opens or closes the popup programmatically.
func (p *Popup) SetOpen(open bool) bool {
	return p.ctrl.SetOpen(open, ReasonProgrammatic, nil)
}

// Toggle flips the open state programmatically.
func (p *Popup) Toggle() bool {
	return p.ctrl.Toggle(ReasonProgrammatic, nil)
}

// FinishTransition settles a pending Opening or Closing immediately.
func (p *Popup) FinishTransition() {
	p.ctrl.FinishTransition()
}

// Subscribe calls fn on every state change.
func (p *Popup) Subscribe(fn func(Change)) Cancel {
	return p.ctrl.Subscribe(fn)
}

// SetReference anchors the popup to ref instead of the anchor node.
func (p *Popup) SetReference(ref Reference) {
	p.ctx.SetReference(ref)
}

// Reference returns the current placement reference.
func (p *Popup) Reference() Reference {
	return p.ctx.Reference()
}

// Layout returns the last computed layout and whether one was computed.
func (p *Popup) Layout() (Layout, bool) {
	return p.layout, p.hasLayout
}

// own ties cancel to the popup's lifetime.
func (p *Popup) own(cancel loop.Cancel) loop.Cancel {
	return p.group.Add(cancel)
}

// Dispose stops auto-update, removes every listener and attribute the
// popup installed and drops its subscribers. The popup is unusable after.
func (p *Popup) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.stopAutoUpdate()
	p.group.Dispose()
	p.ctx.Dispose()
	p.ctrl.Dispose()
	debug.Log("floatui: %s disposed", p.ctx.ID())
}
