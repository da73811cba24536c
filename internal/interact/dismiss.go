package interact

import (
	"slices"
	"sync"

	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/internal/openstate"
	"github.com/grindlemire/floatui/pkg/debug"
)

// DismissOptions configures UseDismiss. The zero value closes on Escape and
// on outside press.
type DismissOptions struct {
	NoEscapeKey    bool
	NoOutsidePress bool
	// AncestorScroll closes the popup when a scroll container of the
	// trigger, or the document, scrolls.
	AncestorScroll bool
	// Bubbles makes Escape close the popup's ancestors as well.
	Bubbles bool
	// OutsidePressFilter returns false to ignore an outside press.
	OutsidePressFilter func(*dom.PointerEvent) bool
}

type dismissEntry struct {
	ctx   *Context
	opts  DismissOptions
	stack *DismissStack
	// seq orders entries by when they opened, across every stack.
	seq uint64
}

// DismissStack holds the open popups of one kind in one document, in the
// order they opened. A single pair of document listeners serves the whole
// stack; they are installed with the first entry and removed with the last,
// and an empty stack is forgotten.
type DismissStack struct {
	doc     *dom.Document
	kind    string
	entries []*dismissEntry
	cancel  loop.Cancel
}

type stackKey struct {
	doc  *dom.Document
	kind string
}

var (
	stacksMu sync.Mutex
	stacks   = map[stackKey]*DismissStack{}
	// registered maps every context with a live UseDismiss to its entry.
	registered = map[*Context]*dismissEntry{}
	openSeq    uint64
)

// StackFor returns the dismiss stack for kind in doc.
func StackFor(doc *dom.Document, kind string) *DismissStack {
	stacksMu.Lock()
	defer stacksMu.Unlock()
	k := stackKey{doc: doc, kind: kind}
	s, ok := stacks[k]
	if !ok {
		s = &DismissStack{doc: doc, kind: kind}
		stacks[k] = s
	}
	return s
}

// Len returns the number of open entries.
func (s *DismissStack) Len() int {
	return len(s.entries)
}

// Top returns the most recently opened entry's context, or nil.
func (s *DismissStack) Top() *Context {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1].ctx
}

// Listening reports whether the document listeners are installed.
func (s *DismissStack) Listening() bool {
	return s.cancel != nil
}

func (s *DismissStack) push(e *dismissEntry) {
	if slices.Contains(s.entries, e) {
		return
	}
	stacksMu.Lock()
	openSeq++
	e.seq = openSeq
	stacks[stackKey{doc: s.doc, kind: s.kind}] = s
	stacksMu.Unlock()

	e.stack = s
	s.entries = append(s.entries, e)
	if s.cancel == nil {
		var g loop.Group
		g.Add(s.doc.AddEventListener(dom.EventKeyDown, s.onKeyDown, dom.Capture()))
		g.Add(s.doc.AddEventListener(dom.EventPointerDown, s.onPointerDown, dom.Capture()))
		s.cancel = loop.Once(g.Dispose)
		debug.Log("interact: %s dismiss listeners installed", s.kind)
	}
}

func (s *DismissStack) remove(e *dismissEntry) {
	s.entries = slices.DeleteFunc(s.entries, func(x *dismissEntry) bool { return x == e })
	if e.stack == s {
		e.stack = nil
	}
	if len(s.entries) > 0 {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		debug.Log("interact: %s dismiss listeners removed", s.kind)
	}
	stacksMu.Lock()
	k := stackKey{doc: s.doc, kind: s.kind}
	if stacks[k] == s {
		delete(stacks, k)
	}
	stacksMu.Unlock()
}

// onKeyDown closes the innermost open popup of the document on Escape,
// whatever its kind. Every stack listens, so the first listener to run
// closes the most recently opened escapable entry and marks the event
// handled; the others see the prevented default and stay out.
func (s *DismissStack) onKeyDown(e dom.Event) {
	ev := e.(*dom.KeyEvent)
	if ev.Key != dom.KeyEscape || ev.DefaultPrevented() {
		return
	}
	entry := topEscapable(s.doc)
	if entry == nil {
		return
	}
	ev.PreventDefault()
	ev.StopPropagation()
	entry.ctx.SetInstant("dismiss")
	entry.ctx.ctrl.RequestClose(openstate.ReasonEscapeKey, ev)
	if entry.opts.Bubbles {
		for _, anc := range entry.ctx.tree.Ancestors(entry.ctx.id) {
			anc.ctrl.RequestClose(openstate.ReasonEscapeKey, ev)
		}
	}
}

func (s *DismissStack) onPointerDown(e dom.Event) {
	ev := e.(*dom.PointerEvent)
	target := ev.Base().Target
	for _, entry := range slices.Backward(slices.Clone(s.entries)) {
		if entry.opts.NoOutsidePress || !entry.ctx.ctrl.Open() {
			continue
		}
		if entry.ctx.Contains(target) {
			continue
		}
		if entry.opts.OutsidePressFilter != nil && !entry.opts.OutsidePressFilter(ev) {
			continue
		}
		entry.ctx.ctrl.RequestClose(openstate.ReasonOutsidePress, ev)
	}
}

// topEscapable returns the most recently opened entry in doc that handles
// Escape and has no open descendant handling it first, or nil.
func topEscapable(doc *dom.Document) *dismissEntry {
	stacksMu.Lock()
	defer stacksMu.Unlock()
	var top *dismissEntry
	for k, s := range stacks {
		if k.doc != doc {
			continue
		}
		for _, entry := range s.entries {
			if !escapable(entry) || (top != nil && entry.seq < top.seq) {
				continue
			}
			if hasEscapableDescendant(entry.ctx) {
				continue
			}
			top = entry
		}
	}
	return top
}

func escapable(e *dismissEntry) bool {
	return !e.opts.NoEscapeKey && e.ctx.ctrl.Open()
}

// hasEscapableDescendant must be called with stacksMu held.
func hasEscapableDescendant(ctx *Context) bool {
	for _, d := range ctx.tree.Descendants(ctx.id) {
		if e, ok := registered[d]; ok && escapable(e) {
			return true
		}
	}
	return false
}

// UseDismiss closes the popup on Escape, on a press outside the popup and
// its open descendants, and optionally on ancestor scroll. Popups of the
// same kind share one DismissStack.
func UseDismiss(ctx *Context, opts DismissOptions) loop.Cancel {
	entry := &dismissEntry{ctx: ctx, opts: opts}
	leave := func() {
		if entry.stack != nil {
			entry.stack.remove(entry)
		}
	}

	stacksMu.Lock()
	registered[ctx] = entry
	stacksMu.Unlock()

	var g loop.Group
	var scroll loop.Cancel
	stopScroll := func() {
		if scroll != nil {
			scroll()
			scroll = nil
		}
	}
	startScroll := func() {
		if !opts.AncestorScroll || scroll != nil {
			return
		}
		var sg loop.Group
		closeOnScroll := func(e dom.Event) {
			ctx.ctrl.RequestClose(openstate.ReasonAncestorScroll, e)
		}
		for _, anc := range dom.ScrollAncestors(ctx.trigger) {
			sg.Add(anc.AddEventListener(dom.EventScroll, closeOnScroll))
		}
		sg.Add(ctx.doc.AddEventListener(dom.EventScroll, func(e dom.Event) {
			if e.Base().Target == nil {
				closeOnScroll(e)
			}
		}, dom.Capture()))
		scroll = loop.Once(sg.Dispose)
	}

	if ctx.ctrl.Open() {
		StackFor(ctx.doc, ctx.kind).push(entry)
		startScroll()
	}
	g.Add(ctx.ctrl.Subscribe(func(ch openstate.Change) {
		switch ch.To {
		case openstate.Opening, openstate.Open:
			if entry.stack == nil {
				StackFor(ctx.doc, ctx.kind).push(entry)
			}
			startScroll()
		case openstate.Closing, openstate.Closed:
			leave()
			stopScroll()
		}
	}))
	g.Add(func() {
		leave()
		stopScroll()
		stacksMu.Lock()
		delete(registered, ctx)
		stacksMu.Unlock()
	})

	return ctx.Own(loop.Once(g.Dispose))
}
