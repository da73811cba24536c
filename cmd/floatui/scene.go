package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/grindlemire/floatui"
	"github.com/grindlemire/floatui/internal/dom"
	"github.com/grindlemire/floatui/internal/geom"
	"github.com/grindlemire/floatui/internal/loop"
	"github.com/grindlemire/floatui/pkg/debug"
)

// Demo page layout, in terminal cells.
const (
	triggerRow = 2
	canvasTop  = 4
)

// parked is where closed popups wait so they never catch the pointer.
var parked = geom.Point{X: -1000, Y: -1000}

type popup interface {
	State() floatui.State
	Floating() *dom.Node
	Subscribe(fn func(floatui.Change)) floatui.Cancel
	Dispose()
}

// box is a popup the scene draws: a bordered list or a one-line tooltip.
type box struct {
	popup  popup
	items  []*dom.Node
	labels []string
	text   string
}

// scene is the demo page: a document of terminal cells with a menu, a
// select, two tooltips and a context menu on it. Every method runs on the
// scheduler's goroutine.
type scene struct {
	doc      *dom.Document
	sched    loop.Scheduler
	canvas   *dom.Node
	triggers []*dom.Node
	labels   map[*dom.Node]string

	menu *floatui.Menu
	sel  *floatui.Select

	boxes   []*box
	batch   *loop.FrameBatcher
	group   loop.Group
	status  string
	pressed dom.MouseButton
}

// newScene builds the page on a width x height document. publish receives
// the rendered page once per frame after anything changed.
func newScene(sched loop.Scheduler, width, height int, t theme, publish func(string)) (*scene, error) {
	s := &scene{
		doc:     dom.NewDocument(float64(width), float64(height)),
		sched:   sched,
		labels:  make(map[*dom.Node]string),
		status:  "ready",
		pressed: dom.MouseNone,
	}
	s.batch = loop.NewFrameBatcher(sched, func() { publish(s.render(t)) })
	s.group.Add(s.batch.Cancel)

	root := s.doc.Root()
	s.canvas = root.AppendChild(s.doc.CreateElement("canvas"))
	s.layoutCanvas()

	file := s.trigger("file", "[File]", 2, 6)
	fruit := s.trigger("fruit", "", 10, 18)
	help := s.trigger("help", "[?]", 30, 3)
	info := s.trigger("info", "[i]", 34, 3)

	if err := s.buildMenu(file); err != nil {
		s.Dispose()
		return nil, err
	}
	if err := s.buildSelect(fruit); err != nil {
		s.Dispose()
		return nil, err
	}
	group := floatui.NewDelayGroup(sched, floatui.GroupOptions{OpenDelay: 400 * time.Millisecond, Timeout: 300 * time.Millisecond})
	for _, tip := range []struct {
		trigger *dom.Node
		text    string
	}{
		{help, "Tab moves focus, arrows navigate"},
		{info, "Right-click the page for more"},
	} {
		if err := s.buildTooltip(tip.trigger, tip.text, group); err != nil {
			s.Dispose()
			return nil, err
		}
	}
	if err := s.buildContextMenu(); err != nil {
		s.Dispose()
		return nil, err
	}
	return s, nil
}

func (s *scene) trigger(name, label string, x, width float64) *dom.Node {
	n := s.doc.Root().AppendChild(s.doc.CreateElement(name))
	n.SetRect(geom.NewRect(x, triggerRow, width, 1))
	n.SetFocusable(true)
	s.triggers = append(s.triggers, n)
	s.labels[n] = label
	return n
}

// listBox creates a parked bordered popup body with one row per label.
// Item rows follow the body wherever the engine moves it.
func (s *scene) listBox(name string, labels []string) (*dom.Node, []*dom.Node) {
	w := 0
	for _, l := range labels {
		w = max(w, runewidth.StringWidth(l))
	}
	fl := s.doc.Root().AppendChild(s.doc.CreateElement(name))
	fl.SetRect(geom.NewRect(parked.X, parked.Y, float64(w+4), float64(len(labels)+2)))

	items := make([]*dom.Node, len(labels))
	for i, l := range labels {
		items[i] = fl.AppendChild(s.doc.CreateElement(l))
	}
	place := func() {
		r := fl.Layout()
		for i, it := range items {
			it.SetRect(geom.NewRect(r.X+1, r.Y+1+float64(i), r.Width-2, 1))
		}
	}
	place()
	s.group.Add(fl.ObserveGeometry(place))
	return fl, items
}

// track draws p while it is not closed, parks it once it closes and
// repaints on every change.
func (s *scene) track(p popup, b *box) {
	b.popup = p
	s.boxes = append(s.boxes, b)
	s.group.Add(p.Subscribe(func(ch floatui.Change) {
		debug.Log("demo: %s %s -> %s (%s)", p.Floating().Name(), ch.From, ch.To, ch.Reason)
		if ch.To == floatui.Closed {
			r := p.Floating().Layout()
			p.Floating().SetRect(geom.NewRect(parked.X, parked.Y, r.Width, r.Height))
		}
		s.batch.Request()
	}))
}

func (s *scene) buildMenu(trigger *dom.Node) error {
	labels := []string{"New", "Open", "Share >", "Delete"}
	fl, items := s.listBox("file-menu", labels)
	m, err := floatui.NewMenu(s.doc, trigger, fl,
		floatui.WithScheduler(s.sched),
		floatui.WithLayoutSync(),
		floatui.WithOnItemSelect(func(_ int, label string) { s.setStatus("menu: %s", label) }),
	)
	if err != nil {
		return err
	}
	s.menu = m
	s.group.Add(m.Dispose)
	s.track(m, &box{items: items, labels: labels})

	shareLabels := []string{"Email", "Link"}
	subFl, subItems := s.listBox("share-menu", shareLabels)
	for i, it := range items {
		if i == 2 {
			continue
		}
		m.AddItem(it, labels[i])
	}
	sub, err := m.NewSubmenu(items[2], "Share", subFl)
	if err != nil {
		return err
	}
	s.group.Add(sub.Dispose)
	for i, it := range subItems {
		sub.AddItem(it, shareLabels[i])
	}
	items[3].SetDisabled(true)
	s.track(sub, &box{items: subItems, labels: shareLabels})
	return nil
}

func (s *scene) buildSelect(trigger *dom.Node) error {
	values := []string{"apple", "banana", "cherry", "durian"}
	labels := []string{"Apple", "Banana", "Cherry", "Durian"}
	fl, items := s.listBox("fruit-list", labels)
	r := fl.Layout()
	fl.SetRect(geom.NewRect(r.X, r.Y, trigger.Layout().Width, r.Height))

	sel, err := floatui.NewSelect(s.doc, trigger, fl,
		floatui.WithScheduler(s.sched),
		floatui.WithLayoutSync(),
		floatui.WithValue(values[0]),
		floatui.WithOnValueChange(func(v string) { s.setStatus("fruit: %s", v) }),
	)
	if err != nil {
		return err
	}
	s.sel = sel
	s.group.Add(sel.Dispose)
	for i, it := range items {
		sel.AddOption(it, values[i], labels[i])
	}
	s.track(sel, &box{items: items, labels: labels})
	return nil
}

func (s *scene) buildTooltip(trigger *dom.Node, text string, group *floatui.DelayGroup) error {
	fl := s.doc.Root().AppendChild(s.doc.CreateElement(trigger.Name() + "-tip"))
	fl.SetRect(geom.NewRect(parked.X, parked.Y, float64(runewidth.StringWidth(text)+2), 1))
	tip, err := floatui.NewTooltip(s.doc, trigger, fl,
		floatui.WithScheduler(s.sched),
		floatui.WithLayoutSync(),
		floatui.WithDelayGroup(group),
	)
	if err != nil {
		return err
	}
	s.group.Add(tip.Dispose)
	s.track(tip, &box{text: text})
	return nil
}

func (s *scene) buildContextMenu() error {
	labels := []string{"Copy", "Paste", "Inspect"}
	fl, items := s.listBox("context-menu", labels)
	m, err := floatui.NewContextMenu(s.doc, s.canvas, fl,
		floatui.WithScheduler(s.sched),
		floatui.WithLayoutSync(),
		floatui.WithOnItemSelect(func(_ int, label string) { s.setStatus("context: %s", label) }),
	)
	if err != nil {
		return err
	}
	s.group.Add(m.Dispose)
	for i, it := range items {
		m.AddItem(it, labels[i])
	}
	s.track(m, &box{items: items, labels: labels})
	return nil
}

func (s *scene) setStatus(format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
	debug.Log("demo: %s", s.status)
}

func (s *scene) layoutCanvas() {
	vp := s.doc.Viewport()
	s.canvas.SetRect(geom.NewRect(0, canvasTop, vp.Width, max(vp.Height-canvasTop-1, 0)))
}

// invalidate schedules a repaint for the next frame.
func (s *scene) invalidate() {
	s.batch.Request()
}

func (s *scene) resize(width, height int) {
	s.doc.SetViewport(float64(width), float64(height))
	s.layoutCanvas()
	s.invalidate()
}

func (s *scene) key(msg tea.KeyMsg) {
	defer s.invalidate()
	key, r, mod, ok := domKey(msg)
	if !ok {
		return
	}
	ev := s.doc.KeyDown(key, r, mod)
	if key == dom.KeyTab && !ev.DefaultPrevented() {
		s.cycleFocus(mod.Has(dom.ModShift))
	}
}

// cycleFocus moves keyboard focus to the next (or previous) trigger.
func (s *scene) cycleFocus(back bool) {
	n := len(s.triggers)
	cur := -1
	for i, t := range s.triggers {
		if t == s.doc.ActiveElement() {
			cur = i
		}
	}
	next := (cur + 1) % n
	if back {
		next = (cur - 1 + n) % n
	}
	s.doc.Focus(s.triggers[next], true)
}

func (s *scene) mouse(msg tea.MouseMsg) {
	defer s.invalidate()
	x, y := float64(msg.X), float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		s.doc.PointerMove(x, y, dom.PointerMouse)
	case tea.MouseActionPress:
		button, ok := domButton(msg.Button)
		if !ok {
			return
		}
		s.pressed = button
		s.doc.PointerDown(x, y, button, dom.PointerMouse)
	case tea.MouseActionRelease:
		// Terminals often report releases without a button.
		button := s.pressed
		s.pressed = dom.MouseNone
		if button == dom.MouseNone {
			return
		}
		s.doc.PointerUp(x, y, button, dom.PointerMouse)
	}
}

func domButton(b tea.MouseButton) (dom.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return dom.MouseLeft, true
	case tea.MouseButtonMiddle:
		return dom.MouseMiddle, true
	case tea.MouseButtonRight:
		return dom.MouseRight, true
	default:
		return dom.MouseNone, false
	}
}

func domKey(msg tea.KeyMsg) (dom.Key, rune, dom.Modifier, bool) {
	mod := dom.ModNone
	if msg.Alt {
		mod |= dom.ModAlt
	}
	switch msg.Type {
	case tea.KeyUp:
		return dom.KeyUp, 0, mod, true
	case tea.KeyDown:
		return dom.KeyDown, 0, mod, true
	case tea.KeyLeft:
		return dom.KeyLeft, 0, mod, true
	case tea.KeyRight:
		return dom.KeyRight, 0, mod, true
	case tea.KeyHome:
		return dom.KeyHome, 0, mod, true
	case tea.KeyEnd:
		return dom.KeyEnd, 0, mod, true
	case tea.KeyPgUp:
		return dom.KeyPageUp, 0, mod, true
	case tea.KeyPgDown:
		return dom.KeyPageDown, 0, mod, true
	case tea.KeyEnter:
		return dom.KeyEnter, 0, mod, true
	case tea.KeyEsc:
		return dom.KeyEscape, 0, mod, true
	case tea.KeyTab:
		return dom.KeyTab, 0, mod, true
	case tea.KeyShiftTab:
		return dom.KeyTab, 0, mod | dom.ModShift, true
	case tea.KeyBackspace:
		return dom.KeyBackspace, 0, mod, true
	case tea.KeyDelete:
		return dom.KeyDelete, 0, mod, true
	case tea.KeySpace:
		return dom.KeySpace, ' ', mod, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return dom.KeyNone, 0, mod, false
		}
		return dom.KeyRune, msg.Runes[0], mod, true
	default:
		return dom.KeyNone, 0, mod, false
	}
}

// render paints the page, then every popup that is not closed in the order
// they were built.
func (s *scene) render(t theme) string {
	vp := s.doc.Viewport()
	g := newGrid(int(vp.Width), int(vp.Height))

	x := g.text(1, 0, "floatui", stTitle)
	g.text(x+2, 0, "tab focus  enter open  right-click page  ctrl+c quit", stDim)
	g.text(2, canvasTop+1, "right-click anywhere here for a context menu", stDim)

	for _, n := range s.triggers {
		st := stTrigger
		switch {
		case n == s.doc.ActiveElement():
			st = stFocus
		case n.HasAttr(floatui.AttrPopupOpen):
			st = stOpen
		}
		r := n.BoundingRect()
		g.text(int(r.X), int(r.Y), s.triggerLabel(n), st)
	}

	for _, b := range s.boxes {
		if b.popup.State() == floatui.Closed {
			continue
		}
		s.drawBox(g, b)
	}

	g.text(1, g.h-1, s.status, stStatus)
	return g.render(t)
}

func (s *scene) triggerLabel(n *dom.Node) string {
	if s.sel != nil && n == s.sel.Anchor() {
		w := int(n.Layout().Width)
		label := runewidth.Truncate("Fruit: "+s.sel.SelectedLabel(), w-3, "…")
		return "[" + runewidth.FillRight(label, w-3) + "▾]"
	}
	return s.labels[n]
}

func (s *scene) drawBox(g *grid, b *box) {
	r := b.popup.Floating().BoundingRect()
	if b.text != "" {
		g.fill(r, stTooltip)
		g.text(int(r.X)+1, int(r.Y), b.text, stTooltip)
		return
	}

	g.fill(r, stBox)
	g.frame(r, stBox)
	for i, it := range b.items {
		ir := it.BoundingRect()
		st := stBox
		switch {
		case it.Disabled():
			st = stDisabled
		case it.HasAttr("data-highlighted"):
			st = stHighlight
		}
		g.fill(ir, st)
		mark := " "
		if it.HasAttr("data-selected") {
			mark = "•"
		}
		label := runewidth.Truncate(b.labels[i], int(ir.Width)-2, "…")
		g.text(int(ir.X), int(ir.Y), mark+label, st)
	}
}

// Dispose tears down every popup and observer.
func (s *scene) Dispose() {
	s.group.Dispose()
}
