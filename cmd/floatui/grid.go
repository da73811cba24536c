package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/grindlemire/floatui/internal/geom"
)

type cellStyle uint8

const (
	stNormal cellStyle = iota
	stTitle
	stDim
	stTrigger
	stFocus
	stOpen
	stBox
	stHighlight
	stDisabled
	stTooltip
	stStatus
)

// theme maps cell styles to lipgloss styles. Styles missing from the map
// render as plain text.
type theme map[cellStyle]lipgloss.Style

func defaultTheme() theme {
	box := lipgloss.Color("236")
	return theme{
		stTitle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		stDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		stTrigger:   lipgloss.NewStyle().Bold(true),
		stFocus:     lipgloss.NewStyle().Bold(true).Reverse(true),
		stOpen:      lipgloss.NewStyle().Bold(true).Underline(true),
		stBox:       lipgloss.NewStyle().Background(box).Foreground(lipgloss.Color("250")),
		stHighlight: lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")),
		stDisabled:  lipgloss.NewStyle().Background(box).Foreground(lipgloss.Color("240")),
		stTooltip:   lipgloss.NewStyle().Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0")),
		stStatus:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

type cell struct {
	r  rune
	st cellStyle
	// cont marks the second column of a wide rune.
	cont bool
}

// grid is a terminal-sized cell buffer. Later writes paint over earlier
// ones, so popups are drawn after the page.
type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int) *grid {
	g := &grid{w: max(w, 0), h: max(h, 0)}
	g.cells = make([]cell, g.w*g.h)
	for i := range g.cells {
		g.cells[i] = cell{r: ' '}
	}
	return g
}

func (g *grid) set(x, y int, c cell) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = c
}

// text writes s from (x, y) and returns the column after it.
func (g *grid) text(x, y int, s string, st cellStyle) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		g.set(x, y, cell{r: r, st: st})
		if w == 2 {
			g.set(x+1, y, cell{st: st, cont: true})
		}
		x += w
	}
	return x
}

func (g *grid) fill(r geom.Rect, st cellStyle) {
	x0, y0, x1, y1 := cellBounds(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.set(x, y, cell{r: ' ', st: st})
		}
	}
}

func (g *grid) frame(r geom.Rect, st cellStyle) {
	x0, y0, x1, y1 := cellBounds(r)
	if x1-x0 < 2 || y1-y0 < 2 {
		return
	}
	for x := x0 + 1; x < x1-1; x++ {
		g.set(x, y0, cell{r: '─', st: st})
		g.set(x, y1-1, cell{r: '─', st: st})
	}
	for y := y0 + 1; y < y1-1; y++ {
		g.set(x0, y, cell{r: '│', st: st})
		g.set(x1-1, y, cell{r: '│', st: st})
	}
	g.set(x0, y0, cell{r: '┌', st: st})
	g.set(x1-1, y0, cell{r: '┐', st: st})
	g.set(x0, y1-1, cell{r: '└', st: st})
	g.set(x1-1, y1-1, cell{r: '┘', st: st})
}

func cellBounds(r geom.Rect) (x0, y0, x1, y1 int) {
	return int(r.X), int(r.Y), int(r.X + r.Width), int(r.Y + r.Height)
}

// render joins rows, styling each run of equally styled cells once.
func (g *grid) render(t theme) string {
	var b strings.Builder
	var run strings.Builder
	flush := func(st cellStyle) {
		if run.Len() == 0 {
			return
		}
		if style, ok := t[st]; ok {
			b.WriteString(style.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}

	for y := 0; y < g.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		cur := stNormal
		for x := 0; x < g.w; x++ {
			c := g.cells[y*g.w+x]
			if c.cont {
				continue
			}
			if c.st != cur {
				flush(cur)
				cur = c.st
			}
			run.WriteRune(c.r)
		}
		flush(cur)
	}
	return b.String()
}
