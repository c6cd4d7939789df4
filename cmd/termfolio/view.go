package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/motion"
	"github.com/Zachkp/portfolio/internal/scene"
	"github.com/Zachkp/portfolio/internal/theme"
)

// Terminal cells are treated as 8x16 pixel boxes when talking to the scene.
const (
	cellW = 8.0
	cellH = 16.0

	ropeRest   = 6 // rows of rope at rest
	ropeMargin = 6 // columns from the right edge
	textMargin = 2
	sideBar    = 34 // columns reserved for the rope and the figure
)

type palette struct {
	text, dim, accent, rope, bulb tcell.Style
}

func paletteFor(t theme.Theme) palette {
	if t == theme.Light {
		bg := tcell.NewRGBColor(240, 240, 240)
		base := tcell.StyleDefault.Background(bg)
		return palette{
			text:   base.Foreground(tcell.NewRGBColor(17, 17, 17)),
			dim:    base.Foreground(tcell.NewRGBColor(120, 120, 120)),
			accent: base.Foreground(tcell.NewRGBColor(33, 150, 243)).Bold(true),
			rope:   base.Foreground(tcell.NewRGBColor(136, 136, 136)),
			bulb:   base.Foreground(tcell.NewRGBColor(255, 215, 0)).Bold(true),
		}
	}
	bg := tcell.NewRGBColor(5, 5, 5)
	base := tcell.StyleDefault.Background(bg)
	return palette{
		text:   base.Foreground(tcell.NewRGBColor(234, 234, 234)),
		dim:    base.Foreground(tcell.NewRGBColor(90, 90, 90)),
		accent: base.Foreground(tcell.NewRGBColor(0, 229, 255)).Bold(true),
		rope:   base.Foreground(tcell.NewRGBColor(85, 85, 85)),
		bulb:   base.Foreground(tcell.NewRGBColor(68, 68, 68)),
	}
}

type line struct {
	text   string
	accent bool
}

// view lays the page out as rows of text and draws frames onto a screen.
type view struct {
	screen tcell.Screen
	w, h   int

	lines     []line
	anchors   []int // first row of each section
	scroll    int
	maxScroll int
}

func newView(s tcell.Screen) *view {
	v := &view{screen: s}
	v.resize()
	return v
}

func (v *view) resize() {
	v.w, v.h = v.screen.Size()
	v.layout()
}

// layout wraps every section into the text column and pads each one to a full
// screen, so a section occupies about one viewport like it does in a browser.
func (v *view) layout() {
	width := v.w - sideBar - textMargin*2
	if width < 20 {
		width = 20
	}

	v.lines = v.lines[:0]
	v.anchors = v.anchors[:0]
	for _, sec := range content.Sections() {
		start := len(v.lines)
		v.anchors = append(v.anchors, start)

		v.lines = append(v.lines, line{text: strings.ToUpper(sec.Title), accent: true}, line{})
		if sec.Lead != "" {
			v.add(sec.Lead, width)
			v.lines = append(v.lines, line{})
		}
		if sec.Body != "" {
			v.add(sec.Body, width)
			v.lines = append(v.lines, line{})
		}
		for _, sk := range sec.Skills {
			v.lines = append(v.lines, line{text: "  " + sk.Name + " - " + sk.Level})
		}
		for _, e := range sec.Entries {
			title := e.Title
			if e.Subtitle != "" {
				title += " | " + e.Subtitle
			}
			if e.Period != "" {
				title += " (" + e.Period + ")"
			}
			v.lines = append(v.lines, line{text: title, accent: true})
			for _, b := range e.Bullets {
				v.add("- "+b, width)
			}
			if len(e.Tech) > 0 {
				v.add("  "+strings.Join(e.Tech, ", "), width)
			}
			v.lines = append(v.lines, line{})
		}
		for _, l := range sec.Links {
			v.lines = append(v.lines, line{text: "  " + l.Label + ": " + l.Href})
		}

		for len(v.lines)-start < v.h {
			v.lines = append(v.lines, line{})
		}
	}

	v.maxScroll = len(v.lines) - v.h
	if v.maxScroll < 0 {
		v.maxScroll = 0
	}
	v.scrollTo(v.scroll)
}

func (v *view) add(text string, width int) {
	for _, l := range wrap(text, width) {
		v.lines = append(v.lines, line{text: l})
	}
}

func (v *view) scrollTo(row int) {
	if row < 0 {
		row = 0
	}
	if row > v.maxScroll {
		row = v.maxScroll
	}
	v.scroll = row
}

// jump scrolls to the n-th section anchor.
func (v *view) jump(n int) bool {
	if n < 0 || n >= len(v.anchors) {
		return false
	}
	v.scrollTo(v.anchors[n])
	return true
}

// scrollPx and viewportPx are the scroll state in scene pixels.
func (v *view) scrollPx() float64   { return float64(v.scroll) * cellH }
func (v *view) viewportPx() float64 { return float64(v.h) * cellH }

// ropeCol is the rope's column; bulbRow is the bulb's row for a rope offset in pixels.
func (v *view) ropeCol() int { return v.w - ropeMargin }

func (v *view) bulbRow(offset float64) int {
	return ropeRest + int(math.Round(offset/cellH))
}

// onBulb reports whether a cell is close enough to the bulb to grab it.
func (v *view) onBulb(x, y int, offset float64) bool {
	row := v.bulbRow(offset)
	return abs(x-v.ropeCol()) <= 1 && y >= row-1 && y <= row+1
}

func (v *view) draw(f scene.Frame, loading bool, figureBoundary func(func() error) bool) {
	p := paletteFor(f.Theme)
	v.screen.SetStyle(p.text)
	v.screen.Clear()

	for row := 0; row < v.h; row++ {
		i := v.scroll + row
		if i >= len(v.lines) {
			break
		}
		style := p.text
		if v.lines[i].accent {
			style = p.accent
		}
		v.text(textMargin, row, v.lines[i].text, style)
	}

	switch {
	case f.Figure != nil:
		figureBoundary(func() error {
			v.drawFigure(*f.Figure, p)
			return nil
		})
	case loading:
		v.text(v.w-sideBar+10, v.h/2, "( . )", p.dim)
	}

	v.drawRope(f.Pull.Offset, f.Theme, p)

	cx := int(f.Cursor.X / cellW)
	cy := int(f.Cursor.Y / cellH)
	if f.Cursor != (motion.Vec2{}) {
		v.screen.SetContent(cx, cy, 'o', nil, p.accent)
	}

	v.text(0, v.h-1, navBar(), p.dim.Reverse(true))

	v.screen.Show()
}

// navBar lists the navigation items with the key that jumps to each anchor.
func navBar() string {
	var b strings.Builder
	b.WriteByte(' ')
	for _, item := range content.Nav() {
		for i, sec := range content.Sections() {
			if sec.ID == item.Anchor {
				fmt.Fprintf(&b, "%d %s  ", i+1, item.Label)
				break
			}
		}
	}
	b.WriteString(" pull the bulb  q quit ")
	return b.String()
}

func (v *view) drawRope(offset float64, t theme.Theme, p palette) {
	col := v.ropeCol()
	bulb := v.bulbRow(offset)
	for row := 0; row < bulb; row++ {
		v.screen.SetContent(col, row, '│', nil, p.rope)
	}
	v.screen.SetContent(col, bulb, '▀', nil, p.rope)
	glyph := '○'
	if t == theme.Light {
		glyph = '●'
	}
	v.screen.SetContent(col, bulb+1, glyph, nil, p.bulb)
}

// drawFigure renders the mascot around a screen anchor derived from its pose.
func (v *view) drawFigure(fig motion.FigureFrame, p palette) {
	rel := fig.Position.Sub(motion.DesktopBase)
	x := v.w - sideBar + 8 + int(math.Round((rel.X-fig.Camera.X)*4))
	y := v.h/2 - int(math.Round((rel.Y-fig.Camera.Y)*3)) - int(math.Round(rel.Z))

	eyes := "o   o"
	switch {
	case fig.Blink:
		eyes = "-   -"
	case fig.Head.Y < -0.25:
		eyes = "o  o "
	case fig.Head.Y > 0.1:
		eyes = " o  o"
	}
	lean := 0
	if fig.Body.X > 0.05 {
		lean = 1
	}

	core := '+'
	if fig.EnginePulse > 1.02 {
		core = '*'
	}

	v.text(x+lean, y, " ___ ", p.accent)
	v.text(x+lean-1, y+1, "|"+eyes+"|", p.accent)
	v.text(x, y+2, "[==", p.text)
	v.screen.SetContent(x+3, y+2, core, nil, p.accent)
	v.text(x+4, y+2, "==]", p.text)

	if fig.RightArm.Z < -1.5 {
		v.text(x-2, y, "\\", p.text)
		v.text(x-1, y+1, "\\", p.text)
	} else {
		v.text(x-1, y+3, "/", p.text)
	}
	v.text(x+7, y+3, "\\", p.text)
	v.text(x+1, y+3, "|   |", p.text)
	v.text(x+1, y+4, "^   ^", p.dim)
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		cur := ""
		for _, word := range strings.Fields(para) {
			if cur != "" && len([]rune(cur))+1+len([]rune(word)) > width {
				out = append(out, cur)
				cur = ""
			}
			if cur != "" {
				cur += " "
			}
			cur += word
		}
		if cur != "" {
			out = append(out, cur)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
