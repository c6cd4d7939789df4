package main

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/figure"
	"github.com/Zachkp/portfolio/internal/scene"
)

const wheelRows = 3

// app is the terminal renderer for a scene.
type app struct {
	screen tcell.Screen
	scene  *scene.Scene
	view   *view

	// loading is the pending figure load, nil once it settled.
	loading *figure.Handle

	grabbed bool
	lastY   int
}

func newApp(s tcell.Screen, sc *scene.Scene) *app {
	a := &app{screen: s, scene: sc, view: newView(s)}
	a.syncScroll()
	return a
}

// run draws every published frame and feeds terminal input to the scene
// until the user quits or ctx ends.
func (a *app) run(ctx context.Context) {
	frames, stop := a.scene.Subscribe()
	defer stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !a.handleInput(ev) {
				return
			}
		case f := <-frames:
			a.draw(f)
		}
	}
}

func (a *app) draw(f scene.Frame) {
	if a.loading != nil {
		select {
		case <-a.loading.Done():
			a.loading = nil
		default:
		}
	}
	a.view.draw(f, a.loading != nil, a.scene.Boundary().Run)
}

func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown:
			a.scrollBy(1)
		case tcell.KeyUp:
			a.scrollBy(-1)
		case tcell.KeyPgDn:
			a.scrollBy(a.view.h)
		case tcell.KeyPgUp:
			a.scrollBy(-a.view.h)
		case tcell.KeyRune:
			switch r := ev.Rune(); {
			case r == 'q':
				return false
			case r == 'j':
				a.scrollBy(1)
			case r == 'k':
				a.scrollBy(-1)
			case r >= '1' && r <= '9':
				if a.view.jump(int(r - '1')) {
					a.syncScroll()
				}
			}
		}

	case *tcell.EventMouse:
		a.handleMouse(ev)

	case *tcell.EventResize:
		a.screen.Sync()
		a.view.resize()
		a.syncScroll()
	}
	return true
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	a.scene.PointerMove(float64(x)*cellW, float64(y)*cellH, float64(a.view.w)*cellW, float64(a.view.h)*cellH)

	switch {
	case buttons&tcell.WheelDown != 0:
		a.scrollBy(wheelRows)
	case buttons&tcell.WheelUp != 0:
		a.scrollBy(-wheelRows)
	case buttons&tcell.Button1 != 0:
		if !a.grabbed {
			if !a.view.onBulb(x, y, a.scene.PullState().Offset) {
				return
			}
			a.grabbed = true
			a.lastY = y
			a.scene.PullDown()
			return
		}
		if dy := y - a.lastY; dy != 0 {
			a.scene.PullMove(float64(dy) * cellH)
			a.lastY = y
		}
	case a.grabbed:
		a.grabbed = false
		a.scene.PullUp()
	}
}

func (a *app) scrollBy(rows int) {
	a.view.scrollTo(a.view.scroll + rows)
	a.syncScroll()
}

func (a *app) syncScroll() {
	a.scene.Scroll(a.view.scrollPx(), a.view.viewportPx())
}
