// Package scene owns the live page state shared by every renderer: the pointer
// and scroll samples, the pull switch, the cursor ring and the figure. All of it
// sits behind one mutex, so input handlers and the frame loop may run on
// different goroutines. Theme persistence and haptics run after the mutex is
// released, so a slow disk never stalls a frame.
package scene

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/figure"
	"github.com/Zachkp/portfolio/internal/motion"
	"github.com/Zachkp/portfolio/internal/theme"
)

// PullState is the rope as renderers see it.
type PullState struct {
	Offset   float64 `json:"offset"`
	Pull     float64 `json:"pull"`
	Dragging bool    `json:"dragging"`
}

// Frame is an immutable snapshot published once per tick.
type Frame struct {
	Seq     uint64               `json:"seq"`
	Elapsed float64              `json:"elapsed"`
	Theme   theme.Theme          `json:"theme"`
	Section int                  `json:"section"`
	Pointer motion.PointerSample `json:"pointer"`
	Cursor  motion.Vec2          `json:"cursor"`
	Pull    PullState            `json:"pull"`
	// Figure is nil until the figure loaded, on weak devices, and after it failed.
	Figure *motion.FigureFrame `json:"figure,omitempty"`
}

type Options struct {
	Planner motion.Planner
	Motion  config.Motion
	Haptics motion.Pulser
	// Verbose logs figure failures.
	Verbose bool
}

type Scene struct {
	ctx        context.Context
	themes     *theme.Store
	haptics    motion.Pulser
	themeCh    <-chan theme.Theme
	stopThemes func()

	mu       sync.Mutex
	theme    theme.Theme
	sampler  motion.Sampler
	driver   *motion.Driver
	pull     *motion.PullSwitch
	cursor   *motion.Follower
	boundary *figure.Boundary
	figureOn bool
	seq      uint64

	latest atomic.Pointer[Frame]

	subMu sync.Mutex
	subs  map[int]chan Frame
	next  int
}

var errDiverged = errors.New("figure pose is not finite")

// New builds a scene. ctx bounds theme persistence done on behalf of the switch.
func New(ctx context.Context, themes *theme.Store, opts Options) *Scene {
	if opts.Planner == (motion.Planner{}) {
		opts.Planner = motion.DefaultPlanner
	}
	if opts.Motion == (config.Motion{}) {
		opts.Motion = config.DefaultMotion()
	}

	s := &Scene{
		ctx:      ctx,
		themes:   themes,
		haptics:  opts.Haptics,
		driver:   motion.NewDriver(opts.Planner, motion.WithSprings(opts.Motion.FigureSpring, opts.Motion.RotationSpring)),
		cursor:   motion.NewFollower(motion.CursorSpring),
		boundary: &figure.Boundary{Verbose: opts.Verbose},
		subs:     make(map[int]chan Frame),
	}

	// Subscribe before reading so no change slips in between.
	s.themeCh, s.stopThemes = themes.Subscribe()
	s.theme = themes.Current()

	// The switch only reports a toggle; the scene acts on it outside the lock.
	s.pull = motion.NewPullSwitch(nil, nil)
	s.pull.MaxPull = opts.Motion.MaxPull
	s.pull.TriggerThreshold = opts.Motion.TriggerThreshold
	s.pull.Drag = opts.Motion.DragSpring
	s.pull.Release = opts.Motion.ReleaseSpring

	s.latest.Store(&Frame{Theme: s.theme})
	return s
}

// Close stops following the theme store.
func (s *Scene) Close() { s.stopThemes() }

// released flips the theme and pulses after a release that crossed the
// threshold. Must be called without mu held.
func (s *Scene) released(toggled bool) bool {
	if !toggled {
		return false
	}
	next, err := s.themes.Toggle(s.ctx)
	if err != nil {
		log.Printf("Error saving theme %s: %v", next, err)
	}
	if s.haptics != nil {
		s.haptics.Pulse(motion.PulseDuration)
	}
	return true
}

// PointerMove records a pointer position in client pixels.
func (s *Scene) PointerMove(clientX, clientY, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sampler.OnPointerMove(clientX, clientY, width, height)
	s.cursor.Follow(clientX, clientY)
}

// Scroll records the page scroll offset.
func (s *Scene) Scroll(scrollY, viewportHeight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sampler.OnScroll(scrollY, viewportHeight)
}

func (s *Scene) PullDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pull.PointerDown()
}

func (s *Scene) PullMove(dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pull.PointerMove(dy)
}

// PullUp releases the rope and reports whether the theme flipped.
func (s *Scene) PullUp() bool {
	s.mu.Lock()
	toggled := s.pull.PointerUp()
	s.mu.Unlock()
	return s.released(toggled)
}

// PullRelease ends the gesture at a pull the client tracked itself. Moves that
// have not arrived yet no longer matter.
func (s *Scene) PullRelease(pull float64) bool {
	s.mu.Lock()
	s.pull.PointerMove(pull - s.pull.Pull())
	toggled := s.pull.PointerUp()
	s.mu.Unlock()
	return s.released(toggled)
}

func (s *Scene) PullCancel() bool {
	s.mu.Lock()
	toggled := s.pull.PointerCancel()
	s.mu.Unlock()
	return s.released(toggled)
}

// PullState returns the rope state without advancing it.
func (s *Scene) PullState() PullState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pullStateLocked()
}

func (s *Scene) pullStateLocked() PullState {
	return PullState{Offset: s.pull.Offset(), Pull: s.pull.Pull(), Dragging: s.pull.Dragging()}
}

// EnableFigure lets the figure animate from the next tick on. A figure that
// failed earlier gets another chance.
func (s *Scene) EnableFigure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boundary.Reset()
	s.figureOn = true
}

// FigureEnabled reports whether the figure is loaded and has not failed.
func (s *Scene) FigureEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.figureOn && !s.boundary.Failed()
}

// Boundary exposes the figure's error boundary so renderers can run their own
// drawing of the figure inside it.
func (s *Scene) Boundary() *figure.Boundary { return s.boundary }

// LoadFigure schedules EnableFigure through loader.
func (s *Scene) LoadFigure(ctx context.Context, loader figure.Loader, caps figure.Capability) *figure.Handle {
	return loader.Start(ctx, caps, s.EnableFigure)
}

// Tick reads the inputs once, advances every spring one frame and publishes the
// resulting Frame.
func (s *Scene) Tick(elapsed float64) Frame {
	s.mu.Lock()
	select {
	case t := <-s.themeCh:
		s.theme = t
	default:
	}
	pointer, section := s.sampler.Snapshot()
	s.pull.Step()
	s.seq++
	f := Frame{
		Seq:     s.seq,
		Elapsed: elapsed,
		Theme:   s.theme,
		Section: section,
		Pointer: pointer,
		Cursor:  s.cursor.Step(),
		Pull:    s.pullStateLocked(),
	}
	if s.figureOn {
		s.boundary.Run(func() error {
			fig := s.driver.Advance(elapsed, pointer, section)
			if !finite(fig) {
				return errDiverged
			}
			f.Figure = &fig
			return nil
		})
	}
	s.mu.Unlock()

	s.publish(f)
	return f
}

// Run ticks the scene fps times per second until ctx ends.
func (s *Scene) Run(ctx context.Context, fps int) error {
	return motion.NewLoop(fps, func(elapsed float64) { s.Tick(elapsed) }).Run(ctx)
}

// Latest returns the most recently published frame.
func (s *Scene) Latest() Frame {
	return *s.latest.Load()
}

// Subscribe delivers published frames. A slow reader skips frames rather than
// holding up the loop.
func (s *Scene) Subscribe() (<-chan Frame, func()) {
	ch := make(chan Frame, 1)
	s.subMu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Scene) publish(f Frame) {
	s.latest.Store(&f)

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- f:
		default:
		}
	}
}

func finite(f motion.FigureFrame) bool {
	for _, v := range []float64{
		f.Position.X, f.Position.Y, f.Position.Z,
		f.Body.X, f.Body.Y, f.Head.X, f.Head.Y,
		f.RightArm.X, f.RightArm.Z, f.LeftArm.Z,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
