package motion

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func settle(d *Driver, t *float64, section int, frames int) FigureFrame {
	var f FigureFrame
	for i := 0; i < frames; i++ {
		*t += frame
		f = d.Advance(*t, PointerSample{}, section)
	}
	return f
}

func TestDriver_ScrollTurnsFigureWithoutSnapping(t *testing.T) {
	var s Sampler
	d := NewDriver(DefaultPlanner, WithRoll(func() float64 { return 0 }))
	elapsed := 0.0

	s.OnScroll(0, 800)
	_, section := s.Snapshot()
	require.Equal(t, 0, section)
	f := settle(d, &elapsed, section, 3000)
	require.InDelta(t, -0.4, f.Body.Y, 1e-6)
	require.Equal(t, -0.4, f.Target.Body.Y)

	s.OnScroll(3*800*SectionSpan, 800)
	_, section = s.Snapshot()
	require.Equal(t, 3, section)

	f = settle(d, &elapsed, section, 1)
	assert.Equal(t, -0.8, f.Target.Body.Y)
	assert.Less(t, f.Body.Y, -0.4)
	assert.Greater(t, f.Body.Y, -0.45, "body must not snap to the new pose")

	f = settle(d, &elapsed, section, 3000)
	assert.InDelta(t, -0.8, f.Body.Y, 1e-6)
}

func TestDriver_PositionBreathes(t *testing.T) {
	d := NewDriver(DefaultPlanner, WithRoll(func() float64 { return 0 }))
	elapsed := 0.0
	f := settle(d, &elapsed, SectionHero, 5000)

	assert.InDelta(t, DesktopBase.X, f.Position.X, 1e-6)
	assert.InDelta(t, DesktopBase.Y+math.Sin(elapsed*0.8)*0.1, f.Position.Y, 1e-6)
	assert.InDelta(t, 1+math.Sin(elapsed*2)*0.05, f.EnginePulse, 1e-12)
	assert.Len(t, f.Spine, 2)
}

func TestDriver_StartsAwayFromPose(t *testing.T) {
	d := NewDriver(DefaultPlanner)
	f := d.Advance(frame, PointerSample{}, SectionHero)
	assert.Less(t, f.Position.X, 1.0, "figure eases in from its start position")
}

func TestDriver_HeadFollowsPointer(t *testing.T) {
	d := NewDriver(DefaultPlanner, WithRoll(func() float64 { return 0 }))
	elapsed := 0.0
	var f FigureFrame
	for i := 0; i < 3000; i++ {
		elapsed += frame
		f = d.Advance(elapsed, PointerSample{X: 1, Y: -1}, SectionSkills)
	}
	// skills head target is (-0.2, 0), parallax adds (+0.2, +0.2)
	assert.InDelta(t, 0.0, f.Head.X, 1e-6)
	assert.InDelta(t, 0.2, f.Head.Y, 1e-6)
	assert.Greater(t, f.Camera.X, 0.0)
	assert.Less(t, f.Camera.Y, 0.0)
}

func TestDriver_Blink(t *testing.T) {
	t.Run("held for 200ms after a lucky roll", func(t *testing.T) {
		d := NewDriver(DefaultPlanner, WithRoll(func() float64 { return 0.9 }))
		assert.False(t, d.Advance(3.9, PointerSample{}, 0).Blink)
		assert.True(t, d.Advance(4.0, PointerSample{}, 0).Blink)
		assert.True(t, d.Advance(4.15, PointerSample{}, 0).Blink)
		assert.False(t, d.Advance(4.25, PointerSample{}, 0).Blink)
		assert.True(t, d.Advance(8.05, PointerSample{}, 0).Blink)
	})

	t.Run("never on unlucky rolls", func(t *testing.T) {
		rolls := 0
		d := NewDriver(DefaultPlanner, WithRoll(func() float64 { rolls++; return 0.8 }))
		for tick := 0.0; tick < 20; tick += 0.1 {
			assert.False(t, d.Advance(tick, PointerSample{}, 0).Blink)
		}
		assert.Equal(t, 4, rolls)
	})
}

func TestSampler_NormalizesPointer(t *testing.T) {
	var s Sampler
	s.OnPointerMove(0, 0, 1000, 500)
	p, _ := s.Snapshot()
	assert.Equal(t, PointerSample{X: -1, Y: 1}, p)

	s.OnPointerMove(500, 250, 1000, 500)
	p, _ = s.Snapshot()
	assert.Equal(t, PointerSample{X: 0, Y: 0}, p)

	s.OnPointerMove(1000, 500, 1000, 500)
	p, _ = s.Snapshot()
	assert.Equal(t, PointerSample{X: 1, Y: -1}, p)

	s.OnPointerMove(10, 10, 0, 500)
	p, _ = s.Snapshot()
	assert.Equal(t, PointerSample{X: 1, Y: -1}, p, "degenerate viewport is ignored")
}

func TestSectionFromScroll(t *testing.T) {
	tests := []struct {
		scrollY float64
		want    int
	}{
		{0, 0},
		{319, 0},
		{321, 1},
		{640, 1},
		{1920, 3},
		{64000, 100},
		{-500, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SectionFromScroll(tt.scrollY, 800), "scrollY=%v", tt.scrollY)
	}
}

func TestLoop_RunsUntilCancelled(t *testing.T) {
	var ticks atomic.Int32
	var last atomic.Int64
	l := NewLoop(200, func(elapsed float64) {
		ticks.Add(1)
		last.Store(int64(elapsed * 1e6))
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}

	stopped := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load())
	assert.Greater(t, last.Load(), int64(0))
}

func TestNewLoop_DefaultsCadence(t *testing.T) {
	l := NewLoop(0, func(float64) {})
	assert.Equal(t, time.Second/60, l.Interval)
}
