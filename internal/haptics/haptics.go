// Package haptics turns a pull-switch pulse into whatever feedback the host can
// give. Every implementation is fire-and-forget.
package haptics

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
	clickTone  = 880.0
)

// Nop drops every pulse.
type Nop struct{}

func (Nop) Pulse(time.Duration) {}

// Bell rings the terminal bell.
type Bell struct {
	Screen tcell.Screen
}

func (b Bell) Pulse(time.Duration) {
	if b.Screen != nil {
		_ = b.Screen.Beep()
	}
}

// Click plays a short tone through the speaker. If the audio device cannot be
// opened the click silently does nothing.
type Click struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	tried  bool
	usable bool
}

func NewClick() *Click {
	return &Click{mixer: &beep.Mixer{}}
}

func (c *Click) init() bool {
	if c.tried {
		return c.usable
	}
	c.tried = true
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return false
	}
	speaker.Play(c.mixer)
	c.usable = true
	return true
}

func (c *Click) Pulse(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.init() {
		return
	}
	sine, err := generators.SineTone(sampleRate, clickTone)
	if err != nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(beep.Take(sampleRate.N(d), sine))
	speaker.Unlock()
}

// Multi fans a pulse out to several pulsers.
type Multi []interface{ Pulse(time.Duration) }

func (m Multi) Pulse(d time.Duration) {
	for _, p := range m {
		p.Pulse(d)
	}
}
