package motion

import "time"

const (
	// MaxPull is how far the rope stretches, in pixels.
	MaxPull = 150.0
	// TriggerThreshold must be exceeded at release to flip the theme.
	TriggerThreshold = 80.0
	// PulseDuration is the haptic pulse length on a successful pull.
	PulseDuration = 50 * time.Millisecond
)

// Pulser requests a haptic pulse. Implementations are best-effort.
type Pulser interface {
	Pulse(d time.Duration)
}

// PullSwitch is the rope-and-bulb theme toggle. It is Idle until PointerDown and
// returns to Idle on PointerUp or PointerCancel.
type PullSwitch struct {
	MaxPull          float64
	TriggerThreshold float64
	Drag             SpringConfig
	Release          SpringConfig

	// OnToggle runs once per release that crossed the threshold.
	OnToggle func()
	Haptics  Pulser

	dragging bool
	pull     float64
	spring   Spring
}

// NewPullSwitch returns an idle switch with the default limits and tuning.
func NewPullSwitch(onToggle func(), haptics Pulser) *PullSwitch {
	return &PullSwitch{
		MaxPull:          MaxPull,
		TriggerThreshold: TriggerThreshold,
		Drag:             DragSpring,
		Release:          ReleaseSpring,
		OnToggle:         onToggle,
		Haptics:          haptics,
		spring:           NewSpring(0, DragSpring),
	}
}

// PointerDown starts a gesture.
func (p *PullSwitch) PointerDown() {
	p.dragging = true
	p.pull = 0
	p.spring.Config = p.Drag
}

// PointerMove adds a vertical movement delta to the pull and pins the rope to it.
// Ignored while idle.
func (p *PullSwitch) PointerMove(dy float64) {
	if !p.dragging {
		return
	}
	p.pull = clamp(p.pull+dy, 0, p.MaxPull)
	p.spring.Set(p.pull)
}

// PointerUp ends the gesture and reports whether the theme was toggled.
func (p *PullSwitch) PointerUp() bool {
	if !p.dragging {
		return false
	}
	p.dragging = false

	toggled := p.pull > p.TriggerThreshold
	if toggled {
		if p.OnToggle != nil {
			p.OnToggle()
		}
		if p.Haptics != nil {
			p.Haptics.Pulse(PulseDuration)
		}
	}

	p.pull = 0
	p.spring.Start(0, p.Release)
	return toggled
}

// PointerCancel is handled like a release.
func (p *PullSwitch) PointerCancel() bool {
	return p.PointerUp()
}

// Step advances the rope spring by one frame and returns the rope offset.
func (p *PullSwitch) Step() float64 {
	if p.dragging {
		return p.spring.Value
	}
	return p.spring.Step()
}

// Offset is the rope's current rendered extension.
func (p *PullSwitch) Offset() float64 { return p.spring.Value }

// Pull is the accumulated pull of the current gesture; 0 when idle.
func (p *PullSwitch) Pull() float64 { return p.pull }

func (p *PullSwitch) Dragging() bool { return p.dragging }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
