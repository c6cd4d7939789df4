// Package motion holds the animation core: springs, the pointer/scroll sampler,
// the pose planner, the figure driver and the pull-switch gesture.
package motion

import "math"

// SpringConfig tunes a per-frame spring. Both values are per-frame factors and are
// not scaled by elapsed time; they assume a ~60Hz step rate.
type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

var (
	// FigureSpring moves the figure body: slow and heavy.
	FigureSpring = SpringConfig{Stiffness: 0.02, Damping: 0.9}

	// RotationSpring drives head, body and arm rotations.
	RotationSpring = SpringConfig{Stiffness: 0.06, Damping: 0.6}

	// DragSpring tracks the rope while it is held.
	DragSpring = FromTension(300, 20, 60)

	// ReleaseSpring snaps the rope back with a visible bounce.
	ReleaseSpring = FromTension(200, 10, 60)

	// CursorSpring makes the cursor ring trail the pointer closely.
	CursorSpring = SpringConfig{Stiffness: 0.3, Damping: 0.55}
)

// FromTension converts tension/friction tuning for a unit mass into per-frame
// factors at the given step rate.
func FromTension(tension, friction float64, fps int) SpringConfig {
	f := float64(fps)
	return SpringConfig{Stiffness: tension / (f * f), Damping: friction / f}
}

// Stable reports whether repeated steps converge on a fixed target.
func (c SpringConfig) Stable() bool {
	// The error recurrence has trace 2-k-c and determinant 1-c.
	det := 1 - c.Damping
	trace := 2 - c.Stiffness - c.Damping
	return math.Abs(det) < 1 && math.Abs(trace) < 1+det
}

// Spring animates one scalar toward a target.
type Spring struct {
	Value    float64
	Velocity float64
	Target   float64
	Config   SpringConfig
}

// NewSpring returns a spring at rest on value.
func NewSpring(value float64, cfg SpringConfig) Spring {
	return Spring{Value: value, Target: value, Config: cfg}
}

// Step advances the spring by one frame and returns the new value.
func (s *Spring) Step() float64 {
	force := (s.Target - s.Value) * s.Config.Stiffness
	damping := s.Velocity * s.Config.Damping
	s.Velocity += force - damping
	s.Value += s.Velocity
	return s.Value
}

// Set teleports the spring to v and leaves it at rest there.
func (s *Spring) Set(v float64) {
	s.Value = v
	s.Target = v
	s.Velocity = 0
}

// Start retargets the spring with a new configuration, keeping its momentum.
func (s *Spring) Start(target float64, cfg SpringConfig) {
	s.Target = target
	s.Config = cfg
}

// Vec2 is a pair of floats.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is a triple of floats.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

// Len is the euclidean length.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Spring3 animates a Vec3 toward a target with a single configuration.
type Spring3 struct {
	Value    Vec3
	Velocity Vec3
	Target   Vec3
	Config   SpringConfig
}

func NewSpring3(value Vec3, cfg SpringConfig) Spring3 {
	return Spring3{Value: value, Target: value, Config: cfg}
}

// Step advances all three components by one frame.
func (s *Spring3) Step() Vec3 {
	force := s.Target.Sub(s.Value).Scale(s.Config.Stiffness)
	damping := s.Velocity.Scale(s.Config.Damping)
	s.Velocity = s.Velocity.Add(force.Sub(damping))
	s.Value = s.Value.Add(s.Velocity)
	return s.Value
}

// Damp eases current toward target at rate lambda over dt seconds, independent of
// the frame rate.
func Damp(current, target, lambda, dt float64) float64 {
	return current + (target-current)*(1-math.Exp(-lambda*dt))
}
