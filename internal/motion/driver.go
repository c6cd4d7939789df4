package motion

import (
	"math"
	"math/rand/v2"
)

const (
	blinkInterval = 4.0
	blinkHold     = 0.2
	blinkChance   = 0.8 // roll must exceed this

	breatheRate      = 0.8
	breatheAmplitude = 0.1
	headParallax     = 0.2
	cameraParallax   = 0.5
	cameraLambda     = 0.1
	spineSegments    = 2
)

// StartPosition is where the figure appears before it walks to its first pose.
var StartPosition = Vec3{X: 0, Y: -3, Z: -5}

// FigureFrame is the figure state published for one frame.
type FigureFrame struct {
	Position    Vec3        `json:"position"`
	Body        Vec2        `json:"body"`
	Head        Vec2        `json:"head"`
	RightArm    ArmRotation `json:"rightArm"`
	LeftArm     ArmRotation `json:"leftArm"`
	Spine       []float64   `json:"spine"`
	EnginePulse float64     `json:"enginePulse"`
	Blink       bool        `json:"blink"`
	Camera      Vec2        `json:"camera"`
	Target      Pose        `json:"target"`
}

// Driver advances the figure's springs once per frame.
type Driver struct {
	Planner Planner

	position Spring3
	bodyX    Spring
	bodyY    Spring
	headX    Spring
	headY    Spring
	rArmX    Spring
	rArmZ    Spring
	lArmZ    Spring

	camera  Vec2
	lastT   float64
	started bool

	roll       func() float64
	nextRoll   float64
	blinkUntil float64
}

// DriverOption customizes a Driver.
type DriverOption func(*Driver)

// WithRoll replaces the blink dice. roll must return values in [0, 1).
func WithRoll(roll func() float64) DriverOption {
	return func(d *Driver) { d.roll = roll }
}

// WithSprings overrides the body and rotation spring tuning.
func WithSprings(body, rotation SpringConfig) DriverOption {
	return func(d *Driver) {
		d.position.Config = body
		for _, s := range d.rotations() {
			s.Config = rotation
		}
	}
}

// NewDriver returns a driver with the figure at StartPosition and all joints at rest.
func NewDriver(planner Planner, opts ...DriverOption) *Driver {
	d := &Driver{
		Planner:  planner,
		position: NewSpring3(StartPosition, FigureSpring),
		roll:     rand.Float64,
		nextRoll: blinkInterval,
	}
	for _, s := range d.rotations() {
		*s = NewSpring(0, RotationSpring)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) rotations() []*Spring {
	return []*Spring{&d.bodyX, &d.bodyY, &d.headX, &d.headY, &d.rArmX, &d.rArmZ, &d.lArmZ}
}

// Advance plans the pose for section, retargets every spring and steps each one
// frame. elapsed is seconds since the animation started.
func (d *Driver) Advance(elapsed float64, pointer PointerSample, section int) FigureFrame {
	target := d.Planner.Plan(section, elapsed)

	d.position.Target = target.Position
	d.bodyX.Target = target.Body.X
	d.bodyY.Target = target.Body.Y
	d.headX.Target = target.Head.X - pointer.Y*headParallax
	d.headY.Target = target.Head.Y + pointer.X*headParallax
	d.rArmX.Target = target.RightArm.X
	d.rArmZ.Target = target.RightArm.Z
	d.lArmZ.Target = target.LeftArm.Z + math.Sin(elapsed)*0.05

	pos := d.position.Step()
	for _, s := range d.rotations() {
		s.Step()
	}

	dt := 0.0
	if d.started {
		dt = elapsed - d.lastT
	}
	d.started = true
	d.lastT = elapsed
	d.camera.X = Damp(d.camera.X, pointer.X*cameraParallax, cameraLambda, dt)
	d.camera.Y = Damp(d.camera.Y, pointer.Y*cameraParallax, cameraLambda, dt)

	spine := make([]float64, spineSegments)
	for i := range spine {
		spine[i] = math.Sin(elapsed*0.5+float64(i)) * 0.02
	}

	pos.Y += math.Sin(elapsed*breatheRate) * breatheAmplitude

	return FigureFrame{
		Position:    pos,
		Body:        Vec2{X: d.bodyX.Value, Y: d.bodyY.Value},
		Head:        Vec2{X: d.headX.Value, Y: d.headY.Value},
		RightArm:    ArmRotation{X: d.rArmX.Value, Z: d.rArmZ.Value},
		LeftArm:     ArmRotation{X: target.LeftArm.X, Z: d.lArmZ.Value},
		Spine:       spine,
		EnginePulse: 1 + math.Sin(elapsed*2)*0.05,
		Blink:       d.blink(elapsed),
		Camera:      d.camera,
		Target:      target,
	}
}

// blink rolls once per interval and holds a successful roll for blinkHold seconds.
func (d *Driver) blink(elapsed float64) bool {
	for elapsed >= d.nextRoll {
		if d.roll() > blinkChance {
			d.blinkUntil = d.nextRoll + blinkHold
		}
		d.nextRoll += blinkInterval
	}
	return elapsed < d.blinkUntil
}
