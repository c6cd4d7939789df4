package motion

// Follower trails a point, e.g. the decorative cursor ring.
type Follower struct {
	x, y Spring
}

func NewFollower(cfg SpringConfig) *Follower {
	return &Follower{x: NewSpring(0, cfg), y: NewSpring(0, cfg)}
}

// Follow retargets the follower to (x, y).
func (f *Follower) Follow(x, y float64) {
	f.x.Target = x
	f.y.Target = y
}

// Step advances one frame and returns the trailing position.
func (f *Follower) Step() Vec2 {
	return Vec2{X: f.x.Step(), Y: f.y.Step()}
}
