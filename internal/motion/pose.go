package motion

import "math"

// Section indices with an authored pose.
const (
	SectionHero = iota
	SectionAbout
	SectionSkills
	SectionExperience
	SectionProjects
	SectionContact

	SectionCount
)

// ArmRotation is an arm's pitch (X) and swing (Z).
type ArmRotation struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Pose is the target the figure animates toward.
type Pose struct {
	Position Vec3        `json:"position"`
	Head     Vec2        `json:"head"`
	RightArm ArmRotation `json:"rightArm"`
	LeftArm  ArmRotation `json:"leftArm"`
	Body     Vec2        `json:"body"`
}

var (
	// DesktopBase parks the figure far right so it frames the content.
	DesktopBase = Vec3{X: 5.5, Y: -2, Z: -6}

	// CompactBase is used on narrow viewports.
	CompactBase = Vec3{X: 1.5, Y: -3, Z: -6}
)

// Planner maps a section index to a target pose around a base position.
type Planner struct {
	Base Vec3
}

// DefaultPlanner plans around DesktopBase.
var DefaultPlanner = Planner{Base: DesktopBase}

// Plan is DefaultPlanner.Plan.
func Plan(section int, elapsed float64) Pose {
	return DefaultPlanner.Plan(section, elapsed)
}

// Plan returns the target pose for section at elapsed seconds. Sections without an
// authored pose get the hero pose. Only the contact section varies with time.
func (p Planner) Plan(section int, elapsed float64) Pose {
	b := p.Base
	pose := Pose{
		Position: b,
		RightArm: ArmRotation{X: 0, Z: -0.5},
		LeftArm:  ArmRotation{X: 0, Z: 0.5},
		Body:     Vec2{X: 0, Y: -0.3},
	}

	switch section {
	case SectionAbout:
		pose.Position = Vec3{b.X, b.Y, b.Z + 1}
		pose.Body = Vec2{X: 0.1, Y: -0.6}
		pose.Head = Vec2{X: 0.1, Y: -0.3}
	case SectionSkills:
		pose.Position = Vec3{b.X, b.Y + 0.5, b.Z}
		pose.RightArm = ArmRotation{X: 0.5, Z: -0.2}
		pose.Head = Vec2{X: -0.2, Y: 0}
	case SectionExperience:
		pose.Position = Vec3{b.X + 1, b.Y, b.Z - 2}
		pose.Body = Vec2{X: 0, Y: -0.8}
		pose.Head = Vec2{X: 0, Y: -0.5}
	case SectionProjects:
		pose.Position = Vec3{b.X, b.Y + 1, b.Z + 1.5}
		pose.Body = Vec2{X: 0.2, Y: -0.2}
		pose.Head = Vec2{X: 0.3, Y: -0.2}
		pose.RightArm = ArmRotation{X: 0.4, Z: -1.0}
	case SectionContact:
		pose.Position = Vec3{b.X, b.Y - 0.5, b.Z + 2}
		pose.Head = Vec2{X: 0.2, Y: 0}
		// wave
		pose.RightArm = ArmRotation{X: 0.5, Z: -2.5 + math.Sin(elapsed*4)*0.3}
	default:
		pose.Head = Vec2{X: -0.1, Y: -0.2}
		pose.Body = Vec2{X: 0, Y: -0.4}
	}
	return pose
}
