// Package motion computes the poses of the animated background swimmers and of the judge character.
//
// Every pose is a closed-form function of elapsed time and immutable per-entity parameters, so
// evaluating a pose has no side effects and any frame clock can drive it.
package motion

// Vec3 is a point or a set of Euler angles in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Pose is the transform of an animated figure at one instant.
type Pose struct {
	// Position is the absolute position of the figure's group.
	Position Vec3 `json:"position"`
	// Offset is the displacement from the figure's base position.
	Offset Vec3 `json:"offset"`
	// Rotation holds Euler angles in radians for the whole figure.
	Rotation Vec3 `json:"rotation"`
	// Tail holds Euler angles in radians for the tail sub-group.
	Tail Vec3 `json:"tail"`
}
