package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/framekit/spatialmath/utils"
)

// Pose anchors a reference frame in the world: a position plus a heading
// given as yaw and pitch in degrees. The body axes are those of a
// first-person camera: +X points left, +Y up, +Z forward. Yaw turns about
// the Y axis and pitch about the X axis; a pose has no roll.
type Pose struct {
	Position r3.Vector
	Yaw      float64
	Pitch    float64
}

// NewPose constructs a pose at the given position with the given yaw and
// pitch in degrees.
func NewPose(position r3.Vector, yaw, pitch float64) *Pose {
	return &Pose{Position: position, Yaw: yaw, Pitch: pitch}
}

// Forward returns the unit direction the pose is facing. A transform built
// from the pose maps the local forward axis (0, 0, 1) onto this vector.
func (p *Pose) Forward() r3.Vector {
	yaw := utils.DegToRad(p.Yaw)
	pitch := utils.DegToRad(p.Pitch)
	cosPitch := math.Cos(pitch)
	return r3.Vector{
		X: -math.Sin(yaw) * cosPitch,
		Y: -math.Sin(pitch),
		Z: math.Cos(yaw) * cosPitch,
	}
}
