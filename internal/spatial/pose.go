package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a position in meters plus a unit-norm orientation.
// Only yaw (rotation about Y) is user-controllable in this system, but the
// orientation is kept as a full quaternion so tracked surface poses pass
// through unchanged.
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// NewPose returns a pose with the orientation normalized. A zero quaternion
// (e.g. from an uninitialized struct) becomes identity rather than NaN.
func NewPose(position mgl32.Vec3, orientation mgl32.Quat) Pose {
	if orientation.Len() == 0 {
		orientation = mgl32.QuatIdent()
	}
	return Pose{Position: position, Orientation: orientation.Normalize()}
}

// PoseAt returns an identity-orientation pose at the given position.
func PoseAt(position mgl32.Vec3) Pose {
	return Pose{Position: position, Orientation: mgl32.QuatIdent()}
}

// YawPose returns a pose at position rotated yawDeg about the world Y axis.
func YawPose(position mgl32.Vec3, yawDeg float32) Pose {
	return Pose{
		Position:    position,
		Orientation: mgl32.QuatRotate(mgl32.DegToRad(yawDeg), mgl32.Vec3{0, 1, 0}),
	}
}

// YawForward returns the horizontal facing direction for a yaw angle in
// degrees. Unrotated forward is +Z; yaw rotates counterclockwise about Y
// when viewed from above.
func YawForward(yawDeg float32) mgl32.Vec3 {
	rad := float64(mgl32.DegToRad(yawDeg))
	return mgl32.Vec3{float32(math.Sin(rad)), 0, float32(math.Cos(rad))}
}

// YawOf extracts the yaw angle in degrees from an orientation: the heading
// of the rotated +Z axis projected onto the ground plane. A vertical facing
// direction has no meaningful yaw and returns 0.
func YawOf(orientation mgl32.Quat) float32 {
	f := orientation.Rotate(mgl32.Vec3{0, 0, 1})
	if f.X() == 0 && f.Z() == 0 {
		return 0
	}
	return float32(math.Atan2(float64(f.X()), float64(f.Z())) * 180 / math.Pi)
}
