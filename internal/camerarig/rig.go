package camerarig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects which of the rig's two input schemes is honored. The modes
// are mutually exclusive at any instant: orientation-driven rotation
// ignores pointer rotation input, and vice versa.
type Mode int

const (
	// ModePointer: orbit/pan/zoom from pointer gestures.
	ModePointer Mode = iota
	// ModeOrientation: rotation comes from the device orientation filter;
	// the camera sits at a fixed eye height and the wheel scales field of
	// view instead of distance, since the position is not user-controlled.
	ModeOrientation
)

// Limits are the rig's clamping ranges. Pitch clamping prevents gimbal flip
// and looking at the scene from below ground.
type Limits struct {
	PitchMin, PitchMax float32 // radians
	DistMin, DistMax   float32 // meters
	FovMin, FovMax     float32 // degrees
}

// DefaultLimits returns the standard clamps: pitch [0.1, 1.4] rad,
// distance [0.5, 30] m, field of view [20°, 100°].
func DefaultLimits() Limits {
	return Limits{
		PitchMin: 0.1, PitchMax: 1.4,
		DistMin: 0.5, DistMax: 30,
		FovMin: 20, FovMax: 100,
	}
}

// defaultEyeHeight is the camera height in orientation mode, meters.
const defaultEyeHeight = 1.6

// Rig is the manual camera used while the fallback backend is active.
// Pointer mode orbits a look-at target on spherical coordinates; orientation
// mode fixes the position at eye height and takes rotation from the device.
// All math is plain vectors; conversion to a renderer camera happens at the
// render edge.
type Rig struct {
	mode   Mode
	limits Limits

	// Pointer-mode spherical coordinates around target.
	yaw    float32 // radians, unclamped
	pitch  float32 // radians, clamped to limits
	dist   float32 // meters, clamped to limits
	target mgl32.Vec3

	// Orientation-mode state.
	orient    mgl32.Quat
	eyeHeight float32

	fovDeg float32
}

// NewRig returns a pointer-mode rig looking at the origin from a few meters
// back, with a 60° field of view.
func NewRig(limits Limits) *Rig {
	r := &Rig{
		mode:      ModePointer,
		limits:    limits,
		yaw:       0,
		pitch:     0.6,
		dist:      5,
		orient:    mgl32.QuatIdent(),
		eyeHeight: defaultEyeHeight,
		fovDeg:    60,
	}
	r.clamp()
	return r
}

// SetMode switches input schemes. State for the inactive scheme is kept so
// switching back does not jump.
func (r *Rig) SetMode(m Mode) {
	r.mode = m
}

// Mode returns the active input scheme.
func (r *Rig) Mode() Mode {
	return r.mode
}

// Orbit rotates the pointer-mode camera around the target by deltas in
// radians. Ignored in orientation mode (no user rotation input honored).
func (r *Rig) Orbit(dYaw, dPitch float32) {
	if r.mode != ModePointer {
		return
	}
	r.yaw += dYaw
	r.pitch += dPitch
	r.clamp()
}

// Pan translates the look-at target in the camera's local horizontal plane.
// Ignored in orientation mode.
func (r *Rig) Pan(dRight, dForward float32) {
	if r.mode != ModePointer {
		return
	}
	sin, cos := float32(math.Sin(float64(r.yaw))), float32(math.Cos(float64(r.yaw)))
	// Camera-local axes projected onto the ground plane.
	right := mgl32.Vec3{cos, 0, -sin}
	forward := mgl32.Vec3{-sin, 0, -cos}
	r.target = r.target.Add(right.Mul(dRight)).Add(forward.Mul(dForward))
}

// Zoom applies a pinch/wheel delta. Pointer mode scales the orbit distance;
// orientation mode scales the field of view as a zoom substitute, since the
// camera position is not user-controlled there.
func (r *Rig) Zoom(delta float32) {
	if r.mode == ModeOrientation {
		r.fovDeg -= delta * 4
		r.clamp()
		return
	}
	r.dist -= delta
	r.clamp()
}

// SetOrientation feeds the filtered device rotation (orientation mode).
func (r *Rig) SetOrientation(q mgl32.Quat) {
	r.orient = q
}

// Position returns the camera position in meters.
func (r *Rig) Position() mgl32.Vec3 {
	if r.mode == ModeOrientation {
		return mgl32.Vec3{0, r.eyeHeight, 0}
	}
	offset := mgl32.Vec3{
		r.dist * float32(math.Cos(float64(r.pitch))*math.Sin(float64(r.yaw))),
		r.dist * float32(math.Sin(float64(r.pitch))),
		r.dist * float32(math.Cos(float64(r.pitch))*math.Cos(float64(r.yaw))),
	}
	return r.target.Add(offset)
}

// Target returns the look-at point.
func (r *Rig) Target() mgl32.Vec3 {
	if r.mode == ModeOrientation {
		return r.Position().Add(r.Forward())
	}
	return r.target
}

// Forward returns the unit view direction.
func (r *Rig) Forward() mgl32.Vec3 {
	if r.mode == ModeOrientation {
		return r.orient.Rotate(mgl32.Vec3{0, 0, -1})
	}
	return r.target.Sub(r.Position()).Normalize()
}

// FovDeg returns the vertical field of view in degrees.
func (r *Rig) FovDeg() float32 {
	return r.fovDeg
}

// Pitch returns the clamped orbit pitch in radians.
func (r *Rig) Pitch() float32 {
	return r.pitch
}

// Distance returns the clamped orbit distance in meters.
func (r *Rig) Distance() float32 {
	return r.dist
}

func (r *Rig) clamp() {
	r.pitch = clampf(r.pitch, r.limits.PitchMin, r.limits.PitchMax)
	r.dist = clampf(r.dist, r.limits.DistMin, r.limits.DistMax)
	r.fovDeg = clampf(r.fovDeg, r.limits.FovMin, r.limits.FovMax)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
