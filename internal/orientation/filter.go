package orientation

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sample is one raw device-orientation reading in degrees, device frame.
// Fields are pointers because the platform delivers nil angles while the
// sensor is warming up or unavailable; a nil Alpha means "no signal".
type Sample struct {
	Alpha *float64 // rotation about the device Z axis (compass-ish)
	Beta  *float64 // front/back tilt about the device X axis
	Gamma *float64 // left/right tilt about the device Y axis
}

// tiltCompensation rotates from the sensor axis convention to world axes:
// a fixed -90° tilt about the sensor X axis, so "device held upright facing
// forward" maps to the world forward direction.
var tiltCompensation = mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0})

// Filter converts raw device-orientation samples into a world-frame
// rotation. It keeps the last valid rotation across nil samples, so a
// sensor dropout freezes the view instead of snapping it to a default.
type Filter struct {
	current mgl32.Quat
	active  bool
}

// NewFilter returns an inactive filter whose rotation is identity until the
// first valid sample arrives.
func NewFilter() *Filter {
	return &Filter{current: mgl32.QuatIdent()}
}

// Ingest consumes one sample plus the current screen-orientation correction
// angle (degrees; 0 in portrait, ±90 in landscape). Samples with nil Alpha
// are ignored: the previous rotation stays in effect and the filter does not
// activate. This is not an error, just absence of data.
//
// The rotation is composed as: sensor-to-world tilt compensation, then the
// raw Euler angles in Y-X-Z order (alpha about Y, beta about X, negated
// gamma about Z, matching the sensor reporting convention), then a rotation
// about the world Z axis by the negative screen angle so portrait/landscape
// flips do not rotate the world.
func (f *Filter) Ingest(s Sample, screenAngleDeg float64) {
	if s.Alpha == nil {
		return
	}
	beta, gamma := 0.0, 0.0
	if s.Beta != nil {
		beta = *s.Beta
	}
	if s.Gamma != nil {
		gamma = *s.Gamma
	}

	euler := mgl32.AnglesToQuat(
		mgl32.DegToRad(float32(*s.Alpha)),
		mgl32.DegToRad(float32(beta)),
		mgl32.DegToRad(float32(-gamma)),
		mgl32.YXZ,
	)
	screen := mgl32.QuatRotate(mgl32.DegToRad(float32(-screenAngleDeg)), mgl32.Vec3{0, 0, 1})

	f.current = euler.Mul(tiltCompensation).Mul(screen).Normalize()
	f.active = true
}

// Active reports whether at least one valid sample has been ingested.
func (f *Filter) Active() bool {
	return f.active
}

// Rotation returns the current world-frame rotation (identity if inactive).
func (f *Filter) Rotation() mgl32.Quat {
	return f.current
}

// Forward returns the camera forward direction: the current rotation applied
// to -Z. Before the first valid sample this is the default forward (0,0,-1).
func (f *Filter) Forward() mgl32.Vec3 {
	return f.current.Rotate(mgl32.Vec3{0, 0, -1})
}
