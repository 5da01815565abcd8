package camerarig

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRig_PitchClamped(t *testing.T) {
	r := NewRig(DefaultLimits())

	r.Orbit(0, -10)
	assert.Equal(t, float32(0.1), r.Pitch(), "pitch below 0.1 rad would look from below ground")

	r.Orbit(0, 10)
	assert.Equal(t, float32(1.4), r.Pitch(), "pitch above 1.4 rad would gimbal-flip")
}

func TestRig_DistanceClamped(t *testing.T) {
	r := NewRig(DefaultLimits())

	r.Zoom(100) // zoom in reduces distance
	assert.Equal(t, float32(0.5), r.Distance())

	r.Zoom(-100)
	assert.Equal(t, float32(30), r.Distance())
}

func TestRig_PointerPositionStaysAboveGround(t *testing.T) {
	r := NewRig(DefaultLimits())
	for _, dPitch := range []float32{-5, -0.3, 0.5, 5} {
		r.Orbit(0.7, dPitch)
		assert.Greater(t, r.Position().Y(), float32(0))
	}
}

func TestRig_PanMovesTargetHorizontally(t *testing.T) {
	r := NewRig(DefaultLimits())
	before := r.Target()

	r.Pan(2, -1)
	after := r.Target()
	assert.NotEqual(t, before, after)
	assert.Equal(t, before.Y(), after.Y(), "pan stays in the horizontal plane")
}

func TestRig_OrientationModeIgnoresPointerRotation(t *testing.T) {
	r := NewRig(DefaultLimits())
	r.SetMode(ModeOrientation)
	q := mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	r.SetOrientation(q)
	before := r.Forward()

	r.Orbit(1, 1)
	r.Pan(5, 5)
	assert.Equal(t, before, r.Forward(), "no user rotation input honored in orientation mode")
}

func TestRig_OrientationModeZoomScalesFov(t *testing.T) {
	r := NewRig(DefaultLimits())
	r.SetMode(ModeOrientation)
	posBefore := r.Position()

	r.Zoom(100)
	assert.Equal(t, float32(20), r.FovDeg(), "fov clamped at 20°")
	r.Zoom(-100)
	assert.Equal(t, float32(100), r.FovDeg(), "fov clamped at 100°")
	assert.Equal(t, posBefore, r.Position(), "camera position is not user-controlled in orientation mode")
}

func TestRig_OrientationModeForwardFromRotation(t *testing.T) {
	r := NewRig(DefaultLimits())
	r.SetMode(ModeOrientation)
	// 90° about Y turns -Z into -X.
	r.SetOrientation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}))

	fwd := r.Forward()
	assert.InDelta(t, -1, float64(fwd.X()), 1e-5)
	assert.InDelta(t, 0, float64(fwd.Z()), 1e-5)
}
