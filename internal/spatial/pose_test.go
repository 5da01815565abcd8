package spatial

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewPose_NormalizesOrientation(t *testing.T) {
	q := mgl32.Quat{W: 2, V: mgl32.Vec3{0, 2, 0}}
	p := NewPose(mgl32.Vec3{1, 2, 3}, q)
	assert.InDelta(t, 1.0, float64(p.Orientation.Len()), 1e-6)
}

func TestNewPose_ZeroQuaternionBecomesIdentity(t *testing.T) {
	p := NewPose(mgl32.Vec3{}, mgl32.Quat{})
	assert.Equal(t, mgl32.QuatIdent(), p.Orientation)
}

func TestYawForward(t *testing.T) {
	f := YawForward(0)
	assert.InDelta(t, 0, float64(f.X()), 1e-6)
	assert.InDelta(t, 1, float64(f.Z()), 1e-6)

	f = YawForward(90)
	assert.InDelta(t, 1, float64(f.X()), 1e-6)
	assert.InDelta(t, 0, float64(f.Z()), 1e-6)

	f = YawForward(180)
	assert.InDelta(t, 0, float64(f.X()), 1e-5)
	assert.InDelta(t, -1, float64(f.Z()), 1e-6)
}

func TestYawOf_RoundTripsYawPose(t *testing.T) {
	for _, deg := range []float32{0, 30, 90, -45, 135} {
		p := YawPose(mgl32.Vec3{}, deg)
		assert.InDelta(t, float64(deg), float64(YawOf(p.Orientation)), 1e-3, "yaw %v", deg)
	}
}

func TestPoseAt_IdentityOrientation(t *testing.T) {
	p := PoseAt(mgl32.Vec3{4, 0, -2})
	assert.Equal(t, mgl32.QuatIdent(), p.Orientation)
	assert.Equal(t, float32(0), YawOf(p.Orientation))
}
