package placement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"pipe-viewer/internal/spatial"
)

// Placement is the one committed model placement: the base position fixed
// at commit time plus the two user-adjustable scalars. The effective pose
// is derived on every read, never stored, so partial updates cannot leave
// a stale combined value behind.
type Placement struct {
	id              uuid.UUID
	basePosition    mgl32.Vec3
	yawOffsetDeg    float32
	forwardOffsetMm float32
}

// New fixes a placement at the committed candidate position with the given
// initial yaw. Offsets start at zero.
func New(basePosition mgl32.Vec3, yawDeg float32) *Placement {
	return &Placement{
		id:           uuid.New(),
		basePosition: basePosition,
		yawOffsetDeg: yawDeg,
	}
}

// ID identifies this placement in logs.
func (p *Placement) ID() uuid.UUID {
	return p.id
}

// SetYaw sets the yaw offset in degrees (UI slider).
func (p *Placement) SetYaw(deg float32) {
	p.yawOffsetDeg = deg
}

// YawDeg returns the current yaw offset in degrees.
func (p *Placement) YawDeg() float32 {
	return p.yawOffsetDeg
}

// SetForwardOffset sets the forward offset in millimeters (UI slider).
// A positive value slides the asset toward the camera.
func (p *Placement) SetForwardOffset(mm float32) {
	p.forwardOffsetMm = mm
}

// ForwardOffsetMm returns the current forward offset in millimeters.
func (p *Placement) ForwardOffsetMm() float32 {
	return p.forwardOffsetMm
}

// BasePosition returns the position fixed at commit time.
func (p *Placement) BasePosition() mgl32.Vec3 {
	return p.basePosition
}

// EffectivePose recomputes the rendered pose from the stored scalars:
//
//	position = base + forward(yawOffsetDeg) * (-forwardOffsetMm / 1000)
//
// where forward(0) = +Z. Recomputed on read, never cached.
func (p *Placement) EffectivePose() spatial.Pose {
	forward := spatial.YawForward(p.yawOffsetDeg)
	position := p.basePosition.Add(forward.Mul(-p.forwardOffsetMm / 1000))
	return spatial.YawPose(position, p.yawOffsetDeg)
}
