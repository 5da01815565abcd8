package main

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"pipe-viewer/internal/camerarig"
	"pipe-viewer/internal/session"
	"pipe-viewer/internal/spatial"
	"pipe-viewer/internal/tracking"
)

const (
	orbitSensitivity = 0.005 // radians per pixel
	panSensitivity   = 0.01  // meters per pixel
	yawRate          = 45    // degrees per second held
	offsetRate       = 400   // millimeters per second held
	maxOffsetMm      = 1000
)

// viewerLoop holds the per-frame desktop input and simulation glue between
// raylib and the session. Committed placements are adjusted with keys in
// place of the yaw/offset sliders; gestures drive the manual rig.
type viewerLoop struct {
	ctx      *session.Context
	rig      *camerarig.Rig
	platform *tracking.SimulatedPlatform
}

func newViewerLoop(ctx *session.Context, rig *camerarig.Rig, platform *tracking.SimulatedPlatform) *viewerLoop {
	return &viewerLoop{ctx: ctx, rig: rig, platform: platform}
}

// handleInput polls this frame's input. Discrete actions (commit, reset,
// simulated tracking loss) use key presses; camera gestures and sliders use
// held state.
func (l *viewerLoop) handleInput() {
	// Session actions.
	if rl.IsKeyPressed(rl.KeySpace) || rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		l.ctx.CommitPlacement()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		l.ctx.Reset()
	}
	if rl.IsKeyPressed(rl.KeyE) {
		// Simulate the platform terminating the tracked session.
		if s := l.platform.Session(); s != nil {
			s.TriggerEnd()
		}
	}

	// Camera gestures (pointer mode only; the rig ignores them otherwise).
	delta := rl.GetMouseDelta()
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		l.rig.Orbit(float32(-delta.X)*orbitSensitivity, float32(delta.Y)*orbitSensitivity)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		l.rig.Pan(float32(-delta.X)*panSensitivity, float32(delta.Y)*panSensitivity)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		l.rig.Zoom(wheel)
	}

	// Placement sliders.
	p := l.ctx.Placement()
	if p == nil {
		return
	}
	dt := rl.GetFrameTime()
	if rl.IsKeyDown(rl.KeyLeft) {
		p.SetYaw(p.YawDeg() - yawRate*dt)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		p.SetYaw(p.YawDeg() + yawRate*dt)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		p.SetForwardOffset(clampOffset(p.ForwardOffsetMm() + offsetRate*dt))
	}
	if rl.IsKeyDown(rl.KeyDown) {
		p.SetForwardOffset(clampOffset(p.ForwardOffsetMm() - offsetRate*dt))
	}
}

func clampOffset(mm float32) float32 {
	if mm < -maxOffsetMm {
		return -maxOffsetMm
	}
	if mm > maxOffsetMm {
		return maxOffsetMm
	}
	return mm
}

// feedSimulatedHits synthesizes this frame's surface-detection results for
// the simulated tracked session: the point where the view ray meets the
// ground, with the pose facing back toward the camera (a placed model
// fronts the viewer).
func (l *viewerLoop) feedSimulatedHits() {
	s := l.platform.Session()
	if s == nil || s.Ended() {
		return
	}
	pos := l.rig.Position()
	fwd := l.rig.Forward()
	if fwd.Y() >= 0 {
		s.SetHits(nil)
		return
	}
	t := -pos.Y() / fwd.Y()
	hit := pos.Add(fwd.Mul(t))
	toCamera := pos.Sub(hit)
	yaw := float32(math.Atan2(float64(toCamera.X()), float64(toCamera.Z())) * 180 / math.Pi)
	s.SetHits([]spatial.Pose{spatial.YawPose(mgl32.Vec3{hit.X(), 0, hit.Z()}, yaw)})
}

// syncOrientation switches the rig between its two input modes: while the
// fallback backend is active and orientation samples arrive, the filtered
// device rotation drives the camera and pointer rotation is ignored.
func (l *viewerLoop) syncOrientation() {
	if l.ctx.Backend() == tracking.BackendFallback && l.ctx.OrientationActive() {
		l.rig.SetMode(camerarig.ModeOrientation)
		l.rig.SetOrientation(l.ctx.OrientationRotation())
		return
	}
	l.rig.SetMode(camerarig.ModePointer)
}
