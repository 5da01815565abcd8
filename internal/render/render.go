package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"pipe-viewer/internal/assets"
	"pipe-viewer/internal/camerarig"
	"pipe-viewer/internal/session"
)

const (
	gridExtent    = 30
	gridStep      = 1
	gridAlpha     = 70
	reticleRadius = 0.25

	statusFontSize = 20
	statusPadding  = 10
	statusBarH     = statusFontSize + 2*statusPadding
)

var (
	// Reused every frame to avoid per-frame color allocations.
	feedColor    = rl.NewColor(38, 42, 48, 255)  // camera-feed stand-in
	noFeedColor  = rl.NewColor(18, 18, 22, 255)  // solid background when the camera is unavailable
	gridColor    = rl.NewColor(120, 130, 120, gridAlpha)
	reticleColor = rl.NewColor(80, 220, 120, 255)
	statusBg     = rl.NewColor(24, 24, 24, 220)
	noticeColor  = rl.NewColor(230, 90, 70, 255)
)

// Renderer draws the placement scene each frame: background, ground grid,
// reticle, placed pipe and trench models, and the status line. It owns the
// raylib camera, synced from the manual rig before each draw.
type Renderer struct {
	Camera      rl.Camera3D
	GridVisible bool

	pipe       *assets.PipeAssembly
	excavation *assets.ExcavationVolume
}

// New returns a renderer for the given asset builders with a perspective
// camera and the ground grid visible.
func New(pipe *assets.PipeAssembly, excavation *assets.ExcavationVolume) *Renderer {
	r := &Renderer{
		pipe:        pipe,
		excavation:  excavation,
		GridVisible: true,
	}
	r.Camera.Up = rl.NewVector3(0, 1, 0)
	r.Camera.Fovy = 60
	r.Camera.Projection = rl.CameraPerspective
	return r
}

// SyncCamera copies the rig's viewpoint into the raylib camera. Call once
// per frame before Draw.
func (r *Renderer) SyncCamera(rig *camerarig.Rig) {
	pos := rig.Position()
	target := rig.Target()
	r.Camera.Position = rl.NewVector3(pos.X(), pos.Y(), pos.Z())
	r.Camera.Target = rl.NewVector3(target.X(), target.Y(), target.Z())
	r.Camera.Fovy = rig.FovDeg()
}

// Draw renders one frame from the session's current state. Call between
// BeginDrawing and EndDrawing.
func (r *Renderer) Draw(ctx *session.Context) {
	if ctx.CameraLess() {
		rl.ClearBackground(noFeedColor)
	} else {
		rl.ClearBackground(feedColor)
	}

	rl.BeginMode3D(r.Camera)
	if r.GridVisible {
		drawGroundGrid()
	}
	if ret := ctx.Reticle(); ret.Visible {
		drawReticle(ret.Pose.Position.X(), ret.Pose.Position.Y(), ret.Pose.Position.Z())
	}
	if p := ctx.Placement(); p != nil {
		pose := p.EffectivePose()
		r.excavation.Draw(pose)
		r.pipe.Draw(pose)
	}
	rl.EndMode3D()

	r.drawOverlay(ctx)
}

// drawGroundGrid draws a line grid on the XZ plane (Y=0) so the ground
// plane the reticle projects onto is visible.
func drawGroundGrid() {
	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridStep {
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, gridColor)
	}
	for z := -gridExtent; z <= gridExtent; z += gridStep {
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, gridColor)
	}
}

// drawReticle draws the placement cursor: two concentric rings flat on the
// ground plane with a center dot.
func drawReticle(x, y, z float32) {
	center := rl.NewVector3(x, y+0.01, z) // lift slightly off the ground to avoid z-fighting
	axis := rl.NewVector3(1, 0, 0)
	rl.DrawCircle3D(center, reticleRadius, axis, 90, reticleColor)
	rl.DrawCircle3D(center, reticleRadius*0.6, axis, 90, reticleColor)
	rl.DrawSphere(center, 0.02, reticleColor)
}

// drawOverlay draws the status bar and, when a placement exists, the live
// readout of the adjustable scalars and trench volume. The unrecoverable
// no-camera-no-tracking case gets a persistent centered notice instead of
// a reticle.
func (r *Renderer) drawOverlay(ctx *session.Context) {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	if msg := ctx.Status(); msg != "" {
		rl.DrawRectangle(0, screenH-statusBarH, screenW, statusBarH, statusBg)
		rl.DrawText(msg, statusPadding, screenH-statusBarH+statusPadding, statusFontSize, rl.RayWhite)
	}

	if p := ctx.Placement(); p != nil {
		readout := fmt.Sprintf("yaw %.0f°  offset %.0f mm  trench %.1f m³",
			p.YawDeg(), p.ForwardOffsetMm(), r.excavation.Volume())
		rl.DrawText(readout, statusPadding, statusPadding, statusFontSize, rl.RayWhite)
	}

	if ctx.Unrecoverable() {
		notice := "no camera and no tracking available"
		w := rl.MeasureText(notice, statusFontSize)
		rl.DrawText(notice, (screenW-w)/2, screenH/2, statusFontSize, noticeColor)
	}
}
