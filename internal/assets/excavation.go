package assets

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"pipe-viewer/internal/spatial"
)

var excavationColor = rl.NewColor(200, 170, 60, 110)

// ExcavationParams describe the trench volume around a pipe run, meters.
type ExcavationParams struct {
	WidthM  float64
	LengthM float64
	DepthM  float64
}

// ExcavationUpdate is a partial parameter change; nil fields keep current
// values.
type ExcavationUpdate struct {
	WidthM  *float64
	LengthM *float64
	DepthM  *float64
}

// ExcavationVolume is a positioned trench model drawn as a translucent box
// from the ground surface down to DepthM. Mesh creation is deferred to
// first Draw, parameter updates re-derive it.
type ExcavationVolume struct {
	params ExcavationParams

	mesh   rl.Mesh
	mtl    rl.Material
	loaded bool
}

// NewExcavationVolume returns a trench model for the given parameters.
func NewExcavationVolume(params ExcavationParams) *ExcavationVolume {
	return &ExcavationVolume{params: params}
}

// Params returns the current parameters.
func (e *ExcavationVolume) Params() ExcavationParams {
	return e.params
}

// Update applies a partial parameter change and re-derives the mesh on the
// next Draw.
func (e *ExcavationVolume) Update(u ExcavationUpdate) {
	if u.WidthM != nil {
		e.params.WidthM = *u.WidthM
	}
	if u.LengthM != nil {
		e.params.LengthM = *u.LengthM
	}
	if u.DepthM != nil {
		e.params.DepthM = *u.DepthM
	}
	e.invalidate()
}

// Volume returns the excavated volume in cubic meters.
func (e *ExcavationVolume) Volume() float64 {
	return e.params.WidthM * e.params.LengthM * e.params.DepthM
}

func (e *ExcavationVolume) invalidate() {
	if e.loaded {
		rl.UnloadMesh(&e.mesh)
		e.loaded = false
	}
}

func (e *ExcavationVolume) ensureLoaded() {
	if e.loaded {
		return
	}
	e.mesh = rl.GenMeshCube(
		float32(e.params.WidthM),
		float32(e.params.DepthM),
		float32(e.params.LengthM),
	)
	e.mtl = rl.LoadMaterialDefault()
	if albedo := e.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = excavationColor
	}
	e.loaded = true
}

// Draw renders the trench at the placement's effective pose, top face at
// the pose height. Call inside BeginMode3D.
func (e *ExcavationVolume) Draw(pose spatial.Pose) {
	e.ensureLoaded()
	yawRad := spatial.YawOf(pose.Orientation) * rl.Deg2rad
	world := rl.MatrixMultiply(rl.MatrixRotateY(yawRad), rl.MatrixTranslate(
		pose.Position.X(),
		pose.Position.Y()-float32(e.params.DepthM)/2,
		pose.Position.Z(),
	))
	rl.DrawMesh(e.mesh, e.mtl, world)
}

// Unload releases GPU resources.
func (e *ExcavationVolume) Unload() {
	e.invalidate()
}
