package assets

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"pipe-viewer/internal/spatial"
)

// pipeSlices controls cylinder mesh resolution.
const pipeSlices = 24

var pipeColor = rl.NewColor(170, 90, 40, 255)

// PipeParams describe a sewer pipe run in real-world units (1:1 scale).
type PipeParams struct {
	DiameterMm float64
	LengthM    float64
	DepthM     float64 // ground surface to pipe crown
}

// PipeUpdate is a partial parameter change; nil fields keep current values.
type PipeUpdate struct {
	DiameterMm *float64
	LengthM    *float64
	DepthM     *float64
}

// PipeAssembly is a positioned parametric pipe model. Mesh creation is
// deferred to first Draw so GPU resources are allocated after the window/GL
// context exists (same pattern as lazy primitive caching); parameter
// updates invalidate the mesh and it is rebuilt on the next frame.
type PipeAssembly struct {
	params PipeParams

	mesh   rl.Mesh
	mtl    rl.Material
	loaded bool
}

// NewPipeAssembly returns a pipe model for the given parameters. No GPU
// resources are created yet.
func NewPipeAssembly(params PipeParams) *PipeAssembly {
	return &PipeAssembly{params: params}
}

// Params returns the current parameters.
func (p *PipeAssembly) Params() PipeParams {
	return p.params
}

// Update applies a partial parameter change and re-derives the mesh on the
// next Draw.
func (p *PipeAssembly) Update(u PipeUpdate) {
	if u.DiameterMm != nil {
		p.params.DiameterMm = *u.DiameterMm
	}
	if u.LengthM != nil {
		p.params.LengthM = *u.LengthM
	}
	if u.DepthM != nil {
		p.params.DepthM = *u.DepthM
	}
	p.invalidate()
}

func (p *PipeAssembly) invalidate() {
	if p.loaded {
		rl.UnloadMesh(&p.mesh)
		p.loaded = false
	}
}

func (p *PipeAssembly) ensureLoaded() {
	if p.loaded {
		return
	}
	radius := float32(p.params.DiameterMm / 2000) // mm diameter to m radius
	p.mesh = rl.GenMeshCylinder(radius, float32(p.params.LengthM), pipeSlices)
	p.mtl = rl.LoadMaterialDefault()
	if albedo := p.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = pipeColor
	}
	p.loaded = true
}

// Draw renders the pipe at the placement's effective pose: the pipe runs
// along the pose's forward direction, buried DepthM below the pose height.
// Call inside BeginMode3D.
func (p *PipeAssembly) Draw(pose spatial.Pose) {
	p.ensureLoaded()
	radius := float32(p.params.DiameterMm / 2000)
	yawRad := spatial.YawOf(pose.Orientation) * rl.Deg2rad

	// GenMeshCylinder builds along +Y from the base; lay it along +Z and
	// center it on the pose, with the crown DepthM underground.
	lay := rl.MatrixRotateX(90 * rl.Deg2rad)
	center := rl.MatrixTranslate(0, 0, -float32(p.params.LengthM)/2)
	local := rl.MatrixMultiply(lay, center)
	world := rl.MatrixMultiply(rl.MatrixRotateY(yawRad), rl.MatrixTranslate(
		pose.Position.X(),
		pose.Position.Y()-float32(p.params.DepthM)-radius,
		pose.Position.Z(),
	))
	rl.DrawMesh(p.mesh, p.mtl, rl.MatrixMultiply(local, world))
}

// Unload releases GPU resources.
func (p *PipeAssembly) Unload() {
	p.invalidate()
}
