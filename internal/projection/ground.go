package projection

import (
	"github.com/go-gl/mathgl/mgl32"
)

// downEpsilon is the minimum downward slope of the view ray before we treat
// the camera as looking level. Near-horizontal rays produce intersection
// points that explode toward the horizon; those are handled by the level
// branch and the max-radius cutoff instead.
const downEpsilon = 1e-4

// GroundProjector computes where a forward ray from the camera meets the
// ground plane (Y=0). It is a geometric guess substituting for true depth
// sensing, used by the fallback reticle when no surface detection exists.
//
// The projector is stateful: updates that would throw the reticle beyond
// MaxRadius are discarded and the previous accepted point is kept, so the
// reticle stays numerically stable under continuous sensor input.
type GroundProjector struct {
	// MaxRadius is the cutoff distance in meters from the camera beyond
	// which an intersection is discarded (keeps the previous point).
	MaxRadius float32
	// LevelDistance is the forward distance in meters used when the camera
	// looks level or upward: a best-guess point that keeps the reticle
	// on-screen rather than invisible.
	LevelDistance float32

	last    mgl32.Vec3
	hasLast bool
}

// NewGroundProjector returns a projector with the given cutoff radius and
// level-gaze fallback distance (meters).
func NewGroundProjector(maxRadius, levelDistance float32) *GroundProjector {
	return &GroundProjector{MaxRadius: maxRadius, LevelDistance: levelDistance}
}

// Project returns the current ground candidate for a camera at camPos
// looking along forward (unit vector). ok is false only while no point has
// ever been accepted.
//
// Looking downward: solve camPos + forward*t for Y=0; accept unless the hit
// is farther than MaxRadius from the camera. Looking level or up: a point
// LevelDistance meters ahead along the horizontal forward component, at
// height 0. A near-vertical upward gaze has no horizontal component and
// keeps the previous point.
func (g *GroundProjector) Project(camPos, forward mgl32.Vec3) (mgl32.Vec3, bool) {
	if forward.Y() < -downEpsilon {
		t := -camPos.Y() / forward.Y()
		hit := camPos.Add(forward.Mul(t))
		if hit.Sub(camPos).Len() > g.MaxRadius {
			return g.last, g.hasLast
		}
		return g.accept(hit), true
	}

	horizontal := mgl32.Vec3{forward.X(), 0, forward.Z()}
	if horizontal.Len() < downEpsilon {
		return g.last, g.hasLast
	}
	ahead := camPos.Add(horizontal.Normalize().Mul(g.LevelDistance))
	ahead[1] = 0
	return g.accept(ahead), true
}

// Last returns the most recently accepted point, if any.
func (g *GroundProjector) Last() (mgl32.Vec3, bool) {
	return g.last, g.hasLast
}

// Reset forgets the last accepted point (used when the reticle is
// re-initialized after a session reset).
func (g *GroundProjector) Reset() {
	g.last = mgl32.Vec3{}
	g.hasLast = false
}

func (g *GroundProjector) accept(p mgl32.Vec3) mgl32.Vec3 {
	g.last = p
	g.hasLast = true
	return p
}
