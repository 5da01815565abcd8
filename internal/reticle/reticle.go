package reticle

import (
	"pipe-viewer/internal/spatial"
	"pipe-viewer/internal/tracking"
)

// Reticle is the placement cursor: the pose a commit would fix, plus
// whether it is currently drawable and which backend produced it. It is
// mutated once per frame and never persisted.
type Reticle struct {
	Pose    spatial.Pose
	Visible bool
	Source  tracking.Backend
}

// Controller owns the reticle and enforces the visibility invariant in one
// place instead of scattering it across callers:
//
//	visible = (candidate exists) AND (no placement committed yet)
//
// Once a placement exists the reticle is hidden and Update becomes an
// idempotent no-op: its marker is redundant with the placed model, and
// continued tracking would visually fight the fixed placement.
type Controller struct {
	ret          Reticle
	hasCandidate bool
	placed       bool
}

// NewController returns a controller with a hidden reticle and no candidate.
func NewController() *Controller {
	return &Controller{}
}

// Update feeds this frame's candidate from the active backend. ok=false
// means the backend produced no candidate this frame (e.g. no surface found
// yet); the reticle hides but remembers nothing stale.
func (c *Controller) Update(source tracking.Backend, candidate spatial.Pose, ok bool) {
	if c.placed {
		return
	}
	c.hasCandidate = ok
	c.ret.Source = source
	if ok {
		c.ret.Pose = candidate
	}
	c.ret.Visible = ok
}

// Candidate returns the current placement candidate pose, if any. There is
// never a candidate while a placement exists.
func (c *Controller) Candidate() (spatial.Pose, bool) {
	if c.placed || !c.hasCandidate {
		return spatial.Pose{}, false
	}
	return c.ret.Pose, true
}

// MarkPlaced hides and freezes the reticle (true) or re-enables frame
// updates after a reset (false).
func (c *Controller) MarkPlaced(placed bool) {
	c.placed = placed
	if placed {
		c.ret.Visible = false
		c.hasCandidate = false
	}
}

// State returns the current reticle for rendering.
func (c *Controller) State() Reticle {
	return c.ret
}
