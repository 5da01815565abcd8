package session

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pipe-viewer/internal/orientation"
	"pipe-viewer/internal/placement"
	"pipe-viewer/internal/projection"
	"pipe-viewer/internal/reticle"
	"pipe-viewer/internal/spatial"
	"pipe-viewer/internal/tracking"
)

// Context wires the session together: it owns the machine, the reticle
// controller, the orientation filter, the ground projector and the one
// active placement, and it adapts asynchronous platform callbacks into
// machine events. Everything runs on the render-loop goroutine; callbacks
// fired by the simulated platform run synchronously inside dispatch, so a
// commit always takes effect before the next frame reads reticle
// visibility.
//
// Created once at app start and torn down on navigation away; components
// receive it instead of reaching for module-level singletons.
type Context struct {
	log zerolog.Logger
	id  uuid.UUID

	machine   *Machine
	ret       *reticle.Controller
	filter    *orientation.Filter
	projector *projection.GroundProjector

	platform tracking.Platform
	sensors  tracking.SensorSource
	camera   tracking.CameraFeed

	tracked tracking.TrackedSession
	place   *placement.Placement

	status string
	// cameraLess: camera passthrough failed; render a solid background.
	cameraLess bool
	// pointerOnly: orientation denied; the rig's pointer controls are the
	// sole input.
	pointerOnly bool
}

// NewContext builds a session context around the given platform
// capabilities. The projector carries the ground-projection tuning (max
// radius, level distance) from config.
func NewContext(
	log zerolog.Logger,
	platform tracking.Platform,
	sensors tracking.SensorSource,
	camera tracking.CameraFeed,
	projector *projection.GroundProjector,
) *Context {
	id := uuid.New()
	return &Context{
		log:       log.With().Str("session", id.String()).Logger(),
		id:        id,
		machine:   NewMachine(),
		ret:       reticle.NewController(),
		filter:    orientation.NewFilter(),
		projector: projector,
		platform:  platform,
		sensors:   sensors,
		camera:    camera,
	}
}

// ID identifies this session in logs.
func (c *Context) ID() uuid.UUID { return c.id }

// State returns the current lifecycle state.
func (c *Context) State() State { return c.machine.State() }

// Backend returns the active tracking backend.
func (c *Context) Backend() tracking.Backend { return c.machine.Backend() }

// Placement returns the active placement, or nil before commit/after reset.
func (c *Context) Placement() *placement.Placement { return c.place }

// Reticle returns the current reticle for rendering.
func (c *Context) Reticle() reticle.Reticle { return c.ret.State() }

// Status returns the current user-facing status message.
func (c *Context) Status() string { return c.status }

// CameraLess reports whether the camera passthrough failed (solid
// background instead of camera feed).
func (c *Context) CameraLess() bool { return c.cameraLess }

// PointerOnly reports whether orientation input is unavailable and the
// manual rig's pointer controls are the sole input.
func (c *Context) PointerOnly() bool { return c.pointerOnly }

// Unrecoverable reports the one failure that cannot degrade further: no
// camera passthrough and no device tracking. The renderer replaces the
// reticle with a persistent on-screen notice; the process keeps running.
func (c *Context) Unrecoverable() bool {
	return c.cameraLess && !c.platform.TrackingSupported()
}

// OrientationActive reports whether valid orientation samples have arrived.
func (c *Context) OrientationActive() bool { return c.filter.Active() }

// OrientationRotation returns the filtered device rotation for the camera
// rig while the fallback backend drives the view.
func (c *Context) OrientationRotation() mgl32.Quat { return c.filter.Rotation() }

// StartTracked requests the tracked backend. If the platform lacks the
// capability or the session fails to start, the machine hands off to the
// fallback backend automatically — a tracking outage must never strand the
// user without a usable reticle.
func (c *Context) StartTracked() {
	c.dispatch(Event{Kind: EventTrackedRequested})
}

// StartFallback brings up the fallback backend directly: camera
// passthrough (failure is non-fatal), manual camera rig, and a device
// orientation request (denial degrades to pointer-only input).
func (c *Context) StartFallback() {
	c.dispatch(Event{Kind: EventFallbackRequested})
}

// CommitPlacement fixes the current reticle candidate as the placement.
// With no candidate this is silently ignored (ErrInvalidCommit is a race
// between input and frame timing, not a bug). A second commit while placed
// is a no-op.
func (c *Context) CommitPlacement() {
	pose, ok := c.ret.Candidate()
	if !ok {
		c.log.Debug().Err(ErrInvalidCommit).Msg("ignoring commit")
		return
	}
	c.dispatch(Event{Kind: EventCommitRequested, Pose: pose})
}

// Reset destroys the placement and restores the reticle within whichever
// backend is currently active. No backend acquisition is re-run, so no
// duplicate permission prompts appear.
func (c *Context) Reset() {
	c.dispatch(Event{Kind: EventResetRequested})
}

// Frame runs once per render tick. camPos and camForward describe the
// current viewpoint (from the manual rig or the orientation filter) and
// feed the ground projection while the fallback backend is active; the
// tracked backend ignores them and consumes hit-test results instead.
func (c *Context) Frame(camPos, camForward mgl32.Vec3) {
	// Orientation samples arrive regardless of backend; nil samples keep
	// the previous rotation.
	if sample, ok := c.sensors.Sample(); ok {
		c.filter.Ingest(sample, c.sensors.ScreenAngle())
	}

	switch c.machine.Backend() {
	case tracking.BackendTracked:
		if c.tracked == nil {
			return
		}
		hit, ok := tracking.FirstHit(c.tracked.HitTestResults())
		c.ret.Update(tracking.BackendTracked, hit, ok)
	case tracking.BackendFallback:
		point, ok := c.projector.Project(camPos, camForward)
		c.ret.Update(tracking.BackendFallback, spatial.PoseAt(point), ok)
	}
}

// dispatch applies an event and executes the resulting effects in order.
// Effects may dispatch further events (acquisition outcomes); recursion is
// safe because everything is single-threaded.
func (c *Context) dispatch(ev Event) {
	before := c.machine.State()
	effects := c.machine.Apply(ev)
	if after := c.machine.State(); after != before {
		c.log.Info().
			Stringer("event", ev.Kind).
			Stringer("from", before).
			Stringer("to", after).
			Msg("session transition")
	}
	for _, fx := range effects {
		c.execute(fx)
	}
}

func (c *Context) execute(fx Effect) {
	switch fx.Kind {
	case EffectAcquireTracked:
		c.acquireTracked()
	case EffectStopTracked:
		if c.tracked != nil {
			c.tracked.End()
			c.tracked = nil
		}
	case EffectAcquireFallback:
		c.acquireFallback()
	case EffectCreatePlacement:
		c.place = placement.New(fx.Pose.Position, spatial.YawOf(fx.Pose.Orientation))
		c.ret.MarkPlaced(true)
		c.log.Info().Str("placement", c.place.ID().String()).Msg("placement committed")
	case EffectDestroyPlacement:
		if c.place != nil {
			c.log.Info().Str("placement", c.place.ID().String()).Msg("placement destroyed")
		}
		c.place = nil
		c.ret.MarkPlaced(false)
		c.projector.Reset()
	case EffectStatus:
		c.status = fx.Status
		c.log.Info().Str("status", fx.Status).Msg("status")
	}
}

func (c *Context) acquireTracked() {
	if !c.platform.TrackingSupported() {
		c.dispatch(Event{Kind: EventTrackedUnsupported})
		return
	}
	sess, err := c.platform.RequestSession()
	if err != nil {
		var unsupported *tracking.UnsupportedError
		if errors.As(err, &unsupported) {
			c.dispatch(Event{Kind: EventTrackedUnsupported})
			return
		}
		c.log.Warn().Err(err).Msg("tracked session start failed")
		c.dispatch(Event{Kind: EventTrackedFailed})
		return
	}
	c.tracked = sess
	sess.OnEnded(func() {
		c.dispatch(Event{Kind: EventTrackedEnded})
	})
	c.dispatch(Event{Kind: EventTrackedStarted})
}

func (c *Context) acquireFallback() {
	if err := c.camera.Acquire(); err != nil {
		c.cameraLess = true
		c.log.Warn().Err(err).Msg("camera passthrough unavailable")
		c.dispatch(Event{Kind: EventCameraUnavailable})
	}
	if err := c.sensors.RequestOrientation(); err != nil {
		c.pointerOnly = true
		c.log.Warn().Err(err).Msg("orientation unavailable")
		c.dispatch(Event{Kind: EventOrientationDenied})
	}
	c.dispatch(Event{Kind: EventFallbackReady})
}
