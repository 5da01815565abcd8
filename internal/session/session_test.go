package session

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipe-viewer/internal/projection"
	"pipe-viewer/internal/spatial"
	"pipe-viewer/internal/tracking"
)

// harness bundles a context with its simulated capabilities.
type harness struct {
	ctx      *Context
	platform *tracking.SimulatedPlatform
	sensors  *tracking.SimulatedSensors
	camera   *tracking.SimulatedCamera
}

func newHarness() *harness {
	platform := tracking.NewSimulatedPlatform()
	sensors := tracking.NewSimulatedSensors()
	camera := tracking.NewSimulatedCamera()
	projector := projection.NewGroundProjector(30, 3)
	return &harness{
		ctx:      NewContext(zerolog.Nop(), platform, sensors, camera, projector),
		platform: platform,
		sensors:  sensors,
		camera:   camera,
	}
}

// placeTracked drives the harness to a committed placement on the tracked
// backend.
func (h *harness) placeTracked(t *testing.T, at mgl32.Vec3) {
	t.Helper()
	h.ctx.StartTracked()
	require.Equal(t, StateTrackedActive, h.ctx.State())
	h.platform.Session().SetHits([]spatial.Pose{spatial.PoseAt(at)})
	h.ctx.Frame(mgl32.Vec3{}, mgl32.Vec3{})
	h.ctx.CommitPlacement()
	require.Equal(t, StatePlaced, h.ctx.State())
	require.NotNil(t, h.ctx.Placement())
}

func TestStartTracked_Activates(t *testing.T) {
	h := newHarness()
	h.ctx.StartTracked()

	assert.Equal(t, StateTrackedActive, h.ctx.State())
	assert.Equal(t, tracking.BackendTracked, h.ctx.Backend())
}

func TestStartTracked_UnsupportedFallsBack(t *testing.T) {
	h := newHarness()
	h.platform.Supported = false
	h.ctx.StartTracked()

	assert.Equal(t, StateFallbackActive, h.ctx.State())
	assert.Equal(t, tracking.BackendFallback, h.ctx.Backend())
}

func TestStartTracked_TransientFailureFallsBack(t *testing.T) {
	h := newHarness()
	h.platform.FailAcquire = true
	h.ctx.StartTracked()

	assert.Equal(t, StateFallbackActive, h.ctx.State())
	assert.Equal(t, tracking.BackendFallback, h.ctx.Backend())
}

func TestStartTracked_SecondRequestIsNoOp(t *testing.T) {
	h := newHarness()
	h.ctx.StartTracked()
	first := h.platform.Session()

	h.ctx.StartTracked()
	assert.Same(t, first, h.platform.Session(), "already-active backend must not reacquire")
}

func TestHandOff_PreservesPlacement(t *testing.T) {
	h := newHarness()
	h.placeTracked(t, mgl32.Vec3{1, 0, -2})
	place := h.ctx.Placement()
	before := place.EffectivePose()

	// Platform terminates the tracked session: hand-off to fallback must
	// not force a reset.
	h.platform.Session().TriggerEnd()

	assert.Equal(t, StatePlaced, h.ctx.State())
	assert.Equal(t, tracking.BackendFallback, h.ctx.Backend())
	assert.Same(t, place, h.ctx.Placement())
	assert.Equal(t, before, h.ctx.Placement().EffectivePose())
}

func TestHandOff_WithoutPlacementActivatesFallback(t *testing.T) {
	h := newHarness()
	h.ctx.StartTracked()
	h.platform.Session().TriggerEnd()

	assert.Equal(t, StateFallbackActive, h.ctx.State())
	assert.Equal(t, tracking.BackendFallback, h.ctx.Backend())
}

func TestHandOff_StopsTrackedFrameUpdates(t *testing.T) {
	h := newHarness()
	h.ctx.StartTracked()
	sess := h.platform.Session()
	sess.SetHits([]spatial.Pose{spatial.PoseAt(mgl32.Vec3{5, 0, 5})})

	sess.TriggerEnd()
	assert.Empty(t, sess.HitTestResults(), "ended session must not feed the reticle")
	assert.True(t, sess.Ended())
}

func TestCommit_DoubleTapCreatesOnePlacement(t *testing.T) {
	h := newHarness()
	h.placeTracked(t, mgl32.Vec3{1, 0, -2})
	first := h.ctx.Placement()

	h.ctx.CommitPlacement()
	assert.Same(t, first, h.ctx.Placement(), "second commit must be a no-op")
}

func TestCommit_WithoutCandidateIsSilentlyIgnored(t *testing.T) {
	h := newHarness()
	h.ctx.StartTracked()

	// No hit-test result has arrived; no candidate, no placement.
	h.ctx.CommitPlacement()
	assert.Nil(t, h.ctx.Placement())
	assert.Equal(t, StateTrackedActive, h.ctx.State())
}

func TestCommit_UsesCandidatePosition(t *testing.T) {
	h := newHarness()
	h.placeTracked(t, mgl32.Vec3{3, 0, -1})

	pos := h.ctx.Placement().EffectivePose().Position
	assert.InDelta(t, 3, float64(pos.X()), 1e-6)
	assert.InDelta(t, -1, float64(pos.Z()), 1e-6)
}

func TestReset_ClearsPlacementWithoutReacquisition(t *testing.T) {
	h := newHarness()
	h.platform.Supported = false
	h.ctx.StartTracked() // lands in fallback
	require.Equal(t, StateFallbackActive, h.ctx.State())
	requests := h.sensors.RequestLog
	acquires := h.camera.AcquireLog

	// Place via the ground projection, then reset.
	h.ctx.Frame(mgl32.Vec3{0, 1.6, 0}, mgl32.Vec3{0, -1, 0})
	h.ctx.CommitPlacement()
	require.Equal(t, StatePlaced, h.ctx.State())
	h.ctx.Reset()

	assert.Nil(t, h.ctx.Placement())
	assert.Equal(t, StateFallbackActive, h.ctx.State())
	assert.Equal(t, requests, h.sensors.RequestLog, "reset must not re-prompt for orientation")
	assert.Equal(t, acquires, h.camera.AcquireLog, "reset must not reacquire the camera")

	// The reticle tracks again on the next frame.
	h.ctx.Frame(mgl32.Vec3{0, 1.6, 0}, mgl32.Vec3{0, -1, 0})
	assert.True(t, h.ctx.Reticle().Visible)
}

func TestReset_WithoutPlacementIsNoOp(t *testing.T) {
	h := newHarness()
	h.ctx.StartTracked()
	h.ctx.Reset()
	assert.Equal(t, StateTrackedActive, h.ctx.State())
}

func TestFallback_OrientationDeniedDegradesToPointerOnly(t *testing.T) {
	h := newHarness()
	h.sensors.Denied = true
	h.ctx.StartFallback()

	assert.Equal(t, StateFallbackActive, h.ctx.State())
	assert.True(t, h.ctx.PointerOnly())
}

func TestFallback_CameraFailureIsNonFatal(t *testing.T) {
	h := newHarness()
	h.camera.Available = false
	h.ctx.StartFallback()

	assert.Equal(t, StateFallbackActive, h.ctx.State())
	assert.True(t, h.ctx.CameraLess())
	assert.False(t, h.ctx.Unrecoverable(), "tracking is still supported")
}

func TestUnrecoverable_NoCameraAndNoTracking(t *testing.T) {
	h := newHarness()
	h.platform.Supported = false
	h.camera.Available = false
	h.ctx.StartTracked()

	assert.True(t, h.ctx.Unrecoverable())
	assert.Equal(t, StateFallbackActive, h.ctx.State(), "still degrades, never fatal")
}

func TestFrame_FallbackUsesGroundProjection(t *testing.T) {
	h := newHarness()
	h.ctx.StartFallback()

	h.ctx.Frame(mgl32.Vec3{0, 1.6, 0}, mgl32.Vec3{0, -1, 0})
	ret := h.ctx.Reticle()
	require.True(t, ret.Visible)
	assert.Equal(t, tracking.BackendFallback, ret.Source)
	assert.InDelta(t, 0, float64(ret.Pose.Position.X()), 1e-6)
	assert.InDelta(t, 0, float64(ret.Pose.Position.Y()), 1e-6)
}

func TestFrame_TrackedEmptyHitsHideReticle(t *testing.T) {
	h := newHarness()
	h.ctx.StartTracked()
	h.ctx.Frame(mgl32.Vec3{}, mgl32.Vec3{})

	assert.False(t, h.ctx.Reticle().Visible, "no surface found yet")
}

func TestMachine_LateEndedSignalIsIgnored(t *testing.T) {
	// An ended signal arriving after the fallback is already active (a
	// race between the platform callback and user action) is a no-op.
	m := NewMachine()
	m.Apply(Event{Kind: EventFallbackRequested})
	m.Apply(Event{Kind: EventFallbackReady})

	effects := m.Apply(Event{Kind: EventTrackedEnded})
	assert.Nil(t, effects)
	assert.Equal(t, StateFallbackActive, m.State())
}

func TestMachine_StopTrackedOrderedBeforeAcquireFallback(t *testing.T) {
	m := NewMachine()
	m.Apply(Event{Kind: EventTrackedRequested})
	m.Apply(Event{Kind: EventTrackedStarted})

	effects := m.Apply(Event{Kind: EventTrackedEnded})
	require.NotEmpty(t, effects)
	var stopIdx, acquireIdx int
	for i, fx := range effects {
		switch fx.Kind {
		case EffectStopTracked:
			stopIdx = i
		case EffectAcquireFallback:
			acquireIdx = i
		}
	}
	assert.Less(t, stopIdx, acquireIdx,
		"tracked frame updates must stop before the fallback starts")
}
