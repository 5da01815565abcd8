package tracking

import (
	"pipe-viewer/internal/orientation"
	"pipe-viewer/internal/spatial"
)

// Backend identifies which spatial-tracking strategy currently feeds the
// reticle. Exactly one is active at a time; BackendNone only during
// initialization.
type Backend int

const (
	BackendNone Backend = iota
	// BackendTracked: device 6-DOF pose tracking with surface detection.
	BackendTracked
	// BackendFallback: manual camera orientation plus ground-plane
	// projection, used when tracked sessions are unsupported or end.
	BackendFallback
)

func (b Backend) String() string {
	switch b {
	case BackendTracked:
		return "tracked"
	case BackendFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Platform is the device tracking capability. Implemented by the simulated
// desktop platform here and by a real device bridge elsewhere.
type Platform interface {
	// TrackingSupported reports whether tracked sessions can be requested.
	TrackingSupported() bool
	// RequestSession starts a tracked session. Returns an *UnsupportedError
	// when the platform lacks the capability and an *AcquisitionError on a
	// transient start failure.
	RequestSession() (TrackedSession, error)
}

// TrackedSession is one running tracked-pose session. Frame updates are
// single-threaded: HitTestResults is read once per render tick.
type TrackedSession interface {
	// HitTestResults returns this frame's detected surface poses, possibly
	// empty. Never blocks; an empty list means "surface not yet found",
	// not an error.
	HitTestResults() []spatial.Pose
	// OnEnded registers the callback invoked when the platform terminates
	// the session (user cancel, backend crash, permission revoked).
	OnEnded(fn func())
	// End cancels the session and synchronously stops its frame updates,
	// so the next frame cannot see two backends writing the reticle.
	End()
}

// SensorSource is the device-orientation capability.
type SensorSource interface {
	// RequestOrientation asks for orientation events. Returns a
	// *PermissionDeniedError when the user refuses.
	RequestOrientation() error
	// Sample returns the latest orientation reading, if one arrived since
	// the last frame.
	Sample() (orientation.Sample, bool)
	// ScreenAngle returns the current device-to-screen correction angle in
	// degrees (0 portrait, ±90 landscape).
	ScreenAngle() float64
}

// CameraFeed is the camera passthrough capability used as the fallback
// backend's background. Acquisition failure is non-fatal: the caller
// renders a solid background color instead.
type CameraFeed interface {
	Acquire() error
}

// FirstHit adapts a frame's surface-detection results to the single
// candidate pose the reticle consumes: the first result wins, and an empty
// list is simply "no result".
func FirstHit(results []spatial.Pose) (spatial.Pose, bool) {
	if len(results) == 0 {
		return spatial.Pose{}, false
	}
	return results[0], true
}
