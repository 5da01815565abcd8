package tracking

import (
	"pipe-viewer/internal/orientation"
	"pipe-viewer/internal/spatial"
)

// SimulatedPlatform is a desktop stand-in for the device tracking
// capability. The viewer feeds it synthesized hit-test results each frame
// (ray/ground intersection from the current camera) and triggers session
// end from a key press, so hand-off paths can be exercised without
// hardware. Tests use it as their injection seam.
type SimulatedPlatform struct {
	Supported bool
	// FailAcquire makes the next RequestSession return an AcquisitionError
	// even though tracking is supported (simulates a transient start
	// failure).
	FailAcquire bool

	session *SimulatedSession
}

// NewSimulatedPlatform returns a platform that supports tracked sessions.
func NewSimulatedPlatform() *SimulatedPlatform {
	return &SimulatedPlatform{Supported: true}
}

func (p *SimulatedPlatform) TrackingSupported() bool {
	return p.Supported
}

func (p *SimulatedPlatform) RequestSession() (TrackedSession, error) {
	if !p.Supported {
		return nil, &UnsupportedError{Capability: "tracked session"}
	}
	if p.FailAcquire {
		p.FailAcquire = false
		return nil, &AcquisitionError{Capability: "tracked session"}
	}
	p.session = &SimulatedSession{}
	return p.session, nil
}

// Session returns the most recently started session, or nil.
func (p *SimulatedPlatform) Session() *SimulatedSession {
	return p.session
}

// SimulatedSession implements TrackedSession with externally supplied
// hit-test results.
type SimulatedSession struct {
	hits    []spatial.Pose
	onEnded func()
	ended   bool
}

// SetHits sets this frame's surface-detection results.
func (s *SimulatedSession) SetHits(hits []spatial.Pose) {
	s.hits = hits
}

func (s *SimulatedSession) HitTestResults() []spatial.Pose {
	if s.ended {
		return nil
	}
	return s.hits
}

func (s *SimulatedSession) OnEnded(fn func()) {
	s.onEnded = fn
}

// TriggerEnd simulates the platform terminating the session (tracking loss,
// user cancel). The registered callback runs synchronously.
func (s *SimulatedSession) TriggerEnd() {
	if s.ended {
		return
	}
	s.ended = true
	if s.onEnded != nil {
		s.onEnded()
	}
}

func (s *SimulatedSession) End() {
	s.ended = true
	s.hits = nil
}

// Ended reports whether the session has stopped (either direction).
func (s *SimulatedSession) Ended() bool {
	return s.ended
}

// SimulatedSensors is a desktop stand-in for the device-orientation
// capability: a scripted queue of samples plus a permission switch.
type SimulatedSensors struct {
	Denied     bool
	Angle      float64 // screen-orientation correction angle, degrees
	queue      []orientation.Sample
	requested  bool
	RequestLog int // number of RequestOrientation calls, for prompt-dedup tests
}

func NewSimulatedSensors() *SimulatedSensors {
	return &SimulatedSensors{}
}

func (s *SimulatedSensors) RequestOrientation() error {
	s.RequestLog++
	if s.Denied {
		return &PermissionDeniedError{Capability: "device orientation"}
	}
	s.requested = true
	return nil
}

// Push appends a scripted sample delivered on a later frame.
func (s *SimulatedSensors) Push(sample orientation.Sample) {
	s.queue = append(s.queue, sample)
}

func (s *SimulatedSensors) Sample() (orientation.Sample, bool) {
	if !s.requested || len(s.queue) == 0 {
		return orientation.Sample{}, false
	}
	sample := s.queue[0]
	s.queue = s.queue[1:]
	return sample, true
}

func (s *SimulatedSensors) ScreenAngle() float64 {
	return s.Angle
}

// SimulatedCamera is a camera passthrough that can be made unavailable.
type SimulatedCamera struct {
	Available  bool
	AcquireLog int
}

func NewSimulatedCamera() *SimulatedCamera {
	return &SimulatedCamera{Available: true}
}

func (c *SimulatedCamera) Acquire() error {
	c.AcquireLog++
	if !c.Available {
		return &AcquisitionError{Capability: "camera stream"}
	}
	return nil
}
