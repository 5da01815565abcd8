package session

import (
	"pipe-viewer/internal/spatial"
	"pipe-viewer/internal/tracking"
)

// State is the placement-session lifecycle state.
//
//	Init → AwaitingBackend → {TrackedActive, FallbackActive} → Placed
//	                ↑                                            │
//	                └──────────────── reset ─────────────────────┘
//
// Placed and the active-tracking states are mutually exclusive render
// targets: the placed model replaces the reticle. A session may move from
// tracked to fallback (never the reverse); that hand-off preserves Placed.
type State int

const (
	StateInit State = iota
	// StateAwaitingBackend covers both "no backend chosen yet" and the
	// suspended window while an asynchronous backend acquisition is in
	// flight (see the acquiring guard on Machine).
	StateAwaitingBackend
	StateTrackedActive
	StateFallbackActive
	StatePlaced
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAwaitingBackend:
		return "awaiting-backend"
	case StateTrackedActive:
		return "tracked-active"
	case StateFallbackActive:
		return "fallback-active"
	case StatePlaced:
		return "placed"
	default:
		return "unknown"
	}
}

// EventKind identifies a session event. Events are the only way the machine
// changes state; platform callbacks and user input are both adapted into
// events by Context so the transition function stays testable in isolation.
type EventKind int

const (
	// EventTrackedRequested: user (or startup) asked for the tracked backend.
	EventTrackedRequested EventKind = iota
	// EventTrackedStarted: the platform granted a tracked session.
	EventTrackedStarted
	// EventTrackedUnsupported: the platform lacks tracked sessions entirely.
	EventTrackedUnsupported
	// EventTrackedFailed: transient tracked-session start failure.
	EventTrackedFailed
	// EventTrackedEnded: the platform terminated a running tracked session
	// (user cancel, backend crash, permission revoked).
	EventTrackedEnded
	// EventFallbackRequested: caller asked for the fallback backend directly.
	EventFallbackRequested
	// EventFallbackReady: fallback acquisition finished (camera and
	// orientation requests resolved, successfully or degraded).
	EventFallbackReady
	// EventOrientationDenied: orientation permission refused; pointer-only.
	EventOrientationDenied
	// EventCameraUnavailable: camera passthrough failed; solid background.
	EventCameraUnavailable
	// EventCommitRequested: user committed the reticle candidate in Pose.
	EventCommitRequested
	// EventResetRequested: user discarded the placement.
	EventResetRequested
)

func (k EventKind) String() string {
	switch k {
	case EventTrackedRequested:
		return "tracked-requested"
	case EventTrackedStarted:
		return "tracked-started"
	case EventTrackedUnsupported:
		return "tracked-unsupported"
	case EventTrackedFailed:
		return "tracked-failed"
	case EventTrackedEnded:
		return "tracked-ended"
	case EventFallbackRequested:
		return "fallback-requested"
	case EventFallbackReady:
		return "fallback-ready"
	case EventOrientationDenied:
		return "orientation-denied"
	case EventCameraUnavailable:
		return "camera-unavailable"
	case EventCommitRequested:
		return "commit-requested"
	case EventResetRequested:
		return "reset-requested"
	default:
		return "unknown"
	}
}

// Event is one input to the transition function.
type Event struct {
	Kind EventKind
	// Pose carries the committed candidate for EventCommitRequested.
	Pose spatial.Pose
}

// EffectKind identifies a side effect requested by a transition. The
// machine never performs side effects itself; Context executes them.
type EffectKind int

const (
	// EffectAcquireTracked: request a tracked session from the platform.
	EffectAcquireTracked EffectKind = iota
	// EffectStopTracked: synchronously end the tracked session's frame
	// updates. Always ordered before EffectAcquireFallback so two backends
	// can never write the reticle in the same frame.
	EffectStopTracked
	// EffectAcquireFallback: acquire camera passthrough and orientation.
	EffectAcquireFallback
	// EffectCreatePlacement: create the placement store entry from Pose.
	EffectCreatePlacement
	// EffectDestroyPlacement: destroy the placement store entry and
	// re-initialize the reticle.
	EffectDestroyPlacement
	// EffectStatus: show a status message (never an interrupting dialog).
	EffectStatus
)

// Effect is one side effect requested by a transition.
type Effect struct {
	Kind   EffectKind
	Pose   spatial.Pose
	Status string
}

func status(msg string) Effect {
	return Effect{Kind: EffectStatus, Status: msg}
}

// Machine is the session state machine. Apply is a pure transition on the
// machine's fields: (state, event) → (state, effects). All guards against
// duplicate or late-arriving input (double-tap commits, competing
// acquisitions, stray ended signals) live here.
type Machine struct {
	state     State
	backend   tracking.Backend
	placed    bool
	acquiring bool
}

// NewMachine returns a machine in StateInit with no backend.
func NewMachine() *Machine {
	return &Machine{state: StateInit}
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	return m.state
}

// Backend returns the active tracking backend (BackendNone until the first
// acquisition completes).
func (m *Machine) Backend() tracking.Backend {
	return m.backend
}

// Placed reports whether a placement currently exists.
func (m *Machine) Placed() bool {
	return m.placed
}

// activeState returns the tracking state matching the current backend,
// used when leaving Placed or finishing an acquisition.
func (m *Machine) activeState() State {
	switch m.backend {
	case tracking.BackendTracked:
		return StateTrackedActive
	case tracking.BackendFallback:
		return StateFallbackActive
	default:
		return StateAwaitingBackend
	}
}

// Apply runs one transition and returns the effects to execute, in order.
// Unexpected events in the current state are no-ops returning nil.
func (m *Machine) Apply(ev Event) []Effect {
	switch ev.Kind {
	case EventTrackedRequested:
		// Guard: already scanning or a backend is already active.
		if m.acquiring || m.backend != tracking.BackendNone {
			return nil
		}
		m.acquiring = true
		m.state = StateAwaitingBackend
		return []Effect{{Kind: EffectAcquireTracked}}

	case EventTrackedStarted:
		if !m.acquiring {
			return nil
		}
		m.acquiring = false
		m.backend = tracking.BackendTracked
		if m.placed {
			m.state = StatePlaced
		} else {
			m.state = StateTrackedActive
		}
		return []Effect{status("scanning for surfaces — tap to place")}

	case EventTrackedUnsupported:
		if !m.acquiring {
			return nil
		}
		// Stay acquiring: the fallback hand-off starts immediately.
		return []Effect{
			status("device tracking unavailable — manual placement mode"),
			{Kind: EffectAcquireFallback},
		}

	case EventTrackedFailed:
		if !m.acquiring {
			return nil
		}
		return []Effect{
			status("tracking failed to start — manual placement mode"),
			{Kind: EffectAcquireFallback},
		}

	case EventTrackedEnded:
		// Guard: only meaningful while the tracked backend is active. The
		// hand-off must not force a reset: an existing placement survives
		// and rendering continues under Placed semantics.
		if m.backend != tracking.BackendTracked {
			return nil
		}
		m.backend = tracking.BackendNone
		m.acquiring = true
		if !m.placed {
			m.state = StateAwaitingBackend
		}
		return []Effect{
			{Kind: EffectStopTracked},
			status("tracking ended — switching to manual mode"),
			{Kind: EffectAcquireFallback},
		}

	case EventFallbackRequested:
		// Guard: already fallback active, or an acquisition is in flight.
		if m.acquiring || m.backend != tracking.BackendNone {
			return nil
		}
		m.acquiring = true
		m.state = StateAwaitingBackend
		return []Effect{{Kind: EffectAcquireFallback}}

	case EventFallbackReady:
		if !m.acquiring {
			return nil
		}
		m.acquiring = false
		m.backend = tracking.BackendFallback
		if m.placed {
			m.state = StatePlaced
		} else {
			m.state = StateFallbackActive
		}
		return []Effect{status("manual placement — aim at the ground, tap to place")}

	case EventOrientationDenied:
		return []Effect{status("orientation unavailable — drag to look around")}

	case EventCameraUnavailable:
		return []Effect{status("camera unavailable — using plain background")}

	case EventCommitRequested:
		// Guard: a second commit while already placed is a no-op (double-tap).
		if m.placed {
			return nil
		}
		if m.state != StateTrackedActive && m.state != StateFallbackActive {
			return nil
		}
		m.placed = true
		m.state = StatePlaced
		return []Effect{
			{Kind: EffectCreatePlacement, Pose: ev.Pose},
			status("placed — adjust yaw and offset, reset to start over"),
		}

	case EventResetRequested:
		if !m.placed {
			return nil
		}
		m.placed = false
		// Return to the active state of whichever backend is current; the
		// backend itself is not reacquired.
		m.state = m.activeState()
		return []Effect{
			{Kind: EffectDestroyPlacement},
			status("placement cleared — tap to place again"),
		}
	}
	return nil
}
