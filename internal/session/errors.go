package session

import "errors"

// ErrInvalidCommit means a commit was attempted with no candidate pose.
// It reflects a race between user input and frame timing, not a bug, so it
// is logged at debug level and never surfaced to the user.
var ErrInvalidCommit = errors.New("commit requested with no candidate pose")

// ErrNoBackend means no tracking backend could be brought up at all (no
// tracking and no camera). This is the one case where a persistent
// on-screen notice replaces the reticle; the process still does not exit.
var ErrNoBackend = errors.New("no tracking backend available")
