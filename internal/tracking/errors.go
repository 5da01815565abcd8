package tracking

import "fmt"

// UnsupportedError means the platform lacks a capability. It triggers the
// fallback backend; it is never fatal.
type UnsupportedError struct {
	Capability string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported on this platform", e.Capability)
}

// PermissionDeniedError means the user refused sensor or camera access.
// The session degrades to pointer-only input; it is never fatal.
type PermissionDeniedError struct {
	Capability string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied for %s", e.Capability)
}

// AcquisitionError is a transient backend start failure. The session
// retries once automatically via the fallback hand-off, then surfaces a
// persistent status message.
type AcquisitionError struct {
	Capability string
	Err        error
}

func (e *AcquisitionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to acquire %s", e.Capability)
	}
	return fmt.Sprintf("failed to acquire %s: %v", e.Capability, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}
