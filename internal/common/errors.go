// Package common defines shared sentinel errors used across the server,
// agent, and protocol layers. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Record-level errors.
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")

	// Capability errors. A cancelled picker is a silent no-op for the
	// caller, never surfaced as a failure.
	ErrPermissionDenied = errors.New("permission denied")
	ErrUserCancelled    = errors.New("user cancelled")

	// Ledger errors. The backing store being gone degrades the caller,
	// it does not crash it.
	ErrStoreUnavailable = errors.New("store unavailable")

	// Sharing errors.
	ErrAlreadyShared = errors.New("already shared")
	ErrInvalidTarget = errors.New("invalid target")
)
