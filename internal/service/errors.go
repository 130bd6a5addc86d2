package service

import "errors"

// Error kinds surfaced by the services. Lookup failures reuse
// repository.ErrNotFound. Handlers map each kind to an HTTP status.
var (
	// ErrForbidden is returned when the caller lacks the required role
	// (creator-only operations, claiming without having responded).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState is returned when the operation is disallowed in the
	// entity's current status (updating an inactive project, responding
	// after close, claiming before end, repeat claims).
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidArgument is returned for bad parameters (duration <= 0,
	// funding amount <= 0).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRewardTooSmall is returned when the computed equal share floors
	// to zero.
	ErrRewardTooSmall = errors.New("reward too small")

	// ErrTransferFailed is returned when the external payout was rejected.
	// The whole operation, including its state changes, is rolled back.
	ErrTransferFailed = errors.New("transfer failed")
)
