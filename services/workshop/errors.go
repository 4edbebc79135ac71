package workshop

import "errors"

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("cart session not found or expired")
	// ErrCartUnavailable is returned when the session view does not allow cart interaction.
	ErrCartUnavailable = errors.New("cart is not available for this session")
	// ErrSubmissionInFlight is returned for mutations while a submit is pending.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)
