package errs

import "errors"

// Sentinel errors surfaced by the booking use cases. Rule violations from the
// domain packages pass through unchanged; these cover lookups and storage.
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerInactive = errors.New("player account is not active")
	ErrDuplicateEmail = errors.New("email already registered")

	// Court and material errors
	ErrCourtNotFound      = errors.New("court not found")
	ErrDuplicateCourtName = errors.New("court name already exists")
	ErrMaterialNotFound   = errors.New("material not found")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")

	// Session pack errors
	ErrPackNotFound     = errors.New("session pack not found")
	ErrActivePackExists = errors.New("player already holds an active session pack")

	// Operation errors
	ErrStorage = errors.New("storage failure")
)
