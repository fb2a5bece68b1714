package domain

import "errors"

// Error taxonomy shared by services and the HTTP layer. Handlers map these to
// status codes with errors.Is, so wrap them rather than returning new values.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnavailable     = errors.New("storage unavailable")
)
