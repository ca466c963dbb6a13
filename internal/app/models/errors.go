package models

import "errors"

// Domain specific errors surfaced by the demo host handlers.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnknownSignal   = errors.New("unknown sign-in signal")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
)
