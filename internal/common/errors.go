package common

import "errors"

var (
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrValidation marks bad client input that never reaches the object store.
	ErrValidation = errors.New("validation error")

	// ErrUpstream marks a failure of the object-store signing call.
	ErrUpstream = errors.New("upstream error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
