package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown content type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSessionClosed indicates a live search session was used after Close.
	ErrSessionClosed = errors.New("search session closed")

	// ErrSourceUnavailable indicates a content source could not be loaded.
	// Adapters log it and keep serving their last snapshot.
	ErrSourceUnavailable = errors.New("content source unavailable")
)
