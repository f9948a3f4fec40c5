package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP
// status codes.
var (
	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned for bad credentials or invalid codes.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller is authenticated but is not
	// the owner/creator/member required for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned on duplicate username/email/code.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput is returned when the request is structurally valid but
	// semantically wrong (e.g. mismatched media arrays).
	ErrInvalidInput = errors.New("invalid input")
)
