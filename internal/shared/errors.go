package shared

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("could not validate credentials")
	// ErrForbidden indicates an authenticated caller failed a permission rule.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation indicates a malformed payload or filter value.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a unique-constraint violation.
	ErrDuplicate = errors.New("duplicate entry")
)
