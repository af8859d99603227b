// Package common holds the error taxonomy shared by services and controllers.
package common

import "errors"

var (
	// ErrBadRequest marks missing or malformed input.
	ErrBadRequest = errors.New("bad request")
	// ErrConflict marks a uniqueness violation (duplicate email).
	ErrConflict = errors.New("already exists")
	// ErrNotFound marks an id that does not resolve to a record.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a missing, invalid or orphaned session token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned by login for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
