// Package shared holds cross-cutting helpers: common errors, the session
// manager and request-context plumbing.
package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates a request without a valid session.
	ErrUnauthenticated = errors.New("authentication required")
)
