package domain

import "errors"

// Sentinel errors for the identity domain. Use errors.Is() to check these.
var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrAdminNotFound is internal to the login flow and is never returned to
	// callers; login reports ErrInvalidCredentials instead.
	ErrAdminNotFound = errors.New("admin user not found")
)
