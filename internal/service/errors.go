package service

import "errors"

// Service errors. Callers check them with errors.Is; the API layer maps
// each one to a status code.
var (
	// ErrAccountExists is returned by Signup when the email is already registered.
	// API layer should map this to HTTP 409 Conflict.
	ErrAccountExists = errors.New("account already exists")

	// ErrAccountNotFound is returned by Login for an unknown email.
	// API layer should map this to HTTP 400 Bad Request.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidCredentials is returned by Login when the password does not match.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrApplicationExists is returned by Submit when the wallet already has an application.
	// API layer should map this to HTTP 409 Conflict.
	ErrApplicationExists = errors.New("creator application already exists for this wallet")

	// ErrInternal hides unexpected failures from callers. The cause is logged
	// where it happens and never wrapped.
	ErrInternal = errors.New("internal error")
)
