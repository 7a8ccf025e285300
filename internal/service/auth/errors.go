package auth

import "errors"

// Token errors. The middleware maps each to a distinct 401 message.
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")
)

// ErrPasswordMismatch is returned by PasswordVerifier when the password does
// not match the stored hash. Any other Compare error is an internal failure.
var ErrPasswordMismatch = errors.New("password does not match")
