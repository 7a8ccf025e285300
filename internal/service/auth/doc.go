// Package auth issues and validates HS256 access tokens and hashes and
// verifies passwords with bcrypt.
package auth
