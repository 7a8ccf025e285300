// Package service holds the two use-case services: CredentialService for
// signup and login, and ApplicationService for the creator application
// lifecycle. Services depend on the store interfaces and translate store and
// auth failures into the sentinel errors in errors.go.
package service
