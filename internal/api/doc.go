// Package api translates HTTP requests into calls on the credential and
// creator application services and renders their results as JSON.
//
// Errors are mapped to status codes and client-safe messages in one place
// (MapErrorToStatusCode and GetSafeErrorMessage) so that no handler leaks
// internal error text.
package api
