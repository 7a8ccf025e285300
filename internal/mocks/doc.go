// Package mocks provides shared test doubles: in-memory implementations of
// the store interfaces and function-field mocks for the auth interfaces.
// Each mock prefers a set function field over its default behavior.
package mocks
