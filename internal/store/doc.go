// Package store defines the persistence interfaces for accounts and creator
// applications, along with the sentinel errors every implementation returns.
// Services depend on these interfaces rather than on a concrete database.
package store
