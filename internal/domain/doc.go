// Package domain contains the core business entities, value objects, and
// domain rules of the application: accounts and their password policy, and
// creator applications with their status lifecycle. It is independent of
// any specific infrastructure or delivery mechanism.
package domain
