// Package logger configures the structured JSON logger and carries
// request-scoped loggers on context.Context.
package logger
