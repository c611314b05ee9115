// Package errs defines the error shapes returned to API clients.
//
// Handlers and middleware convert every failure into an *HTTPError so
// clients always receive the same JSON structure: a machine-readable code,
// a message, the status, and optional field-level errors.
package errs
