// Package validation binds request payloads and turns validator failures
// into field-level errs.FieldError values.
package validation
