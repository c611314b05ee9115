// Package handler is the HTTP entry point after the router.
//
// It binds and validates requests using the validation package and calls
// the repositories, translating their results into JSON responses.
package handler
