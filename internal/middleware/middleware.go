// Package middleware stores global middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request-scoped logging, tracing, CORS, panic recovery
// and error rendering.
package middleware
