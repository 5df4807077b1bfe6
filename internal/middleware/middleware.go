// Package middleware holds the Echo middleware shared by every route:
// request ids, request-scoped loggers, New Relic tracing, the CORS origin
// guard, access logging, panic recovery and the global error handler.
package middleware
