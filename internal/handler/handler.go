// Package handler is the HTTP layer after the router.
//
// Handlers bind and validate request payloads through the validation
// package, call the service layer and shape the response. Errors are
// returned as-is; the global error handler owns the response format.
package handler
