// Package errs defines the error shapes returned to API clients.
//
// Every non-2xx response body is built from an HTTPError so clients always
// see the same JSON: a human message under "error", a machine code, the
// status, and optional field-level validation errors.
package errs

import (
	"net/http"
	"strings"
)

// FieldError represents a field-level validation error.
//
//	{ "field": "level", "error": "must be one of: Intern Junior Senior" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the application error type for API responses.
//
// Override marks messages that are safe to show to end users verbatim.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Body is the JSON document written for an error response.
// It carries the message twice: "error" for simple clients and the full
// HTTPError shape for richer ones.
type Body struct {
	Error string `json:"error"`
	HTTPError
}

// NewBody builds the response body for e.
func NewBody(e *HTTPError) Body {
	return Body{Error: e.Message, HTTPError: *e}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

func codeFor(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}
