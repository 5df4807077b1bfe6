// Package validation binds request data and validates it.
//
// Payloads declare their rules with `validator` struct tags; failures are
// turned into field-level errors the client can show next to each input.
package validation
