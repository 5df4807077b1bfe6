// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass it
// validated input, it calls the repositories and records what happened in
// metrics and APM events.
package service
