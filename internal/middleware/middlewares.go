package middleware

import (
	"github.com/deppfellow/emp-records/internal/server"
)

// Middlewares groups the middleware components so the router is built from
// one value.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Origins         *OriginGuard
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s.LoggerService.GetApplication()),
		Origins:         NewOriginGuard(s),
	}
}
