package router

import (
	"github.com/deppfellow/emp-records/internal/handler"
	"github.com/deppfellow/emp-records/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the record
// API: health, metrics and the API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Used by load balancers and uptime monitors.
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", h.Metrics.Serve)

	// openapi.json and openapi.html.
	r.StaticFS("/static", static.FS)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
