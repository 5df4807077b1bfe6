package handler

import (
	"github.com/deppfellow/emp-records/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsHandler exposes the Prometheus registry.
type MetricsHandler struct {
	Handler
}

func NewMetricsHandler(s *server.Server) *MetricsHandler {
	return &MetricsHandler{Handler: NewHandler(s)}
}

func (h *MetricsHandler) Serve(c echo.Context) error {
	return echo.WrapHandler(h.server.Metrics.Handler())(c)
}
