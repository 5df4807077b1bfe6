package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/emp-records/internal/middleware"
	"github.com/deppfellow/emp-records/internal/server"
	"github.com/deppfellow/emp-records/internal/service"
	"github.com/labstack/echo/v4"
)

// HealthCheckTimeout bounds the store ping.
const HealthCheckTimeout = 5 * time.Second

// HealthHandler reports whether the service and its store are usable, for
// load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	records *service.RecordService
}

func NewHealthHandler(s *server.Server, records *service.RecordService) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		records: records,
	}
}

// CheckHealth answers 200 when the store responds to a ping and 503
// otherwise. Failure details go to the logs, not the body.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}
	checks := response["checks"].(map[string]interface{})

	ctx, cancel := context.WithTimeout(c.Request().Context(), HealthCheckTimeout)
	defer cancel()

	storeStart := time.Now()
	err := h.records.Ping(ctx)
	storeDuration := time.Since(storeStart)

	storeCheck := map[string]interface{}{
		"status":        "healthy",
		"driver":        h.server.Config.Store.Driver,
		"response_time": storeDuration.String(),
	}
	checks["store"] = storeCheck

	if err != nil {
		storeCheck["status"] = "unhealthy"
		response["status"] = "unhealthy"

		logger.Error().
			Err(err).
			Dur("response_time", storeDuration).
			Msg("store health check failed")

		h.server.LoggerService.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       "store",
			"operation":        "health_check",
			"error_type":       "store_unhealthy",
			"response_time_ms": storeDuration.Milliseconds(),
			"error_message":    err.Error(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}
