package handler

import (
	"github.com/deppfellow/emp-records/internal/server"
	"github.com/deppfellow/emp-records/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Record  *RecordHandler
	Metrics *MetricsHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s, services.Record),
		OpenAPI: NewOpenAPIHandler(s),
		Record:  NewRecordHandler(s, services.Record),
		Metrics: NewMetricsHandler(s),
	}
}
