// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping paths to their handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/emp-records/internal/handler"
	"github.com/deppfellow/emp-records/internal/middleware"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain, the
// system routes and the record API.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// Order matters: the request id must exist before the logger is built,
	// and CORS runs last so rejected origins are still logged and traced.
	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Origins.CORS(),
	)

	registerSystemRoutes(router, h)
	registerRecordRoutes(router, h.Record)

	return router
}

func registerRecordRoutes(r *echo.Echo, h *handler.RecordHandler) {
	records := r.Group("/record")

	records.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &model.ListRecordsPayload{}))
	records.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &model.CreateRecordPayload{}))
	records.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, &model.RecordIDPayload{}))
	records.PATCH("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &model.UpdateRecordPayload{}))
	records.PUT("/:id", handler.Handle(h.Handler, h.Replace, http.StatusOK, &model.ReplaceRecordPayload{}))
	records.DELETE("/:id", handler.Handle(h.Handler, h.Delete, http.StatusOK, &model.RecordIDPayload{}))
}
