package handler

import (
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/server"
	"github.com/deppfellow/emp-records/internal/service"
	"github.com/labstack/echo/v4"
)

// RecordHandler serves the /record endpoints.
type RecordHandler struct {
	Handler
	records *service.RecordService
}

func NewRecordHandler(s *server.Server, records *service.RecordService) *RecordHandler {
	return &RecordHandler{
		Handler: NewHandler(s),
		records: records,
	}
}

// List serves GET /record.
func (h *RecordHandler) List(c echo.Context, _ *model.ListRecordsPayload) ([]model.Record, error) {
	return h.records.List(c.Request().Context())
}

// Get serves GET /record/:id.
func (h *RecordHandler) Get(c echo.Context, req *model.RecordIDPayload) (model.Record, error) {
	return h.records.Get(c.Request().Context(), req.ID)
}

// Create serves POST /record and answers with the stored record.
func (h *RecordHandler) Create(c echo.Context, req *model.CreateRecordPayload) (model.Record, error) {
	return h.records.Create(c.Request().Context(), req.Record())
}

// Update serves PATCH /record/:id.
func (h *RecordHandler) Update(c echo.Context, req *model.UpdateRecordPayload) (model.UpdateResult, error) {
	return h.records.Update(c.Request().Context(), req.ID, req.Patch())
}

// Replace serves PUT /record/:id.
func (h *RecordHandler) Replace(c echo.Context, req *model.ReplaceRecordPayload) (model.UpdateResult, error) {
	return h.records.Replace(c.Request().Context(), req.ID, req.Record())
}

// Delete serves DELETE /record/:id.
func (h *RecordHandler) Delete(c echo.Context, req *model.RecordIDPayload) (model.DeleteResult, error) {
	return h.records.Delete(c.Request().Context(), req.ID)
}
