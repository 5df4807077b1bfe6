package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/emp-records/internal/metrics"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/repository"
	"github.com/deppfellow/emp-records/internal/server"
)

// RecordService runs record operations and reports them to Prometheus and,
// when enabled, New Relic.
type RecordService struct {
	server *server.Server
	repo   *repository.RecordRepository
}

func NewRecordService(s *server.Server, repo *repository.RecordRepository) *RecordService {
	return &RecordService{server: s, repo: repo}
}

func (s *RecordService) List(ctx context.Context) ([]model.Record, error) {
	start := time.Now()
	records, err := s.repo.ListAll(ctx)
	s.observe("list", start, err)
	return records, err
}

func (s *RecordService) Get(ctx context.Context, id string) (model.Record, error) {
	start := time.Now()
	rec, err := s.repo.FindByID(ctx, id)
	s.observe("find", start, err)
	return rec, err
}

func (s *RecordService) Create(ctx context.Context, rec model.Record) (model.Record, error) {
	start := time.Now()
	created, err := s.repo.Insert(ctx, rec)
	s.observe("insert", start, err)
	if err != nil {
		return model.Record{}, err
	}

	s.server.Metrics.IncrementRecordsCreated()
	s.server.LoggerService.RecordCustomEvent("RecordCreated", map[string]interface{}{
		"record_id": created.ID.String(),
		"level":     string(created.Level),
	})
	return created, nil
}

func (s *RecordService) Update(ctx context.Context, id string, patch model.Patch) (model.UpdateResult, error) {
	start := time.Now()
	res, err := s.repo.UpdateByID(ctx, id, patch)
	s.observe("update", start, err)
	return res, err
}

func (s *RecordService) Replace(ctx context.Context, id string, rec model.Record) (model.UpdateResult, error) {
	start := time.Now()
	res, err := s.repo.ReplaceByID(ctx, id, rec)
	s.observe("replace", start, err)
	return res, err
}

func (s *RecordService) Delete(ctx context.Context, id string) (model.DeleteResult, error) {
	start := time.Now()
	res, err := s.repo.DeleteByID(ctx, id)
	s.observe("delete", start, err)
	if err != nil {
		return model.DeleteResult{}, err
	}

	s.server.LoggerService.RecordCustomEvent("RecordDeleted", map[string]interface{}{
		"record_id": id,
	})
	return res, nil
}

// Ping checks the store for the health endpoint.
func (s *RecordService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *RecordService) observe(operation string, start time.Time, err error) {
	s.server.Metrics.Observe(operation, outcome(err), start)

	if err != nil && outcome(err) == metrics.OutcomeError {
		s.server.LoggerService.RecordCustomEvent("RecordStoreError", map[string]interface{}{
			"operation":     operation,
			"error_message": err.Error(),
			"duration_ms":   time.Since(start).Milliseconds(),
		})
	}
}

func outcome(err error) string {
	var validationErr *model.ValidationError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, model.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, model.ErrInvalidID), errors.As(err, &validationErr):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
