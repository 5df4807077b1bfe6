package repository

import (
	"context"
	"time"

	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/store"
	"github.com/pkg/errors"
)

// RecordRepository is the single entry point to stored employee records.
//
// It owns validation and timestamps so every driver behaves the same:
// PATCH merges present fields, PUT replaces all of them, and both refresh
// the updated timestamp. Identifiers arrive as raw strings and are parsed by
// the store.
type RecordRepository struct {
	store store.Store
	now   func() time.Time
}

func NewRecordRepository(s store.Store) *RecordRepository {
	return &RecordRepository{store: s, now: now}
}

// now is millisecond precision because MongoDB stores no finer.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *RecordRepository) ListAll(ctx context.Context) ([]model.Record, error) {
	records, err := r.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list records")
	}
	return records, nil
}

func (r *RecordRepository) FindByID(ctx context.Context, rawID string) (model.Record, error) {
	id, err := r.store.ParseID(rawID)
	if err != nil {
		return model.Record{}, err
	}

	rec, err := r.store.Get(ctx, id)
	if err != nil {
		return model.Record{}, errors.Wrapf(err, "find record %s", id)
	}
	return rec, nil
}

// Insert validates rec, stamps it and returns it with its new id.
func (r *RecordRepository) Insert(ctx context.Context, rec model.Record) (model.Record, error) {
	if err := rec.Validate(); err != nil {
		return model.Record{}, err
	}

	ts := r.now()
	rec.ID = ""
	rec.Created = &ts
	rec.Updated = &ts

	id, err := r.store.Insert(ctx, rec)
	if err != nil {
		return model.Record{}, errors.Wrap(err, "insert record")
	}

	rec.ID = id
	return rec, nil
}

// UpdateByID merges the present patch fields into the record.
func (r *RecordRepository) UpdateByID(ctx context.Context, rawID string, patch model.Patch) (model.UpdateResult, error) {
	if err := patch.Validate(); err != nil {
		return model.UpdateResult{}, err
	}
	return r.update(ctx, rawID, patch)
}

// ReplaceByID overwrites name, position and level. created is preserved.
func (r *RecordRepository) ReplaceByID(ctx context.Context, rawID string, rec model.Record) (model.UpdateResult, error) {
	if err := rec.Validate(); err != nil {
		return model.UpdateResult{}, err
	}
	return r.update(ctx, rawID, model.FullPatch(rec))
}

func (r *RecordRepository) update(ctx context.Context, rawID string, patch model.Patch) (model.UpdateResult, error) {
	id, err := r.store.ParseID(rawID)
	if err != nil {
		return model.UpdateResult{}, err
	}

	res, err := r.store.Update(ctx, id, patch, r.now())
	if err != nil {
		return model.UpdateResult{}, errors.Wrapf(err, "update record %s", id)
	}
	if res.MatchedCount == 0 {
		return model.UpdateResult{}, errors.Wrapf(model.ErrNotFound, "update record %s", id)
	}
	return res, nil
}

// DeleteByID removes the record, reporting model.ErrNotFound if it was absent.
func (r *RecordRepository) DeleteByID(ctx context.Context, rawID string) (model.DeleteResult, error) {
	id, err := r.store.ParseID(rawID)
	if err != nil {
		return model.DeleteResult{}, err
	}

	res, err := r.store.Delete(ctx, id)
	if err != nil {
		return model.DeleteResult{}, errors.Wrapf(err, "delete record %s", id)
	}
	if res.DeletedCount == 0 {
		return model.DeleteResult{}, errors.Wrapf(model.ErrNotFound, "delete record %s", id)
	}
	return res, nil
}

// Ping reports whether the store is reachable.
func (r *RecordRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
