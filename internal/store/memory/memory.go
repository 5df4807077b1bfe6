// Package memory is an in-process record store for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/deppfellow/emp-records/internal/model"
	"github.com/google/uuid"
)

// Store keeps records in a map guarded by a RWMutex. Records are copied in
// and out so callers never share memory with the store.
type Store struct {
	mu      sync.RWMutex
	records map[model.ID]model.Record
	order   []model.ID
}

// New returns an empty store.
func New() *Store {
	return &Store{records: make(map[model.ID]model.Record)}
}

// ParseID accepts any UUID spelling and returns its canonical form.
func (s *Store) ParseID(raw string) (model.ID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidID, raw)
	}
	return model.ID(id.String()), nil
}

func (s *Store) List(_ context.Context) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.records[id]))
	}
	return out, nil
}

func (s *Store) Get(_ context.Context, id model.ID) (model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return model.Record{}, model.ErrNotFound
	}
	return clone(rec), nil
}

func (s *Store) Insert(_ context.Context, rec model.Record) (model.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = model.ID(uuid.NewString())
	s.records[rec.ID] = clone(rec)
	s.order = append(s.order, rec.ID)
	return rec.ID, nil
}

func (s *Store) Update(_ context.Context, id model.ID, patch model.Patch, updated time.Time) (model.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return model.UpdateResult{Acknowledged: true}, nil
	}

	rec = patch.Apply(rec)
	rec.Updated = &updated
	s.records[id] = rec
	return model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *Store) Delete(_ context.Context, id model.ID) (model.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return model.DeleteResult{Acknowledged: true}, nil
	}

	delete(s.records, id)
	s.order = slices.DeleteFunc(s.order, func(v model.ID) bool { return v == id })
	return model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

func (s *Store) Close(_ context.Context) error {
	return nil
}

// clone copies the timestamp pointers so stored records stay private.
func clone(rec model.Record) model.Record {
	if rec.Created != nil {
		t := *rec.Created
		rec.Created = &t
	}
	if rec.Updated != nil {
		t := *rec.Updated
		rec.Updated = &t
	}
	return rec
}
