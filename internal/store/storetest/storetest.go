// Package storetest is the behaviour every store driver must share. Driver
// packages run it from their own tests against a fresh store.
package storetest

import (
	"context"
	"time"

	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/store"
	"github.com/stretchr/testify/suite"
)

// Suite exercises a store.Store. NewStore must return an empty store.
type Suite struct {
	suite.Suite

	NewStore func() store.Store
	// ValidID is well-formed for the driver but never assigned.
	ValidID string

	store store.Store
	ctx   context.Context
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.NewStore()
}

func (s *Suite) TearDownTest() {
	s.Require().NoError(s.store.Close(s.ctx))
}

func (s *Suite) insert(name string, level model.Level) model.ID {
	now := time.Now().UTC().Truncate(time.Millisecond)
	id, err := s.store.Insert(s.ctx, model.Record{
		Name:     name,
		Position: "Engineer",
		Level:    level,
		Created:  &now,
		Updated:  &now,
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(id)
	return id
}

func (s *Suite) TestInsertAndGet() {
	id := s.insert("Ada Lovelace", model.LevelSenior)

	got, err := s.store.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(id, got.ID)
	s.Equal("Ada Lovelace", got.Name)
	s.Equal("Engineer", got.Position)
	s.Equal(model.LevelSenior, got.Level)
	s.Require().NotNil(got.Created)
	s.Require().NotNil(got.Updated)

	parsed, err := s.store.ParseID(id.String())
	s.Require().NoError(err)
	s.Equal(id, parsed)
}

func (s *Suite) TestListKeepsInsertionOrder() {
	empty, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(empty)

	first := s.insert("first", model.LevelIntern)
	second := s.insert("second", model.LevelJunior)
	third := s.insert("third", model.LevelSenior)

	_, err = s.store.Delete(s.ctx, second)
	s.Require().NoError(err)

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(first, all[0].ID)
	s.Equal(third, all[1].ID)
}

func (s *Suite) TestUpdate() {
	id := s.insert("Grace", model.LevelJunior)
	level := model.LevelSenior
	later := time.Now().UTC().Add(time.Minute).Truncate(time.Millisecond)

	res, err := s.store.Update(s.ctx, id, model.Patch{Level: &level}, later)
	s.Require().NoError(err)
	s.True(res.Acknowledged)
	s.EqualValues(1, res.MatchedCount)
	s.EqualValues(1, res.ModifiedCount)

	got, err := s.store.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Grace", got.Name)
	s.Equal(model.LevelSenior, got.Level)
	s.Require().NotNil(got.Updated)
	s.True(later.Equal(*got.Updated))
	s.True(got.Created.Before(*got.Updated))
}

func (s *Suite) TestMissingRecord() {
	id, err := s.store.ParseID(s.ValidID)
	s.Require().NoError(err)

	_, err = s.store.Get(s.ctx, id)
	s.ErrorIs(err, model.ErrNotFound)

	name := "nobody"
	upd, err := s.store.Update(s.ctx, id, model.Patch{Name: &name}, time.Now())
	s.Require().NoError(err)
	s.Zero(upd.MatchedCount)

	del, err := s.store.Delete(s.ctx, id)
	s.Require().NoError(err)
	s.Zero(del.DeletedCount)
}

func (s *Suite) TestDelete() {
	id := s.insert("Linus", model.LevelIntern)

	res, err := s.store.Delete(s.ctx, id)
	s.Require().NoError(err)
	s.True(res.Acknowledged)
	s.EqualValues(1, res.DeletedCount)

	_, err = s.store.Get(s.ctx, id)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *Suite) TestParseIDRejectsGarbage() {
	for _, raw := range []string{"", "not-an-id", "12345", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := s.store.ParseID(raw)
		s.ErrorIs(err, model.ErrInvalidID, raw)
	}
}

func (s *Suite) TestPing() {
	s.NoError(s.store.Ping(s.ctx))
}
