package repository

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/store/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type RecordRepositorySuite struct {
	suite.Suite
	repo  *RecordRepository
	ctx   context.Context
	clock time.Time
}

func TestRecordRepositorySuite(t *testing.T) {
	suite.Run(t, new(RecordRepositorySuite))
}

func (s *RecordRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s.repo = NewRecordRepository(memory.New())
	s.repo.now = func() time.Time { return s.clock }
}

func (s *RecordRepositorySuite) create(name string) model.Record {
	rec, err := s.repo.Insert(s.ctx, model.Record{Name: name, Position: "Engineer", Level: model.LevelJunior})
	s.Require().NoError(err)
	return rec
}

func (s *RecordRepositorySuite) TestInsertThenFind() {
	created := s.create("Ada Lovelace")
	s.NotEmpty(created.ID)
	s.Equal(s.clock, *created.Created)
	s.Equal(s.clock, *created.Updated)

	found, err := s.repo.FindByID(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Equal(created.Name, found.Name)
	s.Equal(created.Position, found.Position)
	s.Equal(created.Level, found.Level)
}

func (s *RecordRepositorySuite) TestInsertValidates() {
	_, err := s.repo.Insert(s.ctx, model.Record{Name: "x", Level: "Boss"})
	var ve *model.ValidationError
	s.Require().ErrorAs(err, &ve)
	s.Len(ve.Issues, 2)

	all, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *RecordRepositorySuite) TestInsertIgnoresClientID() {
	rec, err := s.repo.Insert(s.ctx, model.Record{ID: "client-chosen", Name: "a", Position: "b", Level: model.LevelIntern})
	s.Require().NoError(err)
	s.NotEqual(model.ID("client-chosen"), rec.ID)
}

func (s *RecordRepositorySuite) TestUpdateMergesFields() {
	created := s.create("Grace Hopper")
	s.clock = s.clock.Add(time.Hour)

	level := model.LevelSenior
	res, err := s.repo.UpdateByID(s.ctx, created.ID.String(), model.Patch{Level: &level})
	s.Require().NoError(err)
	s.EqualValues(1, res.MatchedCount)

	got, err := s.repo.FindByID(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Equal("Grace Hopper", got.Name)
	s.Equal("Engineer", got.Position)
	s.Equal(model.LevelSenior, got.Level)
	s.Equal(s.clock, *got.Updated)
	s.Equal(*created.Created, *got.Created)
}

func (s *RecordRepositorySuite) TestUpdateRejectsEmptyPatch() {
	created := s.create("x")
	_, err := s.repo.UpdateByID(s.ctx, created.ID.String(), model.Patch{})
	var ve *model.ValidationError
	s.ErrorAs(err, &ve)
}

func (s *RecordRepositorySuite) TestReplacePreservesCreated() {
	created := s.create("Old Name")
	s.clock = s.clock.Add(time.Minute)

	_, err := s.repo.ReplaceByID(s.ctx, created.ID.String(), model.Record{Name: "New Name", Position: "Manager", Level: model.LevelSenior})
	s.Require().NoError(err)

	got, err := s.repo.FindByID(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Equal("New Name", got.Name)
	s.Equal("Manager", got.Position)
	s.Equal(*created.Created, *got.Created)
	s.Equal(s.clock, *got.Updated)

	_, err = s.repo.ReplaceByID(s.ctx, created.ID.String(), model.Record{Name: "only name"})
	var ve *model.ValidationError
	s.ErrorAs(err, &ve)
}

func (s *RecordRepositorySuite) TestMissingRecordIsNotFound() {
	missing := uuid.NewString()
	name := "n"

	_, err := s.repo.FindByID(s.ctx, missing)
	s.ErrorIs(err, model.ErrNotFound)

	_, err = s.repo.UpdateByID(s.ctx, missing, model.Patch{Name: &name})
	s.ErrorIs(err, model.ErrNotFound)

	_, err = s.repo.ReplaceByID(s.ctx, missing, model.Record{Name: "a", Position: "b", Level: model.LevelIntern})
	s.ErrorIs(err, model.ErrNotFound)

	_, err = s.repo.DeleteByID(s.ctx, missing)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *RecordRepositorySuite) TestMalformedIDIsInvalid() {
	name := "n"

	_, err := s.repo.FindByID(s.ctx, "nope")
	s.ErrorIs(err, model.ErrInvalidID)

	_, err = s.repo.UpdateByID(s.ctx, "nope", model.Patch{Name: &name})
	s.ErrorIs(err, model.ErrInvalidID)

	_, err = s.repo.DeleteByID(s.ctx, "nope")
	s.ErrorIs(err, model.ErrInvalidID)
}

func (s *RecordRepositorySuite) TestDeleteThenFind() {
	created := s.create("Temp")

	res, err := s.repo.DeleteByID(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.EqualValues(1, res.DeletedCount)

	_, err = s.repo.FindByID(s.ctx, created.ID.String())
	s.ErrorIs(err, model.ErrNotFound)

	_, err = s.repo.DeleteByID(s.ctx, created.ID.String())
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *RecordRepositorySuite) TestListCountsAfterCreatesAndDeletes() {
	var ids []model.ID
	for i := 0; i < 5; i++ {
		ids = append(ids, s.create("employee").ID)
	}
	for _, id := range ids[:2] {
		_, err := s.repo.DeleteByID(s.ctx, id.String())
		s.Require().NoError(err)
	}

	all, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
	s.Equal(ids[2], all[0].ID)
}
