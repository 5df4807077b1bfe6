package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/store"
	"github.com/deppfellow/emp-records/internal/store/memory"
	"github.com/deppfellow/emp-records/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &storetest.Suite{
		NewStore: func() store.Store { return memory.New() },
		ValidID:  "6f1c1b7e-8a4f-4d39-9a57-3f0b0c9b2d11",
	})
}

func TestParseIDCanonicalizes(t *testing.T) {
	s := memory.New()
	id, err := s.ParseID("6F1C1B7E-8A4F-4D39-9A57-3F0B0C9B2D11")
	require.NoError(t, err)
	assert.Equal(t, model.ID("6f1c1b7e-8a4f-4d39-9a57-3f0b0c9b2d11"), id)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	id, err := s.Insert(ctx, model.Record{Name: "A", Position: "B", Level: model.LevelIntern})
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	got.Name = "changed"

	again, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}

func TestConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Insert(ctx, model.Record{Name: "N", Position: "P", Level: model.LevelJunior})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
