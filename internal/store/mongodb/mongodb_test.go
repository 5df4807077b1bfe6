package mongodb_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/emp-records/internal/config"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/store"
	"github.com/deppfellow/emp-records/internal/store/mongodb"
	"github.com/deppfellow/emp-records/internal/store/storetest"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestParseID(t *testing.T) {
	s := &mongodb.Store{}

	id, err := s.ParseID("65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)
	assert.Equal(t, model.ID("65a1f0c2e4b0a1b2c3d4e5f6"), id)

	for _, raw := range []string{"", "abc", "65a1f0c2e4b0a1b2c3d4e5fz", uuid.NewString()} {
		_, err := s.ParseID(raw)
		assert.ErrorIs(t, err, model.ErrInvalidID, raw)
	}
}

// TestMongoStoreSuite runs against a live server when EMPREC_TEST_MONGO_URI is set.
func TestMongoStoreSuite(t *testing.T) {
	uri := os.Getenv("EMPREC_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("EMPREC_TEST_MONGO_URI not set")
	}

	logger := zerolog.Nop()
	suite.Run(t, &storetest.Suite{
		NewStore: func() store.Store {
			s, err := mongodb.Open(context.Background(), config.StoreConfig{
				Driver:     config.DriverMongo,
				URI:        uri,
				Database:   "employees_test",
				Collection: "records_" + uuid.NewString()[:8],
			}, 100*time.Millisecond, &logger)
			require.NoError(t, err)
			return s
		},
		ValidID: "65a1f0c2e4b0a1b2c3d4e5f6",
	})
}
