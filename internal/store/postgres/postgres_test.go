package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/deppfellow/emp-records/internal/config"
	"github.com/deppfellow/emp-records/internal/database"
	"github.com/deppfellow/emp-records/internal/logger"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/store"
	"github.com/deppfellow/emp-records/internal/store/postgres"
	"github.com/deppfellow/emp-records/internal/store/storetest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestParseID(t *testing.T) {
	s := postgres.New(nil)

	id, err := s.ParseID("6F1C1B7E-8A4F-4D39-9A57-3F0B0C9B2D11")
	require.NoError(t, err)
	assert.Equal(t, model.ID("6f1c1b7e-8a4f-4d39-9a57-3f0b0c9b2d11"), id)

	_, err = s.ParseID("65a1f0c2e4b0a1b2c3d4e5f6")
	assert.ErrorIs(t, err, model.ErrInvalidID)
}

// TestPostgresStoreSuite runs against a live server when EMPREC_TEST_POSTGRES_URI is set.
func TestPostgresStoreSuite(t *testing.T) {
	uri := os.Getenv("EMPREC_TEST_POSTGRES_URI")
	if uri == "" {
		t.Skip("EMPREC_TEST_POSTGRES_URI not set")
	}

	log := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "development"},
		Store:   config.StoreConfig{Driver: config.DriverPostgres, URI: uri},
	}
	require.NoError(t, database.Migrate(context.Background(), &log, cfg))

	suite.Run(t, &storetest.Suite{
		NewStore: func() store.Store {
			db, err := database.New(cfg, &log, logger.NewLoggerService(config.DefaultObservabilityConfig()))
			require.NoError(t, err)
			_, err = db.Pool.Exec(context.Background(), `TRUNCATE records`)
			require.NoError(t, err)
			return postgres.New(db)
		},
		ValidID: "6f1c1b7e-8a4f-4d39-9a57-3f0b0c9b2d11",
	})
}
