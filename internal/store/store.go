// Package store defines the document store the record repository runs on
// and opens the configured driver.
//
// Drivers live in subpackages: mongodb (the production store), postgres
// (a relational table managed by the database package) and memory (tests and
// local runs).
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/emp-records/internal/config"
	"github.com/deppfellow/emp-records/internal/database"
	"github.com/deppfellow/emp-records/internal/logger"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/store/memory"
	"github.com/deppfellow/emp-records/internal/store/mongodb"
	"github.com/deppfellow/emp-records/internal/store/postgres"
	"github.com/rs/zerolog"
)

// Store is the contract every driver satisfies.
//
// Get, Update and Delete take an ID produced by ParseID or Insert. Get
// returns model.ErrNotFound when nothing matches; Update and Delete report
// a zero match count instead. Failures to reach the backend wrap
// model.ErrStoreUnavailable.
type Store interface {
	// ParseID validates a client-supplied identifier, wrapping
	// model.ErrInvalidID when it is not in this store's format.
	ParseID(raw string) (model.ID, error)

	// List returns every record in insertion order.
	List(ctx context.Context) ([]model.Record, error)
	Get(ctx context.Context, id model.ID) (model.Record, error)

	// Insert stores rec and returns the identifier it was assigned.
	Insert(ctx context.Context, rec model.Record) (model.ID, error)

	// Update sets the patch fields and the updated timestamp.
	Update(ctx context.Context, id model.ID, patch model.Patch, updated time.Time) (model.UpdateResult, error)
	Delete(ctx context.Context, id model.ID) (model.DeleteResult, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*mongodb.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// Open connects to the driver named by cfg.Store.Driver and verifies it is
// reachable. The postgres driver also brings the schema up to date.
func Open(ctx context.Context, cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) (Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory record store, data is lost on restart")
		return memory.New(), nil

	case config.DriverMongo:
		threshold := cfg.Observability.Logging.SlowQueryThreshold
		s, err := mongodb.Open(ctx, cfg.Store, threshold, log)
		if err != nil {
			return nil, err
		}
		log.Info().
			Str("database", cfg.Store.Database).
			Str("collection", cfg.Store.Collection).
			Msg("connected to MongoDB")
		return s, nil

	case config.DriverPostgres:
		if err := database.Migrate(ctx, log, cfg); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		db, err := database.New(cfg, log, loggerService)
		if err != nil {
			return nil, err
		}
		return postgres.New(db), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
