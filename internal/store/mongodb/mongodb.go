// Package mongodb stores records as documents in a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/emp-records/internal/config"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/event"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// PingTimeout bounds the start-up connectivity check.
const PingTimeout = 10 * time.Second

// document is the persisted shape. Documents written before timestamps were
// introduced have no created/updated fields.
type document struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Name     string        `bson:"name"`
	Position string        `bson:"position"`
	Level    string        `bson:"level"`
	Created  *time.Time    `bson:"created,omitempty"`
	Updated  *time.Time    `bson:"updated,omitempty"`
}

func (d document) record() model.Record {
	return model.Record{
		ID:       model.ID(d.ID.Hex()),
		Name:     d.Name,
		Position: d.Position,
		Level:    model.Level(d.Level),
		Created:  d.Created,
		Updated:  d.Updated,
	}
}

// Store is a record store over one collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to cfg.URI, pings the admin database and returns a store on
// cfg.Database/cfg.Collection. Commands slower than slow are logged at warn.
func Open(ctx context.Context, cfg config.StoreConfig, slow time.Duration, logger *zerolog.Logger) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(config.ServiceName).
		SetMonitor(commandMonitor(slow, logger))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func commandMonitor(slow time.Duration, logger *zerolog.Logger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			if slow > 0 && e.Duration >= slow {
				logger.Warn().
					Str("component", "database").
					Str("command", e.CommandName).
					Str("database", e.DatabaseName).
					Dur("duration", e.Duration).
					Msg("slow store command")
			}
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			logger.Debug().
				Str("component", "database").
				Str("command", e.CommandName).
				Dur("duration", e.Duration).
				Msg("store command failed")
		},
	}
}

// ParseID accepts a 24 character hex ObjectID.
func (s *Store) ParseID(raw string) (model.ID, error) {
	oid, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidID, raw)
	}
	return model.ID(oid.Hex()), nil
}

func (s *Store) List(ctx context.Context) ([]model.Record, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, unavailable("find records", err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, unavailable("decode records", err)
	}

	out := make([]model.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.record())
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id model.ID) (model.Record, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.Record{}, err
	}

	var d document
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Record{}, model.ErrNotFound
	}
	if err != nil {
		return model.Record{}, unavailable("find record", err)
	}
	return d.record(), nil
}

func (s *Store) Insert(ctx context.Context, rec model.Record) (model.ID, error) {
	d := document{
		ID:       bson.NewObjectID(),
		Name:     rec.Name,
		Position: rec.Position,
		Level:    string(rec.Level),
		Created:  rec.Created,
		Updated:  rec.Updated,
	}

	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return "", unavailable("insert record", err)
	}
	return model.ID(d.ID.Hex()), nil
}

func (s *Store) Update(ctx context.Context, id model.ID, patch model.Patch, updated time.Time) (model.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.UpdateResult{}, err
	}

	set := bson.D{{Key: "updated", Value: updated}}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Position != nil {
		set = append(set, bson.E{Key: "position", Value: *patch.Position})
	}
	if patch.Level != nil {
		set = append(set, bson.E{Key: "level", Value: string(*patch.Level)})
	}

	res, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return model.UpdateResult{}, unavailable("update record", err)
	}

	return model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func (s *Store) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.DeleteResult{}, err
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return model.DeleteResult{}, unavailable("delete record", err)
	}

	return model.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func objectID(id model.ID) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id.String())
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", model.ErrInvalidID, id)
	}
	return oid, nil
}

// unavailable tags a driver failure as a store outage, keeping the cause for
// logs. Network errors and timeouts are called out so they are easy to grep.
func unavailable(op string, err error) error {
	switch {
	case mongo.IsTimeout(err):
		return fmt.Errorf("%s: timed out: %w: %w", op, model.ErrStoreUnavailable, err)
	case mongo.IsNetworkError(err):
		return fmt.Errorf("%s: network error: %w: %w", op, model.ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, model.ErrStoreUnavailable, err)
	}
}
