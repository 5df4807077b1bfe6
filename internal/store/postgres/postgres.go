// Package postgres stores records in the records table created by the
// database package migrations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/emp-records/internal/database"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const selectColumns = `id::text AS id, name, position, level, created_at, updated_at`

type row struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	Level     string    `db:"level"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) record() model.Record {
	return model.Record{
		ID:       model.ID(r.ID),
		Name:     r.Name,
		Position: r.Position,
		Level:    model.Level(r.Level),
		Created:  &r.CreatedAt,
		Updated:  &r.UpdatedAt,
	}
}

// Store is a record store over a pgx pool.
type Store struct {
	db *database.Database
}

func New(db *database.Database) *Store {
	return &Store{db: db}
}

// ParseID accepts any UUID spelling and returns its canonical form.
func (s *Store) ParseID(raw string) (model.ID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidID, raw)
	}
	return model.ID(id.String()), nil
}

func (s *Store) List(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT `+selectColumns+` FROM records ORDER BY seq`)
	if err != nil {
		return nil, storeError("list records", err)
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, storeError("list records", err)
	}

	out := make([]model.Record, 0, len(collected))
	for _, r := range collected {
		out = append(out, r.record())
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id model.ID) (model.Record, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT `+selectColumns+` FROM records WHERE id = $1::uuid`, id.String())
	if err != nil {
		return model.Record{}, storeError("get record", err)
	}

	r, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[row])
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Record{}, model.ErrNotFound
	}
	if err != nil {
		return model.Record{}, storeError("get record", err)
	}
	return r.record(), nil
}

func (s *Store) Insert(ctx context.Context, rec model.Record) (model.ID, error) {
	now := time.Now().UTC()
	created, updated := now, now
	if rec.Created != nil {
		created = *rec.Created
	}
	if rec.Updated != nil {
		updated = *rec.Updated
	}

	var id string
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO records (name, position, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text`,
		rec.Name, rec.Position, string(rec.Level), created, updated,
	).Scan(&id)
	if err != nil {
		return "", storeError("insert record", err)
	}
	return model.ID(id), nil
}

func (s *Store) Update(ctx context.Context, id model.ID, patch model.Patch, updated time.Time) (model.UpdateResult, error) {
	var level *string
	if patch.Level != nil {
		l := string(*patch.Level)
		level = &l
	}

	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE records SET
			name = COALESCE($2, name),
			position = COALESCE($3, position),
			level = COALESCE($4, level),
			updated_at = $5
		WHERE id = $1::uuid`,
		id.String(), patch.Name, patch.Position, level, updated,
	)
	if err != nil {
		return model.UpdateResult{}, storeError("update record", err)
	}

	n := tag.RowsAffected()
	return model.UpdateResult{Acknowledged: true, MatchedCount: n, ModifiedCount: n}, nil
}

func (s *Store) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM records WHERE id = $1::uuid`, id.String())
	if err != nil {
		return model.DeleteResult{}, storeError("delete record", err)
	}
	return model.DeleteResult{Acknowledged: true, DeletedCount: tag.RowsAffected()}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Pool.Ping(ctx); err != nil {
		return storeError("ping", err)
	}
	return nil
}

func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}

// storeError keeps server-side SQL errors as they are so their SQLSTATE can
// be translated at the API boundary; anything else is an outage.
func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, model.ErrStoreUnavailable, err)
}
