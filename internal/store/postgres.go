package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portal-import/internal/importer/model"
)

// pgStore keeps each record as a jsonb document keyed by id.
type pgStore struct {
	pool  *pgxpool.Pool
	table string // sanitized identifier
}

func openPostgres(ctx context.Context, uri string, opts Options) (Store, error) {
	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	s := &pgStore{pool: pool, table: pgx.Identifier{opts.Collection}.Sanitize()}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *pgStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+s.table+` (
			id         text PRIMARY KEY,
			doc        jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

// Upsert merges the new document over the stored one (jsonb ||), so absent
// metrics keep their previous value like a mongo $set.
func (s *pgStore) Upsert(ctx context.Context, rec model.Portal) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO `+s.table+` (id, doc, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (id) DO UPDATE
		SET doc = `+s.table+`.doc || EXCLUDED.doc, updated_at = now()
	`, rec.ID, string(doc))
	return err
}

func (s *pgStore) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM `+s.table)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *pgStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM `+s.table).Scan(&n)
	return n, err
}

func (s *pgStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}
