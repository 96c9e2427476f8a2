// Package db provides PostgreSQL access to the track feature store.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrMalformedRow is returned when a stored row cannot be read into a record.
var ErrMalformedRow = errors.New("malformed row")

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// TrackFeatures returns a TrackFeatureRepository.
func (db *DB) TrackFeatures() *TrackFeatureRepository {
	return &TrackFeatureRepository{pool: db.pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS tracks_features (
	seq              BIGSERIAL,
	track_id         TEXT PRIMARY KEY,
	name             TEXT,
	album            TEXT,
	artist           TEXT,
	popularity       INTEGER,
	key              INTEGER,
	mode             INTEGER,
	danceability     DOUBLE PRECISION,
	acousticness     DOUBLE PRECISION,
	energy           DOUBLE PRECISION,
	instrumentalness DOUBLE PRECISION,
	liveness         DOUBLE PRECISION,
	loudness         DOUBLE PRECISION,
	speechiness      DOUBLE PRECISION,
	tempo            DOUBLE PRECISION,
	time_signature   INTEGER,
	valence          DOUBLE PRECISION,
	duration_ms      INTEGER,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS tracks_features_seq_idx ON tracks_features (seq);
`

// Migrate creates the feature store schema if it does not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
