package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TrackFeatureRepository handles tracks_features database operations.
type TrackFeatureRepository struct {
	pool *pgxpool.Pool
}

const selectColumns = `
	track_id, name, album, artist, popularity, key, mode,
	danceability, acousticness, energy, instrumentalness,
	liveness, loudness, speechiness, tempo, time_signature,
	valence, duration_ms, created_at, updated_at
`

// List retrieves the whole catalog in ingestion order.
func (r *TrackFeatureRepository) List(ctx context.Context) ([]TrackFeatures, error) {
	query := `SELECT ` + selectColumns + ` FROM tracks_features ORDER BY seq`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying track features: %w", err)
	}
	defer rows.Close()

	var tracks []TrackFeatures
	for rows.Next() {
		var t TrackFeatures
		if err := rows.Scan(scanTargets(&t)...); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformedRow, len(tracks), err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading track features: %w", err)
	}
	return tracks, nil
}

// Count returns the number of tracks in the catalog.
func (r *TrackFeatureRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tracks_features`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting track features: %w", err)
	}
	return n, nil
}

// UpsertBatch inserts or updates multiple tracks efficiently.
// New tracks are appended to the catalog order; existing tracks keep their place.
func (r *TrackFeatureRepository) UpsertBatch(ctx context.Context, tracks []TrackFeatures) error {
	if len(tracks) == 0 {
		return nil
	}

	query := `
		INSERT INTO tracks_features (
			track_id, name, album, artist, popularity, key, mode,
			danceability, acousticness, energy, instrumentalness,
			liveness, loudness, speechiness, tempo, time_signature,
			valence, duration_ms
		)
		SELECT * FROM unnest(
			$1::text[], $2::text[], $3::text[], $4::text[],
			$5::int[], $6::int[], $7::int[],
			$8::float8[], $9::float8[], $10::float8[], $11::float8[],
			$12::float8[], $13::float8[], $14::float8[], $15::float8[],
			$16::int[], $17::float8[], $18::int[]
		)
		ON CONFLICT (track_id) DO UPDATE SET
			name = EXCLUDED.name,
			album = EXCLUDED.album,
			artist = EXCLUDED.artist,
			popularity = EXCLUDED.popularity,
			key = EXCLUDED.key,
			mode = EXCLUDED.mode,
			danceability = EXCLUDED.danceability,
			acousticness = EXCLUDED.acousticness,
			energy = EXCLUDED.energy,
			instrumentalness = EXCLUDED.instrumentalness,
			liveness = EXCLUDED.liveness,
			loudness = EXCLUDED.loudness,
			speechiness = EXCLUDED.speechiness,
			tempo = EXCLUDED.tempo,
			time_signature = EXCLUDED.time_signature,
			valence = EXCLUDED.valence,
			duration_ms = EXCLUDED.duration_ms,
			updated_at = NOW()
	`

	n := len(tracks)
	ids := make([]string, n)
	names := make([]*string, n)
	albums := make([]*string, n)
	artists := make([]*string, n)
	popularity := make([]*int, n)
	keys := make([]*int, n)
	modes := make([]*int, n)
	danceability := make([]*float64, n)
	acousticness := make([]*float64, n)
	energy := make([]*float64, n)
	instrumentalness := make([]*float64, n)
	liveness := make([]*float64, n)
	loudness := make([]*float64, n)
	speechiness := make([]*float64, n)
	tempo := make([]*float64, n)
	timeSignatures := make([]*int, n)
	valence := make([]*float64, n)
	durations := make([]*int, n)

	for i, t := range tracks {
		ids[i] = t.ID
		names[i] = t.Name
		albums[i] = t.Album
		artists[i] = t.Artist
		popularity[i] = t.Popularity
		keys[i] = t.Key
		modes[i] = t.Mode
		danceability[i] = t.Danceability
		acousticness[i] = t.Acousticness
		energy[i] = t.Energy
		instrumentalness[i] = t.Instrumentalness
		liveness[i] = t.Liveness
		loudness[i] = t.Loudness
		speechiness[i] = t.Speechiness
		tempo[i] = t.Tempo
		timeSignatures[i] = t.TimeSignature
		valence[i] = t.Valence
		durations[i] = t.DurationMs
	}

	_, err := r.pool.Exec(ctx, query,
		ids, names, albums, artists,
		popularity, keys, modes,
		danceability, acousticness, energy, instrumentalness,
		liveness, loudness, speechiness, tempo,
		timeSignatures, valence, durations,
	)
	if err != nil {
		return fmt.Errorf("batch upserting track features: %w", err)
	}
	return nil
}

// scanTargets returns Scan destinations in selectColumns order.
func scanTargets(t *TrackFeatures) []any {
	return []any{
		&t.ID,
		&t.Name,
		&t.Album,
		&t.Artist,
		&t.Popularity,
		&t.Key,
		&t.Mode,
		&t.Danceability,
		&t.Acousticness,
		&t.Energy,
		&t.Instrumentalness,
		&t.Liveness,
		&t.Loudness,
		&t.Speechiness,
		&t.Tempo,
		&t.TimeSignature,
		&t.Valence,
		&t.DurationMs,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
}
