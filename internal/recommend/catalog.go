package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/justestif/go-spotify-recommender/internal/db"
	"github.com/justestif/go-spotify-recommender/internal/scoring"
)

// Catalog supplies every track eligible for recommendation, in a stable order.
type Catalog interface {
	ListTrackFeatures(ctx context.Context) ([]scoring.TrackFeatures, error)
}

// TrackLister is the slice of the feature store the catalog reads from.
type TrackLister interface {
	List(ctx context.Context) ([]db.TrackFeatures, error)
}

// DBCatalog reads the catalog from the tracks_features table.
type DBCatalog struct {
	tracks TrackLister
}

// NewDBCatalog creates a catalog backed by the feature store.
func NewDBCatalog(tracks TrackLister) *DBCatalog {
	return &DBCatalog{tracks: tracks}
}

// ListTrackFeatures returns the catalog in ingestion order. A row that cannot
// be decoded is reported as a data integrity failure.
func (c *DBCatalog) ListTrackFeatures(ctx context.Context) ([]scoring.TrackFeatures, error) {
	rows, err := c.tracks.List(ctx)
	if errors.Is(err, db.ErrMalformedRow) {
		return nil, fmt.Errorf("%w: %w", scoring.ErrDataIntegrity, err)
	}
	if err != nil {
		return nil, err
	}

	out := make([]scoring.TrackFeatures, len(rows))
	for i := range rows {
		out[i] = toScoringTrack(&rows[i])
	}
	return out, nil
}

func toScoringTrack(r *db.TrackFeatures) scoring.TrackFeatures {
	return scoring.TrackFeatures{
		ID:               r.ID,
		Name:             deref(r.Name),
		Album:            deref(r.Album),
		Artist:           deref(r.Artist),
		Popularity:       r.Popularity,
		Key:              r.Key,
		Mode:             r.Mode,
		Danceability:     r.Danceability,
		Acousticness:     r.Acousticness,
		Energy:           r.Energy,
		Instrumentalness: r.Instrumentalness,
		Liveness:         r.Liveness,
		Loudness:         r.Loudness,
		Speechiness:      r.Speechiness,
		Tempo:            r.Tempo,
		Valence:          r.Valence,
		TimeSignature:    r.TimeSignature,
		DurationMs:       r.DurationMs,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
