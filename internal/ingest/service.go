// Package ingest loads catalog tracks and their audio features from Spotify
// into the PostgreSQL feature store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/justestif/go-spotify-recommender/internal/db"
	"github.com/justestif/go-spotify-recommender/internal/spotify"
)

// ErrMissingPlaylist is returned when no playlist ID is given.
var ErrMissingPlaylist = errors.New("missing playlist ID")

// Source reads playlist tracks and audio features.
type Source interface {
	FetchPlaylistTracks(ctx context.Context, playlistID string) ([]spotify.CatalogTrack, error)
	FetchAudioFeatures(ctx context.Context, tracks []spotify.CatalogTrack) error
}

// Store persists catalog rows.
type Store interface {
	UpsertBatch(ctx context.Context, tracks []db.TrackFeatures) error
}

// Service handles ingesting playlists into the feature store.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for progress events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a new ingestion service.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result contains the outcome of an ingestion run.
type Result struct {
	PlaylistID      string
	TracksCount     int
	MissingFeatures int // Tracks stored without audio features
	IngestedAt      time.Time
}

// IngestPlaylist fetches every track of a playlist with its audio features
// and upserts them. Tracks without audio features are stored with null
// feature columns; the normalizer imputes them as zero.
func (s *Service) IngestPlaylist(ctx context.Context, source Source, playlistID string) (*Result, error) {
	if playlistID == "" {
		return nil, ErrMissingPlaylist
	}

	tracks, err := source.FetchPlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("fetching playlist tracks: %w", err)
	}
	s.logger.Info("fetched playlist", zap.String("playlist_id", playlistID), zap.Int("tracks", len(tracks)))

	if len(tracks) == 0 {
		return &Result{PlaylistID: playlistID, IngestedAt: s.now()}, nil
	}

	// A playlist may list a track twice; a batch upsert cannot touch a row twice.
	tracks = uniqueTracks(tracks)

	if err := source.FetchAudioFeatures(ctx, tracks); err != nil {
		return nil, fmt.Errorf("fetching audio features: %w", err)
	}

	rows := make([]db.TrackFeatures, 0, len(tracks))
	missing := 0
	for _, t := range tracks {
		if !t.HasAudioFeatures() {
			missing++
		}
		rows = append(rows, toDBTrack(t))
	}

	if err := s.store.UpsertBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("upserting track features: %w", err)
	}

	result := &Result{
		PlaylistID:      playlistID,
		TracksCount:     len(rows),
		MissingFeatures: missing,
		IngestedAt:      s.now(),
	}
	s.logger.Info("saved track features",
		zap.String("playlist_id", playlistID),
		zap.Int("tracks", result.TracksCount),
		zap.Int("missing_features", result.MissingFeatures),
	)
	return result, nil
}

// uniqueTracks keeps the first copy of every track ID, in playlist order.
func uniqueTracks(tracks []spotify.CatalogTrack) []spotify.CatalogTrack {
	seen := make(map[string]struct{}, len(tracks))
	out := tracks[:0]
	for _, t := range tracks {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

// toDBTrack converts a Spotify catalog track to a feature store row.
func toDBTrack(t spotify.CatalogTrack) db.TrackFeatures {
	name, album, artist := t.Name, t.Album, t.Artist
	popularity, duration := t.Popularity, t.DurationMs

	return db.TrackFeatures{
		ID:               t.ID,
		Name:             &name,
		Album:            &album,
		Artist:           &artist,
		Popularity:       &popularity,
		Key:              t.Key,
		Mode:             t.Mode,
		Danceability:     widen(t.Danceability),
		Acousticness:     widen(t.Acousticness),
		Energy:           widen(t.Energy),
		Instrumentalness: widen(t.Instrumentalness),
		Liveness:         widen(t.Liveness),
		Loudness:         widen(t.Loudness),
		Speechiness:      widen(t.Speechiness),
		Tempo:            widen(t.Tempo),
		TimeSignature:    t.TimeSignature,
		Valence:          widen(t.Valence),
		DurationMs:       &duration,
	}
}

func widen(v *float32) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
