package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

// FetchAudioFeatures retrieves audio features for the given tracks.
// Updates tracks in-place with their audio features.
// Batches requests to max 100 tracks per request per Spotify API limits.
// Tracks without available audio features will have nil feature fields.
// Each ID is requested once and its features are applied to every copy.
func (c *Client) FetchAudioFeatures(ctx context.Context, tracks []CatalogTrack) error {
	if len(tracks) == 0 {
		return nil
	}

	// Build unique ID slice and index map for fast lookup
	ids := make([]spotify.ID, 0, len(tracks))
	indexByID := make(map[string][]int, len(tracks))
	for i, t := range tracks {
		if _, seen := indexByID[t.ID]; !seen {
			ids = append(ids, spotify.ID(t.ID))
		}
		indexByID[t.ID] = append(indexByID[t.ID], i)
	}

	total := len(ids)

	for i := 0; i < total; i += maxTracksPerRequest {
		end := min(i+maxTracksPerRequest, total)
		batch := ids[i:end]

		c.logger.Info("fetching audio features", zap.Int("from", i+1), zap.Int("to", end), zap.Int("total", total))

		features, err := c.api.GetAudioFeatures(ctx, batch...)
		if err != nil {
			return fmt.Errorf("fetching audio features (batch %d-%d): %w", i+1, end, err)
		}

		for _, f := range features {
			if f == nil {
				continue // Track has no audio features
			}
			for _, idx := range indexByID[f.ID.String()] {
				applyAudioFeatures(&tracks[idx], f)
			}
		}
	}

	return nil
}

// applyAudioFeatures copies audio feature values to a track.
func applyAudioFeatures(t *CatalogTrack, f *spotify.AudioFeatures) {
	key, mode, timeSignature := int(f.Key), int(f.Mode), int(f.TimeSignature)

	t.Key = &key
	t.Mode = &mode
	t.TimeSignature = &timeSignature
	t.Acousticness = &f.Acousticness
	t.Danceability = &f.Danceability
	t.Energy = &f.Energy
	t.Instrumentalness = &f.Instrumentalness
	t.Liveness = &f.Liveness
	t.Loudness = &f.Loudness
	t.Speechiness = &f.Speechiness
	t.Tempo = &f.Tempo
	t.Valence = &f.Valence
	if f.Duration > 0 {
		t.DurationMs = int(f.Duration)
	}
}
