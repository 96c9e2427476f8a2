package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

// FetchPlaylistTracks retrieves every track of a playlist in playlist order.
// Local files, episodes and items without a track ID are skipped.
func (c *Client) FetchPlaylistTracks(ctx context.Context, playlistID string) ([]CatalogTrack, error) {
	var tracks []CatalogTrack

	page, err := c.api.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(maxTracksPerRequest))
	if err != nil {
		return nil, fmt.Errorf("fetching playlist %s: %w", playlistID, err)
	}

	for {
		for _, item := range page.Items {
			if item.IsLocal || item.Track.Track == nil || item.Track.Track.ID == "" {
				continue
			}
			tracks = append(tracks, convertTrack(item.Track.Track))
		}

		c.logger.Info("fetched playlist page", zap.String("playlist_id", playlistID), zap.Int("tracks", len(tracks)))

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
	}

	return tracks, nil
}

// convertTrack converts a Spotify FullTrack to a CatalogTrack.
// The artist is the album's first artist, falling back to the track artists.
func convertTrack(t *spotify.FullTrack) CatalogTrack {
	artist := ""
	if len(t.Album.Artists) > 0 {
		artist = t.Album.Artists[0].Name
	} else {
		names := make([]string, len(t.Artists))
		for i, a := range t.Artists {
			names[i] = a.Name
		}
		artist = strings.Join(names, ", ")
	}

	return CatalogTrack{
		ID:         t.ID.String(),
		Name:       t.Name,
		Album:      t.Album.Name,
		Artist:     artist,
		Popularity: int(t.Popularity),
		DurationMs: int(t.Duration),
	}
}
