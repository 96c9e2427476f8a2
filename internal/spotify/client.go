// Package spotify provides a wrapper around the Spotify Web API for reading
// catalog playlists and their audio features.
package spotify

import (
	"github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

const maxTracksPerRequest = 100

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api    *spotify.Client
	logger *zap.Logger
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{api: api, logger: logger}
}
