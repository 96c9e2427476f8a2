// Package auth provides Spotify client-credentials authentication for
// catalog ingestion.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	// ErrMissingCredentials is returned when the client ID or secret is empty.
	ErrMissingCredentials = errors.New("missing Spotify client ID or secret")
)

// Authenticator obtains app-only Spotify tokens. Catalog reads need no user
// authorization, so no redirect flow or token cache is involved.
type Authenticator struct {
	config *clientcredentials.Config
}

// New creates an Authenticator for the given app credentials.
// Returns ErrMissingCredentials if either value is empty.
func New(clientID, clientSecret string) (*Authenticator, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	return &Authenticator{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyauth.TokenURL,
		},
	}, nil
}

// Client returns an authenticated Spotify client. A token is requested up
// front so bad credentials fail here rather than on the first API call; the
// returned client refreshes its token on its own.
func (a *Authenticator) Client(ctx context.Context) (*spotify.Client, error) {
	if _, err := a.config.Token(ctx); err != nil {
		return nil, fmt.Errorf("requesting client credentials token: %w", err)
	}

	return spotify.New(a.config.Client(ctx), spotify.WithRetry(true)), nil
}
