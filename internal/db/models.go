package db

import "time"

// TrackFeatures is one row of the tracks_features table.
// Every column except track_id is nullable.
type TrackFeatures struct {
	ID     string
	Name   *string
	Album  *string
	Artist *string

	Popularity *int
	Key        *int
	Mode       *int

	Danceability     *float64
	Acousticness     *float64
	Energy           *float64
	Instrumentalness *float64
	Liveness         *float64
	Loudness         *float64
	Speechiness      *float64
	Tempo            *float64
	Valence          *float64

	TimeSignature *int
	DurationMs    *int

	CreatedAt time.Time
	UpdatedAt time.Time
}
