package spotify

// CatalogTrack contains the metadata and audio features of one playlist track.
// Audio feature fields stay nil until FetchAudioFeatures fills them, and stay
// nil for tracks Spotify has no analysis for.
type CatalogTrack struct {
	ID         string
	Name       string
	Album      string
	Artist     string // First album artist
	Popularity int
	DurationMs int

	Key           *int
	Mode          *int
	TimeSignature *int

	Danceability     *float32
	Acousticness     *float32
	Energy           *float32
	Instrumentalness *float32
	Liveness         *float32
	Loudness         *float32
	Speechiness      *float32
	Tempo            *float32
	Valence          *float32
}

// HasAudioFeatures reports whether audio features were applied.
func (t *CatalogTrack) HasAudioFeatures() bool {
	return t.Danceability != nil
}
