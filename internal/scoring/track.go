package scoring

// TrackFeatures is one catalog row: display metadata plus the precomputed
// audio features. Any numeric field may be nil when the provider had no value.
type TrackFeatures struct {
	ID     string `json:"track_id"`
	Name   string `json:"name"`
	Album  string `json:"album"`
	Artist string `json:"artist"`

	Popularity *int `json:"popularity"`
	Key        *int `json:"key"`  // pitch class 0-11
	Mode       *int `json:"mode"` // 1 major, 0 minor

	Danceability     *float64 `json:"danceability"`
	Acousticness     *float64 `json:"acousticness"`
	Energy           *float64 `json:"energy"`
	Instrumentalness *float64 `json:"instrumentalness"`
	Liveness         *float64 `json:"liveness"`
	Loudness         *float64 `json:"loudness"`
	Speechiness      *float64 `json:"speechiness"`
	Tempo            *float64 `json:"tempo"`
	Valence          *float64 `json:"valence"`

	TimeSignature *int `json:"time_signature"`
	DurationMs    *int `json:"duration_ms"`
}

// ScoredTrack is a catalog row with its similarity to the user's preferences.
type ScoredTrack struct {
	TrackFeatures
	Score float64 `json:"score"`
}

// Value returns the raw value of dimension d and whether it was present.
func (t *TrackFeatures) Value(d Dimension) (float64, bool) {
	switch d {
	case Popularity:
		return intValue(t.Popularity)
	case Key:
		return intValue(t.Key)
	case Mode:
		return intValue(t.Mode)
	case Danceability:
		return floatValue(t.Danceability)
	case Acousticness:
		return floatValue(t.Acousticness)
	case Energy:
		return floatValue(t.Energy)
	case Instrumentalness:
		return floatValue(t.Instrumentalness)
	case Liveness:
		return floatValue(t.Liveness)
	case Loudness:
		return floatValue(t.Loudness)
	case Speechiness:
		return floatValue(t.Speechiness)
	case Tempo:
		return floatValue(t.Tempo)
	case TimeSignature:
		return intValue(t.TimeSignature)
	case Valence:
		return floatValue(t.Valence)
	case DurationMs:
		return intValue(t.DurationMs)
	}
	return 0, false
}

func intValue(v *int) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return float64(*v), true
}

func floatValue(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
