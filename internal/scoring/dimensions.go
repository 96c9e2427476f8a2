// Package scoring turns a catalog of track audio features and a questionnaire
// into a single recommended track.
//
// The pipeline has two stages: Normalize rescales every numeric feature of the
// catalog onto [0,1], and the preference scorer compares each normalized row
// against a vector built from the user's answers using cosine similarity.
// Both stages index columns through the same Dimension list, so the track
// matrix and the preference vector can never disagree on column order.
package scoring

// Dimension identifies one numeric column of the feature matrix.
// The declaration order below is the column order.
type Dimension int

const (
	Popularity Dimension = iota
	Key
	Mode
	Danceability
	Acousticness
	Energy
	Instrumentalness
	Liveness
	Loudness
	Speechiness
	Tempo
	TimeSignature
	Valence
	DurationMs

	// NumDimensions is the width of every feature and preference vector.
	NumDimensions = int(DurationMs) + 1
)

var dimensionNames = [NumDimensions]string{
	Popularity:       "popularity",
	Key:              "key",
	Mode:             "mode",
	Danceability:     "danceability",
	Acousticness:     "acousticness",
	Energy:           "energy",
	Instrumentalness: "instrumentalness",
	Liveness:         "liveness",
	Loudness:         "loudness",
	Speechiness:      "speechiness",
	Tempo:            "tempo",
	TimeSignature:    "time_signature",
	Valence:          "valence",
	DurationMs:       "duration_ms",
}

// String returns the snake_case column name used in storage and requests.
func (d Dimension) String() string {
	if d < 0 || int(d) >= NumDimensions {
		return "unknown"
	}
	return dimensionNames[d]
}

// Scorable reports whether the questionnaire asks about this dimension.
// Popularity, key, mode and duration are normalized but never weighted.
func (d Dimension) Scorable() bool {
	switch d {
	case Popularity, Key, Mode, DurationMs:
		return false
	default:
		return d >= 0 && int(d) < NumDimensions
	}
}

// Columns returns every dimension in column order.
func Columns() []Dimension {
	cols := make([]Dimension, NumDimensions)
	for i := range cols {
		cols[i] = Dimension(i)
	}
	return cols
}

// ScorableColumns returns the questionnaire dimensions in column order.
func ScorableColumns() []Dimension {
	var cols []Dimension
	for _, d := range Columns() {
		if d.Scorable() {
			cols = append(cols, d)
		}
	}
	return cols
}
