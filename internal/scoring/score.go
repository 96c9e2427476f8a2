package scoring

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CosineSimilarity returns (a·b) / (‖a‖·‖b‖).
// It returns 0 when either vector has zero norm, the lengths differ, or the
// result is not finite.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	denom := floats.Norm(a, 2) * floats.Norm(b, 2)
	if denom == 0 {
		return 0
	}
	return finiteOrZero(floats.Dot(a, b) / denom)
}

// Rank normalizes the catalog and scores every track against pref.
// The result keeps catalog order.
func Rank(tracks []TrackFeatures, pref Vector) ([]ScoredTrack, error) {
	matrix, err := Normalize(tracks)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredTrack, len(tracks))
	for i, row := range matrix {
		scored[i] = ScoredTrack{
			TrackFeatures: tracks[i],
			Score:         CosineSimilarity(row, pref),
		}
	}
	return scored, nil
}

// Best returns the highest scoring track. Ties go to the track that comes
// first in catalog order; there is no secondary sort key.
func Best(scored []ScoredTrack) (ScoredTrack, error) {
	if len(scored) == 0 {
		return ScoredTrack{}, ErrEmptyCatalog
	}

	best := 0
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[best].Score {
			best = i
		}
	}
	return scored[best], nil
}

// Recommend runs the whole pipeline: preference vector, normalization,
// scoring, selection and sanitization. It also returns every score in
// catalog order.
func Recommend(tracks []TrackFeatures, r UserResponse, labels LabelSet) (ScoredTrack, []ScoredTrack, error) {
	pref, err := PreferenceVector(r, labels)
	if err != nil {
		return ScoredTrack{}, nil, err
	}

	scored, err := Rank(tracks, pref)
	if err != nil {
		return ScoredTrack{}, nil, err
	}

	best, err := Best(scored)
	if err != nil {
		return ScoredTrack{}, nil, err
	}
	return Sanitize(best), scored, nil
}

// Sanitize replaces every non-finite float field, including the score, with 0.
// Other fields are copied unchanged and the input is not modified.
func Sanitize(t ScoredTrack) ScoredTrack {
	out := t
	out.Score = finiteOrZero(t.Score)

	for _, f := range []**float64{
		&out.Danceability,
		&out.Acousticness,
		&out.Energy,
		&out.Instrumentalness,
		&out.Liveness,
		&out.Loudness,
		&out.Speechiness,
		&out.Tempo,
		&out.Valence,
	} {
		if *f == nil || !isNonFinite(**f) {
			continue
		}
		zero := 0.0
		*f = &zero
	}
	return out
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if isNonFinite(v) {
		return 0
	}
	return v
}
