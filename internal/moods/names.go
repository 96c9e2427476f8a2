package moods

import "github.com/justestif/go-spotify-recommender/internal/scoring"

// Mood is an energy/valence quadrant label for display purposes.
type Mood struct {
	Name        string  `json:"name"`
	Energy      float64 `json:"energy"`
	Valence     float64 `json:"valence"`
	Description string  `json:"description"`
}

// moodName creates a descriptive name from audio feature values.
// Uses a 2x2 energy/valence quadrant system with acousticness modifier.
//
// Quadrants:
//   - High Energy + High Valence = "Upbeat Party"
//   - High Energy + Low Valence  = "Intense & Dark"
//   - Low Energy  + High Valence = "Chill & Happy"
//   - Low Energy  + Low Valence  = "Reflective & Melancholy"
//
// Acousticness above 0.6 appends "(Acoustic)".
func moodName(energy, valence, acousticness float64) string {
	highEnergy := energy > 0.6
	highValence := valence > 0.5

	var base string
	switch {
	case highEnergy && highValence:
		base = "Upbeat Party"
	case highEnergy:
		base = "Intense & Dark"
	case highValence:
		base = "Chill & Happy"
	default:
		base = "Reflective & Melancholy"
	}

	if acousticness > 0.6 {
		return base + " (Acoustic)"
	}
	return base
}

// Describe returns the mood for a set of raw feature values.
func Describe(energy, valence, acousticness float64) Mood {
	var description string
	switch {
	case energy > 0.6 && valence > 0.5:
		description = "High-energy, positive vibes - perfect for dancing and celebrations"
	case energy > 0.6:
		description = "Intense, driving energy with darker emotional tones"
	case valence > 0.5:
		description = "Relaxed and uplifting - great for unwinding"
	default:
		description = "Contemplative and introspective - ideal for quiet moments"
	}

	return Mood{
		Name:        moodName(energy, valence, acousticness),
		Energy:      energy,
		Valence:     valence,
		Description: description,
	}
}

// Of returns the mood of a single track. ok is false when energy or valence
// is missing. Missing acousticness counts as 0.
func Of(t scoring.TrackFeatures) (Mood, bool) {
	if t.Energy == nil || t.Valence == nil {
		return Mood{}, false
	}
	var acousticness float64
	if t.Acousticness != nil {
		acousticness = *t.Acousticness
	}
	return Describe(*t.Energy, *t.Valence, acousticness), true
}
