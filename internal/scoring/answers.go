package scoring

import "fmt"

// Category is one of the five questionnaire answers.
type Category int

const (
	Yes Category = iota
	SomewhatYes
	Neutral
	SomewhatNo
	No

	numCategories = int(No) + 1
)

// categoryWeights is the single source of answer weights.
var categoryWeights = [numCategories]float64{
	Yes:         1.0,
	SomewhatYes: 0.5,
	Neutral:     0.0,
	SomewhatNo:  -0.5,
	No:          -1.0,
}

// Weight returns the preference weight for the category.
func (c Category) Weight() float64 {
	if c < 0 || int(c) >= numCategories {
		return 0
	}
	return categoryWeights[c]
}

// Categories returns every category from most to least positive.
func Categories() []Category {
	return []Category{Yes, SomewhatYes, Neutral, SomewhatNo, No}
}

// LabelSet maps the strings shown to and sent by users onto categories.
// The same set renders the questionnaire and parses its answers.
type LabelSet struct {
	name   string
	labels [numCategories]string
	index  map[string]Category
}

// NewLabelSet builds a label set from one label per category, in Categories order.
func NewLabelSet(name string, labels [5]string) LabelSet {
	ls := LabelSet{name: name, index: make(map[string]Category, numCategories)}
	for i, l := range labels {
		ls.labels[i] = l
		ls.index[l] = Category(i)
	}
	return ls
}

// Label set presets.
var (
	EnglishLabels = NewLabelSet("en", [5]string{
		"yes", "somewhat yes", "neutral", "somewhat no", "no",
	})
	JapaneseLabels = NewLabelSet("ja", [5]string{
		"はい", "どちらかといえばはい", "どちらともいえない", "どちらかといえばいいえ", "いいえ",
	})
)

// LabelSetByName returns a preset by name ("en" or "ja").
func LabelSetByName(name string) (LabelSet, error) {
	switch name {
	case "", EnglishLabels.name:
		return EnglishLabels, nil
	case JapaneseLabels.name:
		return JapaneseLabels, nil
	}
	return LabelSet{}, fmt.Errorf("unknown label set %q", name)
}

// Name returns the preset name.
func (ls LabelSet) Name() string { return ls.name }

// Label returns the display label of a category.
func (ls LabelSet) Label(c Category) string {
	if c < 0 || int(c) >= numCategories {
		return ""
	}
	return ls.labels[c]
}

// Labels returns every label in Categories order.
func (ls LabelSet) Labels() []string {
	out := make([]string, numCategories)
	copy(out, ls.labels[:])
	return out
}

// Parse resolves a label to its category.
func (ls LabelSet) Parse(label string) (Category, bool) {
	c, ok := ls.index[label]
	return c, ok
}

// UserResponse holds one answer label per scorable dimension.
type UserResponse struct {
	Danceability     string `json:"danceability" validate:"required"`
	Acousticness     string `json:"acousticness" validate:"required"`
	Energy           string `json:"energy" validate:"required"`
	Instrumentalness string `json:"instrumentalness" validate:"required"`
	Liveness         string `json:"liveness" validate:"required"`
	Loudness         string `json:"loudness" validate:"required"`
	Speechiness      string `json:"speechiness" validate:"required"`
	Tempo            string `json:"tempo" validate:"required"`
	TimeSignature    string `json:"time_signature" validate:"required"`
	Valence          string `json:"valence" validate:"required"`
}

// Answer returns the label given for d. ok is false for dimensions the
// questionnaire does not ask about.
func (r *UserResponse) Answer(d Dimension) (label string, ok bool) {
	switch d {
	case Danceability:
		return r.Danceability, true
	case Acousticness:
		return r.Acousticness, true
	case Energy:
		return r.Energy, true
	case Instrumentalness:
		return r.Instrumentalness, true
	case Liveness:
		return r.Liveness, true
	case Loudness:
		return r.Loudness, true
	case Speechiness:
		return r.Speechiness, true
	case Tempo:
		return r.Tempo, true
	case TimeSignature:
		return r.TimeSignature, true
	case Valence:
		return r.Valence, true
	}
	return "", false
}

// SetAnswer stores label for d. It is a no-op for unscorable dimensions.
func (r *UserResponse) SetAnswer(d Dimension, label string) {
	switch d {
	case Danceability:
		r.Danceability = label
	case Acousticness:
		r.Acousticness = label
	case Energy:
		r.Energy = label
	case Instrumentalness:
		r.Instrumentalness = label
	case Liveness:
		r.Liveness = label
	case Loudness:
		r.Loudness = label
	case Speechiness:
		r.Speechiness = label
	case Tempo:
		r.Tempo = label
	case TimeSignature:
		r.TimeSignature = label
	case Valence:
		r.Valence = label
	}
}

// PreferenceVector converts the answers into a vector aligned with the
// feature matrix. Dimensions without a question stay 0.
func PreferenceVector(r UserResponse, labels LabelSet) (Vector, error) {
	pref := make(Vector, NumDimensions)
	for _, d := range Columns() {
		label, asked := r.Answer(d)
		if !asked {
			continue
		}
		c, ok := labels.Parse(label)
		if !ok {
			return nil, &InvalidAnswerError{Field: d.String(), Value: label}
		}
		pref[d] = c.Weight()
	}
	return pref, nil
}
