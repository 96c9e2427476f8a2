package scoring

import (
	"errors"
	"testing"
)

// allAnswers returns a response with the same label for every question.
func allAnswers(label string) UserResponse {
	var r UserResponse
	for _, d := range ScorableColumns() {
		r.SetAnswer(d, label)
	}
	return r
}

func TestCategoryWeight(t *testing.T) {
	tests := []struct {
		category Category
		label    string
		want     float64
	}{
		{Yes, "yes", 1.0},
		{SomewhatYes, "somewhat yes", 0.5},
		{Neutral, "neutral", 0.0},
		{SomewhatNo, "somewhat no", -0.5},
		{No, "no", -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := tt.category.Weight(); got != tt.want {
				t.Errorf("Weight() = %v, want %v", got, tt.want)
			}
			c, ok := EnglishLabels.Parse(tt.label)
			if !ok || c != tt.category {
				t.Errorf("Parse(%q) = %v, %v; want %v, true", tt.label, c, ok, tt.category)
			}
			if got := EnglishLabels.Label(tt.category); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestJapaneseLabelsMatchCategories(t *testing.T) {
	labels := JapaneseLabels.Labels()
	for i, c := range Categories() {
		got, ok := JapaneseLabels.Parse(labels[i])
		if !ok || got != c {
			t.Errorf("Parse(%q) = %v, %v; want %v", labels[i], got, ok, c)
		}
	}
	if c, _ := JapaneseLabels.Parse("はい"); c.Weight() != 1.0 {
		t.Errorf("はい weight = %v, want 1.0", c.Weight())
	}
}

func TestLabelSetByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "en", false},
		{"en", "en", false},
		{"ja", "ja", false},
		{"fr", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls, err := LabelSetByName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LabelSetByName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if ls.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", ls.Name(), tt.want)
			}
		})
	}
}

func TestPreferenceVectorAlignment(t *testing.T) {
	r := allAnswers("neutral")
	r.Danceability = "yes"
	r.Valence = "somewhat no"
	r.TimeSignature = "no"

	pref, err := PreferenceVector(r, EnglishLabels)
	if err != nil {
		t.Fatalf("PreferenceVector() error = %v", err)
	}
	if len(pref) != NumDimensions {
		t.Fatalf("len = %d, want %d", len(pref), NumDimensions)
	}

	want := map[Dimension]float64{
		Danceability:  1.0,
		Valence:       -0.5,
		TimeSignature: -1.0,
	}
	for _, d := range Columns() {
		if got := pref[d]; got != want[d] {
			t.Errorf("%s = %v, want %v", d, got, want[d])
		}
	}
}

func TestPreferenceVectorUnscoredDimensionsAreZero(t *testing.T) {
	pref, err := PreferenceVector(allAnswers("yes"), EnglishLabels)
	if err != nil {
		t.Fatalf("PreferenceVector() error = %v", err)
	}

	for _, d := range []Dimension{Popularity, Key, Mode, DurationMs} {
		if pref[d] != 0 {
			t.Errorf("%s = %v, want 0", d, pref[d])
		}
	}
	for _, d := range ScorableColumns() {
		if pref[d] != 1.0 {
			t.Errorf("%s = %v, want 1.0", d, pref[d])
		}
	}
}

func TestPreferenceVectorAllNeutralIsZero(t *testing.T) {
	pref, err := PreferenceVector(allAnswers("neutral"), EnglishLabels)
	if err != nil {
		t.Fatalf("PreferenceVector() error = %v", err)
	}
	for c, v := range pref {
		if v != 0 {
			t.Errorf("%s = %v, want 0", Dimension(c), v)
		}
	}
}

func TestPreferenceVectorUnrecognizedCategory(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*UserResponse)
		wantField string
		wantValue string
	}{
		{"maybe", func(r *UserResponse) { r.Danceability = "maybe" }, "danceability", "maybe"},
		{"empty", func(r *UserResponse) { r.Tempo = "" }, "tempo", ""},
		{"wrong case", func(r *UserResponse) { r.TimeSignature = "Yes" }, "time_signature", "Yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := allAnswers("neutral")
			tt.mutate(&r)

			_, err := PreferenceVector(r, EnglishLabels)
			if !errors.Is(err, ErrUnrecognizedCategory) {
				t.Fatalf("error = %v, want ErrUnrecognizedCategory", err)
			}
			var iae *InvalidAnswerError
			if !errors.As(err, &iae) {
				t.Fatalf("error %T is not *InvalidAnswerError", err)
			}
			if iae.Field != tt.wantField || iae.Value != tt.wantValue {
				t.Errorf("got %s=%q, want %s=%q", iae.Field, iae.Value, tt.wantField, tt.wantValue)
			}
		})
	}
}

func TestPreferenceVectorRejectsOtherLabelSet(t *testing.T) {
	_, err := PreferenceVector(allAnswers("yes"), JapaneseLabels)
	if !errors.Is(err, ErrUnrecognizedCategory) {
		t.Errorf("error = %v, want ErrUnrecognizedCategory", err)
	}
}
