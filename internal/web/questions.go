package web

import "github.com/justestif/go-spotify-recommender/internal/scoring"

// Question is one questionnaire item. Field is the form and JSON name of the answer.
type Question struct {
	Field   string
	Text    string
	Options []string
}

var questionTexts = map[string]map[scoring.Dimension]string{
	"ja": {
		scoring.Danceability:     "夏の日差しで踊りたくなりますか？",
		scoring.Acousticness:     "夏の風を感じる音楽は好きですか？",
		scoring.Energy:           "夏の暑さにエネルギーを感じますか？",
		scoring.Instrumentalness: "夏の夜にインストゥルメンタルな音楽を楽しみますか？",
		scoring.Liveness:         "夏祭りの活気を感じますか？",
		scoring.Loudness:         "夏のビーチで音楽の音量を上げたいですか？",
		scoring.Speechiness:      "夏の思い出を語りたくなりますか？",
		scoring.Tempo:            "夏のテンポで動きたくなりますか？",
		scoring.TimeSignature:    "夏のリズムに乗れますか？",
		scoring.Valence:          "夏はあなたを明るい気持ちにさせますか？",
	},
	"en": {
		scoring.Danceability:     "Does the summer sun make you want to dance?",
		scoring.Acousticness:     "Do you like music that feels like a summer breeze?",
		scoring.Energy:           "Does the summer heat fill you with energy?",
		scoring.Instrumentalness: "Do you enjoy instrumental music on summer nights?",
		scoring.Liveness:         "Do you feel the buzz of a summer festival?",
		scoring.Loudness:         "Do you want to turn the music up at the beach?",
		scoring.Speechiness:      "Do you feel like talking about summer memories?",
		scoring.Tempo:            "Do you want to move to a summer tempo?",
		scoring.TimeSignature:    "Can you ride the summer rhythm?",
		scoring.Valence:          "Does summer put you in a bright mood?",
	},
}

// Questions returns the questionnaire in column order, with options taken
// from the same label set that parses the answers.
func Questions(labels scoring.LabelSet) []Question {
	texts, ok := questionTexts[labels.Name()]
	if !ok {
		texts = questionTexts["en"]
	}

	options := labels.Labels()
	cols := scoring.ScorableColumns()
	out := make([]Question, 0, len(cols))
	for _, d := range cols {
		out = append(out, Question{
			Field:   d.String(),
			Text:    texts[d],
			Options: options,
		})
	}
	return out
}

// answersFromForm builds a response from form values keyed by column name.
func answersFromForm(get func(string) string) scoring.UserResponse {
	var r scoring.UserResponse
	for _, d := range scoring.ScorableColumns() {
		r.SetAnswer(d, get(d.String()))
	}
	return r
}
