package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/justestif/go-spotify-recommender/internal/moods"
	"github.com/justestif/go-spotify-recommender/internal/recommend"
	"github.com/justestif/go-spotify-recommender/internal/scoring"
	webfs "github.com/justestif/go-spotify-recommender/web"
)

type fakeRecommender struct {
	labels scoring.LabelSet
	rec    *recommend.Recommendation
	err    error
	got    []scoring.UserResponse
}

func (f *fakeRecommender) Recommend(_ context.Context, answers scoring.UserResponse) (*recommend.Recommendation, error) {
	f.got = append(f.got, answers)
	return f.rec, f.err
}

func (f *fakeRecommender) Labels() scoring.LabelSet { return f.labels }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func f64(v float64) *float64 { return &v }

func sampleRecommendation() *recommend.Recommendation {
	mood := moods.Describe(0.8, 0.7, 0.1)
	return &recommend.Recommendation{
		ID: uuid.MustParse("1b4e28ba-2fa1-11d2-883f-0016d3cca427"),
		Track: scoring.ScoredTrack{
			TrackFeatures: scoring.TrackFeatures{
				ID:           "3n3Ppam7vgaVa1iaRUc9Lp",
				Name:         "Sunflower",
				Album:        "Sunflower",
				Artist:       "Orangestar",
				Danceability: f64(0.72),
				Energy:       f64(0.8),
				Valence:      f64(0.7),
			},
			Score: 0.93,
		},
		Mood:        &mood,
		CatalogSize: 12,
	}
}

func newTestServer(t *testing.T, rec Recommender, mutate func(*ServerConfig)) http.Handler {
	t.Helper()

	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		t.Fatal(err)
	}
	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		t.Fatal(err)
	}

	cfg := ServerConfig{
		TemplatesFS: templates,
		StaticFS:    static,
		Recommender: rec,
		Health:      fakePinger{},
	}
	if mutate != nil {
		mutate(&cfg)
	}

	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s.Handler()
}

func answersJSON(label string) string {
	fields := make([]string, 0, 10)
	for _, d := range scoring.ScorableColumns() {
		fields = append(fields, fmt.Sprintf("%q: %q", d.String(), label))
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

func answersForm(label string) url.Values {
	v := url.Values{}
	for _, d := range scoring.ScorableColumns() {
		v.Set(d.String(), label)
	}
	return v
}

func TestAPIWelcome(t *testing.T) {
	h := newTestServer(t, &fakeRecommender{labels: scoring.EnglishLabels}, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != welcomeMessage {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHomeRendersQuestionnaire(t *testing.T) {
	tests := []struct {
		name      string
		labels    scoring.LabelSet
		wantTexts []string
	}{
		{
			name:      "english",
			labels:    scoring.EnglishLabels,
			wantTexts: []string{"Does the summer sun make you want to dance?", `value="somewhat yes"`, `name="time_signature"`},
		},
		{
			name:      "japanese",
			labels:    scoring.JapaneseLabels,
			wantTexts: []string{"夏の日差しで踊りたくなりますか？", `value="どちらかといえばはい"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, &fakeRecommender{labels: tt.labels}, nil)

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rr.Code)
			}
			body := rr.Body.String()
			for _, want := range tt.wantTexts {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
			if n := strings.Count(body, "<fieldset"); n != 10 {
				t.Errorf("got %d questions, want 10", n)
			}
		})
	}
}

func TestRecommendJSON(t *testing.T) {
	fake := &fakeRecommender{labels: scoring.EnglishLabels, rec: sampleRecommendation()}
	h := newTestServer(t, fake, nil)

	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(answersJSON("yes")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rr.Code, rr.Body)
	}

	var body struct {
		ID    string `json:"recommendation_id"`
		Track struct {
			ID     string  `json:"track_id"`
			Name   string  `json:"name"`
			Artist string  `json:"artist"`
			Score  float64 `json:"score"`
		} `json:"recommended_track"`
		Mood *moods.Mood `json:"mood"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Track.ID != "3n3Ppam7vgaVa1iaRUc9Lp" || body.Track.Name != "Sunflower" || body.Track.Score != 0.93 {
		t.Errorf("recommended_track = %+v", body.Track)
	}
	if body.ID != "1b4e28ba-2fa1-11d2-883f-0016d3cca427" {
		t.Errorf("recommendation_id = %q", body.ID)
	}
	if body.Mood == nil || body.Mood.Name != "Upbeat Party" {
		t.Errorf("mood = %+v", body.Mood)
	}

	if len(fake.got) != 1 || fake.got[0].TimeSignature != "yes" {
		t.Errorf("recommender got %+v", fake.got)
	}
}

func TestRecommendJSONRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  string
		wantField string
	}{
		{"malformed json", `{"danceability": `, CodeBadRequest, ""},
		{"missing answer", strings.Replace(answersJSON("yes"), `"tempo": "yes"`, `"tempo": ""`, 1), CodeValidationFailed, "tempo"},
		{"empty object", `{}`, CodeValidationFailed, "valence"},
		{"unknown field", strings.Replace(answersJSON("yes"), "{", `{"mood": "happy", `, 1), CodeBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRecommender{labels: scoring.EnglishLabels, rec: sampleRecommendation()}
			h := newTestServer(t, fake, nil)

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(tt.body)))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if tt.wantField != "" {
				if _, ok := body.Fields[tt.wantField]; !ok {
					t.Errorf("fields = %v, want %s", body.Fields, tt.wantField)
				}
			}
			if len(fake.got) != 0 {
				t.Error("recommender should not be called")
			}
		})
	}
}

func TestRecommendJSONErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid answer", &scoring.InvalidAnswerError{Field: "tempo", Value: "maybe"}, http.StatusBadRequest, CodeInvalidAnswer},
		{"catalog unavailable", fmt.Errorf("%w: dial tcp: refused", recommend.ErrCatalogUnavailable), http.StatusServiceUnavailable, CodeCatalogUnavailable},
		{"empty catalog", scoring.ErrEmptyCatalog, http.StatusServiceUnavailable, CodeEmptyCatalog},
		{"data integrity", &scoring.DataIntegrityError{TrackID: "x", Field: "tempo", Reason: "is not finite"}, http.StatusInternalServerError, CodeDataIntegrity},
		{"unexpected", errors.New("secret connection string leaked"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, &fakeRecommender{labels: scoring.EnglishLabels, err: tt.err}, nil)

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(answersJSON("no"))))

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if strings.Contains(body.Message, "secret") {
				t.Errorf("message leaks cause: %q", body.Message)
			}
		})
	}
}

func TestRecommendForm(t *testing.T) {
	fake := &fakeRecommender{labels: scoring.JapaneseLabels, rec: sampleRecommendation()}
	h := newTestServer(t, fake, nil)

	req := httptest.NewRequest(http.MethodPost, "/recommend/form", strings.NewReader(answersForm("はい").Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"https://open.spotify.com/embed/track/3n3Ppam7vgaVa1iaRUc9Lp",
		"Sunflower",
		"Upbeat Party",
		"72%",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if len(fake.got) != 1 || fake.got[0].Danceability != "はい" {
		t.Errorf("recommender got %+v", fake.got)
	}
}

func TestRecommendFormErrors(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		err        error
		wantStatus int
		wantText   string
	}{
		{
			name:       "missing answers",
			form:       url.Values{"danceability": {"yes"}},
			wantStatus: http.StatusBadRequest,
			wantText:   "Please answer every question.",
		},
		{
			name:       "catalog unavailable",
			form:       answersForm("yes"),
			err:        recommend.ErrCatalogUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantText:   "not available right now",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, &fakeRecommender{labels: scoring.EnglishLabels, err: tt.err}, nil)

			req := httptest.NewRequest(http.MethodPost, "/recommend/form", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			body := rr.Body.String()
			if !strings.Contains(body, tt.wantText) {
				t.Errorf("body missing %q", tt.wantText)
			}
			if !strings.Contains(body, `value="yes" required checked`) {
				t.Error("previous answers should stay selected")
			}
		})
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{"ok", nil, http.StatusOK},
		{"database down", errors.New("no connection"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, &fakeRecommender{labels: scoring.EnglishLabels}, func(c *ServerConfig) {
				c.Health = fakePinger{err: tt.pingErr}
			})

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		wantOrigin string
		wantStatus int
	}{
		{"allowed origin", []string{"http://localhost:3000"}, "http://localhost:3000", http.StatusOK},
		{"cors disabled", nil, "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, &fakeRecommender{labels: scoring.EnglishLabels}, func(c *ServerConfig) {
				c.CORSOrigins = tt.origins
			})

			req := httptest.NewRequest(http.MethodOptions, "/recommend", http.NoBody)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	fake := &fakeRecommender{labels: scoring.EnglishLabels, rec: sampleRecommendation()}
	h := newTestServer(t, fake, func(c *ServerConfig) { c.RateLimit = 1 })

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(answersJSON("yes")))
		req.RemoteAddr = "203.0.113.7:4242"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", code)
	}
}

func TestMetricsAndStatic(t *testing.T) {
	h := newTestServer(t, &fakeRecommender{labels: scoring.EnglishLabels}, nil)

	for _, path := range []string{"/metrics", "/static/style.css"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rr.Code)
		}
	}
}

func TestNewServerRequiresRecommender(t *testing.T) {
	if _, err := NewServer(ServerConfig{}); err == nil {
		t.Error("NewServer() error = nil, want error")
	}
}
