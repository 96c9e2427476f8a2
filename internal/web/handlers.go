package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/justestif/go-spotify-recommender/internal/logger"
	"github.com/justestif/go-spotify-recommender/internal/recommend"
	"github.com/justestif/go-spotify-recommender/internal/scoring"
)

// maxBodyBytes bounds request bodies; ten short answers fit easily.
const maxBodyBytes = 16 << 10

const welcomeMessage = "Welcome to the Orangestar Recommendation API!"

// Recommender produces a recommendation for a questionnaire.
type Recommender interface {
	Recommend(ctx context.Context, answers scoring.UserResponse) (*recommend.Recommendation, error)
	Labels() scoring.LabelSet
}

// Pinger reports whether the feature store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	recommender Recommender
	health      Pinger
	templates   *Templates
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(rec Recommender, health Pinger, templates *Templates, log *zap.Logger) *Handlers {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation errors.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{
		recommender: rec,
		health:      health,
		templates:   templates,
		validate:    v,
		logger:      log,
	}
}

// Home renders the questionnaire (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, r, http.StatusOK, nil, nil)
}

// API returns the welcome message (GET /api).
func (h *Handlers) API(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

// Health reports liveness and feature store reachability (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.requestLogger(r).Warn("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Recommend handles POST /recommend with a JSON body of ten answers.
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	var answers scoring.UserResponse
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&answers); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	if fields := h.missingAnswers(answers); fields != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidationFailed,
			Message: "every question must be answered",
			Fields:  fields,
		})
		return
	}

	rec, err := h.recommender.Recommend(r.Context(), answers)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// RecommendForm handles POST /recommend/form from the questionnaire page and
// renders the result with the Spotify player.
func (h *Handlers) RecommendForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.renderHome(w, r, http.StatusBadRequest, nil, &FlashMessage{Type: "error", Message: "Invalid form submission."})
		return
	}

	answers := answersFromForm(r.PostForm.Get)
	selected := selectedAnswers(answers)

	if fields := h.missingAnswers(answers); fields != nil {
		h.renderHome(w, r, http.StatusBadRequest, selected, &FlashMessage{Type: "error", Message: "Please answer every question."})
		return
	}

	rec, err := h.recommender.Recommend(r.Context(), answers)
	if err != nil {
		e := classify(err)
		h.requestLogger(r).Error("recommendation failed", zap.Int("status", e.status), zap.Error(err))
		h.renderHome(w, r, e.status, selected, &FlashMessage{Type: "error", Message: flashMessage(e)})
		return
	}

	data := ResultPageData{
		PageData: PageData{
			Title:       "Your summer track",
			CurrentPath: r.URL.Path,
		},
		Recommendation: rec,
	}
	h.render(w, r, http.StatusOK, "result", data)
}

// missingAnswers returns the unanswered fields, or nil when all are present.
func (h *Handlers) missingAnswers(answers scoring.UserResponse) map[string]string {
	err := h.validate.Struct(answers)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

func (h *Handlers) renderHome(w http.ResponseWriter, r *http.Request, status int, selected map[string]string, flash *FlashMessage) {
	data := HomePageData{
		PageData: PageData{
			Title:       "Summer Track Recommender",
			CurrentPath: r.URL.Path,
			Flash:       flash,
		},
		Questions: Questions(h.recommender.Labels()),
		Selected:  selected,
	}
	h.render(w, r, status, "home", data)
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.templates.Render(&buf, page, data); err != nil {
		h.requestLogger(r).Error("rendering template", zap.String("page", page), zap.Error(err))
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// requestLogger returns the per-request logger set by the logging middleware.
func (h *Handlers) requestLogger(r *http.Request) *zap.Logger {
	return logger.FromContextOr(r.Context(), h.logger)
}

func selectedAnswers(answers scoring.UserResponse) map[string]string {
	out := make(map[string]string)
	for _, d := range scoring.ScorableColumns() {
		if v, _ := answers.Answer(d); v != "" {
			out[d.String()] = v
		}
	}
	return out
}

func flashMessage(e apiError) string {
	switch e.body.Code {
	case CodeCatalogUnavailable, CodeEmptyCatalog:
		return "The track catalog is not available right now. Please try again later."
	case CodeInvalidAnswer:
		return "One of the answers was not recognized."
	}
	return "Something went wrong while choosing your track."
}
