package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/justestif/go-spotify-recommender/internal/recommend"
	"github.com/justestif/go-spotify-recommender/internal/scoring"
)

// Error codes returned in JSON error bodies.
const (
	CodeBadRequest         = "bad_request"
	CodeValidationFailed   = "validation_failed"
	CodeInvalidAnswer      = "invalid_answer"
	CodeCatalogUnavailable = "catalog_unavailable"
	CodeEmptyCatalog       = "empty_catalog"
	CodeDataIntegrity      = "data_integrity"
	CodeInternalError      = "internal_error"
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// apiError is the status and body chosen for a failed request.
type apiError struct {
	status int
	body   ErrorResponse
}

// errorHandler maps an error to a response. ok is false when it does not apply.
type errorHandler func(err error) (apiError, bool)

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(err error) (apiError, bool) {
		if !errors.Is(err, sentinel) {
			return apiError{}, false
		}
		return apiError{status: status, body: ErrorResponse{Code: code, Message: sentinel.Error()}}, true
	}
}

// invalidAnswerHandler reports which answer was not recognized.
func invalidAnswerHandler(err error) (apiError, bool) {
	var iae *scoring.InvalidAnswerError
	if !errors.As(err, &iae) {
		return apiError{}, false
	}
	return apiError{
		status: http.StatusBadRequest,
		body: ErrorResponse{
			Code:    CodeInvalidAnswer,
			Message: iae.Error(),
			Fields:  map[string]string{iae.Field: "unrecognized answer"},
		},
	}, true
}

var errorHandlers = []errorHandler{
	invalidAnswerHandler,
	sentinelHandler(scoring.ErrUnrecognizedCategory, http.StatusBadRequest, CodeInvalidAnswer),
	sentinelHandler(recommend.ErrCatalogUnavailable, http.StatusServiceUnavailable, CodeCatalogUnavailable),
	sentinelHandler(scoring.ErrEmptyCatalog, http.StatusServiceUnavailable, CodeEmptyCatalog),
	sentinelHandler(scoring.ErrDataIntegrity, http.StatusInternalServerError, CodeDataIntegrity),
}

// classify maps a recommendation error to its response. Unknown errors
// become a generic 500 that does not expose the cause.
func classify(err error) apiError {
	for _, h := range errorHandlers {
		if e, ok := h(err); ok {
			return e
		}
	}
	return apiError{
		status: http.StatusInternalServerError,
		body:   ErrorResponse{Code: CodeInternalError, Message: "internal error"},
	}
}

// handleError logs the cause and writes the mapped JSON error.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	e := classify(err)
	log := h.requestLogger(r)
	if e.status >= http.StatusInternalServerError {
		log.Error("recommendation failed", zap.Int("status", e.status), zap.Error(err))
	} else {
		log.Warn("recommendation rejected", zap.Int("status", e.status), zap.Error(err))
	}
	writeJSON(w, e.status, e.body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
