// Package recommend picks the catalog track that best matches a questionnaire.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/justestif/go-spotify-recommender/internal/metrics"
	"github.com/justestif/go-spotify-recommender/internal/moods"
	"github.com/justestif/go-spotify-recommender/internal/scoring"
)

// ErrCatalogUnavailable is returned when the catalog cannot be read.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Observer receives recommendation metrics.
type Observer interface {
	ObserveRecommendation(outcome string, elapsed time.Duration)
	SetCatalogSize(n int)
}

// Recommendation is the result of one request.
type Recommendation struct {
	ID          uuid.UUID           `json:"recommendation_id"`
	Track       scoring.ScoredTrack `json:"recommended_track"`
	Mood        *moods.Mood         `json:"mood,omitempty"`
	CatalogSize int                 `json:"catalog_size"`
}

// Service computes recommendations. It keeps no state between requests;
// every call reads the catalog again.
type Service struct {
	catalog  Catalog
	labels   scoring.LabelSet
	logger   *zap.Logger
	observer Observer
	newID    func() uuid.UUID
}

// Option configures a Service.
type Option func(*Service)

// WithLabels sets the label set used to parse answers.
func WithLabels(ls scoring.LabelSet) Option {
	return func(s *Service) {
		s.labels = ls
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithObserver replaces the Prometheus recorder.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// New creates a recommendation service over catalog.
func New(catalog Catalog, opts ...Option) *Service {
	s := &Service{
		catalog:  catalog,
		labels:   scoring.EnglishLabels,
		logger:   zap.NewNop(),
		observer: metrics.Recorder{},
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Labels returns the label set answers are parsed with.
func (s *Service) Labels() scoring.LabelSet {
	return s.labels
}

// Recommend scores the whole catalog against the answers and returns the
// best match.
func (s *Service) Recommend(ctx context.Context, answers scoring.UserResponse) (rec *Recommendation, err error) {
	start := time.Now()
	defer func() {
		s.observer.ObserveRecommendation(Outcome(err), time.Since(start))
	}()

	// Answers are checked before the catalog is read.
	pref, err := scoring.PreferenceVector(answers, s.labels)
	if err != nil {
		return nil, err
	}

	tracks, err := s.catalog.ListTrackFeatures(ctx)
	if err != nil {
		if errors.Is(err, scoring.ErrDataIntegrity) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	s.logger.Info("fetched catalog", zap.Int("tracks", len(tracks)))
	s.observer.SetCatalogSize(len(tracks))

	scored, err := scoring.Rank(tracks, pref)
	if err != nil {
		return nil, err
	}

	if s.logger.Core().Enabled(zapcore.DebugLevel) {
		for _, t := range scored {
			s.logger.Debug("scored track", zap.String("track_id", t.ID), zap.Float64("score", t.Score))
		}
	}

	best, err := scoring.Best(scored)
	if err != nil {
		return nil, err
	}
	best = scoring.Sanitize(best)

	rec = &Recommendation{
		ID:          s.newID(),
		Track:       best,
		CatalogSize: len(tracks),
	}
	if m, ok := moods.Of(best.TrackFeatures); ok {
		rec.Mood = &m
	}

	s.logger.Info("selected track",
		zap.String("recommendation_id", rec.ID.String()),
		zap.String("track_id", best.ID),
		zap.String("name", best.Name),
		zap.Float64("score", best.Score),
	)
	return rec, nil
}

// Outcome classifies a Recommend error for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, scoring.ErrUnrecognizedCategory):
		return metrics.OutcomeInvalidAnswer
	case errors.Is(err, scoring.ErrEmptyCatalog):
		return metrics.OutcomeEmptyCatalog
	case errors.Is(err, ErrCatalogUnavailable):
		return metrics.OutcomeUnavailable
	case errors.Is(err, scoring.ErrDataIntegrity):
		return metrics.OutcomeDataIntegrity
	}
	return metrics.OutcomeError
}
