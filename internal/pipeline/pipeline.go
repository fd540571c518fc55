package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"github.com/couchcryptid/predict-dashboard-service/internal/observability"
)

// Transport performs exactly one inference call for a validated request.
type Transport interface {
	Predict(ctx context.Context, req domain.PredictionRequest) (domain.RawResponse, error)
}

// HealthProber reports whether the inference API is reachable.
type HealthProber interface {
	Health(ctx context.Context) error
}

// Publisher receives every applied settlement.
type Publisher interface {
	Publish(ctx context.Context, s Settlement) error
}

// Service ties the Predictor to the per-kind Board and the optional event
// publisher. It is safe for concurrent use.
type Service struct {
	predictor *Predictor
	board     *Board
	health    HealthProber
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Service. health and publisher may be nil: a nil prober makes
// the service always ready, a nil publisher disables the event stream.
func New(t Transport, health HealthProber, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		predictor: NewPredictor(t, logger, metrics),
		board:     NewBoard(),
		health:    health,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Submit validates form, issues a token, runs the assessment and applies it
// unless a newer submission for the same kind was issued meanwhile. The
// returned settlement always carries this submission's own assessment;
// applied reports whether it became the displayed one.
func (s *Service) Submit(ctx context.Context, kind domain.Kind, form domain.Form) (Settlement, bool, error) {
	tracker, ok := s.board.Tracker(kind)
	if !ok {
		return Settlement{}, false, fmt.Errorf("submit: unknown prediction kind %q", kind)
	}

	req, err := domain.BuildRequest(kind, form)
	if err != nil {
		s.metrics.ValidationFailures.WithLabelValues(string(kind)).Inc()
		return Settlement{}, false, err
	}

	token := tracker.Issue()
	a, err := s.predictor.AssessRequest(ctx, req)
	if err != nil {
		return Settlement{}, false, err
	}

	settled, applied := tracker.Settle(token, a)
	if !applied {
		s.metrics.Superseded.WithLabelValues(string(kind)).Inc()
		s.logger.Debug("assessment superseded",
			"kind", kind,
			"token", token,
			"current", tracker.Current(),
		)
		return Settlement{Kind: kind, Token: token, Assessment: a}, false, nil
	}

	s.logger.Info("assessment applied",
		"kind", kind,
		"district", req.Area(),
		"token", token,
		"origin", a.Result.Origin,
		"tier", a.Result.Tier,
	)
	s.publish(ctx, settled)
	return settled, true, nil
}

// Latest returns the displayed settlement for kind.
func (s *Service) Latest(kind domain.Kind) (Settlement, bool) {
	tracker, ok := s.board.Tracker(kind)
	if !ok {
		return Settlement{}, false
	}
	return tracker.Latest()
}

// Fallback returns the degraded assessment for kind, for previews.
func (s *Service) Fallback(kind domain.Kind) (Assessment, error) {
	return s.predictor.Fallback(kind)
}

// CheckReadiness probes the inference API. The service still answers while
// the API is down, but with fallback data only.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	if err := s.health.Health(ctx); err != nil {
		s.metrics.UpstreamReady.Set(0)
		return fmt.Errorf("inference api not ready: %w", err)
	}
	s.metrics.UpstreamReady.Set(1)
	return nil
}

// publish is best effort: a failed event never fails the submission.
func (s *Service) publish(ctx context.Context, settled Settlement) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, settled); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("publish assessment failed",
			"kind", settled.Kind,
			"token", settled.Token,
			"error", err,
		)
		return
	}
	s.metrics.EventsPublished.Inc()
}
