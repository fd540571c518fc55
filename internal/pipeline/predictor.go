package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"github.com/couchcryptid/predict-dashboard-service/internal/observability"
)

// DegradedNotice is shown next to any assessment built from fallback data.
const DegradedNotice = "Prediction service unavailable. Showing sample data."

// causeNormalization tags fallbacks caused by an unrecognized response shape.
const causeNormalization = "normalization"

// Assessment is one finished submission: the canonical result plus its
// visual encoding. Degraded is true whenever the result is fallback data.
type Assessment struct {
	District      string                      `json:"district,omitempty"`
	Result        domain.PredictionResult     `json:"result"`
	Presentation  domain.PresentationEncoding `json:"presentation"`
	ComponentBars map[string]float64          `json:"component_bars,omitempty"`
	Degraded      bool                        `json:"degraded"`
	Notice        string                      `json:"notice,omitempty"`
	Cause         string                      `json:"cause,omitempty"`
}

// Clone returns a deep copy.
func (a Assessment) Clone() Assessment {
	out := a
	out.Result = a.Result.Clone()
	out.Presentation.GradientStops = slices.Clone(a.Presentation.GradientStops)
	out.ComponentBars = maps.Clone(a.ComponentBars)
	return out
}

// Predictor runs one submission end to end: transport, then normalize or
// fall back, then classify and encode. Transport and shape failures never
// reach the caller; they degrade to the fallback template.
type Predictor struct {
	transport Transport
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewPredictor creates a Predictor over the given transport.
func NewPredictor(t Transport, logger *slog.Logger, metrics *observability.Metrics) *Predictor {
	return &Predictor{
		transport: t,
		logger:    logger,
		metrics:   metrics,
	}
}

// Assess validates form and runs the request. A *domain.ValidationError is
// returned before any network call.
func (p *Predictor) Assess(ctx context.Context, kind domain.Kind, form domain.Form) (Assessment, error) {
	req, err := domain.BuildRequest(kind, form)
	if err != nil {
		p.metrics.ValidationFailures.WithLabelValues(string(kind)).Inc()
		return Assessment{}, err
	}
	return p.AssessRequest(ctx, req)
}

// AssessRequest runs an already validated request. The only error it returns
// is *domain.FallbackError.
func (p *Predictor) AssessRequest(ctx context.Context, req domain.PredictionRequest) (Assessment, error) {
	kind := req.Kind()

	raw, err := p.transport.Predict(ctx, req)
	if err != nil {
		reason := string(domain.NetworkUnavailable)
		var terr *domain.TransportError
		if errors.As(err, &terr) {
			reason = string(terr.Kind)
		}
		p.metrics.TransportErrors.WithLabelValues(string(kind), reason).Inc()
		p.logger.Warn("inference call failed, using fallback",
			"kind", kind,
			"district", req.Area(),
			"reason", reason,
			"error", err,
		)
		return p.degrade(req, reason)
	}

	result, err := domain.Normalize(kind, raw)
	if err != nil {
		p.metrics.NormalizationErrors.WithLabelValues(string(kind)).Inc()
		p.logger.Warn("unrecognized inference response, using fallback",
			"kind", kind,
			"district", req.Area(),
			"reason", causeNormalization,
			"error", err,
		)
		return p.degrade(req, causeNormalization)
	}

	p.metrics.Assessments.WithLabelValues(string(kind), string(result.Origin)).Inc()
	a := present(result)
	a.District = req.Area()
	return a, nil
}

// Fallback returns the degraded assessment for kind without calling the API.
func (p *Predictor) Fallback(kind domain.Kind) (Assessment, error) {
	result, err := domain.Fallback(kind)
	if err != nil {
		return Assessment{}, err
	}
	a := present(result)
	a.Degraded = true
	a.Notice = DegradedNotice
	return a, nil
}

func (p *Predictor) degrade(req domain.PredictionRequest, cause string) (Assessment, error) {
	kind := req.Kind()
	a, err := p.Fallback(kind)
	if err != nil {
		p.logger.Error("fallback unavailable", "kind", kind, "error", err)
		return Assessment{}, err
	}
	a.District = req.Area()
	a.Cause = cause
	p.metrics.Assessments.WithLabelValues(string(kind), string(a.Result.Origin)).Inc()
	return a, nil
}

func present(result domain.PredictionResult) Assessment {
	a := Assessment{
		Result:       result,
		Presentation: domain.Present(result),
	}
	if len(result.Components) > 0 {
		a.ComponentBars = domain.ComponentBars(result.Components, domain.ScaleMax(result.Kind))
	}
	return a
}
