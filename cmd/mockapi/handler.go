package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// Response shapes. Nested is what the inference backend sends today.
const (
	shapeNested = "nested"
	shapeFlat   = "flat"
)

// Failure modes.
const (
	failNone      = ""
	failError     = "error"
	failMalformed = "malformed"
	failShape     = "shape"
)

type options struct {
	shape string
	fail  string
	delay time.Duration
}

func (o options) validate() error {
	switch o.shape {
	case shapeNested, shapeFlat:
	default:
		return fmt.Errorf("unknown -shape %q (want nested or flat)", o.shape)
	}
	switch o.fail {
	case failNone, failError, failMalformed, failShape:
	default:
		return fmt.Errorf("unknown -fail %q (want error, malformed or shape)", o.fail)
	}
	if o.delay < 0 {
		return errors.New("-delay must not be negative")
	}
	return nil
}

type mockAPI struct {
	opts   options
	logger *slog.Logger
}

func newHandler(opts options, logger *slog.Logger) http.Handler {
	api := &mockAPI{opts: opts, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", api.handleHealth)
	mux.HandleFunc("POST /api/v1/predict/{kind}", api.handlePredict)
	return mux
}

func (a *mockAPI) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if a.opts.fail == failError {
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unhealthy"})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"status": "healthy", "models_loaded": true})
}

func (a *mockAPI) handlePredict(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]any{"detail": err.Error()})
		return
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, 64<<10))
	dec.UseNumber()
	var form domain.Form
	if err := dec.Decode(&form); err != nil || form == nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]any{"detail": "body must be a JSON object"})
		return
	}
	req, err := domain.BuildRequest(kind, form)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			sharedobs.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": verr.Problems})
			return
		}
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]any{"detail": err.Error()})
		return
	}

	if a.opts.delay > 0 {
		select {
		case <-time.After(a.opts.delay):
		case <-r.Context().Done():
			return
		}
	}

	a.logger.Info("predict", "kind", kind, "district", req.Area(), "shape", a.opts.shape, "fail", a.opts.fail)

	switch a.opts.fail {
	case failError:
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]any{"detail": "model not loaded"})
		return
	case failMalformed:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"success": true, "prediction": {`)
		return
	case failShape:
		sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "result": "ok"})
		return
	}

	sharedobs.WriteJSON(w, http.StatusOK, respond(req, a.opts.shape))
}

// respond computes the answer for req and wraps it in the requested shape.
// Priority results are nested under "priority", the others under "prediction".
func respond(req domain.PredictionRequest, shape string) any {
	var (
		payload  any
		envelope = "prediction"
	)
	switch r := req.(type) {
	case domain.DemandRequest:
		payload = predictDemand(r)
	case domain.CrisisRequest:
		payload = predictCrisis(r)
	case domain.PriorityRequest:
		payload = scorePriority(r)
		envelope = "priority"
	}

	if shape == shapeFlat {
		return payload
	}
	return map[string]any{"success": true, envelope: payload}
}
