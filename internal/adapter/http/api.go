package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"github.com/couchcryptid/predict-dashboard-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const maxFormBytes = 64 << 10

// Assessor is the assessment service behind the API.
type Assessor interface {
	Submit(ctx context.Context, kind domain.Kind, form domain.Form) (pipeline.Settlement, bool, error)
	Latest(kind domain.Kind) (pipeline.Settlement, bool)
	Fallback(kind domain.Kind) (pipeline.Assessment, error)
}

type apiHandler struct {
	svc    Assessor
	logger *slog.Logger
}

type assessResponse struct {
	Token      uint64              `json:"token"`
	Applied    bool                `json:"applied"`
	SettledAt  *time.Time          `json:"settled_at,omitempty"`
	Assessment pipeline.Assessment `json:"assessment"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *apiHandler) handleAssess(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(w, r)
	if !ok {
		return
	}

	form, err := decodeForm(w, r)
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	settled, applied, err := h.svc.Submit(r.Context(), kind, form)
	if err != nil {
		h.writeSubmitError(w, kind, err)
		return
	}

	resp := assessResponse{
		Token:      settled.Token,
		Applied:    applied,
		Assessment: settled.Assessment,
	}
	if applied {
		resp.SettledAt = &settled.SettledAt
	}
	sharedobs.WriteJSON(w, http.StatusOK, resp)
}

func (h *apiHandler) handleLatest(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(w, r)
	if !ok {
		return
	}
	settled, ok := h.svc.Latest(kind)
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorResponse{Error: "no assessment yet"})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, settled)
}

func (h *apiHandler) handleFallback(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(w, r)
	if !ok {
		return
	}
	a, err := h.svc.Fallback(kind)
	if err != nil {
		h.writeSubmitError(w, kind, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, a)
}

func (h *apiHandler) writeSubmitError(w http.ResponseWriter, kind domain.Kind, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		sharedobs.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "invalid " + string(kind) + " request",
			Fields: verr.Problems,
		})
		return
	}

	h.logger.Error("assessment failed", "kind", kind, "error", err)
	sharedobs.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "assessment failed"})
}

func kindFromPath(w http.ResponseWriter, r *http.Request) (domain.Kind, bool) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return "", false
	}
	return kind, true
}

// decodeForm reads a JSON object of form values. Numbers stay json.Number so
// the request builder sees them exactly as sent.
func decodeForm(w http.ResponseWriter, r *http.Request) (domain.Form, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	dec.UseNumber()

	var form domain.Form
	if err := dec.Decode(&form); err != nil {
		return nil, errors.New("body must be a JSON object of form values")
	}
	if form == nil {
		return nil, errors.New("body must be a JSON object of form values")
	}
	return form, nil
}
