package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawResponse is the undecoded body of a successful inference call. It is
// syntactically valid JSON of unknown shape.
type RawResponse []byte

// nestingKeys lists the envelope keys a payload may be wrapped in, most
// specific first. The backend wraps priority results in "priority".
var nestingKeys = map[Kind][]string{
	KindDemand:   {"prediction"},
	KindCrisis:   {"prediction"},
	KindPriority: {"prediction", "priority"},
}

// primaryMetricKey names the field whose presence identifies a usable payload.
var primaryMetricKey = map[Kind]string{
	KindDemand:   "predicted_demand",
	KindCrisis:   "probability",
	KindPriority: "priority_score",
}

// Normalize converts a live response of either known shape into the canonical
// result. Optional fields default when missing; only a missing primary metric
// is an error.
func Normalize(kind Kind, raw RawResponse) (PredictionResult, error) {
	key, ok := primaryMetricKey[kind]
	if !ok {
		return PredictionResult{}, &NormalizationError{Kind: kind, Reason: "unknown kind"}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return PredictionResult{}, &NormalizationError{Kind: kind, Reason: "response is not a JSON object"}
	}

	payload, found := selectPayload(kind, key, raw, top)
	if !found {
		return PredictionResult{}, &NormalizationError{
			Kind:   kind,
			Reason: fmt.Sprintf("%s missing from flat and nested shapes", key),
		}
	}

	var (
		result PredictionResult
		err    error
	)
	switch kind {
	case KindDemand:
		result, err = normalizeDemand(payload)
	case KindCrisis:
		result, err = normalizeCrisis(payload)
	default:
		result, err = normalizePriority(payload)
	}
	if err != nil {
		return PredictionResult{}, &NormalizationError{Kind: kind, Reason: err.Error()}
	}
	result.Kind = kind
	result.Origin = OriginLive
	return result, nil
}

// selectPayload returns the first candidate object, nested envelopes before
// the top level, that carries the primary metric.
func selectPayload(kind Kind, key string, raw RawResponse, top map[string]json.RawMessage) ([]byte, bool) {
	for _, envelope := range nestingKeys[kind] {
		inner, ok := top[envelope]
		if !ok {
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(inner, &obj); err != nil || obj == nil {
			continue
		}
		if hasValue(obj, key) {
			return inner, true
		}
	}
	if hasValue(top, key) {
		return raw, true
	}
	return nil, false
}

func hasValue(obj map[string]json.RawMessage, key string) bool {
	v, ok := obj[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return false
	}
	var n flexFloat
	return json.Unmarshal(v, &n) == nil && n.set
}

// --- per-kind payloads ---

type demandPayload struct {
	PredictedDemand flexFloat `json:"predicted_demand"`
	ConfidenceScore flexFloat `json:"confidence_score"`
	ConfidenceLevel string    `json:"confidence_level"`
	Trend           string    `json:"trend"`
	Recommendation  string    `json:"recommendation"`
	District        string    `json:"district"`
	ServiceType     string    `json:"service_type"`
	ModelVersion    string    `json:"model_version"`
}

type crisisPayload struct {
	Probability                flexFloat `json:"probability"`
	CrisisDetected             *bool     `json:"crisis_detected"`
	CrisisPredicted            *bool     `json:"crisis_predicted"`
	RiskLevel                  string    `json:"risk_level"`
	AlertLevel                 string    `json:"alert_level"`
	DaysUntilCrisis            flexFloat `json:"days_until_crisis"`
	AffectedPopulation         flexFloat `json:"affected_population"`
	AffectedPopulationEstimate flexFloat `json:"affected_population_estimate"`
	Recommendation             string    `json:"recommendation"`
	Recommendations            []string  `json:"recommendations"`
	District                   string    `json:"district"`
	ModelVersion               string    `json:"model_version"`
}

type priorityPayload struct {
	PriorityScore  flexFloat          `json:"priority_score"`
	PriorityLevel  string             `json:"priority_level"`
	Components     priorityComponents `json:"components"`
	Recommendation string             `json:"recommendation"`
	District       string             `json:"district"`
	Domain         string             `json:"domain"`
	IssueType      string             `json:"issue_type"`
}

type priorityComponents struct {
	Urgency              flexFloat `json:"urgency"`
	Impact               flexFloat `json:"impact"`
	Resources            flexFloat `json:"resources"`
	ResourceAvailability flexFloat `json:"resource_availability"`
	Sentiment            flexFloat `json:"sentiment"`
	CitizenSentiment     flexFloat `json:"citizen_sentiment"`
}

func normalizeDemand(payload []byte) (PredictionResult, error) {
	var p demandPayload
	if err := decodeLenient(payload, &p); err != nil {
		return PredictionResult{}, err
	}
	r := PredictionResult{
		Kind:           KindDemand,
		PrimaryMetric:  p.PredictedDemand.value,
		Confidence:     p.ConfidenceScore.ptr(),
		Recommendation: p.Recommendation,
		Meta: Meta{
			Trend:           strings.ToLower(p.Trend),
			ConfidenceLabel: p.ConfidenceLevel,
			District:        p.District,
			ServiceType:     p.ServiceType,
			ModelVersion:    p.ModelVersion,
		},
	}
	resolveTier(&r, "")
	return r, nil
}

func normalizeCrisis(payload []byte) (PredictionResult, error) {
	var p crisisPayload
	if err := decodeLenient(payload, &p); err != nil {
		return PredictionResult{}, err
	}
	detected := p.CrisisDetected
	if detected == nil {
		detected = p.CrisisPredicted
	}
	affected := p.AffectedPopulation
	if !affected.set {
		affected = p.AffectedPopulationEstimate
	}
	recommendation := p.Recommendation
	if recommendation == "" && len(p.Recommendations) > 0 {
		recommendation = strings.Join(p.Recommendations, ". ")
	}
	label := p.RiskLevel
	if label == "" {
		label = p.AlertLevel
	}

	r := PredictionResult{
		Kind:           KindCrisis,
		PrimaryMetric:  p.Probability.value,
		Recommendation: recommendation,
		Meta: Meta{
			CrisisDetected:     detected,
			DaysUntilCrisis:    p.DaysUntilCrisis.intPtr(),
			AffectedPopulation: affected.intPtr(),
			District:           p.District,
			ModelVersion:       p.ModelVersion,
		},
	}
	resolveTier(&r, label)
	return r, nil
}

func normalizePriority(payload []byte) (PredictionResult, error) {
	var p priorityPayload
	if err := decodeLenient(payload, &p); err != nil {
		return PredictionResult{}, err
	}
	r := PredictionResult{
		Kind:           KindPriority,
		PrimaryMetric:  p.PriorityScore.value,
		Components:     p.Components.toMap(),
		Recommendation: p.Recommendation,
		Meta: Meta{
			District:  p.District,
			Domain:    p.Domain,
			IssueType: p.IssueType,
		},
	}
	resolveTier(&r, p.PriorityLevel)
	return r, nil
}

// decodeLenient skips fields of the wrong JSON type instead of rejecting the
// payload; optional fields then keep their zero value.
func decodeLenient(payload []byte, v any) error {
	err := json.Unmarshal(payload, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}

func (c priorityComponents) toMap() map[string]float64 {
	out := make(map[string]float64, 4)
	put := func(name string, primary, alias flexFloat) {
		if primary.set {
			out[name] = primary.value
		} else if alias.set {
			out[name] = alias.value
		}
	}
	put("urgency", c.Urgency, flexFloat{})
	put("impact", c.Impact, flexFloat{})
	put("resources", c.Resources, c.ResourceAvailability)
	put("sentiment", c.Sentiment, c.CitizenSentiment)
	if len(out) == 0 {
		return nil
	}
	return out
}

// flexFloat decodes a JSON number or numeric string; anything else leaves it
// unset rather than failing the whole payload.
type flexFloat struct {
	value float64
	set   bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if v, err := n.Float64(); err == nil {
			f.value, f.set = v, true
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			f.value, f.set = v, true
		}
	}
	return nil
}

func (f flexFloat) ptr() *float64 {
	if !f.set {
		return nil
	}
	return ptr(f.value)
}

// intPtr treats negative, fractional and oversized values as unset.
func (f flexFloat) intPtr() *int {
	if !f.set || f.value < 0 || f.value > math.MaxInt32 || f.value != math.Trunc(f.value) {
		return nil
	}
	return ptr(int(f.value))
}
