package domain

import "maps"

// Origin marks whether a result came from the inference API or from the
// fallback template.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// TierSource records who decided the tier.
type TierSource string

const (
	TierFromUpstream   TierSource = "upstream"
	TierFromClassifier TierSource = "classifier"
)

// PredictionResult is the canonical result shared by all three flows,
// whatever response shape produced it. PrimaryMetric and Tier are always set.
type PredictionResult struct {
	Kind           Kind               `json:"kind"`
	PrimaryMetric  float64            `json:"primary_metric"`
	Tier           Tier               `json:"tier"`
	TierSource     TierSource         `json:"tier_source"`
	Confidence     *float64           `json:"confidence,omitempty"`
	Components     map[string]float64 `json:"components,omitempty"`
	Recommendation string             `json:"recommendation"`
	Meta           Meta               `json:"meta"`
	Origin         Origin             `json:"origin"`
}

// Meta carries the kind-specific secondary fields of a result. Unset entries
// are omitted when serialized, so it reads as a name-to-value mapping.
type Meta struct {
	Trend              string `json:"trend,omitempty"`
	ConfidenceLabel    string `json:"confidence_label,omitempty"`
	CrisisDetected     *bool  `json:"crisis_detected,omitempty"`
	DaysUntilCrisis    *int   `json:"days_until_crisis,omitempty"`
	AffectedPopulation *int   `json:"affected_population,omitempty"`
	District           string `json:"district,omitempty"`
	ServiceType        string `json:"service_type,omitempty"`
	Domain             string `json:"domain,omitempty"`
	IssueType          string `json:"issue_type,omitempty"`
	ModelVersion       string `json:"model_version,omitempty"`
}

// Clone returns a deep copy so templates and shared state are never aliased.
func (r PredictionResult) Clone() PredictionResult {
	out := r
	if r.Confidence != nil {
		c := *r.Confidence
		out.Confidence = &c
	}
	if r.Components != nil {
		out.Components = maps.Clone(r.Components)
	}
	out.Meta = r.Meta.clone()
	return out
}

func (m Meta) clone() Meta {
	out := m
	if m.CrisisDetected != nil {
		v := *m.CrisisDetected
		out.CrisisDetected = &v
	}
	if m.DaysUntilCrisis != nil {
		v := *m.DaysUntilCrisis
		out.DaysUntilCrisis = &v
	}
	if m.AffectedPopulation != nil {
		v := *m.AffectedPopulation
		out.AffectedPopulation = &v
	}
	return out
}

func ptr[T any](v T) *T { return &v }
