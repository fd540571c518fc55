package domain

// fallbackTemplates holds the one sample result shown per kind while the
// inference API is unreachable. Tiers are resolved once at package init, so
// every call returns the same literal values.
var fallbackTemplates = map[Kind]PredictionResult{
	KindDemand: {
		Kind:           KindDemand,
		PrimaryMetric:  245,
		Confidence:     ptr(0.87),
		Recommendation: "Allocate additional resources to meet forecasted demand",
		Meta:           Meta{Trend: "increasing"},
	},
	KindCrisis: {
		Kind:           KindCrisis,
		PrimaryMetric:  0.78,
		Recommendation: "Increase emergency response teams by 25%. Activate standby resources in neighboring districts. Implement 24/7 monitoring protocol.",
		Meta: Meta{
			CrisisDetected:     ptr(true),
			DaysUntilCrisis:    ptr(5),
			AffectedPopulation: ptr(50000),
		},
	},
	KindPriority: {
		Kind:          KindPriority,
		PrimaryMetric: 8.7,
		Components: map[string]float64{
			"urgency":   9.2,
			"impact":    8.5,
			"resources": 7.8,
			"sentiment": 8.9,
		},
		Recommendation: "Deploy emergency response team within 2 hours. Allocate additional resources from central reserve. Notify district coordinator for immediate action.",
	},
}

// fallbackTierLabels mirrors the tier labels the sample payloads carry.
var fallbackTierLabels = map[Kind]string{
	KindCrisis:   "HIGH",
	KindPriority: "HIGH",
}

func init() {
	for kind, tmpl := range fallbackTemplates {
		tmpl.Origin = OriginFallback
		resolveTier(&tmpl, fallbackTierLabels[kind])
		fallbackTemplates[kind] = tmpl
	}
}

// Fallback returns the sample result for kind. It takes no input and reads no
// clock, so repeated calls are deeply equal. A missing template is a
// programming defect reported as *FallbackError.
func Fallback(kind Kind) (PredictionResult, error) {
	tmpl, ok := fallbackTemplates[kind]
	if !ok {
		return PredictionResult{}, &FallbackError{Kind: kind}
	}
	return tmpl.Clone(), nil
}
