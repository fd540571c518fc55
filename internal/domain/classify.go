package domain

import "math"

// Thresholds holds the inclusive lower bounds of the upper three tiers on a
// kind's nominal scale. Anything below Medium is LOW.
type Thresholds struct {
	ScaleMax float64
	Critical float64
	High     float64
	Medium   float64
}

// thresholdTable is the single source of tier cut-offs. Crisis and priority
// follow the dashboard's published bands; demand uses the same 80/60/40
// percent split on a 300-request weekly scale.
var thresholdTable = map[Kind]Thresholds{
	KindCrisis:   {ScaleMax: 1.0, Critical: 0.8, High: 0.6, Medium: 0.4},
	KindPriority: {ScaleMax: 10, Critical: 8, High: 6, Medium: 4},
	KindDemand:   {ScaleMax: 300, Critical: 240, High: 180, Medium: 120},
}

// ThresholdsFor returns the tier cut-offs for kind.
func ThresholdsFor(kind Kind) (Thresholds, bool) {
	t, ok := thresholdTable[kind]
	return t, ok
}

// ScaleMax is the nominal top of kind's primary metric, used for bar widths.
func ScaleMax(kind Kind) float64 {
	return thresholdTable[kind].ScaleMax
}

// Classify maps a primary metric to a tier. A score exactly on a threshold
// resolves to the higher tier. NaN and unknown kinds classify as LOW.
func Classify(metric float64, kind Kind) Tier {
	t, ok := thresholdTable[kind]
	if !ok || math.IsNaN(metric) {
		return TierLow
	}
	switch {
	case metric >= t.Critical:
		return TierCritical
	case metric >= t.High:
		return TierHigh
	case metric >= t.Medium:
		return TierMedium
	default:
		return TierLow
	}
}

// resolveTier trusts an upstream label when it names a known tier and
// otherwise classifies the primary metric.
func resolveTier(r *PredictionResult, label string) {
	if tier, ok := ParseTier(label); ok {
		r.Tier = tier
		r.TierSource = TierFromUpstream
		return
	}
	r.Tier = Classify(r.PrimaryMetric, r.Kind)
	r.TierSource = TierFromClassifier
}
