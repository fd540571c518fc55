package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FlatAndNestedAgree(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		flat   string
		nested string
	}{
		{
			name: "demand",
			kind: KindDemand,
			flat: `{"predicted_demand": 58, "confidence_score": 0.91, "confidence_level": "High",
				"trend": "Increasing", "recommendation": "Hold current staffing", "district": "Pune"}`,
			nested: `{"success": true, "prediction": {"predicted_demand": 58, "confidence_score": 0.91,
				"confidence_level": "High", "trend": "Increasing", "recommendation": "Hold current staffing",
				"district": "Pune"}}`,
		},
		{
			name: "crisis",
			kind: KindCrisis,
			flat: `{"probability": 0.72, "crisis_detected": true, "risk_level": "HIGH",
				"days_until_crisis": 7, "affected_population": 37500, "recommendation": "Add night shift"}`,
			nested: `{"success": true, "prediction": {"probability": 0.72, "crisis_detected": true,
				"risk_level": "HIGH", "days_until_crisis": 7, "affected_population": 37500,
				"recommendation": "Add night shift"}}`,
		},
		{
			name: "priority",
			kind: KindPriority,
			flat: `{"priority_score": 7.9, "priority_level": "HIGH",
				"components": {"urgency": 8.1, "impact": 7.5, "resources": 6.2, "sentiment": 7.7},
				"recommendation": "Schedule within 24 hours"}`,
			nested: `{"success": true, "priority": {"priority_score": 7.9, "priority_level": "HIGH",
				"components": {"urgency": 8.1, "impact": 7.5, "resources": 6.2, "sentiment": 7.7},
				"recommendation": "Schedule within 24 hours"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flat, err := Normalize(tt.kind, RawResponse(tt.flat))
			require.NoError(t, err)
			nested, err := Normalize(tt.kind, RawResponse(tt.nested))
			require.NoError(t, err)

			if diff := cmp.Diff(flat, nested); diff != "" {
				t.Errorf("flat and nested results differ (-flat +nested):\n%s", diff)
			}
			assert.Equal(t, OriginLive, flat.Origin)
			assert.Equal(t, tt.kind, flat.Kind)
			assert.NotEqual(t, TierUnset, flat.Tier)
		})
	}
}

func TestNormalize_Demand(t *testing.T) {
	r, err := Normalize(KindDemand, RawResponse(`{"prediction": {"predicted_demand": 58.4,
		"confidence_score": 0.9, "trend": "STABLE", "model_version": "v2"}}`))
	require.NoError(t, err)

	assert.InDelta(t, 58.4, r.PrimaryMetric, 1e-9)
	assert.Equal(t, TierLow, r.Tier)
	assert.Equal(t, TierFromClassifier, r.TierSource)
	require.NotNil(t, r.Confidence)
	assert.InDelta(t, 0.9, *r.Confidence, 1e-9)
	assert.Equal(t, "stable", r.Meta.Trend)
	assert.Equal(t, "v2", r.Meta.ModelVersion)
}

func TestNormalize_CrisisAliases(t *testing.T) {
	raw := RawResponse(`{"success": true, "prediction": {
		"district": "Mumbai",
		"probability": 0.64,
		"crisis_predicted": true,
		"alert_level": "HIGH",
		"days_until_crisis": 7,
		"affected_population_estimate": 37500,
		"recommendations": ["Deploy additional staff", "Extend service hours"]
	}}`)

	r, err := Normalize(KindCrisis, raw)
	require.NoError(t, err)

	assert.InDelta(t, 0.64, r.PrimaryMetric, 1e-9)
	assert.Equal(t, TierHigh, r.Tier)
	assert.Equal(t, TierFromUpstream, r.TierSource)
	require.NotNil(t, r.Meta.CrisisDetected)
	assert.True(t, *r.Meta.CrisisDetected)
	require.NotNil(t, r.Meta.DaysUntilCrisis)
	assert.Equal(t, 7, *r.Meta.DaysUntilCrisis)
	require.NotNil(t, r.Meta.AffectedPopulation)
	assert.Equal(t, 37500, *r.Meta.AffectedPopulation)
	assert.Equal(t, "Deploy additional staff. Extend service hours", r.Recommendation)
	assert.Equal(t, "Mumbai", r.Meta.District)
}

func TestNormalize_PriorityComponentAliases(t *testing.T) {
	raw := RawResponse(`{"success": true, "priority": {
		"priority_score": 6.4,
		"components": {"urgency": 7, "impact": 6, "resource_availability": 5.5, "citizen_sentiment": 6.1}
	}}`)

	r, err := Normalize(KindPriority, raw)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"urgency":   7,
		"impact":    6,
		"resources": 5.5,
		"sentiment": 6.1,
	}, r.Components)
	assert.Equal(t, TierHigh, r.Tier)
	assert.Equal(t, TierFromClassifier, r.TierSource)
}

func TestNormalize_UpstreamTierLabel(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   Tier
		source TierSource
	}{
		{"label wins over score", `{"probability": 0.9, "risk_level": "medium"}`, TierMedium, TierFromUpstream},
		{"unknown label falls back", `{"probability": 0.9, "risk_level": "SEVERE"}`, TierCritical, TierFromClassifier},
		{"no label", `{"probability": 0.45}`, TierMedium, TierFromClassifier},
		{"risk_level preferred", `{"probability": 0.1, "risk_level": "LOW", "alert_level": "HIGH"}`, TierLow, TierFromUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Normalize(KindCrisis, RawResponse(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Tier)
			assert.Equal(t, tt.source, r.TierSource)
		})
	}
}

func TestNormalize_OptionalFieldsDefault(t *testing.T) {
	r, err := Normalize(KindCrisis, RawResponse(`{"probability": "0.78", "days_until_crisis": "soon", "affected_population": [1]}`))
	require.NoError(t, err)

	assert.InDelta(t, 0.78, r.PrimaryMetric, 1e-9)
	assert.Nil(t, r.Meta.CrisisDetected)
	assert.Nil(t, r.Meta.DaysUntilCrisis)
	assert.Nil(t, r.Meta.AffectedPopulation)
	assert.Nil(t, r.Confidence)
	assert.Nil(t, r.Components)
	assert.Empty(t, r.Recommendation)
}

func TestNormalize_OutOfRangeCountsUnset(t *testing.T) {
	tests := []struct {
		name     string
		days     string
		affected string
	}{
		{"oversized", "1e30", "1e30"},
		{"negative", "-3", "-5"},
		{"fractional", "2.5", "1200.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"probability": 0.5, "days_until_crisis": ` + tt.days + `, "affected_population": ` + tt.affected + `}`
			r, err := Normalize(KindCrisis, RawResponse(raw))
			require.NoError(t, err)
			assert.Nil(t, r.Meta.DaysUntilCrisis)
			assert.Nil(t, r.Meta.AffectedPopulation)
			assert.InDelta(t, 0.5, r.PrimaryMetric, 1e-9)
		})
	}
}

func TestNormalize_TopLevelUsedWhenEnvelopeLacksMetric(t *testing.T) {
	r, err := Normalize(KindDemand, RawResponse(`{"prediction": {"note": "pending"}, "predicted_demand": 130}`))
	require.NoError(t, err)
	assert.InDelta(t, 130, r.PrimaryMetric, 1e-9)
	assert.Equal(t, TierMedium, r.Tier)
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		raw  string
	}{
		{"missing metric", KindCrisis, `{"success": true, "prediction": {"risk_level": "HIGH"}}`},
		{"null metric", KindPriority, `{"priority_score": null}`},
		{"non-numeric metric", KindDemand, `{"predicted_demand": "lots"}`},
		{"array body", KindDemand, `[1, 2, 3]`},
		{"null body", KindCrisis, `null`},
		{"wrong envelope for kind", KindCrisis, `{"priority": {"probability": 0.5}}`},
		{"unknown kind", Kind("weather"), `{"probability": 0.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.kind, RawResponse(tt.raw))
			require.Error(t, err)
			var nerr *NormalizationError
			assert.True(t, errors.As(err, &nerr))
		})
	}
}
