package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_Deterministic(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			first, err := Fallback(kind)
			require.NoError(t, err)
			second, err := Fallback(kind)
			require.NoError(t, err)

			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("fallback not deterministic (-first +second):\n%s", diff)
			}
			assert.Equal(t, OriginFallback, first.Origin)
			assert.NotEqual(t, TierUnset, first.Tier)
			assert.NotEmpty(t, first.Recommendation)
		})
	}
}

func TestFallback_Crisis(t *testing.T) {
	r, err := Fallback(KindCrisis)
	require.NoError(t, err)

	assert.InDelta(t, 0.78, r.PrimaryMetric, 1e-9)
	assert.Equal(t, TierHigh, r.Tier)
	require.NotNil(t, r.Meta.CrisisDetected)
	assert.True(t, *r.Meta.CrisisDetected)
	assert.Equal(t, 5, *r.Meta.DaysUntilCrisis)
	assert.Equal(t, 50000, *r.Meta.AffectedPopulation)
	assert.Equal(t, "Increase emergency response teams by 25%. Activate standby resources in neighboring districts. Implement 24/7 monitoring protocol.", r.Recommendation)
}

func TestFallback_Priority(t *testing.T) {
	r, err := Fallback(KindPriority)
	require.NoError(t, err)

	assert.InDelta(t, 8.7, r.PrimaryMetric, 1e-9)
	assert.Equal(t, TierHigh, r.Tier)
	assert.Equal(t, TierFromUpstream, r.TierSource)
	assert.Equal(t, map[string]float64{
		"urgency":   9.2,
		"impact":    8.5,
		"resources": 7.8,
		"sentiment": 8.9,
	}, r.Components)
}

func TestFallback_Demand(t *testing.T) {
	r, err := Fallback(KindDemand)
	require.NoError(t, err)

	assert.InDelta(t, 245, r.PrimaryMetric, 1e-9)
	assert.Equal(t, TierCritical, r.Tier)
	assert.Equal(t, TierFromClassifier, r.TierSource)
	require.NotNil(t, r.Confidence)
	assert.InDelta(t, 0.87, *r.Confidence, 1e-9)
	assert.Equal(t, "increasing", r.Meta.Trend)
}

func TestFallback_ReturnsIndependentCopies(t *testing.T) {
	first, err := Fallback(KindPriority)
	require.NoError(t, err)
	first.Components["urgency"] = 0
	first.Recommendation = "changed"

	second, err := Fallback(KindPriority)
	require.NoError(t, err)
	assert.InDelta(t, 9.2, second.Components["urgency"], 1e-9)
	assert.NotEqual(t, "changed", second.Recommendation)

	crisis, err := Fallback(KindCrisis)
	require.NoError(t, err)
	*crisis.Meta.DaysUntilCrisis = 1

	again, err := Fallback(KindCrisis)
	require.NoError(t, err)
	assert.Equal(t, 5, *again.Meta.DaysUntilCrisis)
}

func TestFallback_UnknownKind(t *testing.T) {
	_, err := Fallback(Kind("weather"))
	var ferr *FallbackError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, Kind("weather"), ferr.Kind)
}
