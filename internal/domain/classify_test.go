package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		kind   Kind
		metric float64
		want   Tier
	}{
		{KindCrisis, 0.8, TierCritical},
		{KindCrisis, 0.7999, TierHigh},
		{KindCrisis, 0.6, TierHigh},
		{KindCrisis, 0.5999, TierMedium},
		{KindCrisis, 0.4, TierMedium},
		{KindCrisis, 0.3999, TierLow},
		{KindCrisis, 0, TierLow},
		{KindCrisis, 1.4, TierCritical},
		{KindCrisis, -0.2, TierLow},
		{KindPriority, 8.0, TierCritical},
		{KindPriority, 7.99, TierHigh},
		{KindPriority, 6, TierHigh},
		{KindPriority, 4, TierMedium},
		{KindPriority, 3.99, TierLow},
		{KindDemand, 240, TierCritical},
		{KindDemand, 239.9, TierHigh},
		{KindDemand, 180, TierHigh},
		{KindDemand, 120, TierMedium},
		{KindDemand, 58, TierLow},
		{KindCrisis, math.NaN(), TierLow},
		{Kind("weather"), 99, TierLow},
	}

	for _, tt := range tests {
		name := string(tt.kind) + "/" + formatBound(tt.metric)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.metric, tt.kind))
		})
	}
}

func TestClassify_MonotoneInScore(t *testing.T) {
	for _, kind := range Kinds {
		scale := ScaleMax(kind)
		prev := TierUnset
		for i := 0; i <= 200; i++ {
			tier := Classify(scale*float64(i)/200, kind)
			assert.GreaterOrEqual(t, int(tier), int(prev), "%s at step %d", kind, i)
			prev = tier
		}
		assert.Equal(t, TierCritical, prev, kind)
	}
}

func TestThresholdsFor(t *testing.T) {
	th, ok := ThresholdsFor(KindPriority)
	assert.True(t, ok)
	assert.Equal(t, Thresholds{ScaleMax: 10, Critical: 8, High: 6, Medium: 4}, th)

	_, ok = ThresholdsFor(Kind("weather"))
	assert.False(t, ok)
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		label string
		want  Tier
		ok    bool
	}{
		{"CRITICAL", TierCritical, true},
		{"high", TierHigh, true},
		{" Medium ", TierMedium, true},
		{"low", TierLow, true},
		{"SEVERE", TierUnset, false},
		{"", TierUnset, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseTier(tt.label)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestTier_JSON(t *testing.T) {
	b, err := TierHigh.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `"HIGH"`, string(b))

	var tier Tier
	assert.NoError(t, tier.UnmarshalJSON([]byte(`"critical"`)))
	assert.Equal(t, TierCritical, tier)
	assert.Error(t, tier.UnmarshalJSON([]byte(`"SEVERE"`)))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Crisis ")
	assert.NoError(t, err)
	assert.Equal(t, KindCrisis, k)

	_, err = ParseKind("weather")
	assert.Error(t, err)
}
