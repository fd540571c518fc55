package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarPercent(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		scale float64
		want  float64
	}{
		{"above scale clamps", 1.4, 1, 100},
		{"negative clamps", -0.2, 1, 0},
		{"midpoint", 5, 10, 50},
		{"demand", 150, 300, 50},
		{"zero scale", 5, 0, 0},
		{"NaN score", math.NaN(), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BarPercent(tt.score, tt.scale), 1e-9)
		})
	}
}

func TestPalette_Encode(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		tier  Tier
		color string
		stops []string
	}{
		{"crisis critical", KindCrisis, TierCritical, "destructive", []string{"destructive", "destructive/70"}},
		{"crisis high", KindCrisis, TierHigh, "secondary", []string{"secondary", "secondary/70"}},
		{"crisis medium", KindCrisis, TierMedium, "default", []string{"primary", "primary/70"}},
		{"crisis low", KindCrisis, TierLow, "health", []string{"health", "health/70"}},
		{"priority low", KindPriority, TierLow, "outline", []string{"health", "health/70"}},
		{"demand low", KindDemand, TierLow, "health", []string{"health", "health/70"}},
		{"unclassified", KindPriority, TierUnset, "muted", []string{"muted", "muted"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := PaletteFor(tt.kind).Encode(tt.tier, 0.5, 1)
			assert.Equal(t, tt.color, enc.ColorToken)
			assert.Equal(t, tt.stops, enc.GradientStops)
			assert.InDelta(t, 50, enc.BarPercent, 1e-9)
		})
	}
}

func TestPresent_Fallbacks(t *testing.T) {
	crisis, err := Fallback(KindCrisis)
	require.NoError(t, err)
	enc := Present(crisis)
	assert.Equal(t, "secondary", enc.ColorToken)
	assert.InDelta(t, 78, enc.BarPercent, 1e-9)

	priority, err := Fallback(KindPriority)
	require.NoError(t, err)
	enc = Present(priority)
	assert.Equal(t, "secondary", enc.ColorToken)
	assert.InDelta(t, 87, enc.BarPercent, 1e-9)

	demand, err := Fallback(KindDemand)
	require.NoError(t, err)
	enc = Present(demand)
	assert.Equal(t, "destructive", enc.ColorToken)
	assert.InDelta(t, 245.0/300*100, enc.BarPercent, 1e-9)
}

func TestComponentBars(t *testing.T) {
	bars := ComponentBars(map[string]float64{"urgency": 9.2, "impact": 12, "resources": -1}, 10)
	assert.InDelta(t, 92, bars["urgency"], 1e-9)
	assert.InDelta(t, 100, bars["impact"], 1e-9)
	assert.InDelta(t, 0, bars["resources"], 1e-9)

	assert.Nil(t, ComponentBars(nil, 10))
}
