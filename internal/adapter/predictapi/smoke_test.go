//go:build smoke

package predictapi

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"github.com/couchcryptid/predict-dashboard-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit a running inference API and require PREDICT_API_URL.
// Run with: go test -tags=smoke ./internal/adapter/predictapi/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	baseURL := os.Getenv("PREDICT_API_URL")
	if baseURL == "" {
		t.Fatal("PREDICT_API_URL must be set to run smoke tests")
	}
	return NewClient(baseURL, 10*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
}

func TestSmoke_Health(t *testing.T) {
	c := smokeClient(t)
	require.NoError(t, c.Health(context.Background()))
}

func TestSmoke_CrisisRoundTrip(t *testing.T) {
	c := smokeClient(t)

	raw, err := c.Predict(context.Background(), crisisRequest())
	require.NoError(t, err)

	result, err := domain.Normalize(domain.KindCrisis, raw)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.PrimaryMetric, 0.0)
	assert.LessOrEqual(t, result.PrimaryMetric, 1.0)
	assert.NotEqual(t, domain.TierUnset, result.Tier)
}

func TestSmoke_PriorityRoundTrip(t *testing.T) {
	c := smokeClient(t)

	raw, err := c.Predict(context.Background(), domain.PriorityRequest{
		Domain:           "Health",
		District:         "Mumbai",
		IssueType:        "Hospital_Bed_ICU",
		Requests:         120,
		Complaints:       15,
		ResponseTime:     48,
		PopulationFactor: 2.5,
		ResolutionRate:   0.5,
		SeverityLevel:    "Critical",
	})
	require.NoError(t, err)

	result, err := domain.Normalize(domain.KindPriority, raw)
	require.NoError(t, err)
	assert.Len(t, result.Components, 4)
}
