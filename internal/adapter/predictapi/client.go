package predictapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"github.com/couchcryptid/predict-dashboard-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// maxBodyBytes caps how much of a response is read. Larger bodies are
// treated as malformed.
const maxBodyBytes = 1 << 20

// Client calls the inference API. Each Predict is exactly one HTTP attempt
// bounded by the client timeout; nothing is retried or cached.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
}

// NewClient creates an inference API client. baseURL must not end in a slash.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
}

// Predict posts req to /api/v1/predict/{kind} and returns the raw body. All
// failures are reported as *domain.TransportError.
func (c *Client) Predict(ctx context.Context, req domain.PredictionRequest) (domain.RawResponse, error) {
	kind := req.Kind()
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", kind, err)
	}

	start := c.clock.Now()
	raw, status, err := c.doRequest(ctx, fmt.Sprintf("%s/api/v1/predict/%s", c.baseURL, kind), body)
	elapsed := c.clock.Since(start)
	c.metrics.UpstreamDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())

	c.logger.Debug("inference request",
		"kind", kind,
		"district", req.Area(),
		"status", status,
		"duration", elapsed,
		"ok", err == nil,
	)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Health probes GET /health. Any non-2xx answer or transport failure is an error.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("inference api unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string, body []byte) (domain.RawResponse, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &domain.TransportError{Kind: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, resp.StatusCode, &domain.TransportError{Kind: domain.ServerError, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, resp.StatusCode, &domain.TransportError{Kind: classify(err), Err: err}
	}
	if len(data) > maxBodyBytes {
		return nil, resp.StatusCode, &domain.TransportError{
			Kind: domain.MalformedJSON,
			Err:  fmt.Errorf("response exceeds %d bytes", maxBodyBytes),
		}
	}
	if !json.Valid(data) {
		return nil, resp.StatusCode, &domain.TransportError{
			Kind: domain.MalformedJSON,
			Err:  errors.New("response is not valid JSON"),
		}
	}
	return domain.RawResponse(data), resp.StatusCode, nil
}

// classify tags a failed round trip. Deadlines, from either the context or
// the client timeout, are Timeout; everything else means the API could not
// be reached.
func classify(err error) domain.TransportErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.Timeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.Timeout
	}
	return domain.NetworkUnavailable
}
