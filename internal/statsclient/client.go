package statsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/metrics"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

const serviceName = "stats-api"

// Source supplies aggregate datasets for a category.
type Source interface {
	Distribution(ctx context.Context, category models.Category) ([]models.DataPoint, error)
}

// Client talks to the stats API over HTTP. It never retries.
type Client struct {
	BaseURL string
	Client  *http.Client
	log     *logger.Logger
}

var _ Source = (*Client)(nil)

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		log:     logger.GetLogger().WithContext("component", "stats_client"),
	}
}

// Distribution issues exactly one GET to the category's endpoint. A reply
// that is not a 2xx success envelope yields an *errors.APIError; a transport
// or decode failure yields an *errors.ServiceError.
func (c *Client) Distribution(ctx context.Context, category models.Category) ([]models.DataPoint, error) {
	if !category.Valid() {
		return nil, errors.NewValidationError("unknown category", "category", string(category))
	}

	endpoint := c.BaseURL + category.Endpoint()
	metrics.IncrementFetches()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		metrics.IncrementFetchFailures()
		return nil, errors.NewServiceError("build request", serviceName, "distribution", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		metrics.IncrementFetchFailures()
		c.log.Error("stats_fetch_failed", "category", category, "endpoint", endpoint, "error", err.Error())
		return nil, errors.NewServiceError("request failed", serviceName, "distribution", err)
	}
	defer resp.Body.Close()
	metrics.RecordLatency(time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncrementFetchFailures()
		return nil, errors.NewServiceError("read response", serviceName, "distribution", err)
	}

	var envelope models.DistributionResponse
	decodeErr := json.Unmarshal(body, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.IncrementFetchFailures()
		msg := fmt.Sprintf("stats API returned %d", resp.StatusCode)
		if decodeErr == nil && envelope.Message != "" {
			msg += ": " + envelope.Message
		}
		c.log.Warn("stats_fetch_rejected", "category", category, "status", resp.StatusCode)
		return nil, errors.NewAPIError(msg, resp.StatusCode, map[string]any{"endpoint": endpoint})
	}

	if decodeErr != nil {
		metrics.IncrementFetchFailures()
		return nil, errors.NewServiceError("decode response", serviceName, "distribution", decodeErr)
	}

	if !envelope.OK() {
		metrics.IncrementFetchFailures()
		c.log.Warn("stats_fetch_unsuccessful", "category", category, "status", envelope.Status)
		return nil, errors.NewAPIError(fmt.Sprintf("stats API status %q", envelope.Status), resp.StatusCode, map[string]any{
			"endpoint": endpoint,
			"status":   envelope.Status,
		})
	}

	c.log.Debug("stats_fetched", "category", category, "points", len(envelope.Data))
	if envelope.Data == nil {
		return []models.DataPoint{}, nil
	}
	// counts are never negative
	for i := range envelope.Data {
		if envelope.Data[i].Count < 0 {
			c.log.Warn("stats_negative_count", "category", category, "label", envelope.Data[i].Label(category), "count", envelope.Data[i].Count)
			envelope.Data[i].Count = 0
		}
	}
	return envelope.Data, nil
}

// Health reports the API's /healthz body.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, errors.NewServiceError("request failed", serviceName, "health", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewServiceError("decode response", serviceName, "health", err)
	}
	if resp.StatusCode != http.StatusOK {
		return body, errors.NewAPIError(fmt.Sprintf("health returned %d", resp.StatusCode), resp.StatusCode, nil)
	}
	return body, nil
}
