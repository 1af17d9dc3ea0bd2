// Package api talks to the portfolio backend's JSON endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"folio.dev/internal/models"
)

// Endpoint names under /api/.
const (
	EndpointProjects       = "projects"
	EndpointSkills         = "skills"
	EndpointExperience     = "experience"
	EndpointEducation      = "education"
	EndpointCertifications = "certifications"
	EndpointStats          = "stats"
)

// DefaultTimeout bounds a single API call when none is configured.
const DefaultTimeout = 10 * time.Second

// ErrUnsuccessful is returned when the envelope reports success=false
// without a message of its own.
var ErrUnsuccessful = errors.New("failed to fetch data")

// Client issues GET requests against a backend base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client. A zero timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// HTTPClient exposes the underlying client so other callers share its
// timeout and transport.
func (c *Client) HTTPClient() *http.Client { return c.httpClient }

// URL returns the address of an endpoint.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + "/api/" + endpoint
}

// Fetch retrieves an endpoint and unwraps its envelope. It returns the data
// and true on success. Transport errors, undecodable bodies and envelopes
// with success=false are logged and reported as (zero, false); no error
// ever reaches the caller.
func Fetch[T any](ctx context.Context, c *Client, endpoint string) (T, bool) {
	var zero T
	env, err := get[T](ctx, c, endpoint)
	if err != nil {
		c.logger.Error("error fetching endpoint", zap.String("endpoint", endpoint), zap.Error(err))
		return zero, false
	}
	if !env.Success {
		err := ErrUnsuccessful
		if env.Message != "" {
			err = errors.New(env.Message)
		}
		c.logger.Error("error fetching endpoint", zap.String("endpoint", endpoint), zap.Error(err))
		return zero, false
	}
	c.logger.Debug("fetched endpoint", zap.String("endpoint", endpoint))
	return env.Data, true
}

func get[T any](ctx context.Context, c *Client, endpoint string) (models.Envelope[T], error) {
	var env models.Envelope[T]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(endpoint), nil)
	if err != nil {
		return env, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return env, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	// The envelope is authoritative; the status code is not consulted.
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return env, fmt.Errorf("decoding %s response (status %d): %w", endpoint, resp.StatusCode, err)
	}
	return env, nil
}
