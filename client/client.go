// Package client talks to the listing backend. All listing data enters
// the pipeline through here; nothing else in the module performs HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"rental-radar/config"
	"rental-radar/models"
	"rental-radar/utils"
)

// Sentinel errors for the two failure families callers branch on: a
// request that never completed versus a payload the backend marked bad.
var (
	ErrTimeout  = errors.New("request timed out")
	ErrUpstream = errors.New("upstream error")
)

// RateLimitedError is returned when a refresh is rejected with 429.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// Client fetches listing collections, refresh triggers and the
// dashboard payload from the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      *utils.RetryConfig
	logger     *utils.Logger
}

// New builds a client from the loaded configuration.
func New(cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout(),
		},
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Duration(cfg.RetryBaseMs) * time.Millisecond,
			Logger:      logger,
		},
		logger: logger,
	}
}

// FetchListings GETs a listings endpoint (e.g. /api/apartments/portal)
// and returns its envelope. Transient failures are retried with
// exponential back-off; an envelope carrying an error is not.
func (c *Client) FetchListings(ctx context.Context, path string) (*models.ListingsResponse, error) {
	var out *models.ListingsResponse
	err := c.retry.Do(ctx, "fetch "+path, func() error {
		resp, err := c.get(ctx, path)
		if err != nil {
			return err
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Error != "" || (out.Success != nil && !*out.Success) {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		return nil, fmt.Errorf("%s: %s: %w", path, msg, ErrUpstream)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string) (*models.ListingsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, string(body))
	}

	var out models.ListingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	return &out, nil
}

// RefreshCollection POSTs a per-collection refresh endpoint. A 429 with
// Retry-After becomes a RateLimitedError; refreshes are never retried
// automatically because the backend enforces its own cadence.
func (c *Client) RefreshCollection(ctx context.Context, path string) (*models.ListingsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitedError{RetryAfter: retryAfter(resp)}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, string(body))
	}

	var out models.ListingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	if out.Error != "" || (out.Success != nil && !*out.Success) {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		return nil, fmt.Errorf("%s: %s: %w", path, msg, ErrUpstream)
	}
	return &out, nil
}

// TriggerRefresh POSTs the global /api/refresh endpoint.
func (c *Client) TriggerRefresh(ctx context.Context) (*models.RefreshResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/refresh", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError("/api/refresh", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitedError{RetryAfter: retryAfter(resp)}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("/api/refresh: status %d: %s", resp.StatusCode, string(body))
	}

	var out models.RefreshResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("/api/refresh: decode: %w", err)
	}
	return &out, nil
}

// FetchDashboard GETs /api/dashboard. Partial failures are reported in
// the payload's Errors field, not as a transport error.
func (c *Client) FetchDashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	err := c.retry.Do(ctx, "fetch /api/dashboard", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/dashboard", nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return classifyTransportError("/api/dashboard", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("/api/dashboard: status %d: %s", resp.StatusCode, string(body))
		}
		return json.NewDecoder(resp.Body).Decode(&out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func classifyTransportError(path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %v: %w", path, err, ErrTimeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s: %v: %w", path, err, ErrTimeout)
	}
	return fmt.Errorf("%s: %w", path, err)
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 60 * time.Second
}
