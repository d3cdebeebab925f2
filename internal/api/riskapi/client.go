// Package riskapi talks to the address scoring backend.
package riskapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/addrsentry/addrsentry/internal/model"
)

// Client is the scoring backend API client. The base URL is passed per
// call: it comes from the settings store and the user can change it
// between scans.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Client
type ClientOptions struct {
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewClient creates a new scoring backend client with rate limiting.
func NewClient(opts ClientOptions) *Client {
	// Set default values if not provided
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), opts.RequestsPerSec),
		logger:  log.With().Str("component", "riskapi_client").Logger(),
	}
}

// Analyze fetches the risk assessment for one address. The request is
// single-shot: a failed scan is terminal and the user re-triggers it, so
// there is no retry here. Failures come back as an *HTTPStatusError, a
// *DecodeError, or a wrapped transport error.
func (c *Client) Analyze(ctx context.Context, base, addr string) (*model.RiskAssessment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := strings.TrimRight(base, "/") + "/analyze/" + url.PathEscape(addr)
	c.logger.Debug().Str("url", endpoint).Msg("Fetching assessment")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting assessment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readErrorDetail(resp.Body)
		c.logger.Warn().Int("status", resp.StatusCode).Str("detail", detail).Msg("Backend returned error status")
		return nil, &HTTPStatusError{Status: resp.StatusCode, Detail: detail}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var assessment model.RiskAssessment
	if err := json.Unmarshal(body, &assessment); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing assessment JSON")
		return nil, &DecodeError{Err: err}
	}
	assessment.Normalize()

	c.logger.Debug().
		Str("address", assessment.Address).
		Float64("risk_score", assessment.RiskScore).
		Msg("Fetched assessment")
	return &assessment, nil
}

// WaitReachable blocks until the backend answers any HTTP request, using
// exponential backoff up to maxWait. A response with any status counts:
// reachability is a transport question, not a correctness one.
func (c *Client) WaitReachable(ctx context.Context, base string, maxWait time.Duration) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Debug().Err(err).Msg("Backend not reachable yet")
			return err
		}
		resp.Body.Close()
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = maxWait

	if err := backoff.Retry(operation, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		return fmt.Errorf("backend unreachable after %s: %w", maxWait, err)
	}
	return nil
}

// readErrorDetail pulls a human-readable message out of an error body,
// best effort. Backends commonly use {"detail": ...} or {"error": ...}.
func readErrorDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
