// Package recruitu is the HTTP client for the external lateral-recruiting
// search API. One outbound call per invocation, no internal retries:
// retry policy belongs to the caller.
package recruitu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/recruitu/lateral/internal/domain"
	"github.com/recruitu/lateral/internal/domain/profile"
	"github.com/recruitu/lateral/internal/domain/search/query"
	"github.com/recruitu/lateral/internal/domain/search/result"
	"github.com/recruitu/lateral/internal/metrics"
	"github.com/recruitu/lateral/internal/validate"
)

const (
	searchPath  = "/api/lateral-recruiting"
	profilePath = "/api/lateral-recruiting/people/search"

	defaultTimeout = 10 * time.Second

	// maxResponseBytes caps how much of an upstream body is read.
	maxResponseBytes = 8 << 20
)

// Config holds the upstream connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client talks to the recruiting API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates an upstream client. Every call is bounded by the
// configured timeout and fails with domain.ErrUpstreamUnavailable on
// expiry rather than blocking.
func NewClient(cfg *Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid upstream base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(base.String(), "/"),
		logger:     log,
	}, nil
}

// Search executes one canonical query against the search endpoint and
// returns the validated envelope. Failure is one of
// domain.ErrUpstreamUnavailable, domain.UpstreamStatusError, or
// domain.PayloadError.
func (c *Client) Search(ctx context.Context, q query.Canonical) (result.Envelope, error) {
	rawURL := c.baseURL + searchPath + "?" + q.Values().Encode()

	body, err := c.get(ctx, "search", rawURL)
	if err != nil {
		return result.Envelope{}, err
	}

	env, err := validate.SearchEnvelope(body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("search", "invalid_payload").Inc()
		c.logger.Warn("search payload rejected", zap.Error(err))
		return result.Envelope{}, err
	}

	return env, nil
}

// ProfilesByID fetches full profiles for the given identifiers.
// Identifiers are serialized as a single bracketed list parameter,
// matching the upstream contract.
func (c *Client) ProfilesByID(ctx context.Context, ids []string) (profile.Envelope, error) {
	if len(ids) == 0 {
		return profile.Envelope{}, nil
	}

	v := url.Values{}
	v.Set("ids", "["+strings.Join(ids, ",")+"]")
	rawURL := c.baseURL + profilePath + "?" + v.Encode()

	body, err := c.get(ctx, "profiles", rawURL)
	if err != nil {
		return profile.Envelope{}, err
	}

	env, err := validate.ProfileEnvelope(body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("profiles", "invalid_payload").Inc()
		c.logger.Warn("profile payload rejected", zap.Error(err))
		return profile.Envelope{}, err
	}

	return env, nil
}

func (c *Client) get(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
			return nil, fmt.Errorf("request canceled: %w", ctxErr)
		}
		return nil, fmt.Errorf("%s request failed: %w: %s", endpoint, domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "upstream_error").Inc()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, domain.NewUpstreamStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		return nil, fmt.Errorf("read %s response: %w: %s", endpoint, domain.ErrUpstreamUnavailable, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	return body, nil
}
