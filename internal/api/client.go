// Package api is the HTTP client for the studio vendor's booking,
// performance and telemetry endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/otfkit/internal/auth"
	"github.com/julianstephens/otfkit/internal/cache"
	"github.com/julianstephens/otfkit/internal/config"
	"github.com/julianstephens/otfkit/internal/constants"
	"github.com/julianstephens/otfkit/internal/logger"
	"github.com/julianstephens/otfkit/internal/observability"
)

const maxErrorBody = 512

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	RequestID  string
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// CacheTTLs controls how long each cached resource stays fresh.
type CacheTTLs struct {
	Summary   time.Duration
	Telemetry time.Duration
}

type Client struct {
	baseURL          string
	ioBaseURL        string
	telemetryBaseURL string

	http   *http.Client
	tokens auth.TokenSource

	cache cache.Provider
	ttls  CacheTTLs
}

type Option func(*Client)

// WithCache enables read-through caching of performance summaries and telemetry.
func WithCache(p cache.Provider, ttls CacheTTLs) Option {
	return func(c *Client) {
		c.cache = p
		c.ttls = ttls
	}
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func NewClient(cfg config.APIConfig, tokens auth.TokenSource, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}
	c := &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		ioBaseURL:        strings.TrimRight(cfg.IOBaseURL, "/"),
		telemetryBaseURL: strings.TrimRight(cfg.TelemetryBaseURL, "/"),
		http:             &http.Client{Timeout: timeout},
		tokens:           tokens,
		ttls: CacheTTLs{
			Summary:   constants.SummaryCacheTTL,
			Telemetry: constants.SummaryCacheTTL,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, base, path string, query url.Values) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(constants.RequestIDHeader, requestID)
	if claims, err := auth.ParseClaims(token); err == nil {
		if claims.MemberUUID != "" {
			req.Header.Set("koji-member-id", claims.MemberUUID)
		}
		if claims.Email != "" {
			req.Header.Set("koji-member-email", claims.Email)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}
	logger.Debug("API request", "path", path, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &StatusError{
			Method:     http.MethodGet,
			URL:        base + path,
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
			Body:       snippet,
		}
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, base, path string, query url.Values, out any) error {
	body, err := c.get(ctx, base, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// cachedJSON serves out from the cache when possible and otherwise fetches
// and stores the raw body. Cache failures are logged and never fail a fetch.
func (c *Client) cachedJSON(ctx context.Context, key string, ttl time.Duration, base, path string, query url.Values, out any) error {
	if c.cache != nil {
		data, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			if jerr := json.Unmarshal(data, out); jerr == nil {
				observability.RecordCacheLookup(true)
				return nil
			}
			logger.Warn("Discarding unreadable cache entry", "key", key)
		case !errors.Is(err, cache.ErrNotFound):
			logger.Warn("Cache read failed", "key", key, "error", err)
		}
		observability.RecordCacheLookup(false)
	}

	body, err := c.get(ctx, base, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, ttl); err != nil {
			logger.Warn("Cache write failed", "key", key, "error", err)
		}
	}
	return nil
}
