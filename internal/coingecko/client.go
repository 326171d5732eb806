// Package coingecko is the HTTP collaborator for the CoinGecko v3 API.
// It owns timeouts, retries with backoff and client-side rate limiting;
// callers see typed, validated responses or model errors.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"pairScope/internal/model"
)

const (
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	proHeader  = "x-cg-pro-api-key"
	demoHeader = "x-cg-demo-api-key"

	maxErrorBody = 512
)

// ClientConfig holds configuration for the CoinGecko client.
type ClientConfig struct {
	BaseURL string
	APIKey  string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// MaxRetries is the number of extra attempts for transport failures,
	// HTTP 429 and 5xx. Zero disables retries.
	MaxRetries   int
	RetryBackoff time.Duration

	// RateLimitPerMin caps outgoing requests across all goroutines.
	RateLimitPerMin int

	Logger     *zap.Logger
	HTTPClient *http.Client
}

// ClientConfigDefaults returns a config suited to the public API tier.
func ClientConfigDefaults() ClientConfig {
	return ClientConfig{
		BaseURL:         DefaultBaseURL,
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryBackoff:    time.Second,
		RateLimitPerMin: 30,
	}
}

// Client issues GET requests against the provider and decodes JSON bodies.
type Client struct {
	baseURL      string
	apiKey       string
	keyHeader    string
	http         *http.Client
	limiter      *rate.Limiter
	maxRetries   int
	retryBackoff time.Duration
	logger       *zap.Logger
}

// NewClient builds a Client. Zero fields other than MaxRetries fall back to
// ClientConfigDefaults.
func NewClient(cfg ClientConfig) (*Client, error) {
	defaults := ClientConfigDefaults()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaults.RetryBackoff
	}
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = defaults.RateLimitPerMin
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must be >= 0")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", cfg.BaseURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	keyHeader := demoHeader
	if strings.HasPrefix(base.Host, "pro-api.") {
		keyHeader = proHeader
	}

	perSecond := float64(cfg.RateLimitPerMin) / 60.0
	burst := max(1, cfg.RateLimitPerMin/10)

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		keyHeader:    keyHeader,
		http:         httpClient,
		limiter:      rate.NewLimiter(rate.Limit(perSecond), burst),
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		logger:       logger.With(zap.String("component", "coingecko")),
	}, nil
}

// Get requests path with query params and decodes the JSON body into out.
// Non-success responses and transport failures are *model.UpstreamError;
// an undecodable body is *model.DecodeError.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	onRetry := func(attempt int, err error, delay time.Duration) {
		c.logger.Warn("request failed, retrying",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", c.maxRetries),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
	}

	return withRetry(ctx, c.maxRetries, c.retryBackoff, onRetry, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		return c.do(ctx, path, fullURL, out)
	})
}

func (c *Client) do(ctx context.Context, path, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(c.keyHeader, c.apiKey)
	}

	c.logger.Debug("request", zap.String("url", fullURL))

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &model.UpstreamError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &model.UpstreamError{
			URL:        fullURL,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &model.DecodeError{Endpoint: path, Reason: "invalid json body", Err: err}
	}
	return nil
}

// errorMessage extracts the provider's error text from either of its error
// envelopes, falling back to the raw body.
func errorMessage(body []byte) string {
	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Status.ErrorMessage != "" {
			return envelope.Status.ErrorMessage
		}
	}
	return strings.TrimSpace(string(body))
}
