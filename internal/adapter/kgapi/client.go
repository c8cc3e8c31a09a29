// Package kgapi is the HTTP client for the knowledge-graph mock API. One
// client serves all four domains. Lookups are rate limited client-side and
// memoized in an LRU cache, since a single query often asks for the same
// symbol or artist several times while a fact sheet is assembled.
package kgapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// Config holds the knowledge-graph client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond throttles outbound lookups. Zero disables throttling.
	RequestsPerSecond float64
	Burst             int
	// CacheSize is the response cache capacity in entries.
	CacheSize int
	// HTTPClient overrides the default client, e.g. to share a transport pool.
	HTTPClient *http.Client
}

// Client calls the knowledge-graph API. It implements the finance, music,
// movie and sports source interfaces.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *lru.Cache[string, []byte]
	logger     *slog.Logger
}

// NewClient creates a knowledge-graph API client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1024
	}
	cache, err := lru.New[string, []byte](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		limiter:    limiter,
		cache:      cache,
		logger:     logger,
	}, nil
}

// call POSTs the payload to path and returns the raw "result" field. A JSON
// null result comes back as nil raw message, meaning "no data for this key".
func (c *Client) call(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	cacheKey := path + "\x00" + string(body)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return json.RawMessage(cached), nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait aborted: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call knowledge source %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, path)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	c.logger.Debug("knowledge_lookup_completed",
		slog.String("path", path),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	result := normalizeNull(envelope.Result)
	c.cache.Add(cacheKey, []byte(result))
	return result, nil
}

// query is the common single-argument lookup form.
func (c *Client) query(ctx context.Context, path string, value any) (json.RawMessage, error) {
	return c.call(ctx, path, map[string]any{"query": value})
}

func normalizeNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}

// decodeResult unmarshals a non-null result into target. It reports whether
// any data was present.
func decodeResult(raw json.RawMessage, target any) (bool, error) {
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("failed to decode result: %w", err)
	}
	return true, nil
}

// decodeFloat handles numeric fields the source sometimes serves as strings.
// Missing or non-numeric values yield nil.
func decodeFloat(raw json.RawMessage) *float64 {
	if raw == nil {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			return &parsed
		}
	}
	return nil
}
