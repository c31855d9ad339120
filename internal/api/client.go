// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP/JSON client for the StudySync backend and the
// AI assistant service.
//
// Every request is rate limited, tagged with an X-Request-ID and bounded by
// the configured timeout. Group list results are cached for a short TTL and
// the cache is flushed whenever a group is created.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jeranaias/studysync-tui/internal/config"
)

// Endpoint paths relative to the base URL. Login and register paths come
// from config.
const (
	GroupsPath       = "/api/groups"
	MyGroupsPath     = "/api/groups/mine"
	SearchGroupsPath = "/api/groups/search"
	AssistantPath    = "/chat/query"
)

const (
	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 4 * 1024 * 1024

	// RequestIDHeader carries a per-request uuid for log correlation.
	RequestIDHeader = "X-Request-ID"

	// UsernameTakenMessage is the literal the backend sends when a
	// registration collides with an existing account.
	UsernameTakenMessage = "Username already exists"

	cacheKeyAll = "groups:all"
)

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL      string
	assistantURL string
	loginPath    string
	registerPath string
	defaultImage string

	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Cache // nil when caching is disabled
	logger     *slog.Logger
}

// New creates a client from the API and UI sections of cfg.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	api := cfg.API
	defaultImage := cfg.UI.DefaultImage
	if defaultImage == "" {
		defaultImage = config.Default().UI.DefaultImage
	}

	limit := rate.Inf
	if api.RequestsPerSecond > 0 {
		limit = rate.Limit(api.RequestsPerSecond)
	}
	burst := api.Burst
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		baseURL:      strings.TrimRight(api.BaseURL, "/"),
		assistantURL: strings.TrimRight(api.AssistantURL, "/"),
		loginPath:    api.LoginPath,
		registerPath: api.RegisterPath,
		defaultImage: defaultImage,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.With("component", "api"),
	}
	if ttl := cfg.CacheTTL(); ttl > 0 {
		c.cache = cache.New(ttl, 2*ttl)
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.httpClient = h
	return c
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// InvalidateCache drops every cached list.
func (c *Client) InvalidateCache() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// request describes a single call.
type request struct {
	method string
	url    string
	token  string
	body   any
}

// do sends req and decodes a 2xx JSON body into out (when non-nil).
// Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, req request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("request failed",
			"method", req.method, "url", req.url, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := readResponse(resp)
	if err != nil {
		return err
	}

	c.logger.Debug("request",
		"method", req.method,
		"url", req.url,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

// readResponse reads the body up to MaxResponseSize.
func readResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(data) > MaxResponseSize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrMalformedResponse, MaxResponseSize)
	}
	return data, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// cached returns a cached group list.
func (c *Client) cached(key string) ([]GroupDTO, bool) {
	if c.cache == nil {
		return nil, false
	}
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	groups, ok := v.([]GroupDTO)
	return groups, ok
}

func (c *Client) store(key string, groups []GroupDTO) {
	if c.cache != nil {
		c.cache.SetDefault(key, groups)
	}
}

func searchKey(q string) string {
	return "groups:search:" + url.QueryEscape(q)
}

// isNotFound reports whether err is a 404 from the backend.
func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
