// Package http implements the authenticated transport for the CV-CUE API:
// it attaches the session cookie, retries exactly once on a detected auth
// failure, and optionally serves GETs from a response cache.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/netkit-io/cvcue/internal/auth"
	"github.com/netkit-io/cvcue/internal/constants"
	"github.com/netkit-io/cvcue/pkg/cvcue"
)

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client issues authenticated requests against the API base URL.
type Client struct {
	baseURL    string
	sessions   auth.SessionManager
	httpClient *retryablehttp.Client
	logger     cvcue.Logger
	debug      bool
	userAgent  string
	cache      cvcue.Cache
	cacheTTL   time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a structured logger.
func WithLogger(logger cvcue.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables transport-level retries for 5xx/429 responses and
// connection errors. This retry budget is independent of the single
// auto-relogin retry on 401.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds each HTTP round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithCache serves GET responses from the cache and stores fresh 2xx bodies
// with the given TTL. Session endpoints are never cached.
func WithCache(cache cvcue.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache

		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// NewClient creates a new API client. A nil session manager sends requests
// without authentication, which is useful for tests.
func NewClient(baseURL string, sessions auth.SessionManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		sessions:   sessions,
		httpClient: retryClient,
		cacheTTL:   constants.DefaultCacheTTL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do issues the request, ensuring an active session first and retrying
// exactly once with a forced relogin when the server still reports 401.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	cacheKey := c.cacheKey(req)
	if cacheKey != "" {
		entry, err := c.cache.Get(ctx, cacheKey)
		if err == nil {
			return &Response{StatusCode: http.StatusOK, Body: entry.Data}, nil
		}
	}

	if c.sessions != nil {
		err := c.sessions.EnsureActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("ensuring active session: %w", err)
		}
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	// Exactly one relogin retry on an auth failure despite the pre-check.
	if resp.StatusCode == http.StatusUnauthorized && c.sessions != nil {
		err = c.sessions.Login(ctx)
		if err != nil {
			return nil, fmt.Errorf("re-authenticating after expired session: %w", err)
		}

		resp, err = c.send(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, &cvcue.APIError{
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			Path:       req.Path,
			Body:       string(resp.Body),
		}
	}

	if cacheKey != "" {
		_ = c.cache.Set(ctx, cacheKey, &cvcue.CacheEntry{
			Data:      resp.Body,
			ExpiresAt: time.Now().Add(c.cacheTTL),
			ETag:      resp.Headers.Get("ETag"),
		})
	}

	return resp, nil
}

// cacheKey returns the cache key for the request, or "" when the request is
// not cacheable.
func (c *Client) cacheKey(req *Request) string {
	if c.cache == nil || req.Method != http.MethodGet {
		return ""
	}

	if strings.HasPrefix(req.Path, "/session") {
		return ""
	}

	key := req.Path
	if len(req.Query) > 0 {
		key += "?" + req.Query.Encode()
	}

	return key
}

// send performs a single HTTP round trip. Transport errors propagate
// unwrapped.
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"bytes":  len(body),
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

// buildRequest constructs a fresh retryable request so the auth retry can
// resend the original request unchanged.
func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body io.Reader

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("serializing request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.sessions != nil {
		if cookie := c.sessions.Cookie(); cookie != nil {
			httpReq.AddCookie(cookie)
		}
	}

	return httpReq, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
