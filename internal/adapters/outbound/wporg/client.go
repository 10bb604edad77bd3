package wporg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/pluginpulse/pluginpulse/internal/domain"
	"github.com/pluginpulse/pluginpulse/internal/log"
)

const UserAgent = "pluginpulse-cli/1.0"

// Client talks to the WordPress.org Plugin API. It makes exactly one attempt
// per call; the cache layer is the real protection against the undocumented
// upstream rate limit, the client-side limiter is just a backstop.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests use this).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each outbound request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRateLimit caps outbound requests per minute. Zero disables the limiter.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 10)
	}
}

// New creates a client for the given API base URL, defaulting to the public
// WordPress.org endpoint.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = domain.DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: domain.DefaultTimeoutSecs * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(domain.DefaultRatePerMinute)/60.0), 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a client honoring the tool configuration.
func NewFromConfig(cfg domain.Config) *Client {
	return New(cfg.API.BaseURL,
		WithTimeout(cfg.Timeout()),
		WithRateLimit(cfg.API.RatePerMinute),
	)
}

// Search runs a query_plugins request and returns the normalized records.
// Records failing minimal shape validation are dropped, the rest survive.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) ([]domain.PluginInfo, error) {
	q := query.Normalize()
	params := url.Values{}
	params.Set("action", "query_plugins")
	params.Set("request[search]", q.Term)
	params.Set("request[page]", strconv.Itoa(q.Page))
	params.Set("request[per_page]", strconv.Itoa(q.PerPage))

	var resp searchResponse
	if err := c.doJSON(ctx, "search", params, &resp); err != nil {
		return nil, err
	}

	plugins := make([]domain.PluginInfo, 0, len(resp.Plugins))
	dropped := 0
	for _, rec := range resp.Plugins {
		if !rec.valid() {
			dropped++
			continue
		}
		plugins = append(plugins, rec.toDomain())
	}
	if dropped > 0 {
		log.Warn("discarded malformed upstream records", "count", dropped, "term", q.Term)
	}
	return plugins, nil
}

// Info runs a plugin_information request for a single slug.
func (c *Client) Info(ctx context.Context, slug string) (*domain.PluginInfo, error) {
	params := url.Values{}
	params.Set("action", "plugin_information")
	params.Set("request[slug]", slug)

	var rec pluginRecord
	if err := c.doJSON(ctx, "info", params, &rec); err != nil {
		return nil, err
	}
	if rec.Error != "" || !rec.valid() {
		return nil, &APIError{Op: "info", URL: c.baseURL, Err: fmt.Errorf("%w: %s", ErrNotFound, slug)}
	}
	info := rec.toDomain()
	return &info, nil
}

// doJSON performs one GET and decodes the response, mapping every failure
// mode to a typed error. No retries here: retry and stale-fallback policy
// belongs to the caller.
func (c *Client) doJSON(ctx context.Context, op string, params url.Values, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &APIError{Op: op, URL: c.baseURL, Err: fmt.Errorf("%w: rate limiter: %v", ErrUnavailable, err)}
		}
	}

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &APIError{Op: op, URL: reqURL, Err: err}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	log.Debug("plugin api request", "op", op, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, URL: reqURL, Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &APIError{Op: op, URL: reqURL, Status: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode >= 500:
		return &APIError{Op: op, URL: reqURL, Status: resp.StatusCode, Err: ErrUnavailable}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &APIError{Op: op, URL: reqURL, Status: resp.StatusCode, Err: ErrBadStatus}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &APIError{Op: op, URL: reqURL, Status: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return nil
}
