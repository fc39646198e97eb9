// Package googlecse provides a client for the Google Custom Search JSON API.
package googlecse

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Client performs Custom Search queries against a configured search engine.
type Client interface {
	Search(ctx context.Context, cx, query string, opts ...SearchOption) ([]Result, error)
}

// Result is a single search result.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Items []Result `json:"items"`
}

// SearchOption configures a search request.
type SearchOption func(*searchOpts)

type searchOpts struct {
	num   int
	start int
}

// WithNum sets the number of results to request (API max 10).
func WithNum(n int) SearchOption {
	return func(o *searchOpts) { o.num = n }
}

// WithStart sets the 1-based result offset for pagination.
func WithStart(start int) SearchOption {
	return func(o *searchOpts) { o.start = start }
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = u }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithRateLimit throttles queries to rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Custom Search client. Queries are throttled to one
// per second by default; the free tier rate-limits aggressively.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

func (c *httpClient) Search(ctx context.Context, cx, query string, opts ...SearchOption) ([]Result, error) {
	so := &searchOpts{num: 10}
	for _, opt := range opts {
		opt(so)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "googlecse: rate limit")
		}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", cx)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(so.num))
	if so.start > 0 {
		params.Set("start", strconv.Itoa(so.start))
	}

	reqURL := c.baseURL + "?" + params.Encode()

	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "googlecse: create request")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				return nil, eris.Wrap(readErr, "googlecse: read response body")
			}

			if resp.StatusCode == http.StatusOK {
				var parsed searchResponse
				if err := json.Unmarshal(body, &parsed); err != nil {
					return nil, eris.Wrap(err, "googlecse: unmarshal response")
				}
				return parsed.Items, nil
			}

			lastErr = eris.Errorf("googlecse: status %d: %s", resp.StatusCode, string(body))
			if !retryableStatusCode(resp.StatusCode) {
				return nil, lastErr
			}
		}

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return nil, eris.Wrap(lastErr, "googlecse: request failed")
}
