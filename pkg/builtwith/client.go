// Package builtwith provides a client for the BuiltWith technology-lookup API.
package builtwith

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.builtwith.com/v20/api.json"

// Client looks up websites by the technology they run.
type Client interface {
	Lookup(ctx context.Context, keyword, technology string) ([]Site, error)
}

// Site is one domain returned by a technology lookup.
type Site struct {
	Domain string `json:"Domain"`
}

type lookupResponse struct {
	Results []Site `json:"Results"`
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

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a BuiltWith client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Lookup(ctx context.Context, keyword, technology string) ([]Site, error) {
	params := url.Values{}
	params.Set("KEY", c.apiKey)
	params.Set("LOOKUP", keyword)
	params.Set("Tech", technology)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "builtwith: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "builtwith: request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "builtwith: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("builtwith: status %d: %s", resp.StatusCode, string(body))
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "builtwith: unmarshal response")
	}
	return parsed.Results, nil
}
