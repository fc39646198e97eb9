package scrape

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipcube/leads-cli/pkg/jina"
)

type stubScraper struct {
	name     string
	supports bool
	result   *Result
	err      error
	calls    int
}

func (s *stubScraper) Name() string         { return s.name }
func (s *stubScraper) Supports(string) bool { return s.supports }
func (s *stubScraper) Scrape(context.Context, string) (*Result, error) {
	s.calls++
	return s.result, s.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &stubScraper{name: "first", supports: true, result: &Result{Source: "first"}}
	second := &stubScraper{name: "second", supports: true, result: &Result{Source: "second"}}
	c := NewChain(first, second)

	result, err := c.Scrape(context.Background(), "https://acme.com")
	require.NoError(t, err)
	assert.Equal(t, "first", result.Source)
	assert.Zero(t, second.calls)
}

func TestChainFallsThrough(t *testing.T) {
	first := &stubScraper{name: "first", supports: true, err: errors.New("boom")}
	second := &stubScraper{name: "second", supports: true, result: &Result{Source: "second"}}
	c := NewChain(first, second)

	result, err := c.Scrape(context.Background(), "https://acme.com")
	require.NoError(t, err)
	assert.Equal(t, "second", result.Source)
}

func TestChainSkipsUnsupported(t *testing.T) {
	skipped := &stubScraper{name: "skipped", supports: false, result: &Result{Source: "skipped"}}
	used := &stubScraper{name: "used", supports: true, result: &Result{Source: "used"}}
	c := NewChain(skipped, used)

	result, err := c.Scrape(context.Background(), "https://acme.com")
	require.NoError(t, err)
	assert.Equal(t, "used", result.Source)
	assert.Zero(t, skipped.calls)
}

func TestChainAllFail(t *testing.T) {
	c := NewChain(&stubScraper{name: "only", supports: true, err: errors.New("boom")})

	_, err := c.Scrape(context.Background(), "https://acme.com")
	assert.Error(t, err)
}

func TestNeedsFallback(t *testing.T) {
	long := func(s string) string {
		for len(s) < 150 {
			s += " more real page content here"
		}
		return s
	}

	tests := []struct {
		name string
		resp *jina.ReadResponse
		want bool
	}{
		{"nil response", nil, true},
		{"error code", &jina.ReadResponse{Code: 451}, true},
		{"too short", &jina.ReadResponse{Code: 200, Data: jina.ReadData{Content: "tiny"}}, true},
		{"short challenge page", &jina.ReadResponse{Code: 200, Data: jina.ReadData{
			Content: long("Just a moment... checking your browser"),
		}}, true},
		{"healthy page", &jina.ReadResponse{Code: 200, Data: jina.ReadData{
			Content: long("Acme sells handmade soap to customers across the country."),
		}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, needsFallback(tt.resp))
		})
	}
}

func TestCircuitBreakerOpens(t *testing.T) {
	cb := newCircuitBreaker(3, time.Minute, time.Minute)

	cb.recordFailure()
	cb.recordFailure()
	assert.False(t, cb.isOpen())

	cb.recordFailure()
	assert.True(t, cb.isOpen())
}

func TestCircuitBreakerSuccessResets(t *testing.T) {
	cb := newCircuitBreaker(3, time.Minute, time.Minute)

	cb.recordFailure()
	cb.recordFailure()
	cb.recordSuccess()
	cb.recordFailure()
	assert.False(t, cb.isOpen(), "success resets the consecutive-failure count")
}
