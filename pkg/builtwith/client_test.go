package builtwith

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("KEY"))
		assert.Equal(t, "organic soap", q.Get("LOOKUP"))
		assert.Equal(t, "Shopify", q.Get("Tech"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Results":[{"Domain":"acme.com"},{"Domain":"barsoap.com"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	sites, err := client.Lookup(context.Background(), "organic soap", "Shopify")

	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "acme.com", sites[0].Domain)
	assert.Equal(t, "barsoap.com", sites[1].Domain)
}

func TestLookup_EmptyResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Results":[]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	sites, err := client.Lookup(context.Background(), "organic soap", "Shopify")

	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestLookup_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"Errors":[{"Message":"invalid key"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Lookup(context.Background(), "organic soap", "Shopify")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestLookup_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Lookup(context.Background(), "organic soap", "Shopify")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewClient("my-key")
	hc := c.(*httpClient)
	assert.Equal(t, "my-key", hc.apiKey)
	assert.Equal(t, defaultBaseURL, hc.baseURL)
	assert.NotNil(t, hc.http)
}
