package database

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"signal/analytics/config"
	"signal/analytics/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *TinybirdClient {
	return NewTinybirdClient(&config.TinybirdConfig{
		APIURL:              baseURL,
		Token:               "test-token",
		QueryTimeoutSeconds: 10,
	})
}

type testRow struct {
	Section   string `json:"section"`
	Pageviews uint64 `json:"pageviews"`
}

func TestQueryPipeRejectsInvalidNameBeforeNetwork(t *testing.T) {
	var calls atomic.Int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer backend.Close()

	client := newTestClient(backend.URL)

	for _, pipe := range []string{"bad name!", "../v0/tokens", "pipe;drop", ""} {
		_, err := QueryPipe[testRow](context.Background(), client, pipe, nil)
		require.ErrorIs(t, err, domain.ErrInvalidPipeName, "pipe %q", pipe)
	}
	assert.Equal(t, int64(0), calls.Load(), "invalid names must be rejected before any network call")
}

func TestQueryPipeRequestShape(t *testing.T) {
	var path, auth string
	var query map[string][]string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"section":"totals","pageviews":7}]}`))
	}))
	defer backend.Close()

	rows, err := QueryPipe[testRow](context.Background(), newTestClient(backend.URL), "site_dashboard", map[string]string{
		"site_id": "abc",
		"grain":   "day",
		"from":    "2025-11-01T00:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v0/pipes/site_dashboard.json", path)
	assert.Equal(t, "Bearer test-token", auth)
	assert.Equal(t, []string{"abc"}, query["site_id"])
	assert.Equal(t, []string{"2025-11-01T00:00:00Z"}, query["from"])

	require.Len(t, rows, 1)
	assert.Equal(t, uint64(7), rows[0].Pageviews)
}

func TestQueryPipeNon2xxIsFetchError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"pipe not found"}`, http.StatusNotFound)
	}))
	defer backend.Close()

	_, err := QueryPipe[testRow](context.Background(), newTestClient(backend.URL), "missing_pipe", nil)
	require.ErrorIs(t, err, domain.ErrPipeFetch)
	assert.Contains(t, err.Error(), "404")
}

func TestQueryPipeNetworkErrorIsFetchError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	_, err := QueryPipe[testRow](context.Background(), newTestClient(backend.URL), "site_dashboard", nil)
	assert.ErrorIs(t, err, domain.ErrPipeFetch)
}

func TestQueryPipeEmptyData(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer backend.Close()

	rows, err := QueryPipe[testRow](context.Background(), newTestClient(backend.URL), "site_dashboard", nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestIngestPostsEvent(t *testing.T) {
	var path, rawQuery, contentType string
	var got domain.EnrichedEvent
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		rawQuery = r.URL.RawQuery
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer backend.Close()

	err := newTestClient(backend.URL).Ingest(context.Background(), &domain.EnrichedEvent{
		Timestamp: "2025-11-22 10:00:00",
		SiteID:    "site-1",
		Event:     "pageview",
		Path:      "/",
		SourceIP:  "203.0.113.7",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v0/events", path)
	assert.Equal(t, "name=events", rawQuery)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "pageview", got.Event)
	assert.Empty(t, got.SourceIP, "source IP is internal and must not reach the backend")
}

func TestIngestNon2xxReturnsError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quarantined: column mismatch", http.StatusBadRequest)
	}))
	defer backend.Close()

	err := newTestClient(backend.URL).Ingest(context.Background(), &domain.EnrichedEvent{Event: "pageview"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "quarantined")
}
