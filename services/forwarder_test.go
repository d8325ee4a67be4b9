package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"signal/analytics/config"
	"signal/analytics/database"
	"signal/analytics/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEvent() *domain.EnrichedEvent {
	return &domain.EnrichedEvent{
		Timestamp: "2025-11-22 10:00:00",
		VisitorID: "5f1b3f1c-9a2e-4c57-b1d4-1f0e8a7c6d2b",
		SiteID:    "0d9f2b7e-3c4a-4f6d-8a1b-2c3d4e5f6a7b",
		PageURL:   "https://example.com/pricing",
		Event:     "pageview",
		Path:      "/pricing",
	}
}

func newBackendClient(baseURL string) *database.TinybirdClient {
	return database.NewTinybirdClient(&config.TinybirdConfig{
		APIURL:              baseURL,
		Token:               "test-token",
		QueryTimeoutSeconds: 10,
	})
}

func TestForwardDoesNotBlockOnSlowBackend(t *testing.T) {
	received := make(chan struct{}, 1)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		received <- struct{}{}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer backend.Close()

	forwarder := NewForwarderService(newBackendClient(backend.URL), 5*time.Second, zap.NewNop().Sugar())

	start := time.Now()
	forwarder.Forward(testEvent())
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 100*time.Millisecond, "Forward must return before the backend answers")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, forwarder.Drain(ctx))

	select {
	case <-received:
	default:
		t.Fatal("backend never received the forwarded event")
	}
}

func TestForwardDeliversEventPayload(t *testing.T) {
	var got domain.EnrichedEvent
	var auth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer backend.Close()

	forwarder := NewForwarderService(newBackendClient(backend.URL), 5*time.Second, zap.NewNop().Sugar())
	forwarder.Forward(testEvent())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, forwarder.Drain(ctx))

	assert.Equal(t, "Bearer test-token", auth)
	assert.Equal(t, "pageview", got.Event)
	assert.Equal(t, "2025-11-22 10:00:00", got.Timestamp)
	assert.Empty(t, got.Country)
}

func TestForwardBackendFailureIsAbsorbed(t *testing.T) {
	var calls atomic.Int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "quarantined rows", http.StatusBadRequest)
	}))
	defer backend.Close()

	forwarder := NewForwarderService(newBackendClient(backend.URL), 5*time.Second, zap.NewNop().Sugar())
	forwarder.Forward(testEvent())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, forwarder.Drain(ctx))

	// Logged and dropped: exactly one attempt, no retry.
	assert.Equal(t, int64(1), calls.Load())
}

func TestForwardUnreachableBackendIsAbsorbed(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close() // connection refused from here on

	forwarder := NewForwarderService(newBackendClient(backend.URL), 1*time.Second, zap.NewNop().Sugar())
	forwarder.Forward(testEvent())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, forwarder.Drain(ctx))
}
