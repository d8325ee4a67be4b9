package services

import (
	"context"
	"sync"
	"time"

	"signal/analytics/database"
	"signal/analytics/domain"

	"go.uber.org/zap"
)

// ForwarderService relays enriched events to the analytics backend on a
// detached goroutine so the HTTP response never waits on the send. Delivery
// is at-most-once: failures are logged with enough context to diagnose and
// the event is dropped, never retried.
type ForwarderService struct {
	backend *database.TinybirdClient
	timeout time.Duration
	log     *zap.SugaredLogger
	wg      sync.WaitGroup
}

var _ domain.Forwarder = &ForwarderService{}

// NewForwarderService builds the forwarder. timeout bounds each send so a
// stalled backend cannot leak goroutines indefinitely.
func NewForwarderService(backend *database.TinybirdClient, timeout time.Duration, log *zap.SugaredLogger) *ForwarderService {
	return &ForwarderService{
		backend: backend,
		timeout: timeout,
		log:     log,
	}
}

// Forward sends the event in the background and returns immediately.
func (f *ForwarderService) Forward(event *domain.EnrichedEvent) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		defer cancel()

		if err := f.backend.Ingest(ctx, event); err != nil {
			f.log.Errorw("event forward failed",
				"error", err,
				"site_id", event.SiteID,
				"event", event.Event,
				"path", event.Path,
				"visitor_id", event.VisitorID,
			)
		}
	}()
}

// Drain waits for in-flight sends to finish, up to the context deadline.
// Called during graceful shutdown; events still in flight past the deadline
// are abandoned, consistent with the at-most-once policy.
func (f *ForwarderService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
