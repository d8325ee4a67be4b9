package domain

import "context"

// AdmissionController gates a request before it reaches enrichment.
type AdmissionController interface {
	Admit(ctx context.Context, sourceIP string, meta RequestMeta) RateLimitDecision
}

// Enricher turns an untrusted client payload into a trusted, normalized event.
type Enricher interface {
	Enrich(raw *IngestRequest, origin RequestOrigin) *EnrichedEvent
}

// Forwarder relays an enriched event to the analytics backend without the
// caller waiting on the outcome.
type Forwarder interface {
	Forward(event *EnrichedEvent)
}

// DashboardService produces the dashboard aggregate for a site.
type DashboardService interface {
	SiteDashboard(ctx context.Context, siteID string, opts DashboardOptions) (*DashboardAggregate, error)
}
