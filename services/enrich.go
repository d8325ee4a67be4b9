package services

import (
	"time"

	"signal/analytics/domain"
)

// backendTimeLayout is the canonical timestamp form the analytics backend
// expects: space-separated date/time, no fraction, no timezone designator.
// This exact format is a compatibility contract with the events datasource.
const backendTimeLayout = "2006-01-02 15:04:05"

// clientTimeLayouts are the accepted client timestamp shapes, tried in order.
var clientTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	backendTimeLayout,
}

// GeoResolver derives a best-effort location from a source address.
type GeoResolver interface {
	Lookup(addr string) (country, city string)
}

// EnrichmentService validates nothing (that happened earlier) and never
// fails: it normalizes the timestamp, fills optional fields with empty
// strings and attaches geolocation derived from the request origin.
type EnrichmentService struct {
	geo GeoResolver
	now func() time.Time
}

var _ domain.Enricher = &EnrichmentService{}

// NewEnrichmentService builds the enricher. geo may resolve to empty values;
// enrichment degrades rather than erroring.
func NewEnrichmentService(geo GeoResolver) *EnrichmentService {
	return &EnrichmentService{geo: geo, now: time.Now}
}

// Enrich produces the trusted event forwarded to the analytics backend.
// Geolocation comes from the network origin only; the payload carries no
// client-asserted location fields.
func (s *EnrichmentService) Enrich(raw *domain.IngestRequest, origin domain.RequestOrigin) *domain.EnrichedEvent {
	country, city := origin.EdgeCountry, origin.EdgeCity
	if country == "" && city == "" && s.geo != nil {
		country, city = s.geo.Lookup(origin.IP)
	}

	return &domain.EnrichedEvent{
		Timestamp: normalizeTimestamp(raw.Timestamp, s.now()),
		VisitorID: raw.VisitorID,
		SiteID:    raw.SiteID,
		PageURL:   raw.PageURL,
		Referrer:  raw.Referrer,
		Event:     raw.Event,
		Path:      raw.Path,
		Country:   country,
		City:      city,
		UserAgent: raw.UserAgent,
		SourceIP:  origin.IP,
	}
}

// normalizeTimestamp converts a client timestamp to the canonical backend
// form. An absent or unparsable value is replaced with the receipt time.
func normalizeTimestamp(value string, received time.Time) string {
	for _, layout := range clientTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC().Format(backendTimeLayout)
		}
	}
	return received.UTC().Format(backendTimeLayout)
}
