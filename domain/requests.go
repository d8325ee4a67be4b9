package domain

// IngestRequest is the raw, untrusted payload submitted by the tracking
// snippet. Field names are part of the snippet wire contract.
type IngestRequest struct {
	Timestamp string `json:"timestamp" example:"2025-11-22T10:00:00.000Z"`
	VisitorID string `json:"visitor_id" example:"5f1b3f1c-9a2e-4c57-b1d4-1f0e8a7c6d2b"`
	SiteID    string `json:"siteId" example:"0d9f2b7e-3c4a-4f6d-8a1b-2c3d4e5f6a7b"`
	PageURL   string `json:"page_url" example:"https://example.com/pricing"`
	Referrer  string `json:"referrer" example:"https://news.ycombinator.com/"`
	Event     string `json:"event" example:"pageview"`
	Path      string `json:"path" example:"/pricing"`
	UserAgent string `json:"user_agent"`
}

// EnrichedEvent is the trusted event handed to the forwarder. Field names
// match the analytics backend's events datasource columns; Timestamp carries
// the canonical "YYYY-MM-DD HH:MM:SS" form the backend expects.
type EnrichedEvent struct {
	Timestamp string `json:"timestamp"`
	VisitorID string `json:"visitor_id"`
	SiteID    string `json:"siteId"`
	PageURL   string `json:"page_url"`
	Referrer  string `json:"referrer"`
	Event     string `json:"event"`
	Path      string `json:"path"`
	Country   string `json:"country"`
	City      string `json:"city"`
	UserAgent string `json:"user_agent"`

	SourceIP string `json:"-"`
}

// RateLimitDecision is the outcome of admission control for one request.
type RateLimitDecision struct {
	Allowed bool
	Source  string
	Reason  string
}

// RequestMeta carries the request signals the admission controller inspects.
type RequestMeta struct {
	Method    string
	Path      string
	UserAgent string
}

// RequestOrigin describes where a request entered the system. Edge values
// come from trusted proxy headers, never from client-asserted fields.
type RequestOrigin struct {
	IP          string
	EdgeCountry string
	EdgeCity    string
}

// RangeKey selects the dashboard lookback window.
type RangeKey string

const (
	RangeWeek       RangeKey = "7d"
	RangeMonth      RangeKey = "30d"
	RangeNinetyDays RangeKey = "90d"
)

// Grain selects the trend bucket size.
type Grain string

const (
	GrainDay   Grain = "day"
	GrainWeek  Grain = "week"
	GrainMonth Grain = "month"
)

// DashboardOptions are the caller-selected dashboard query knobs. Zero
// values fall back to a 30d range at day grain.
type DashboardOptions struct {
	Range RangeKey
	Grain Grain
}
