package domain

// Dashboard row sections. The site_dashboard pipe returns a tagged union over
// these shapes; Section is the discriminant.
const (
	SectionTotals       = "totals"
	SectionTrend        = "trend"
	SectionTopPages     = "top_pages"
	SectionTopReferrers = "top_referrers"
)

// DashboardRow is one heterogeneous row of the site_dashboard pipe. Only the
// columns belonging to the row's section carry meaning; the rest are zero.
type DashboardRow struct {
	Section   string `json:"section"`
	Bucket    string `json:"bucket,omitempty"`
	Path      string `json:"path,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
	Pageviews uint64 `json:"pageviews"`
	Visitors  uint64 `json:"visitors"`
}

// TrendPoint is one bucket of the pageview/visitor trend.
type TrendPoint struct {
	Date      string `json:"date"`
	Pageviews uint64 `json:"pageviews"`
	Visitors  uint64 `json:"visitors"`
}

// TopPage is one entry of the top-pages breakdown.
type TopPage struct {
	Path      string `json:"path"`
	Pageviews uint64 `json:"pageviews"`
}

// TopReferrer is one entry of the top-referrers breakdown.
type TopReferrer struct {
	Referrer  string `json:"referrer"`
	Pageviews uint64 `json:"pageviews"`
}

// DashboardAggregate is the single dashboard-ready shape reduced from the
// heterogeneous pipe rows. Numeric fields default to 0 and slices are always
// non-nil so consumers never see null arrays.
type DashboardAggregate struct {
	TotalPageviews uint64        `json:"totalPageviews"`
	TotalVisitors  uint64        `json:"totalVisitors"`
	Trend          []TrendPoint  `json:"trend"`
	TopPages       []TopPage     `json:"topPages"`
	TopReferrers   []TopReferrer `json:"topReferrers"`
}
