package services

import (
	"context"
	"strconv"
	"time"

	"signal/analytics/database"
	"signal/analytics/domain"
	"signal/analytics/validations"
)

const (
	dashboardPipe = "site_dashboard"

	// topBreakdownLimit caps the top_pages / top_referrers sequences; the
	// backend applies it per section.
	topBreakdownLimit = 10
)

// SiteDashboardService fetches the site_dashboard pipe and reduces its rows
// into the dashboard aggregate.
type SiteDashboardService struct {
	backend *database.TinybirdClient
	now     func() time.Time
}

var _ domain.DashboardService = &SiteDashboardService{}

// NewSiteDashboardService builds the dashboard query service.
func NewSiteDashboardService(backend *database.TinybirdClient) *SiteDashboardService {
	return &SiteDashboardService{backend: backend, now: time.Now}
}

// SiteDashboard queries the pipe for one site/range/grain and returns the
// reduced aggregate. Fetch failures surface as domain.ErrPipeFetch so the
// caller can render a non-fatal error state.
func (s *SiteDashboardService) SiteDashboard(ctx context.Context, siteID string, opts domain.DashboardOptions) (*domain.DashboardAggregate, error) {
	if err := validations.ValidateSiteID(siteID); err != nil {
		return nil, err
	}

	rangeKey := opts.Range
	if rangeKey == "" {
		rangeKey = domain.RangeMonth
	}
	grain := opts.Grain
	if grain == "" {
		grain = domain.GrainDay
	}

	from, to := computeRange(rangeKey, s.now())

	rows, err := database.QueryPipe[domain.DashboardRow](ctx, s.backend, dashboardPipe, map[string]string{
		"site_id": siteID,
		"from":    from,
		"to":      to,
		"grain":   string(grain),
		"limit":   strconv.Itoa(topBreakdownLimit),
	})
	if err != nil {
		return nil, err
	}

	aggregate := ReduceDashboardRows(rows)
	return &aggregate, nil
}

// rangeDays maps a range key to its lookback length; unknown keys fall back
// to the month view.
func rangeDays(key domain.RangeKey) int {
	switch key {
	case domain.RangeWeek:
		return 7
	case domain.RangeNinetyDays:
		return 90
	default:
		return 30
	}
}

// computeRange returns inclusive RFC3339 bounds ending now.
func computeRange(key domain.RangeKey, now time.Time) (from, to string) {
	end := now.UTC()
	start := end.AddDate(0, 0, -(rangeDays(key) - 1))
	return start.Format(time.RFC3339), end.Format(time.RFC3339)
}

// ReduceDashboardRows folds the heterogeneous pipe rows into one aggregate.
// It is pure and total: empty input yields an all-zero aggregate, slices are
// never nil, row order is preserved within each section and unknown sections
// are skipped so newer pipe versions cannot break the dashboard. Only the
// first totals row is honored.
func ReduceDashboardRows(rows []domain.DashboardRow) domain.DashboardAggregate {
	aggregate := domain.DashboardAggregate{
		Trend:        []domain.TrendPoint{},
		TopPages:     []domain.TopPage{},
		TopReferrers: []domain.TopReferrer{},
	}

	totalsSeen := false
	for _, row := range rows {
		switch row.Section {
		case domain.SectionTotals:
			if totalsSeen {
				continue
			}
			totalsSeen = true
			aggregate.TotalPageviews = row.Pageviews
			aggregate.TotalVisitors = row.Visitors
		case domain.SectionTrend:
			aggregate.Trend = append(aggregate.Trend, domain.TrendPoint{
				Date:      row.Bucket,
				Pageviews: row.Pageviews,
				Visitors:  row.Visitors,
			})
		case domain.SectionTopPages:
			aggregate.TopPages = append(aggregate.TopPages, domain.TopPage{
				Path:      row.Path,
				Pageviews: row.Pageviews,
			})
		case domain.SectionTopReferrers:
			aggregate.TopReferrers = append(aggregate.TopReferrers, domain.TopReferrer{
				Referrer:  row.Referrer,
				Pageviews: row.Pageviews,
			})
		}
	}

	return aggregate
}
