package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"signal/analytics/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSiteID = "0d9f2b7e-3c4a-4f6d-8a1b-2c3d4e5f6a7b"

func getDashboard(t *testing.T, app *fiber.App, url string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestGetSiteDashboardReturnsAggregate(t *testing.T) {
	app := newTestApp(allowAllAdmission{}, &recordingForwarder{}, stubDashboards{
		aggregate: &domain.DashboardAggregate{
			TotalPageviews: 120,
			TotalVisitors:  45,
			Trend: []domain.TrendPoint{
				{Date: "2025-11-21", Pageviews: 60, Visitors: 20},
				{Date: "2025-11-22", Pageviews: 60, Visitors: 25},
			},
			TopPages:     []domain.TopPage{{Path: "/pricing", Pageviews: 80}},
			TopReferrers: []domain.TopReferrer{},
		},
	})

	status, body := getDashboard(t, app, "/api/sites/"+testSiteID+"/dashboard?range=7d&grain=day")
	require.Equal(t, fiber.StatusOK, status)

	var got domain.DashboardResponse
	require.NoError(t, json.Unmarshal(body, &got))

	assert.True(t, got.Success)
	assert.Equal(t, testSiteID, got.SiteID)
	assert.Equal(t, domain.RangeWeek, got.Range)
	assert.Equal(t, domain.GrainDay, got.Grain)
	assert.Equal(t, uint64(120), got.Stats.TotalPageviews)
	require.Len(t, got.Stats.Trend, 2)
	assert.Equal(t, "2025-11-21", got.Stats.Trend[0].Date)
	assert.NotNil(t, got.Stats.TopReferrers)
}

func TestGetSiteDashboardDefaultsRangeAndGrain(t *testing.T) {
	app := newTestApp(allowAllAdmission{}, &recordingForwarder{}, stubDashboards{
		aggregate: &domain.DashboardAggregate{
			Trend:        []domain.TrendPoint{},
			TopPages:     []domain.TopPage{},
			TopReferrers: []domain.TopReferrer{},
		},
	})

	status, body := getDashboard(t, app, "/api/sites/"+testSiteID+"/dashboard")
	require.Equal(t, fiber.StatusOK, status)

	var got domain.DashboardResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, domain.RangeMonth, got.Range)
	assert.Equal(t, domain.GrainDay, got.Grain)
}

func TestGetSiteDashboardInvalidSiteID(t *testing.T) {
	app := newTestApp(allowAllAdmission{}, &recordingForwarder{}, stubDashboards{
		err: domain.ErrInvalidSiteID,
	})

	status, body := getDashboard(t, app, "/api/sites/not-a-uuid/dashboard")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"success":false,"message":"Invalid site id"}`, string(body))
}

func TestGetSiteDashboardBackendFailureReturns502(t *testing.T) {
	app := newTestApp(allowAllAdmission{}, &recordingForwarder{}, stubDashboards{
		err: domain.ErrPipeFetch,
	})

	status, body := getDashboard(t, app, "/api/sites/"+testSiteID+"/dashboard")

	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.JSONEq(t, `{"success":false,"message":"Unable to load analytics"}`, string(body))
}

func TestRequestIDMiddleware(t *testing.T) {
	app := newTestApp(allowAllAdmission{}, &recordingForwarder{}, stubDashboards{
		err: domain.ErrPipeFetch,
	})

	req := httptest.NewRequest("GET", "/api/sites/"+testSiteID+"/dashboard", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-abc-123", resp.Header.Get("X-Request-ID"))

	// Without an inbound id the middleware mints one.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/sites/"+testSiteID+"/dashboard", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
