package api

import (
	"errors"

	"signal/analytics/domain"
	"signal/analytics/logger"

	"github.com/gofiber/fiber/v2"
)

var _ DashboardHandler = &dashboardHandler{}

type dashboardHandler struct {
	dashboards domain.DashboardService
}

// NewDashboardHandler builds the dashboard HTTP handler.
func NewDashboardHandler(dashboards domain.DashboardService) DashboardHandler {
	return &dashboardHandler{dashboards: dashboards}
}

// GetSiteDashboard returns the reduced dashboard aggregate for one site
// @Summary Site dashboard aggregate
// @Description Query the analytics backend for a site's dashboard rows and reduce them into totals, trend and top breakdowns.
// @Tags Dashboard
// @Produce json
// @Param siteID path string true "Site id (UUID)"
// @Param range query string false "Lookback range" Enums(7d, 30d, 90d) default(30d)
// @Param grain query string false "Trend bucket size" Enums(day, week, month) default(day)
// @Success 200 {object} domain.DashboardResponse "Aggregate for the site"
// @Failure 400 {object} domain.ErrorResponse "Invalid site id"
// @Failure 502 {object} domain.ErrorResponse "Analytics backend unavailable"
// @Router /api/sites/{siteID}/dashboard [get]
func (h *dashboardHandler) GetSiteDashboard(c *fiber.Ctx) error {
	siteID := c.Params("siteID")
	opts := domain.DashboardOptions{
		Range: domain.RangeKey(c.Query("range")),
		Grain: domain.Grain(c.Query("grain")),
	}

	aggregate, err := h.dashboards.SiteDashboard(c.Context(), siteID, opts)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSiteID):
			return c.Status(fiber.StatusBadRequest).JSON(domain.ErrorResponse{
				Success: false,
				Message: "Invalid site id",
			})
		case errors.Is(err, domain.ErrPipeFetch):
			logger.Get().Warnw("dashboard fetch failed",
				"site_id", siteID,
				"request_id", GetRequestID(c),
				"error", err,
			)
			return c.Status(fiber.StatusBadGateway).JSON(domain.ErrorResponse{
				Success: false,
				Message: "Unable to load analytics",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(domain.ErrorResponse{
				Success: false,
				Message: "Internal server error",
			})
		}
	}

	rangeKey := opts.Range
	if rangeKey == "" {
		rangeKey = domain.RangeMonth
	}
	grain := opts.Grain
	if grain == "" {
		grain = domain.GrainDay
	}

	return c.JSON(domain.DashboardResponse{
		Success: true,
		SiteID:  siteID,
		Range:   rangeKey,
		Grain:   grain,
		Stats:   *aggregate,
	})
}
