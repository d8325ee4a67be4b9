package api

import (
	"context"
	"time"

	"signal/analytics/buildinfo"
	"signal/analytics/database"
	"signal/analytics/domain"

	"github.com/gofiber/fiber/v2"
)

// redisHealthEnabled is set during wiring when admission uses Redis-backed
// counters; without it the Redis check reports "disabled" instead of failing.
var redisHealthEnabled bool

// EnableRedisHealth includes Redis in the health aggregation.
func EnableRedisHealth() {
	redisHealthEnabled = true
}

// HealthCheck handles the /health endpoint
// @Summary Health check endpoint
// @Description Check the health status of the service and its dependencies
// @Tags Health
// @Produce json
// @Success 200 {object} domain.HealthResponse "Service is healthy"
// @Failure 503 {object} domain.HealthResponse "Service is unhealthy"
// @Router /health [get]
func HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	response := domain.HealthResponse{
		Timestamp: time.Now(),
		BuildInfo: buildinfo.GetInfo(),
		Services:  domain.ServiceHealthStatus{},
	}

	healthy := true

	if err := database.TinybirdHealthCheck(ctx); err != nil {
		healthy = false
		response.Services.Analytics = domain.ServiceStatus{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	} else {
		response.Services.Analytics = domain.ServiceStatus{Status: "healthy"}
	}

	if !redisHealthEnabled {
		response.Services.Redis = domain.ServiceStatus{Status: "disabled"}
	} else if err := database.RedisHealthCheck(ctx); err != nil {
		healthy = false
		response.Services.Redis = domain.ServiceStatus{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	} else {
		response.Services.Redis = domain.ServiceStatus{Status: "healthy"}
	}

	if healthy {
		response.Status = "healthy"
		return c.Status(fiber.StatusOK).JSON(response)
	}

	response.Status = "unhealthy"
	return c.Status(fiber.StatusServiceUnavailable).JSON(response)
}
