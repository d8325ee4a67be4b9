package domain

import (
	"time"

	"signal/analytics/buildinfo"
)

// IngestDeniedResponse is the 429 body returned when admission denies a
// request. Source names the denying subsystem, Reason is machine-readable.
type IngestDeniedResponse struct {
	Source string `json:"source" example:"protection"`
	Reason string `json:"reason" example:"RATE_LIMIT"`
}

// ErrorResponse is the generic failure envelope for client-visible errors.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Validation failed: event is required"`
}

// DashboardResponse wraps the reduced dashboard aggregate for one site.
type DashboardResponse struct {
	Success bool               `json:"success" example:"true"`
	SiteID  string             `json:"site_id"`
	Range   RangeKey           `json:"range" example:"30d"`
	Grain   Grain              `json:"grain" example:"day"`
	Stats   DashboardAggregate `json:"stats"`
}

// HealthResponse represents the health status of the service
type HealthResponse struct {
	Status    string              `json:"status" example:"healthy"`
	Timestamp time.Time           `json:"timestamp" example:"2025-11-22T10:00:00Z"`
	BuildInfo buildinfo.Info      `json:"buildInfo"`
	Services  ServiceHealthStatus `json:"services"`
}

// ServiceHealthStatus represents the health status of dependent services
type ServiceHealthStatus struct {
	Analytics ServiceStatus `json:"analytics"`
	Redis     ServiceStatus `json:"redis"`
}

// ServiceStatus represents the status of a single service
type ServiceStatus struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty" example:""`
}
