package validations

import (
	"strings"

	"signal/analytics/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ValidateIngestRequest checks the structural invariants of a client payload.
// Only missing required fields fail; optional fields degrade to defaults
// later in enrichment.
func ValidateIngestRequest(request *domain.IngestRequest) error {
	if strings.TrimSpace(request.SiteID) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "siteId is required")
	}
	if strings.TrimSpace(request.Event) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "event is required")
	}
	if strings.TrimSpace(request.Path) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "path is required")
	}
	if strings.TrimSpace(request.PageURL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "page_url is required")
	}
	return nil
}

// ValidateSiteID checks that a dashboard site id is a UUID.
func ValidateSiteID(siteID string) error {
	if _, err := uuid.Parse(siteID); err != nil {
		return domain.ErrInvalidSiteID
	}
	return nil
}
