package validations

import (
	"errors"
	"testing"

	"signal/analytics/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIngestRequest() domain.IngestRequest {
	return domain.IngestRequest{
		SiteID:  "0d9f2b7e-3c4a-4f6d-8a1b-2c3d4e5f6a7b",
		Event:   "pageview",
		Path:    "/pricing",
		PageURL: "https://example.com/pricing",
	}
}

func TestValidateIngestRequestAcceptsMinimalPayload(t *testing.T) {
	req := validIngestRequest()
	assert.NoError(t, ValidateIngestRequest(&req))
}

func TestValidateIngestRequestRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.IngestRequest)
	}{
		{"missing siteId", func(r *domain.IngestRequest) { r.SiteID = "" }},
		{"missing event", func(r *domain.IngestRequest) { r.Event = "" }},
		{"missing path", func(r *domain.IngestRequest) { r.Path = "" }},
		{"missing page_url", func(r *domain.IngestRequest) { r.PageURL = "" }},
		{"whitespace event", func(r *domain.IngestRequest) { r.Event = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validIngestRequest()
			tt.mutate(&req)

			err := ValidateIngestRequest(&req)
			require.Error(t, err)

			var fiberErr *fiber.Error
			require.True(t, errors.As(err, &fiberErr))
			assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
		})
	}
}

func TestValidateIngestRequestOptionalFieldsMayBeEmpty(t *testing.T) {
	req := validIngestRequest()
	req.VisitorID = ""
	req.Referrer = ""
	req.Timestamp = ""
	req.UserAgent = ""

	assert.NoError(t, ValidateIngestRequest(&req))
}

func TestValidateSiteID(t *testing.T) {
	assert.NoError(t, ValidateSiteID("0d9f2b7e-3c4a-4f6d-8a1b-2c3d4e5f6a7b"))
	assert.ErrorIs(t, ValidateSiteID("not-a-uuid"), domain.ErrInvalidSiteID)
	assert.ErrorIs(t, ValidateSiteID(""), domain.ErrInvalidSiteID)
}
