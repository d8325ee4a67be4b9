package api

import (
	"signal/analytics/domain"
	"signal/analytics/validations"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

var _ IngestHandler = &ingestHandler{}

type ingestHandler struct {
	admission domain.AdmissionController
	enricher  domain.Enricher
	forwarder domain.Forwarder
}

// NewIngestHandler builds the ingest HTTP handler.
func NewIngestHandler(admission domain.AdmissionController, enricher domain.Enricher, forwarder domain.Forwarder) IngestHandler {
	return &ingestHandler{
		admission: admission,
		enricher:  enricher,
		forwarder: forwarder,
	}
}

// PostIngest handles tracking events from the snippet
// @Summary Ingest a tracking event
// @Description Accept a pageview/custom event from the tracking snippet. Returns "ok" once the event is admitted and structurally valid; forwarding to the analytics backend happens in the background and never affects the response.
// @Tags Ingest
// @Accept json
// @Produce plain
// @Param event body domain.IngestRequest true "Raw event payload"
// @Success 200 {string} string "ok"
// @Failure 400 {object} domain.ErrorResponse "Structurally invalid payload"
// @Failure 429 {object} domain.IngestDeniedResponse "Denied by admission control"
// @Router /ingest [post]
func (h *ingestHandler) PostIngest(c *fiber.Ctx) error {
	// Values derived from the request headers outlive this handler inside
	// the forwarded event, while fiber's context buffers are recycled for
	// the next request. Everything that crosses into the event is copied.
	sourceIP := utils.CopyString(c.IP())

	decision := h.admission.Admit(c.Context(), sourceIP, domain.RequestMeta{
		Method:    c.Method(),
		Path:      c.Path(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if !decision.Allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(domain.IngestDeniedResponse{
			Source: decision.Source,
			Reason: decision.Reason,
		})
	}

	var req domain.IngestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(domain.ErrorResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
	}

	if err := validations.ValidateIngestRequest(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(domain.ErrorResponse{
			Success: false,
			Message: "Validation failed: " + err.Error(),
		})
	}

	if req.UserAgent == "" {
		req.UserAgent = utils.CopyString(c.Get(fiber.HeaderUserAgent))
	}

	event := h.enricher.Enrich(&req, domain.RequestOrigin{
		IP:          sourceIP,
		EdgeCountry: edgeHeader(c, "CF-IPCountry", "X-Vercel-IP-Country"),
		EdgeCity:    edgeHeader(c, "X-Vercel-IP-City"),
	})

	// Detached send; the client never waits on the backend.
	h.forwarder.Forward(event)

	return c.SendString("ok")
}

// edgeHeader returns a copy of the first populated header, skipping the
// "unknown" markers some edges send instead of omitting the header.
func edgeHeader(c *fiber.Ctx, names ...string) string {
	for _, name := range names {
		value := c.Get(name)
		if value != "" && value != "XX" && value != "T1" {
			return utils.CopyString(value)
		}
	}
	return ""
}
