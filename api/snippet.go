package api

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed track.js
var trackingSnippet []byte

// GetSnippet serves the tracking snippet
// @Summary Tracking snippet
// @Description Serve the browser tracking snippet. Embed it with a script tag carrying a data-website-id attribute; it resolves the visitor id, emits a pageview and exposes window.signal.track(event, props).
// @Tags Ingest
// @Produce plain
// @Success 200 {string} string "JavaScript snippet"
// @Router /track.js [get]
func (h *ingestHandler) GetSnippet(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(trackingSnippet)
}
