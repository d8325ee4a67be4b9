package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type IngestHandler interface {
	PostIngest(ctx *fiber.Ctx) error
	GetSnippet(ctx *fiber.Ctx) error
}

type DashboardHandler interface {
	GetSiteDashboard(ctx *fiber.Ctx) error
}

// Register wires the public routes. The ingest endpoint carries a permissive
// CORS policy because the tracking snippet runs on arbitrary third-party
// origins; the dashboard group carries request ids for traceability.
func Register(app *fiber.App, ingest IngestHandler, dashboard DashboardHandler) {
	app.Use("/ingest", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Post("/ingest", ingest.PostIngest)

	app.Get("/track.js", ingest.GetSnippet)

	apiGroup := app.Group("/api", RequestID())
	apiGroup.Get("/sites/:siteID/dashboard", dashboard.GetSiteDashboard)

	app.Get("/health", HealthCheck)
}
