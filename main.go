package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signal/analytics/api"
	"signal/analytics/buildinfo"
	"signal/analytics/config"
	"signal/analytics/database"
	"signal/analytics/logger"
	"signal/analytics/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	_ "signal/analytics/docs" // Import generated docs
)

// @title Signal Analytics API
// @version 1.0
// @description Web analytics event ingestion and dashboard aggregation service
// @BasePath /
// @schemes http

const (
	idleTimeout  = 5 * time.Second
	drainTimeout = 5 * time.Second
)

func main() {
	// Set application start time for accurate uptime tracking
	buildinfo.SetStartTime(time.Now())

	// .env is optional outside local development
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(!cfg.IsLocal())
	log := logger.Get()
	defer logger.Sync()

	info := buildinfo.GetInfo()
	log.Infow("starting application",
		"version", info.Version,
		"commit", info.Commit,
		"buildDate", info.BuildDate,
		"goVersion", info.GoVersion,
		"hostname", info.Hostname,
	)

	// Analytics backend client (shared by forwarder, dashboard and health)
	database.InitTinybird(&cfg.Tinybird)

	// Rate-limit counters: Redis when instances must share windows,
	// otherwise an in-process table. Redis is only touched when admission
	// will actually consult it.
	var limiter services.RateLimiter
	window := time.Duration(cfg.Protection.WindowSeconds) * time.Second
	if cfg.ProtectionEnabled() && cfg.Protection.UseRedisLimiter() {
		if err := database.InitRedis(&cfg.Redis); err != nil {
			log.Fatalw("failed to initialize Redis", "error", err)
		}
		limiter = database.GetRateLimitRedis(window, cfg.Protection.MaxRequests)
		api.EnableRedisHealth()
		log.Infow("redis rate-limit counters enabled", "addr", cfg.Redis.GetRedisAddr())
	} else {
		limiter = services.NewWindowLimiter(window, cfg.Protection.MaxRequests)
	}

	// Geolocation is best-effort: without a database events ingest with
	// empty country/city.
	var geo *services.GeoIPResolver
	if cfg.GeoIP.DatabasePath != "" {
		var err error
		geo, err = services.OpenGeoIP(cfg.GeoIP.DatabasePath)
		if err != nil {
			log.Warnw("geoip database unavailable, continuing without geolocation", "error", err)
		}
	}

	admission := services.NewAdmissionService(cfg, limiter, log)
	enricher := services.NewEnrichmentService(geo)
	forwarder := services.NewForwarderService(
		database.GetTinybirdClient(),
		time.Duration(cfg.Tinybird.ForwardTimeoutSeconds)*time.Second,
		log,
	)
	dashboards := services.NewSiteDashboardService(database.GetTinybirdClient())

	app := fiber.New(fiber.Config{
		IdleTimeout: idleTimeout,
	})

	app.Use(recover.New())

	// redirect to swagger docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/", fiber.StatusMovedPermanently)
	})

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api.Register(app,
		api.NewIngestHandler(admission, enricher, forwarder),
		api.NewDashboardHandler(dashboards),
	)

	// Listen from a different goroutine
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panicw("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("gracefully shutting down...")
	_ = app.Shutdown()

	// Let in-flight forwards finish; past the deadline they are dropped,
	// consistent with the at-most-once delivery policy.
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := forwarder.Drain(drainCtx); err != nil {
		log.Warnw("forwarder drain timed out", "error", err)
	}

	if err := database.CloseRedis(); err != nil {
		log.Errorw("error closing Redis", "error", err)
	}
	if err := geo.Close(); err != nil {
		log.Errorw("error closing geoip database", "error", err)
	}

	log.Info("shutdown complete")
}
