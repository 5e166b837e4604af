package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coilapi/docs"
	"coilapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, call the service, map errors.
func RegisterRoutes(app *fiber.App, db Pinger, coilSvc service.CoilService, gatherer prometheus.Gatherer) {
	app.Get("/liveness", LivenessProbe())
	app.Get("/readness", ReadinessProbe(db))
	app.Get("/readiness", ReadinessProbe(db))
	app.Get("/metrics", Metrics(gatherer))
	app.Get("/swagger/*", SwaggerUI())

	v1 := app.Group("/api/v1")

	coils := v1.Group("/coils")
	coils.Get("/", ListCoils(coilSvc))
	coils.Post("/register_new_coil/", RegisterCoil(coilSvc))
	coils.Get("/:coil_id/", GetCoil(coilSvc))
	coils.Patch("/:coil_id/", UpdateCoil(coilSvc))
	coils.Delete("/:coil_id", DeleteCoil(coilSvc))

	stats := v1.Group("/statistics/coils")
	stats.Get("/", CoilStats(coilSvc))
	stats.Post("/export", ExportCoilStats(coilSvc))
}

// Metrics serves the Prometheus exposition for gatherer.
func Metrics(gatherer prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

// SwaggerUI serves the generated OpenAPI document with dynamic host and scheme.
func SwaggerUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
