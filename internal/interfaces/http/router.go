package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Metrics   *MetricsHandler
	JWTSecret string
}

// Router registra las rutas de la API. Todo el dashboard va protegido con
// Bearer Token; el tenant sale del token, nunca de la query.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	metrics := protected.Group("/metrics")
	metrics.Get("/dashboard", deps.Metrics.Dashboard)
	metrics.Get("/chart", deps.Metrics.Chart)
}
