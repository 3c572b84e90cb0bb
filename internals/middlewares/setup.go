package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/middlewares/logger"
)

// SetupMiddlewares branche les middlewares globaux dans l'ordre.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
