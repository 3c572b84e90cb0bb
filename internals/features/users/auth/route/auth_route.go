package route

import (
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/features/users/auth/controller"
	"absenta_backend/internals/middlewares"
	authMw "absenta_backend/internals/middlewares/auth"
)

// AuthRoutes : le login est public mais sévèrement limité en débit,
// /me exige un token valide.
func AuthRoutes(app fiber.Router) {
	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), controller.Login)
	auth.Get("/me", authMw.AuthMiddleware(), controller.Me)
}
