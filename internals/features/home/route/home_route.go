package route

import (
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/features/home/controller"
	"absenta_backend/internals/features/users/authz"
	authMw "absenta_backend/internals/middlewares/auth"
	"absenta_backend/internals/storage"
)

func HomeRoutes(api fiber.Router, store *storage.Store) {
	dashboard := controller.NewDashboardController(store)
	stats := controller.NewStatisticsController(store)

	api.Get("/dashboard", authMw.RequireResource(authz.ResourceDashboard), dashboard.Overview)
	api.Get("/statistics", authMw.RequireResource(authz.ResourceStatistics), stats.Overview)
	api.Get("/about", authMw.RequireResource(authz.ResourceAbout), controller.About)
}
