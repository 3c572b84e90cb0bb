package route

import (
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/features/academics/filieres/controller"
	"absenta_backend/internals/features/users/authz"
	authMw "absenta_backend/internals/middlewares/auth"
	"absenta_backend/internals/storage"
)

// FiliereRoutes: gestion des filières, rôles de supervision uniquement.
func FiliereRoutes(api fiber.Router, store *storage.Store) {
	ctrl := controller.NewFiliereController(store)

	r := api.Group("/filieres", authMw.RequireResource(authz.ResourceStudents))
	r.Get("/", ctrl.List)
	r.Post("/", ctrl.Create)
	r.Get("/:id", ctrl.Detail)
	r.Patch("/:id", ctrl.Update)
	r.Delete("/:id", ctrl.Delete)
}
