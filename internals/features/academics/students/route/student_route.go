package route

import (
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/features/academics/students/controller"
	"absenta_backend/internals/features/users/authz"
	authMw "absenta_backend/internals/middlewares/auth"
	"absenta_backend/internals/storage"
)

func StudentRoutes(api fiber.Router, store *storage.Store) {
	ctrl := controller.NewStudentController(store)

	r := api.Group("/stagiaires", authMw.RequireResource(authz.ResourceStudents))
	r.Get("/", ctrl.List)
	r.Post("/", ctrl.Create)
	r.Get("/:id", ctrl.Detail)
	r.Patch("/:id", ctrl.Update)
	r.Delete("/:id", ctrl.Delete)
}
