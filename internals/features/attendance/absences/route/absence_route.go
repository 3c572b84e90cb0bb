package route

import (
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/features/attendance/absences/controller"
	"absenta_backend/internals/features/users/authz"
	authMw "absenta_backend/internals/middlewares/auth"
	"absenta_backend/internals/storage"
)

// AbsenceRoutes sépare la saisie (formateurs) de l'administration
// (rôles de supervision) : deux ressources, deux gardes.
func AbsenceRoutes(api fiber.Router, store *storage.Store) {
	entry := controller.NewEntryController(store)
	admin := controller.NewAdminController(store)

	e := api.Group("/absences/entry", authMw.RequireResource(authz.ResourceAbsenceEntry))
	e.Get("/seances", entry.Seances)
	e.Get("/sheet", entry.Sheet)
	e.Post("/", entry.Create)

	a := api.Group("/absences/admin", authMw.RequireResource(authz.ResourceAbsenceAdmin))
	a.Get("/", admin.List)
	a.Post("/:id/validate", admin.Validate)
	a.Post("/:id/justify", admin.Justify)
}
