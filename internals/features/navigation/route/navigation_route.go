package route

import (
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/features/navigation/controller"
	"absenta_backend/internals/features/users/authz"
	authMw "absenta_backend/internals/middlewares/auth"
	"absenta_backend/internals/storage"
)

// NavigationRoutes : le menu est ouvert à tout utilisateur connecté,
// l'état de navigation suit la garde de l'écran stagiaires.
func NavigationRoutes(api fiber.Router, store *storage.Store) {
	ctrl := controller.NewNavigationController(store)

	nav := api.Group("/navigation")
	nav.Get("/menu", ctrl.Menu)

	guarded := nav.Group("", authMw.RequireResource(authz.ResourceStudents))
	guarded.Get("/state", ctrl.State)
	guarded.Post("/view/filiere/:id", ctrl.ViewFiliere)
	guarded.Post("/view/classe/:id", ctrl.ViewClasse)
	guarded.Post("/view/stagiaire/:id", ctrl.ViewStudent)
	guarded.Post("/back", ctrl.Back)
	guarded.Post("/dialog/open", ctrl.OpenDialog)
	guarded.Post("/dialog/close", ctrl.CloseDialog)
}
