package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	classeRoute "absenta_backend/internals/features/academics/classes/route"
	filiereRoute "absenta_backend/internals/features/academics/filieres/route"
	studentRoute "absenta_backend/internals/features/academics/students/route"
	absenceRoute "absenta_backend/internals/features/attendance/absences/route"
	homeRoute "absenta_backend/internals/features/home/route"
	navigationRoute "absenta_backend/internals/features/navigation/route"
	authRoute "absenta_backend/internals/features/users/auth/route"
	helper "absenta_backend/internals/helpers"
	authMw "absenta_backend/internals/middlewares/auth"
	"absenta_backend/internals/storage"
)

// SetupRoutes monte toutes les routes de l'application. Tout ce qui
// vit sous /api (hors auth) exige un token valide, puis chaque feature
// pose sa propre garde de ressource.
func SetupRoutes(app *fiber.App, store *storage.Store) {
	started := time.Now()
	app.Get("/health", func(c *fiber.Ctx) error {
		// une lecture du store vérifie que le répertoire de données répond
		_ = store.GetFilieres()
		return helper.JsonOK(c, "ok", fiber.Map{
			"status":  "up",
			"storage": "ok",
			"uptime":  time.Since(started).Round(time.Second).String(),
		})
	})

	authRoute.AuthRoutes(app)

	api := app.Group("/api", authMw.AuthMiddleware())

	homeRoute.HomeRoutes(api, store)
	navigationRoute.NavigationRoutes(api, store)
	filiereRoute.FiliereRoutes(api, store)
	classeRoute.ClasseRoutes(api, store)
	studentRoute.StudentRoutes(api, store)
	absenceRoute.AbsenceRoutes(api, store)
}
