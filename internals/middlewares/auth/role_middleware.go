package auth

import (
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/constants"
	"absenta_backend/internals/features/users/authz"
	helper "absenta_backend/internals/helpers"
)

// Libellés français des ressources pour les messages de refus.
var resourceLabels = map[string]string{
	authz.ResourceDashboard:    "le tableau de bord",
	authz.ResourceStudents:     "la gestion des stagiaires",
	authz.ResourceAbsenceEntry: "la saisie des absences",
	authz.ResourceAbsenceAdmin: "l'administration des absences",
	authz.ResourceStatistics:   "les statistiques",
	authz.ResourceAbout:        "la page à propos",
}

// RequireResource garde une route derrière la table d'accès
// (rôle, ressource). Même table que le filtrage du menu :
// défense en profondeur.
func RequireResource(resource string) fiber.Handler {
	return OnlyRoles(deniedMessage(resource), authz.AllowedRoles(resource)...)
}

// deniedMessage choisit le template de refus selon le groupe de rôles
// admis sur la ressource.
func deniedMessage(resource string) string {
	label, ok := resourceLabels[resource]
	if !ok {
		label = resource
	}
	if authz.IsAllowed(constants.RoleFormateur, resource) && !authz.IsAllowed(constants.RoleAdmin, resource) {
		return constants.RoleErrorFormateur(label)
	}
	return constants.RoleErrorSupervisor(label)
}

// OnlyRoles: validation de rôle directe avec message personnalisé.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok || role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Informations de rôle manquantes")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		if customMessage == "" {
			customMessage = "Accès refusé : votre rôle ne permet pas d'accéder à cette ressource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}
