package constants

import "fmt"

// Rôles reconnus par l'application
const (
	RoleAdmin       = "admin"
	RoleDirecteur   = "directeur"
	RoleSurveillant = "surveillant"
	RoleFormateur   = "formateur"
)

// Templates de messages d'erreur liés aux rôles
const (
	ErrOnlySupervisorsCanAccess = "❌ Seuls l'admin, le directeur ou le surveillant peuvent accéder à %s."
	ErrOnlyFormateursCanAccess  = "❌ Seuls les formateurs peuvent accéder à %s."
)

func RoleErrorSupervisor(feature string) string {
	return fmt.Sprintf(ErrOnlySupervisorsCanAccess, feature)
}

func RoleErrorFormateur(feature string) string {
	return fmt.Sprintf(ErrOnlyFormateursCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleDirecteur,
		RoleSurveillant,
		RoleFormateur,
	}

	// Rôles de supervision : gestion, validation, statistiques
	SupervisorRoles = []string{
		RoleAdmin,
		RoleDirecteur,
		RoleSurveillant,
	}

	FormateurOnly = []string{
		RoleFormateur,
	}
)

func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
