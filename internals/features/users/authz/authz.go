package authz

import "absenta_backend/internals/constants"

// Ressources applicatives. La table d'accès sert deux fois : filtrer le
// menu de navigation ET garder les routes elles-mêmes, car un item de
// menu caché n'est pas une frontière de sécurité.
const (
	ResourceDashboard    = "dashboard"
	ResourceStudents     = "students"
	ResourceAbsenceEntry = "absence-entry"
	ResourceAbsenceAdmin = "absence-admin"
	ResourceStatistics   = "statistics"
	ResourceAbout        = "about"
)

// AllResources dans l'ordre d'affichage du menu.
var AllResources = []string{
	ResourceDashboard,
	ResourceStudents,
	ResourceAbsenceEntry,
	ResourceAbsenceAdmin,
	ResourceStatistics,
	ResourceAbout,
}

var accessTable = map[string][]string{
	ResourceDashboard:    constants.AllRoles,
	ResourceStudents:     constants.SupervisorRoles,
	ResourceAbsenceEntry: constants.FormateurOnly,
	ResourceAbsenceAdmin: constants.SupervisorRoles,
	ResourceStatistics:   constants.SupervisorRoles,
	ResourceAbout:        constants.AllRoles,
}

// IsAllowed est une fonction pure et totale : toute paire
// (rôle, ressource) a une réponse, ressource inconnue = refus.
func IsAllowed(role, resource string) bool {
	roles, ok := accessTable[resource]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedRoles retourne les rôles admis sur la ressource (copie, la
// table reste privée). Ressource inconnue = liste vide, donc refus.
func AllowedRoles(resource string) []string {
	roles := accessTable[resource]
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}

// AllowedResources retourne les ressources accessibles au rôle, dans
// l'ordre du menu.
func AllowedResources(role string) []string {
	out := []string{}
	for _, res := range AllResources {
		if IsAllowed(role, res) {
			out = append(out, res)
		}
	}
	return out
}
