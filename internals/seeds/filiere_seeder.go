package seeds

import (
	"log"

	filiereModel "absenta_backend/internals/features/academics/filieres/model"
	"absenta_backend/internals/storage"
)

// RunAll lance les seeders idempotents au démarrage.
func RunAll(store *storage.Store) {
	SeedDefaultFilieres(store)
}

// SeedDefaultFilieres insère les deux filières par défaut uniquement si
// la collection est vide. Bootstrap idempotent, jamais un reset.
func SeedDefaultFilieres(store *storage.Store) {
	if len(store.GetFilieres()) > 0 {
		return
	}

	defaults := []filiereModel.Filiere{
		{
			Nom:         "Techniques Spécialisées de Développement Informatique",
			Code:        "TSDI",
			Description: "Formation en développement logiciel et applications",
		},
		{
			Nom:         "Techniques Spécialisées des Réseaux Informatiques",
			Code:        "TSRI",
			Description: "Formation en administration réseaux et sécurité",
		},
	}

	for _, f := range defaults {
		if _, err := store.AddFiliere(f); err != nil {
			log.Printf("[ERROR] seed filière %s: %v", f.Code, err)
			return
		}
	}
	log.Printf("✅ Seed: %d filières par défaut créées", len(defaults))
}
