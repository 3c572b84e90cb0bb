package storage

import (
	"log"
	"os"
	"path/filepath"
)

// Clés de persistance héritées du front Absenta : un tableau JSON
// lisible par collection, sous un nom fixe. C'est la seule interface
// durable de l'application : ne pas changer le format.
const (
	KeyFilieres = "absenta_filieres"
	KeyClasses  = "absenta_classes"
	KeyStudents = "absenta_students"
	KeyAbsences = "absenta_absences"
)

// Medium est le support clé-valeur durable : un fichier <clé>.json par
// collection dans un répertoire local, mono-utilisateur.
type Medium struct {
	dir string
}

func OpenMedium(dir string) (*Medium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Medium{dir: dir}, nil
}

func (m *Medium) path(key string) string {
	return filepath.Join(m.dir, key+".json")
}

// ReadKey retourne le contenu brut d'une clé, ou nil si la clé n'existe
// pas ou n'est pas lisible. Jamais d'erreur : l'absence de donnée est
// un état normal.
func (m *Medium) ReadKey(key string) []byte {
	data, err := os.ReadFile(m.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] lecture %s: %v", key, err)
		}
		return nil
	}
	return data
}

// WriteKey remplace atomiquement le contenu d'une clé (fichier
// temporaire + rename), façon "saveAll" de localStorage.
func (m *Medium) WriteKey(key string, data []byte) error {
	tmp, err := os.CreateTemp(m.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, m.path(key))
}
