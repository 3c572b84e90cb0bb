package storage

// Garde-fous de suppression : le chemin normal de l'application refuse
// de supprimer un parent qui a encore des enfants. La cascade brute de
// DeleteFiliere/DeleteClasse reste en filet de sécurité : les deux
// doivent rester cohérents.

const (
	MsgFiliereHasClasses = "Cette filière contient des classes. Supprimez d'abord les classes."
	MsgClasseHasStudents = "Cette classe contient des stagiaires. Supprimez d'abord les stagiaires."
)

// La vérification et la cascade tiennent sous le même verrou : un
// enfant créé en concurrence est soit vu par la garde, soit ajouté
// après la suppression complète.
func (s *Store) GuardedDeleteFiliere(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.loadClasses() {
		if c.FiliereID == id {
			return &DeletionBlockedError{Reason: MsgFiliereHasClasses}
		}
	}
	return s.deleteFiliereLocked(id)
}

func (s *Store) GuardedDeleteClasse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.loadStudents() {
		if st.ClasseID == id {
			return &DeletionBlockedError{Reason: MsgClasseHasStudents}
		}
	}
	return s.deleteClasseLocked(id)
}

// GuardedDeleteStudent: toujours permis, délègue simplement.
func (s *Store) GuardedDeleteStudent(id string) error {
	return s.DeleteStudent(id)
}
