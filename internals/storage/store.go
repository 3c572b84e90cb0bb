package storage

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	classeModel "absenta_backend/internals/features/academics/classes/model"
	filiereModel "absenta_backend/internals/features/academics/filieres/model"
	studentModel "absenta_backend/internals/features/academics/students/model"
	absenceModel "absenta_backend/internals/features/attendance/absences/model"
)

// Store est le store d'entités : quatre collections (filières, classes,
// stagiaires, absences) persistées en tableaux JSON par le Medium.
// Construit une seule fois dans main et injecté partout : jamais d'état
// global. Toutes les opérations sont synchrones ; chaque sauvegarde
// remplace la collection entière de façon atomique.
type Store struct {
	mu     sync.Mutex
	medium *Medium
	bus    *Bus
}

func Open(dir string) (*Store, error) {
	m, err := OpenMedium(dir)
	if err != nil {
		return nil, err
	}
	return &Store{medium: m, bus: NewBus()}, nil
}

func (s *Store) Bus() *Bus { return s.bus }

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func newID() string { return uuid.NewString() }

/* =========================================================
 * Filières
 * ========================================================= */

func (s *Store) GetFilieres() []filiereModel.Filiere {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadFilieres()
}

func (s *Store) SaveFilieres(list []filiereModel.Filiere) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveFilieres(list)
}

func (s *Store) AddFiliere(f filiereModel.Filiere) (filiereModel.Filiere, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = newID()
	f.CreatedAt = now()
	list := append(s.loadFilieres(), f)
	if err := s.saveFilieres(list); err != nil {
		return filiereModel.Filiere{}, err
	}
	s.bus.Publish(Event{Collection: KeyFilieres, Action: ActionAdded, ID: f.ID})
	return f, nil
}

func (s *Store) UpdateFiliere(id string, patch filiereModel.FilierePatch) *filiereModel.Filiere {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.loadFilieres()
	for i := range list {
		if list[i].ID == id {
			patch.Apply(&list[i])
			if err := s.saveFilieres(list); err != nil {
				log.Printf("[ERROR] update filière %s: %v", id, err)
				return nil
			}
			s.bus.Publish(Event{Collection: KeyFilieres, Action: ActionUpdated, ID: id})
			out := list[i]
			return &out
		}
	}
	return nil
}

// DeleteFiliere supprime la filière, ses classes et, transitivement,
// leurs stagiaires (cascade brute). Idempotent : id inconnu = no-op.
func (s *Store) DeleteFiliere(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteFiliereLocked(id)
}

// deleteFiliereLocked suppose s.mu déjà tenu : la garde et la cascade
// doivent s'exécuter sous le même verrou, sinon une classe créée entre
// les deux serait supprimée en silence.
func (s *Store) deleteFiliereLocked(id string) error {
	filieres := s.loadFilieres()
	kept := filieres[:0]
	for _, f := range filieres {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if err := s.saveFilieres(kept); err != nil {
		return err
	}

	classes := s.loadClasses()
	keptClasses := classes[:0]
	removedClasse := map[string]bool{}
	for _, c := range classes {
		if c.FiliereID == id {
			removedClasse[c.ID] = true
			continue
		}
		keptClasses = append(keptClasses, c)
	}
	if err := s.saveClasses(keptClasses); err != nil {
		return err
	}

	students := s.loadStudents()
	keptStudents := students[:0]
	for _, st := range students {
		if removedClasse[st.ClasseID] {
			continue
		}
		keptStudents = append(keptStudents, st)
	}
	if err := s.saveStudents(keptStudents); err != nil {
		return err
	}

	s.bus.Publish(Event{Collection: KeyFilieres, Action: ActionDeleted, ID: id})
	return nil
}

/* =========================================================
 * Classes
 * ========================================================= */

func (s *Store) GetClasses() []classeModel.Classe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadClasses()
}

func (s *Store) SaveClasses(list []classeModel.Classe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveClasses(list)
}

func (s *Store) AddClasse(c classeModel.Classe) (classeModel.Classe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = newID()
	c.CreatedAt = now()
	list := append(s.loadClasses(), c)
	if err := s.saveClasses(list); err != nil {
		return classeModel.Classe{}, err
	}
	s.bus.Publish(Event{Collection: KeyClasses, Action: ActionAdded, ID: c.ID})
	return c, nil
}

func (s *Store) UpdateClasse(id string, patch classeModel.ClassePatch) *classeModel.Classe {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.loadClasses()
	for i := range list {
		if list[i].ID == id {
			patch.Apply(&list[i])
			if err := s.saveClasses(list); err != nil {
				log.Printf("[ERROR] update classe %s: %v", id, err)
				return nil
			}
			s.bus.Publish(Event{Collection: KeyClasses, Action: ActionUpdated, ID: id})
			out := list[i]
			return &out
		}
	}
	return nil
}

// DeleteClasse supprime la classe et ses stagiaires (cascade brute).
func (s *Store) DeleteClasse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteClasseLocked(id)
}

func (s *Store) deleteClasseLocked(id string) error {
	classes := s.loadClasses()
	kept := classes[:0]
	for _, c := range classes {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if err := s.saveClasses(kept); err != nil {
		return err
	}

	students := s.loadStudents()
	keptStudents := students[:0]
	for _, st := range students {
		if st.ClasseID == id {
			continue
		}
		keptStudents = append(keptStudents, st)
	}
	if err := s.saveStudents(keptStudents); err != nil {
		return err
	}

	s.bus.Publish(Event{Collection: KeyClasses, Action: ActionDeleted, ID: id})
	return nil
}

func (s *Store) GetClassesByFiliere(filiereID string) []classeModel.Classe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []classeModel.Classe{}
	for _, c := range s.loadClasses() {
		if c.FiliereID == filiereID {
			out = append(out, c)
		}
	}
	return out
}

/* =========================================================
 * Stagiaires
 * ========================================================= */

func (s *Store) GetStudents() []studentModel.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadStudents()
}

func (s *Store) SaveStudents(list []studentModel.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveStudents(list)
}

func (s *Store) AddStudent(st studentModel.Student) (studentModel.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.ID = newID()
	st.CreatedAt = now()
	list := append(s.loadStudents(), st)
	if err := s.saveStudents(list); err != nil {
		return studentModel.Student{}, err
	}
	s.bus.Publish(Event{Collection: KeyStudents, Action: ActionAdded, ID: st.ID})
	return st, nil
}

func (s *Store) UpdateStudent(id string, patch studentModel.StudentPatch) *studentModel.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.loadStudents()
	for i := range list {
		if list[i].ID == id {
			patch.Apply(&list[i])
			if err := s.saveStudents(list); err != nil {
				log.Printf("[ERROR] update stagiaire %s: %v", id, err)
				return nil
			}
			s.bus.Publish(Event{Collection: KeyStudents, Action: ActionUpdated, ID: id})
			out := list[i]
			return &out
		}
	}
	return nil
}

// DeleteStudent ne touche pas aux absences du stagiaire : les
// enregistrements orphelins sont conservés comme historique (politique
// assumée, héritée du comportement d'origine).
func (s *Store) DeleteStudent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	students := s.loadStudents()
	kept := students[:0]
	for _, st := range students {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	if err := s.saveStudents(kept); err != nil {
		return err
	}
	s.bus.Publish(Event{Collection: KeyStudents, Action: ActionDeleted, ID: id})
	return nil
}

func (s *Store) GetStudentsByClasse(classeID string) []studentModel.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []studentModel.Student{}
	for _, st := range s.loadStudents() {
		if st.ClasseID == classeID {
			out = append(out, st)
		}
	}
	return out
}

/* =========================================================
 * Absences
 * ========================================================= */

func (s *Store) GetAbsences() []absenceModel.Absence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAbsences()
}

func (s *Store) SaveAbsences(list []absenceModel.Absence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAbsences(list)
}

func (s *Store) AddAbsence(a absenceModel.Absence) (absenceModel.Absence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = newID()
	a.CreatedAt = now()
	list := append(s.loadAbsences(), a)
	if err := s.saveAbsences(list); err != nil {
		return absenceModel.Absence{}, err
	}
	s.bus.Publish(Event{Collection: KeyAbsences, Action: ActionAdded, ID: a.ID})
	return a, nil
}

func (s *Store) GetAbsencesByStudent(studentID string) []absenceModel.Absence {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []absenceModel.Absence{}
	for _, a := range s.loadAbsences() {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) DeleteAbsence(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.loadAbsences()
	kept := list[:0]
	for _, a := range list {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if err := s.saveAbsences(kept); err != nil {
		return err
	}
	s.bus.Publish(Event{Collection: KeyAbsences, Action: ActionDeleted, ID: id})
	return nil
}

// ValidateAbsence marque l'absence comme validée sans toucher à la
// justification. Retourne nil si l'id est inconnu.
func (s *Store) ValidateAbsence(id, validatedBy string) *absenceModel.Absence {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.loadAbsences()
	for i := range list {
		if list[i].ID == id {
			list[i].Validated = true
			list[i].ValidatedBy = validatedBy
			list[i].ValidatedAt = now()
			if err := s.saveAbsences(list); err != nil {
				log.Printf("[ERROR] validation absence %s: %v", id, err)
				return nil
			}
			s.bus.Publish(Event{Collection: KeyAbsences, Action: ActionValidated, ID: id})
			out := list[i]
			return &out
		}
	}
	return nil
}

// JustifyAbsence pose justification + validated + validatedBy +
// validatedAt en une seule sauvegarde. Le justify en deux temps
// (update puis validate) laissait un état intermédiaire incohérent.
func (s *Store) JustifyAbsence(id, text, validatedBy string) (*absenceModel.Absence, error) {
	if text == "" {
		return nil, &ValidationError{Field: "justification", Message: "La justification ne peut pas être vide"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.loadAbsences()
	for i := range list {
		if list[i].ID == id {
			list[i].Validated = true
			list[i].ValidatedBy = validatedBy
			list[i].ValidatedAt = now()
			list[i].Justification = text
			if err := s.saveAbsences(list); err != nil {
				return nil, err
			}
			s.bus.Publish(Event{Collection: KeyAbsences, Action: ActionJustified, ID: id})
			out := list[i]
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

/* =========================================================
 * Chargement / sauvegarde par collection
 * ========================================================= */

// Lecture permissive : clé absente ou JSON invalide = collection vide.
// L'état corrompu est loggé, jamais remonté à l'utilisateur.

func (s *Store) loadFilieres() []filiereModel.Filiere {
	var list []filiereModel.Filiere
	data := s.medium.ReadKey(KeyFilieres)
	if data == nil {
		return []filiereModel.Filiere{}
	}
	if err := json.Unmarshal(data, &list); err != nil {
		log.Printf("[WARN] %s corrompu, collection vidée: %v", KeyFilieres, err)
		return []filiereModel.Filiere{}
	}
	return list
}

func (s *Store) saveFilieres(list []filiereModel.Filiere) error {
	if list == nil {
		list = []filiereModel.Filiere{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return s.medium.WriteKey(KeyFilieres, data)
}

func (s *Store) loadClasses() []classeModel.Classe {
	var list []classeModel.Classe
	data := s.medium.ReadKey(KeyClasses)
	if data == nil {
		return []classeModel.Classe{}
	}
	if err := json.Unmarshal(data, &list); err != nil {
		log.Printf("[WARN] %s corrompu, collection vidée: %v", KeyClasses, err)
		return []classeModel.Classe{}
	}
	return list
}

func (s *Store) saveClasses(list []classeModel.Classe) error {
	if list == nil {
		list = []classeModel.Classe{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return s.medium.WriteKey(KeyClasses, data)
}

func (s *Store) loadStudents() []studentModel.Student {
	var list []studentModel.Student
	data := s.medium.ReadKey(KeyStudents)
	if data == nil {
		return []studentModel.Student{}
	}
	if err := json.Unmarshal(data, &list); err != nil {
		log.Printf("[WARN] %s corrompu, collection vidée: %v", KeyStudents, err)
		return []studentModel.Student{}
	}
	return list
}

func (s *Store) saveStudents(list []studentModel.Student) error {
	if list == nil {
		list = []studentModel.Student{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return s.medium.WriteKey(KeyStudents, data)
}

func (s *Store) loadAbsences() []absenceModel.Absence {
	var list []absenceModel.Absence
	data := s.medium.ReadKey(KeyAbsences)
	if data == nil {
		return []absenceModel.Absence{}
	}
	if err := json.Unmarshal(data, &list); err != nil {
		log.Printf("[WARN] %s corrompu, collection vidée: %v", KeyAbsences, err)
		return []absenceModel.Absence{}
	}
	return list
}

func (s *Store) saveAbsences(list []absenceModel.Absence) error {
	if list == nil {
		list = []absenceModel.Absence{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return s.medium.WriteKey(KeyAbsences, data)
}
