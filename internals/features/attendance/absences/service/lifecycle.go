package service

import (
	studentModel "absenta_backend/internals/features/academics/students/model"
	absenceModel "absenta_backend/internals/features/attendance/absences/model"
)

// Seance est un créneau horaire fixe de la journée de formation.
type Seance struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Les quatre créneaux du centre. L'identifiant sert de sessionId
// dans les enregistrements d'absence, il ne doit pas changer.
var Seances = []Seance{
	{ID: "08:30-11:00", Label: "Séance 1 (08:30 - 11:00)"},
	{ID: "11:00-13:30", Label: "Séance 2 (11:00 - 13:30)"},
	{ID: "13:30-16:00", Label: "Séance 3 (13:30 - 16:00)"},
	{ID: "16:00-18:30", Label: "Séance 4 (16:00 - 18:30)"},
}

func IsKnownSeance(id string) bool {
	for _, s := range Seances {
		if s.ID == id {
			return true
		}
	}
	return false
}

// EligibleStudents filtre les stagiaires pointables : seuls les
// stagiaires actifs apparaissent sur la feuille d'appel.
func EligibleStudents(students []studentModel.Student) []studentModel.Student {
	out := []studentModel.Student{}
	for _, st := range students {
		if st.IsActif() {
			out = append(out, st)
		}
	}
	return out
}

// Overlap retourne les ids présents dans les deux listes. Un stagiaire
// ne peut pas être à la fois absent et en retard sur la même séance.
func Overlap(absentIDs, lateIDs []string) []string {
	seen := make(map[string]bool, len(absentIDs))
	for _, id := range absentIDs {
		seen[id] = true
	}
	dup := []string{}
	for _, id := range lateIDs {
		if seen[id] {
			dup = append(dup, id)
		}
	}
	return dup
}

// ForcedRetard dit si le stagiaire a déjà une absence justifiée sur la
// même séance du même formateur. Dans ce cas un marquage "absent" est
// rétrogradé en retard : la justification couvre l'absence, seul le
// retard reste constatable.
func ForcedRetard(absences []absenceModel.Absence, studentID, date, sessionID, formateur string) bool {
	for _, a := range absences {
		if a.StudentID == studentID && a.Date == date && a.SessionID == sessionID &&
			a.Formateur == formateur && a.IsJustified() {
			return true
		}
	}
	return false
}

// DisplayStatus calcule l'état affiché d'un stagiaire sur une séance à
// partir de ses enregistrements. Retard prime sur absent.
func DisplayStatus(absences []absenceModel.Absence, studentID, date, sessionID string) string {
	status := "present"
	for _, a := range absences {
		if a.StudentID != studentID || a.Date != date || a.SessionID != sessionID {
			continue
		}
		if a.Type == absenceModel.TypeRetard {
			return absenceModel.TypeRetard
		}
		status = absenceModel.TypeAbsent
	}
	return status
}
