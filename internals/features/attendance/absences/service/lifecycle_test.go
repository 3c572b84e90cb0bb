package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	studentModel "absenta_backend/internals/features/academics/students/model"
	absenceModel "absenta_backend/internals/features/attendance/absences/model"
)

func TestEligibleStudentsFiltersInactifs(t *testing.T) {
	students := []studentModel.Student{
		{ID: "a", Statut: studentModel.StatutActif},
		{ID: "b", Statut: studentModel.StatutInactif},
		{ID: "c", Statut: studentModel.StatutSuspendu},
		{ID: "d", Statut: studentModel.StatutActif},
	}

	eligible := EligibleStudents(students)
	require.Len(t, eligible, 2)
	require.Equal(t, "a", eligible[0].ID)
	require.Equal(t, "d", eligible[1].ID)
}

func TestOverlap(t *testing.T) {
	require.Empty(t, Overlap([]string{"a", "b"}, []string{"c"}))
	require.Equal(t, []string{"b"}, Overlap([]string{"a", "b"}, []string{"b", "c"}))
	require.Empty(t, Overlap(nil, nil))
}

func TestForcedRetard(t *testing.T) {
	absences := []absenceModel.Absence{
		{StudentID: "s1", Date: "2026-03-02", SessionID: "08:30-11:00", Formateur: "Karim", Validated: true, Justification: "Certificat"},
		{StudentID: "s1", Date: "2026-03-02", SessionID: "11:00-13:30", Formateur: "Karim", Validated: true},
		{StudentID: "s2", Date: "2026-03-02", SessionID: "08:30-11:00", Formateur: "Karim"},
	}

	require.True(t, ForcedRetard(absences, "s1", "2026-03-02", "08:30-11:00", "Karim"))
	// validée sans justification ne compte pas
	require.False(t, ForcedRetard(absences, "s1", "2026-03-02", "11:00-13:30", "Karim"))
	// en attente ne compte pas
	require.False(t, ForcedRetard(absences, "s2", "2026-03-02", "08:30-11:00", "Karim"))
	// autre jour, autre formateur
	require.False(t, ForcedRetard(absences, "s1", "2026-03-03", "08:30-11:00", "Karim"))
	require.False(t, ForcedRetard(absences, "s1", "2026-03-02", "08:30-11:00", "Nadia"))
}

func TestDisplayStatusRetardPrime(t *testing.T) {
	absences := []absenceModel.Absence{
		{StudentID: "s1", Date: "2026-03-02", SessionID: "08:30-11:00", Type: absenceModel.TypeAbsent},
		{StudentID: "s1", Date: "2026-03-02", SessionID: "08:30-11:00", Type: absenceModel.TypeRetard},
	}

	require.Equal(t, absenceModel.TypeRetard, DisplayStatus(absences, "s1", "2026-03-02", "08:30-11:00"))
	require.Equal(t, absenceModel.TypeAbsent, DisplayStatus(absences[:1], "s1", "2026-03-02", "08:30-11:00"))
	require.Equal(t, "present", DisplayStatus(absences, "s2", "2026-03-02", "08:30-11:00"))
}

func TestSeances(t *testing.T) {
	require.Len(t, Seances, 4)
	require.True(t, IsKnownSeance("08:30-11:00"))
	require.True(t, IsKnownSeance("16:00-18:30"))
	require.False(t, IsKnownSeance("20:00-22:00"))
}
