package viewstate

import (
	"testing"

	"github.com/stretchr/testify/require"

	classeModel "absenta_backend/internals/features/academics/classes/model"
	filiereModel "absenta_backend/internals/features/academics/filieres/model"
	studentModel "absenta_backend/internals/features/academics/students/model"
)

var (
	filiereTSDI = filiereModel.Filiere{ID: "f1", Code: "TSDI"}
	classe101   = classeModel.Classe{ID: "c1", Nom: "TSDI-101", FiliereID: "f1"}
	stagiaire   = studentModel.Student{ID: "s1", Nom: "Alami", ClasseID: "c1"}
)

func TestDrillDownAndBack(t *testing.T) {
	c := New()
	require.Equal(t, ViewOverview, c.View())

	c.ShowFiliere(filiereTSDI)
	c.ShowClasse(classe101, &filiereTSDI)
	c.ShowStudent(stagiaire, &classe101, &filiereTSDI)

	snap := c.Snapshot()
	require.Equal(t, ViewStudent, snap.View)
	require.Equal(t, "f1", snap.Filiere.ID)
	require.Equal(t, "c1", snap.Classe.ID)
	require.Equal(t, "s1", snap.Student.ID)
	require.Equal(t, "Alami", snap.Student.Nom, "la vue porte l'entité, pas seulement son id")

	c.Back()
	require.Equal(t, ViewClasse, c.View())
	require.Nil(t, c.Snapshot().Student)

	c.Back()
	require.Equal(t, ViewFiliere, c.View())
	require.Nil(t, c.Snapshot().Classe)

	c.Back()
	require.Equal(t, ViewOverview, c.View())
	require.Nil(t, c.Snapshot().Filiere)

	// no-op au sommet
	c.Back()
	require.Equal(t, ViewOverview, c.View())
}

func TestBackWithoutParentGoesToOverview(t *testing.T) {
	c := New()
	c.ShowClasse(classe101, nil)
	c.Back()
	require.Equal(t, ViewOverview, c.View())

	c.ShowStudent(stagiaire, nil, nil)
	c.Back()
	require.Equal(t, ViewOverview, c.View())
}

func TestShowFiliereResetsDeeperLevels(t *testing.T) {
	c := New()
	c.ShowStudent(stagiaire, &classe101, &filiereTSDI)

	c.ShowFiliere(filiereModel.Filiere{ID: "f2", Code: "TSRI"})
	snap := c.Snapshot()
	require.Equal(t, ViewFiliere, snap.View)
	require.Equal(t, "f2", snap.Filiere.ID)
	require.Nil(t, snap.Classe)
	require.Nil(t, snap.Student)
}

func TestDialogIndependentOfNavigation(t *testing.T) {
	c := New()
	c.ShowClasse(classe101, &filiereTSDI)

	c.OpenDialog(StudentDialog{ClasseID: "c1"})
	require.Equal(t, ViewClasse, c.View(), "ouvrir un dialogue ne change pas la vue")

	snap := c.Snapshot()
	require.NotNil(t, snap.Dialog)
	require.Equal(t, "student", snap.Dialog.Kind)
	require.Empty(t, snap.Dialog.TargetID, "cible vide = création")
	require.Equal(t, "c1", snap.Dialog.ParentID)

	c.Back()
	require.Equal(t, ViewFiliere, c.View())
	require.NotNil(t, c.Snapshot().Dialog, "le retour ne ferme pas le dialogue")

	c.CloseDialog()
	require.Nil(t, c.Snapshot().Dialog)
	require.Equal(t, ViewFiliere, c.View())
}

func TestDialogVariants(t *testing.T) {
	cases := []struct {
		dialog DialogRequest
		kind   string
		target string
		parent string
	}{
		{FiliereDialog{FiliereID: "f1"}, "filiere", "f1", ""},
		{ClasseDialog{ClasseID: "c1", FiliereID: "f1"}, "classe", "c1", "f1"},
		{StudentDialog{StudentID: "s1", ClasseID: "c1"}, "student", "s1", "c1"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.kind, tc.dialog.Kind())
		require.Equal(t, tc.target, tc.dialog.TargetID())
		require.Equal(t, tc.parent, tc.dialog.ParentID())
	}
}
