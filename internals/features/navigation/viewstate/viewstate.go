package viewstate

import (
	classeModel "absenta_backend/internals/features/academics/classes/model"
	filiereModel "absenta_backend/internals/features/academics/filieres/model"
	studentModel "absenta_backend/internals/features/academics/students/model"
)

// Niveaux de navigation de l'écran stagiaires. Chaque niveau porte la
// copie de l'entité sélectionnée, pas seulement son id, pour que
// l'affichage ne dépende pas d'une relecture.
type View string

const (
	ViewOverview View = "overview"
	ViewFiliere  View = "filiere"
	ViewClasse   View = "classe"
	ViewStudent  View = "student"
)

// DialogRequest est une union fermée : un dialogue ouvert est toujours
// l'un des trois variants ci-dessous. Un id vide signifie création,
// un id renseigné signifie édition.
type DialogRequest interface {
	Kind() string
	TargetID() string
	ParentID() string
}

type FiliereDialog struct {
	FiliereID string
}

func (FiliereDialog) Kind() string       { return "filiere" }
func (d FiliereDialog) TargetID() string { return d.FiliereID }
func (FiliereDialog) ParentID() string   { return "" }

type ClasseDialog struct {
	ClasseID  string
	FiliereID string
}

func (ClasseDialog) Kind() string       { return "classe" }
func (d ClasseDialog) TargetID() string { return d.ClasseID }
func (d ClasseDialog) ParentID() string { return d.FiliereID }

type StudentDialog struct {
	StudentID string
	ClasseID  string
}

func (StudentDialog) Kind() string       { return "student" }
func (d StudentDialog) TargetID() string { return d.StudentID }
func (d StudentDialog) ParentID() string { return d.ClasseID }

// Coordinator porte l'état de navigation d'un utilisateur. Le dialogue
// est indépendant du niveau : l'ouvrir ou le fermer ne change pas la
// vue courante, et naviguer ne le ferme pas. Non protégé contre les
// accès concurrents, c'est à l'appelant de sérialiser.
type Coordinator struct {
	view    View
	filiere *filiereModel.Filiere
	classe  *classeModel.Classe
	student *studentModel.Student
	dialog  DialogRequest
}

func New() *Coordinator {
	return &Coordinator{view: ViewOverview}
}

func (c *Coordinator) View() View { return c.view }

func (c *Coordinator) ShowFiliere(f filiereModel.Filiere) {
	c.view = ViewFiliere
	c.filiere = &f
	c.classe = nil
	c.student = nil
}

// ShowClasse descend sur une classe. La filière parente accompagne la
// sélection quand elle est connue, nil sinon.
func (c *Coordinator) ShowClasse(cl classeModel.Classe, parent *filiereModel.Filiere) {
	c.view = ViewClasse
	c.filiere = parent
	c.classe = &cl
	c.student = nil
}

func (c *Coordinator) ShowStudent(st studentModel.Student, classe *classeModel.Classe, filiere *filiereModel.Filiere) {
	c.view = ViewStudent
	c.filiere = filiere
	c.classe = classe
	c.student = &st
}

// Back remonte au parent immédiat s'il est sélectionné, sinon à la vue
// d'ensemble. Depuis la vue d'ensemble c'est un no-op.
func (c *Coordinator) Back() {
	switch c.view {
	case ViewStudent:
		c.student = nil
		if c.classe != nil {
			c.view = ViewClasse
		} else {
			c.view = ViewOverview
		}
	case ViewClasse:
		c.classe = nil
		if c.filiere != nil {
			c.view = ViewFiliere
		} else {
			c.view = ViewOverview
		}
	case ViewFiliere:
		c.filiere = nil
		c.view = ViewOverview
	}
}

func (c *Coordinator) OpenDialog(d DialogRequest) { c.dialog = d }

func (c *Coordinator) CloseDialog() { c.dialog = nil }

func (c *Coordinator) Dialog() DialogRequest { return c.dialog }

// Snapshot est la forme sérialisable de l'état courant.
type Snapshot struct {
	View    View                  `json:"view"`
	Filiere *filiereModel.Filiere `json:"filiere,omitempty"`
	Classe  *classeModel.Classe   `json:"classe,omitempty"`
	Student *studentModel.Student `json:"student,omitempty"`
	Dialog  *DialogSnapshot       `json:"dialog,omitempty"`
}

type DialogSnapshot struct {
	Kind     string `json:"kind"`
	TargetID string `json:"targetId,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

func (c *Coordinator) Snapshot() Snapshot {
	snap := Snapshot{
		View:    c.view,
		Filiere: c.filiere,
		Classe:  c.classe,
		Student: c.student,
	}
	if c.dialog != nil {
		snap.Dialog = &DialogSnapshot{
			Kind:     c.dialog.Kind(),
			TargetID: c.dialog.TargetID(),
			ParentID: c.dialog.ParentID(),
		}
	}
	return snap
}
