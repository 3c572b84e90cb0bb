package controller

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	classeModel "absenta_backend/internals/features/academics/classes/model"
	filiereModel "absenta_backend/internals/features/academics/filieres/model"
	studentModel "absenta_backend/internals/features/academics/students/model"
	"absenta_backend/internals/features/navigation/viewstate"
	"absenta_backend/internals/features/users/authz"
	helper "absenta_backend/internals/helpers"
	"absenta_backend/internals/storage"
)

// NavigationController tient un coordinateur de navigation par
// utilisateur connecté, indexé sur l'email du token.
type NavigationController struct {
	Store *storage.Store

	mu     sync.Mutex
	states map[string]*viewstate.Coordinator
}

func NewNavigationController(store *storage.Store) *NavigationController {
	return &NavigationController{
		Store:  store,
		states: make(map[string]*viewstate.Coordinator),
	}
}

// withCoordinator sérialise les accès au coordinateur de l'appelant.
func (ctrl *NavigationController) withCoordinator(c *fiber.Ctx, fn func(*viewstate.Coordinator)) viewstate.Snapshot {
	email, _ := c.Locals("userEmail").(string)
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	coord := ctrl.states[email]
	if coord == nil {
		coord = viewstate.New()
		ctrl.states[email] = coord
	}
	if fn != nil {
		fn(coord)
	}
	return coord.Snapshot()
}

// GET /api/navigation/menu
// Items de menu filtrés par la même table que les gardes de routes.
func (ctrl *NavigationController) Menu(c *fiber.Ctx) error {
	role, _ := c.Locals("userRole").(string)
	resources := authz.AllowedResources(role)
	return helper.JsonList(c, "Menu", resources, len(resources))
}

// GET /api/navigation/state
func (ctrl *NavigationController) State(c *fiber.Ctx) error {
	return helper.JsonOK(c, "État de navigation", ctrl.withCoordinator(c, nil))
}

// POST /api/navigation/view/filiere/:id
func (ctrl *NavigationController) ViewFiliere(c *fiber.Ctx) error {
	filiere := ctrl.findFiliere(c.Params("id"))
	if filiere == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Filière introuvable")
	}

	snap := ctrl.withCoordinator(c, func(coord *viewstate.Coordinator) {
		coord.ShowFiliere(*filiere)
	})
	return helper.JsonOK(c, "Vue filière", snap)
}

// POST /api/navigation/view/classe/:id
func (ctrl *NavigationController) ViewClasse(c *fiber.Ctx) error {
	classe := ctrl.findClasse(c.Params("id"))
	if classe == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Classe introuvable")
	}
	parent := ctrl.findFiliere(classe.FiliereID)

	snap := ctrl.withCoordinator(c, func(coord *viewstate.Coordinator) {
		coord.ShowClasse(*classe, parent)
	})
	return helper.JsonOK(c, "Vue classe", snap)
}

// POST /api/navigation/view/stagiaire/:id
func (ctrl *NavigationController) ViewStudent(c *fiber.Ctx) error {
	student := ctrl.findStudent(c.Params("id"))
	if student == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Stagiaire introuvable")
	}
	classe := ctrl.findClasse(student.ClasseID)
	var filiere *filiereModel.Filiere
	if classe != nil {
		filiere = ctrl.findFiliere(classe.FiliereID)
	}

	snap := ctrl.withCoordinator(c, func(coord *viewstate.Coordinator) {
		coord.ShowStudent(*student, classe, filiere)
	})
	return helper.JsonOK(c, "Vue stagiaire", snap)
}

// POST /api/navigation/back
func (ctrl *NavigationController) Back(c *fiber.Ctx) error {
	snap := ctrl.withCoordinator(c, func(coord *viewstate.Coordinator) {
		coord.Back()
	})
	return helper.JsonOK(c, "Retour", snap)
}

type openDialogRequest struct {
	Kind     string `json:"kind"`
	TargetID string `json:"targetId"`
	ParentID string `json:"parentId"`
}

// POST /api/navigation/dialog/open
// Ouvrir un dialogue ne change pas la vue courante.
func (ctrl *NavigationController) OpenDialog(c *fiber.Ctx) error {
	var req openDialogRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}

	var dialog viewstate.DialogRequest
	switch strings.ToLower(req.Kind) {
	case "filiere":
		dialog = viewstate.FiliereDialog{FiliereID: req.TargetID}
	case "classe":
		dialog = viewstate.ClasseDialog{ClasseID: req.TargetID, FiliereID: req.ParentID}
	case "student", "stagiaire":
		dialog = viewstate.StudentDialog{StudentID: req.TargetID, ClasseID: req.ParentID}
	default:
		return helper.JsonValidationError(c, map[string][]string{
			"kind": {"Type de dialogue inconnu (filiere, classe ou stagiaire)"},
		})
	}

	snap := ctrl.withCoordinator(c, func(coord *viewstate.Coordinator) {
		coord.OpenDialog(dialog)
	})
	return helper.JsonOK(c, "Dialogue ouvert", snap)
}

// POST /api/navigation/dialog/close
func (ctrl *NavigationController) CloseDialog(c *fiber.Ctx) error {
	snap := ctrl.withCoordinator(c, func(coord *viewstate.Coordinator) {
		coord.CloseDialog()
	})
	return helper.JsonOK(c, "Dialogue fermé", snap)
}

func (ctrl *NavigationController) findFiliere(id string) *filiereModel.Filiere {
	for _, f := range ctrl.Store.GetFilieres() {
		if f.ID == id {
			return &f
		}
	}
	return nil
}

func (ctrl *NavigationController) findClasse(id string) *classeModel.Classe {
	for _, cl := range ctrl.Store.GetClasses() {
		if cl.ID == id {
			return &cl
		}
	}
	return nil
}

func (ctrl *NavigationController) findStudent(id string) *studentModel.Student {
	for _, st := range ctrl.Store.GetStudents() {
		if st.ID == id {
			return &st
		}
	}
	return nil
}
