package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/features/academics/students/dto"
	helper "absenta_backend/internals/helpers"
	"absenta_backend/internals/storage"
)

type StudentController struct {
	Store *storage.Store
}

func NewStudentController(store *storage.Store) *StudentController {
	return &StudentController{Store: store}
}

var validate = validator.New()

// GET /api/stagiaires?classe_id=
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	if classeID := c.Query("classe_id"); classeID != "" {
		students := ctrl.Store.GetStudentsByClasse(classeID)
		return helper.JsonList(c, "Stagiaires de la classe", students, len(students))
	}
	students := ctrl.Store.GetStudents()
	return helper.JsonList(c, "Liste des stagiaires", students, len(students))
}

// GET /api/stagiaires/:id : détail avec historique d'absences
func (ctrl *StudentController) Detail(c *fiber.Ctx) error {
	id := c.Params("id")
	for _, s := range ctrl.Store.GetStudents() {
		if s.ID == id {
			absences := ctrl.Store.GetAbsencesByStudent(id)
			return helper.JsonOK(c, "ok", fiber.Map{
				"stagiaire": s,
				"absences":  absences,
			})
		}
	}
	return helper.JsonError(c, fiber.StatusNotFound, "Stagiaire introuvable")
}

// POST /api/stagiaires
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	if !ctrl.classeExists(req.ClasseID) {
		return helper.JsonError(c, fiber.StatusNotFound, "Classe introuvable")
	}

	created, err := ctrl.Store.AddStudent(req.ToModel())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la création du stagiaire")
	}
	return helper.JsonCreated(c, "Le nouveau stagiaire a été créé avec succès", created)
}

// PATCH /api/stagiaires/:id
func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}
	if req.ClasseID != nil && !ctrl.classeExists(*req.ClasseID) {
		return helper.JsonError(c, fiber.StatusNotFound, "Classe introuvable")
	}

	updated := ctrl.Store.UpdateStudent(c.Params("id"), req.ToPatch())
	if updated == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Stagiaire introuvable")
	}
	return helper.JsonUpdated(c, "Le stagiaire a été mis à jour avec succès", updated)
}

// DELETE /api/stagiaires/:id : jamais bloqué, l'historique d'absences est conservé
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	if err := ctrl.Store.GuardedDeleteStudent(c.Params("id")); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la suppression")
	}
	return helper.JsonDeleted(c, "Stagiaire supprimé", nil)
}

func (ctrl *StudentController) classeExists(id string) bool {
	for _, cl := range ctrl.Store.GetClasses() {
		if cl.ID == id {
			return true
		}
	}
	return false
}
