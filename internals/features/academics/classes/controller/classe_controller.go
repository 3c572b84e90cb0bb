package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/features/academics/classes/dto"
	helper "absenta_backend/internals/helpers"
	"absenta_backend/internals/storage"
)

type ClasseController struct {
	Store *storage.Store
}

func NewClasseController(store *storage.Store) *ClasseController {
	return &ClasseController{Store: store}
}

var validate = validator.New()

// GET /api/classes?filiere_id=
func (ctrl *ClasseController) List(c *fiber.Ctx) error {
	if filiereID := c.Query("filiere_id"); filiereID != "" {
		classes := ctrl.Store.GetClassesByFiliere(filiereID)
		return helper.JsonList(c, "Classes de la filière", classes, len(classes))
	}
	classes := ctrl.Store.GetClasses()
	return helper.JsonList(c, "Liste des classes", classes, len(classes))
}

// GET /api/classes/:id : détail avec ses stagiaires
func (ctrl *ClasseController) Detail(c *fiber.Ctx) error {
	id := c.Params("id")
	for _, cl := range ctrl.Store.GetClasses() {
		if cl.ID == id {
			return helper.JsonOK(c, "ok", fiber.Map{
				"classe":     cl,
				"stagiaires": ctrl.Store.GetStudentsByClasse(id),
			})
		}
	}
	return helper.JsonError(c, fiber.StatusNotFound, "Classe introuvable")
}

// POST /api/classes
func (ctrl *ClasseController) Create(c *fiber.Ctx) error {
	var req dto.CreateClasseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	// La filière parente doit exister
	if !ctrl.filiereExists(req.FiliereID) {
		return helper.JsonError(c, fiber.StatusNotFound, "Filière introuvable")
	}

	created, err := ctrl.Store.AddClasse(req.ToModel())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la création de la classe")
	}
	return helper.JsonCreated(c, "La nouvelle classe a été créée avec succès", created)
}

// PATCH /api/classes/:id
func (ctrl *ClasseController) Update(c *fiber.Ctx) error {
	var req dto.UpdateClasseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	updated := ctrl.Store.UpdateClasse(c.Params("id"), req.ToPatch())
	if updated == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Classe introuvable")
	}
	return helper.JsonUpdated(c, "La classe a été mise à jour avec succès", updated)
}

// DELETE /api/classes/:id : refusé tant que des stagiaires existent
func (ctrl *ClasseController) Delete(c *fiber.Ctx) error {
	err := ctrl.Store.GuardedDeleteClasse(c.Params("id"))
	var blocked *storage.DeletionBlockedError
	if errors.As(err, &blocked) {
		return helper.JsonError(c, fiber.StatusConflict, blocked.Reason)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la suppression")
	}
	return helper.JsonDeleted(c, "Classe supprimée", nil)
}

func (ctrl *ClasseController) filiereExists(id string) bool {
	for _, f := range ctrl.Store.GetFilieres() {
		if f.ID == id {
			return true
		}
	}
	return false
}
