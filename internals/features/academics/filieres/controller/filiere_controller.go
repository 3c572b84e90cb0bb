package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/features/academics/filieres/dto"
	helper "absenta_backend/internals/helpers"
	"absenta_backend/internals/storage"
)

type FiliereController struct {
	Store *storage.Store
}

func NewFiliereController(store *storage.Store) *FiliereController {
	return &FiliereController{Store: store}
}

var validate = validator.New()

// GET /api/filieres
func (ctrl *FiliereController) List(c *fiber.Ctx) error {
	filieres := ctrl.Store.GetFilieres()
	return helper.JsonList(c, "Liste des filières", filieres, len(filieres))
}

// GET /api/filieres/:id : détail avec ses classes
func (ctrl *FiliereController) Detail(c *fiber.Ctx) error {
	id := c.Params("id")
	for _, f := range ctrl.Store.GetFilieres() {
		if f.ID == id {
			return helper.JsonOK(c, "ok", fiber.Map{
				"filiere": f,
				"classes": ctrl.Store.GetClassesByFiliere(id),
			})
		}
	}
	return helper.JsonError(c, fiber.StatusNotFound, "Filière introuvable")
}

// POST /api/filieres
func (ctrl *FiliereController) Create(c *fiber.Ctx) error {
	var req dto.CreateFiliereRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	created, err := ctrl.Store.AddFiliere(req.ToModel())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la création de la filière")
	}
	return helper.JsonCreated(c, "La nouvelle filière a été créée avec succès", created)
}

// PATCH /api/filieres/:id
func (ctrl *FiliereController) Update(c *fiber.Ctx) error {
	var req dto.UpdateFiliereRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	updated := ctrl.Store.UpdateFiliere(c.Params("id"), req.ToPatch())
	if updated == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Filière introuvable")
	}
	return helper.JsonUpdated(c, "La filière a été mise à jour avec succès", updated)
}

// DELETE /api/filieres/:id : refusé tant que des classes existent
func (ctrl *FiliereController) Delete(c *fiber.Ctx) error {
	err := ctrl.Store.GuardedDeleteFiliere(c.Params("id"))
	var blocked *storage.DeletionBlockedError
	if errors.As(err, &blocked) {
		return helper.JsonError(c, fiber.StatusConflict, blocked.Reason)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la suppression")
	}
	return helper.JsonDeleted(c, "Filière supprimée", nil)
}
