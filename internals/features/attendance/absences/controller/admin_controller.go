package controller

import (
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"

	classeModel "absenta_backend/internals/features/academics/classes/model"
	filiereModel "absenta_backend/internals/features/academics/filieres/model"
	studentModel "absenta_backend/internals/features/academics/students/model"
	"absenta_backend/internals/features/attendance/absences/dto"
	helper "absenta_backend/internals/helpers"
	"absenta_backend/internals/storage"
)

type AdminController struct {
	Store *storage.Store
}

func NewAdminController(store *storage.Store) *AdminController {
	return &AdminController{Store: store}
}

// GET /api/absences/admin?filter=pending|validated|all
// Liste enrichie pour l'écran de validation, la plus récente d'abord.
// Les enregistrements dont le stagiaire a disparu sont ignorés.
func (ctrl *AdminController) List(c *fiber.Ctx) error {
	filter := c.Query("filter", "all")
	if filter != "pending" && filter != "validated" && filter != "all" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Filtre inconnu (pending, validated ou all)")
	}

	students := indexStudents(ctrl.Store.GetStudents())
	classes := indexClasses(ctrl.Store.GetClasses())
	filieres := indexFilieres(ctrl.Store.GetFilieres())

	rows := []dto.AdminRow{}
	pending, validated := 0, 0
	for _, a := range ctrl.Store.GetAbsences() {
		st, ok := students[a.StudentID]
		if !ok {
			continue
		}
		if a.Validated {
			validated++
		} else {
			pending++
		}

		switch filter {
		case "pending":
			if a.Validated {
				continue
			}
		case "validated":
			if !a.Validated {
				continue
			}
		}

		row := dto.AdminRow{
			ID:            a.ID,
			StudentID:     a.StudentID,
			StudentNom:    st.Nom,
			StudentPrenom: st.Prenom,
			SessionID:     a.SessionID,
			Date:          a.Date,
			Type:          a.Type,
			Formateur:     a.Formateur,
			Status:        a.Status(),
			Justification: a.Justification,
			ValidatedBy:   a.ValidatedBy,
			ValidatedAt:   a.ValidatedAt,
			CreatedAt:     a.CreatedAt,
		}
		if cl, ok := classes[st.ClasseID]; ok {
			row.Classe = cl.Nom
			if f, ok := filieres[cl.FiliereID]; ok {
				row.Filiere = f.Code
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt > rows[j].CreatedAt
	})
	return helper.JsonOK(c, "Absences enregistrées", fiber.Map{
		"items": rows,
		"counts": fiber.Map{
			"pending":   pending,
			"validated": validated,
			"total":     pending + validated,
		},
	})
}

// POST /api/absences/admin/:id/validate
func (ctrl *AdminController) Validate(c *fiber.Ctx) error {
	updated := ctrl.Store.ValidateAbsence(c.Params("id"), callerDisplayName(c))
	if updated == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Absence introuvable")
	}
	return helper.JsonUpdated(c, "L'absence a été validée", updated)
}

// POST /api/absences/admin/:id/justify
func (ctrl *AdminController) Justify(c *fiber.Ctx) error {
	var req dto.JustifyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	updated, err := ctrl.Store.JustifyAbsence(c.Params("id"), req.Justification, callerDisplayName(c))
	if err != nil {
		var verr *storage.ValidationError
		if errors.As(err, &verr) {
			return helper.JsonValidationError(c, map[string][]string{
				verr.Field: {verr.Message},
			})
		}
		if errors.Is(err, storage.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Absence introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de la justification")
	}
	return helper.JsonUpdated(c, "L'absence a été justifiée", updated)
}

func indexStudents(list []studentModel.Student) map[string]studentModel.Student {
	out := make(map[string]studentModel.Student, len(list))
	for _, st := range list {
		out[st.ID] = st
	}
	return out
}

func indexClasses(list []classeModel.Classe) map[string]classeModel.Classe {
	out := make(map[string]classeModel.Classe, len(list))
	for _, cl := range list {
		out[cl.ID] = cl
	}
	return out
}

func indexFilieres(list []filiereModel.Filiere) map[string]filiereModel.Filiere {
	out := make(map[string]filiereModel.Filiere, len(list))
	for _, f := range list {
		out[f.ID] = f
	}
	return out
}
