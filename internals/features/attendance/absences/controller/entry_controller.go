package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"absenta_backend/internals/features/attendance/absences/dto"
	absenceModel "absenta_backend/internals/features/attendance/absences/model"
	"absenta_backend/internals/features/attendance/absences/service"
	helper "absenta_backend/internals/helpers"
	"absenta_backend/internals/storage"
)

type EntryController struct {
	Store *storage.Store
}

func NewEntryController(store *storage.Store) *EntryController {
	return &EntryController{Store: store}
}

var validate = validator.New()

// GET /api/absences/entry/seances
func (ctrl *EntryController) Seances(c *fiber.Ctx) error {
	return helper.JsonList(c, "Créneaux de la journée", service.Seances, len(service.Seances))
}

// GET /api/absences/entry/sheet?classe_id=&date=&session_id=
// Feuille d'appel : stagiaires actifs de la classe avec leur état
// courant sur la séance demandée. session_id est un identifiant libre,
// le catalogue de créneaux n'est qu'une proposition.
func (ctrl *EntryController) Sheet(c *fiber.Ctx) error {
	classeID := c.Query("classe_id")
	date := c.Query("date")
	sessionID := c.Query("session_id")
	if classeID == "" || date == "" || sessionID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "classe_id, date et session_id sont requis")
	}

	formateur := callerDisplayName(c)
	absences := ctrl.Store.GetAbsences()
	rows := []dto.SheetRow{}
	for _, st := range service.EligibleStudents(ctrl.Store.GetStudentsByClasse(classeID)) {
		rows = append(rows, dto.SheetRow{
			StudentID:    st.ID,
			Nom:          st.Nom,
			Prenom:       st.Prenom,
			Status:       service.DisplayStatus(absences, st.ID, date, sessionID),
			ForcedRetard: service.ForcedRetard(absences, st.ID, date, sessionID, formateur),
		})
	}
	return helper.JsonList(c, "Feuille d'appel", rows, len(rows))
}

type markBatch struct {
	field    string
	ids      []string
	markType string
}

// POST /api/absences/entry
// Enregistre les marquages d'une séance. Le formateur vient du token.
// Le lot entier est vérifié avant la moindre écriture : un refus ne
// laisse jamais une feuille enregistrée à moitié.
func (ctrl *EntryController) Create(c *fiber.Ctx) error {
	var req dto.CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}
	if dup := service.Overlap(req.AbsentIDs, req.LateIDs); len(dup) > 0 {
		return helper.JsonValidationError(c, map[string][]string{
			"absentIds": {"Un stagiaire ne peut pas être à la fois absent et en retard"},
		})
	}

	eligible := map[string]bool{}
	for _, st := range service.EligibleStudents(ctrl.Store.GetStudentsByClasse(req.ClasseID)) {
		eligible[st.ID] = true
	}

	batches := []markBatch{
		{"absentIds", req.AbsentIDs, absenceModel.TypeAbsent},
		{"lateIds", req.LateIDs, absenceModel.TypeRetard},
	}
	for _, batch := range batches {
		for _, studentID := range batch.ids {
			if !eligible[studentID] {
				return helper.JsonValidationError(c, map[string][]string{
					batch.field: {fmt.Sprintf("Le stagiaire %s n'appartient pas à cette classe ou n'est pas actif", studentID)},
				})
			}
		}
	}

	if !service.IsKnownSeance(req.SessionID) {
		log.Printf("[WARN] séance hors catalogue: %s", req.SessionID)
	}

	formateur := callerDisplayName(c)
	absences := ctrl.Store.GetAbsences()
	created := []absenceModel.Absence{}
	for _, batch := range batches {
		for _, studentID := range batch.ids {
			markType := batch.markType
			// Une absence déjà justifiée couvre la séance, seul un
			// retard reste constatable.
			if markType == absenceModel.TypeAbsent && service.ForcedRetard(absences, studentID, req.Date, req.SessionID, formateur) {
				markType = absenceModel.TypeRetard
			}

			a, err := ctrl.Store.AddAbsence(absenceModel.Absence{
				StudentID: studentID,
				SessionID: req.SessionID,
				Date:      req.Date,
				Type:      markType,
				Formateur: formateur,
			})
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Échec de l'enregistrement de l'appel")
			}
			created = append(created, a)
		}
	}

	msg := fmt.Sprintf("Appel enregistré (%d marquage(s))", len(created))
	return helper.JsonCreated(c, msg, created)
}

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Nom signé sur les enregistrements : le nom complet du token, à
// défaut le nom d'utilisateur. Jamais le corps de la requête.
func callerDisplayName(c *fiber.Ctx) string {
	if name := localString(c, "userFullName"); name != "" {
		return name
	}
	return localString(c, "userName")
}
