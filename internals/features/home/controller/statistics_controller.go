package controller

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	absenceModel "absenta_backend/internals/features/attendance/absences/model"
	helper "absenta_backend/internals/helpers"
	"absenta_backend/internals/storage"
)

type StatisticsController struct {
	Store *storage.Store
}

func NewStatisticsController(store *storage.Store) *StatisticsController {
	return &StatisticsController{Store: store}
}

type filiereStat struct {
	FiliereID  string  `json:"filiereId"`
	Code       string  `json:"code"`
	Nom        string  `json:"nom"`
	Stagiaires int     `json:"stagiaires"`
	Absences   int     `json:"absences"`
	Taux       float64 `json:"taux"`
}

type monthPoint struct {
	Mois  string `json:"mois"`
	Total int    `json:"total"`
}

// GET /api/statistics
// Taux par filière = absences / stagiaires * 100, arrondi côté client.
func (ctrl *StatisticsController) Overview(c *fiber.Ctx) error {
	filieres := ctrl.Store.GetFilieres()
	classes := ctrl.Store.GetClasses()
	students := ctrl.Store.GetStudents()
	absences := ctrl.Store.GetAbsences()

	classeToFiliere := map[string]string{}
	for _, cl := range classes {
		classeToFiliere[cl.ID] = cl.FiliereID
	}
	studentToFiliere := map[string]string{}
	studentsPerFiliere := map[string]int{}
	for _, st := range students {
		fid := classeToFiliere[st.ClasseID]
		studentToFiliere[st.ID] = fid
		studentsPerFiliere[fid]++
	}

	absencesPerFiliere := map[string]int{}
	parType := map[string]int{}
	parStatut := map[string]int{}
	perMonth := map[string]int{}
	for _, a := range absences {
		absencesPerFiliere[studentToFiliere[a.StudentID]]++
		parType[a.Type]++
		parStatut[a.Status()]++
		if len(a.Date) >= 7 {
			perMonth[a.Date[:7]]++
		}
	}

	stats := []filiereStat{}
	for _, f := range filieres {
		row := filiereStat{
			FiliereID:  f.ID,
			Code:       f.Code,
			Nom:        f.Nom,
			Stagiaires: studentsPerFiliere[f.ID],
			Absences:   absencesPerFiliere[f.ID],
		}
		if row.Stagiaires > 0 {
			row.Taux = float64(row.Absences) / float64(row.Stagiaires) * 100
		}
		stats = append(stats, row)
	}

	trend := make([]monthPoint, 0, len(perMonth))
	for mois, total := range perMonth {
		trend = append(trend, monthPoint{Mois: mois, Total: total})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Mois < trend[j].Mois })

	return helper.JsonOK(c, "Statistiques", fiber.Map{
		"parFiliere": stats,
		"parType": fiber.Map{
			"absent": parType[absenceModel.TypeAbsent],
			"retard": parType[absenceModel.TypeRetard],
		},
		"parStatut": fiber.Map{
			"pending":   parStatut[absenceModel.StatusPending],
			"validated": parStatut[absenceModel.StatusValidated],
			"justified": parStatut[absenceModel.StatusJustified],
		},
		"parMois": trend,
	})
}
