package controller

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	absenceModel "absenta_backend/internals/features/attendance/absences/model"
	helper "absenta_backend/internals/helpers"
	"absenta_backend/internals/storage"
)

type DashboardController struct {
	Store *storage.Store
}

func NewDashboardController(store *storage.Store) *DashboardController {
	return &DashboardController{Store: store}
}

const dateLayout = "2006-01-02"

// Seuil d'alerte : un stagiaire avec au moins ce nombre d'absences non
// justifiées apparaît dans la liste "à risque".
const atRiskThreshold = 3

// GET /api/dashboard
// Tous les agrégats sont recalculés à la demande sur l'état courant.
func (ctrl *DashboardController) Overview(c *fiber.Ctx) error {
	students := ctrl.Store.GetStudents()
	absences := ctrl.Store.GetAbsences()
	today := time.Now().Format(dateLayout)

	actifs := 0
	for _, st := range students {
		if st.IsActif() {
			actifs++
		}
	}

	absentsToday := map[string]bool{}
	retardsToday := map[string]bool{}
	pending := 0
	for _, a := range absences {
		if !a.Validated {
			pending++
		}
		if a.Date != today {
			continue
		}
		switch a.Type {
		case absenceModel.TypeAbsent:
			absentsToday[a.StudentID] = true
		case absenceModel.TypeRetard:
			retardsToday[a.StudentID] = true
		}
	}

	markedToday := map[string]bool{}
	for id := range absentsToday {
		markedToday[id] = true
	}
	for id := range retardsToday {
		markedToday[id] = true
	}
	presents := actifs - len(markedToday)
	if presents < 0 {
		presents = 0
	}

	return helper.JsonOK(c, "Tableau de bord", fiber.Map{
		"totalStagiaires":    len(students),
		"stagiairesActifs":   actifs,
		"absentsAujourdhui":  len(absentsToday),
		"retardsAujourdhui":  len(retardsToday),
		"presentsAujourdhui": presents,
		"enAttente":          pending,
		"aRisque":            ctrl.atRisk(absences),
		"serieSemaine":       weekSeries(absences),
		"activiteRecente":    ctrl.recentActivity(absences),
	})
}

type atRiskRow struct {
	StudentID string `json:"studentId"`
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Count     int    `json:"count"`
}

func (ctrl *DashboardController) atRisk(absences []absenceModel.Absence) []atRiskRow {
	counts := map[string]int{}
	for _, a := range absences {
		if a.Type == absenceModel.TypeAbsent && !a.IsJustified() {
			counts[a.StudentID]++
		}
	}

	rows := []atRiskRow{}
	for _, st := range ctrl.Store.GetStudents() {
		if n := counts[st.ID]; n >= atRiskThreshold {
			rows = append(rows, atRiskRow{StudentID: st.ID, Nom: st.Nom, Prenom: st.Prenom, Count: n})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return rows
}

type daySeries struct {
	Date    string `json:"date"`
	Absents int    `json:"absents"`
	Retards int    `json:"retards"`
}

// Les sept derniers jours, aujourd'hui inclus, du plus ancien au plus
// récent.
func weekSeries(absences []absenceModel.Absence) []daySeries {
	out := make([]daySeries, 0, 7)
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i).Format(dateLayout)
		row := daySeries{Date: date}
		for _, a := range absences {
			if a.Date != date {
				continue
			}
			switch a.Type {
			case absenceModel.TypeAbsent:
				row.Absents++
			case absenceModel.TypeRetard:
				row.Retards++
			}
		}
		out = append(out, row)
	}
	return out
}

type activityRow struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Type      string `json:"type"`
	Date      string `json:"date"`
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func (ctrl *DashboardController) recentActivity(absences []absenceModel.Absence) []activityRow {
	students := map[string]struct{ nom, prenom string }{}
	for _, st := range ctrl.Store.GetStudents() {
		students[st.ID] = struct{ nom, prenom string }{st.Nom, st.Prenom}
	}

	sorted := make([]absenceModel.Absence, len(absences))
	copy(sorted, absences)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt > sorted[j].CreatedAt })

	rows := []activityRow{}
	for _, a := range sorted {
		st, ok := students[a.StudentID]
		if !ok {
			continue
		}
		rows = append(rows, activityRow{
			ID:        a.ID,
			Nom:       st.nom,
			Prenom:    st.prenom,
			Type:      a.Type,
			Date:      a.Date,
			SessionID: a.SessionID,
			Status:    a.Status(),
			CreatedAt: a.CreatedAt,
		})
		if len(rows) == 5 {
			break
		}
	}
	return rows
}
