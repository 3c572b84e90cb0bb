package dto

// Saisie d'une feuille d'appel par le formateur. Les identités du
// formateur viennent du token, jamais du corps de la requête.
type CreateEntryRequest struct {
	ClasseID  string   `json:"classeId" validate:"required,uuid4"`
	SessionID string   `json:"sessionId" validate:"required"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	AbsentIDs []string `json:"absentIds" validate:"omitempty,dive,uuid4"`
	LateIDs   []string `json:"lateIds" validate:"omitempty,dive,uuid4"`
}

type JustifyRequest struct {
	Justification string `json:"justification" validate:"required,max=500"`
}

// Ligne enrichie pour l'écran d'administration des absences.
type AdminRow struct {
	ID            string `json:"id"`
	StudentID     string `json:"studentId"`
	StudentNom    string `json:"studentNom"`
	StudentPrenom string `json:"studentPrenom"`
	Classe        string `json:"classe"`
	Filiere       string `json:"filiere"`
	SessionID     string `json:"sessionId"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	Formateur     string `json:"formateur"`
	Status        string `json:"status"`
	Justification string `json:"justification,omitempty"`
	ValidatedBy   string `json:"validatedBy,omitempty"`
	ValidatedAt   string `json:"validatedAt,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// Ligne de la feuille d'appel côté saisie. forcedRetard signale au
// client qu'un marquage "absent" sera rétrogradé en retard.
type SheetRow struct {
	StudentID    string `json:"studentId"`
	Nom          string `json:"nom"`
	Prenom       string `json:"prenom"`
	Status       string `json:"status"`
	ForcedRetard bool   `json:"forcedRetard"`
}
