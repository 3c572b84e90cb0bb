package model

const (
	TypeAbsent = "absent"
	TypeRetard = "retard"
)

// Statuts dérivés d'un enregistrement d'absence.
const (
	StatusPending   = "pending"   // validated=false
	StatusValidated = "validated" // validated=true, sans justification
	StatusJustified = "justified" // validated=true, avec justification
)

// Absence est un marquage absent/retard saisi par un formateur pour une
// séance donnée, puis validé ou justifié par un rôle de supervision.
// Aucune transition ne ramène validated à false.
type Absence struct {
	ID            string `json:"id"`
	StudentID     string `json:"studentId"`
	SessionID     string `json:"sessionId"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	Formateur     string `json:"formateur"`
	Validated     bool   `json:"validated"`
	ValidatedBy   string `json:"validatedBy,omitempty"`
	ValidatedAt   string `json:"validatedAt,omitempty"`
	Justification string `json:"justification,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

func (a Absence) IsJustified() bool { return a.Validated && a.Justification != "" }

func (a Absence) Status() string {
	switch {
	case !a.Validated:
		return StatusPending
	case a.Justification != "":
		return StatusJustified
	default:
		return StatusValidated
	}
}
