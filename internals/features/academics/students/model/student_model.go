package model

const (
	SexeM = "M"
	SexeF = "F"
)

const (
	StatutActif    = "actif"
	StatutInactif  = "inactif"
	StatutSuspendu = "suspendu"
)

// Student (stagiaire) appartient à exactement une classe.
// Seuls les stagiaires "actif" sont éligibles à la saisie d'absences.
type Student struct {
	ID            string `json:"id"`
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	Email         string `json:"email"`
	Sexe          string `json:"sexe"`
	ClasseID      string `json:"classeId"`
	DateNaissance string `json:"dateNaissance"`
	Telephone     string `json:"telephone,omitempty"`
	Adresse       string `json:"adresse,omitempty"`
	Statut        string `json:"statut"`
	CreatedAt     string `json:"createdAt"`
}

func (s Student) IsActif() bool { return s.Statut == StatutActif }

// StudentPatch: mise à jour partielle.
type StudentPatch struct {
	Nom           *string `json:"nom"`
	Prenom        *string `json:"prenom"`
	Email         *string `json:"email"`
	Sexe          *string `json:"sexe"`
	ClasseID      *string `json:"classeId"`
	DateNaissance *string `json:"dateNaissance"`
	Telephone     *string `json:"telephone"`
	Adresse       *string `json:"adresse"`
	Statut        *string `json:"statut"`
}

func (p StudentPatch) Apply(s *Student) {
	if p.Nom != nil {
		s.Nom = *p.Nom
	}
	if p.Prenom != nil {
		s.Prenom = *p.Prenom
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Sexe != nil {
		s.Sexe = *p.Sexe
	}
	if p.ClasseID != nil {
		s.ClasseID = *p.ClasseID
	}
	if p.DateNaissance != nil {
		s.DateNaissance = *p.DateNaissance
	}
	if p.Telephone != nil {
		s.Telephone = *p.Telephone
	}
	if p.Adresse != nil {
		s.Adresse = *p.Adresse
	}
	if p.Statut != nil {
		s.Statut = *p.Statut
	}
}
