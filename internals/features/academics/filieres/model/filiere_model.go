package model

// Filiere est un programme de formation (ex: TSDI). Racine de la
// hiérarchie filière → classe → stagiaire.
// Les tags JSON reproduisent le format persisté historique (absenta_filieres).
type Filiere struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Nom         string `json:"nom"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// FilierePatch: mise à jour partielle, seuls les champs non nil sont écrits.
type FilierePatch struct {
	Code        *string `json:"code"`
	Nom         *string `json:"nom"`
	Description *string `json:"description"`
}

func (p FilierePatch) Apply(f *Filiere) {
	if p.Code != nil {
		f.Code = *p.Code
	}
	if p.Nom != nil {
		f.Nom = *p.Nom
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
}
