package model

// Classe est une cohorte rattachée à exactement une filière,
// pour un niveau ("1", "2", …) et une session (année, ex: "2024").
type Classe struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Niveau    string `json:"niveau"`
	Session   string `json:"session"`
	FiliereID string `json:"filiereId"`
	CreatedAt string `json:"createdAt"`
}

// ClassePatch: mise à jour partielle.
type ClassePatch struct {
	Nom       *string `json:"nom"`
	Niveau    *string `json:"niveau"`
	Session   *string `json:"session"`
	FiliereID *string `json:"filiereId"`
}

func (p ClassePatch) Apply(c *Classe) {
	if p.Nom != nil {
		c.Nom = *p.Nom
	}
	if p.Niveau != nil {
		c.Niveau = *p.Niveau
	}
	if p.Session != nil {
		c.Session = *p.Session
	}
	if p.FiliereID != nil {
		c.FiliereID = *p.FiliereID
	}
}
