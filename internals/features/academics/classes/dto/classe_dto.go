package dto

import (
	m "absenta_backend/internals/features/academics/classes/model"
)

type CreateClasseRequest struct {
	Nom       string `json:"nom" validate:"required,max=200"`
	Niveau    string `json:"niveau" validate:"omitempty,max=100"`
	Session   string `json:"session" validate:"omitempty,max=100"`
	FiliereID string `json:"filiereId" validate:"required,uuid4"`
}

func (r CreateClasseRequest) ToModel() m.Classe {
	return m.Classe{
		Nom:       r.Nom,
		Niveau:    r.Niveau,
		Session:   r.Session,
		FiliereID: r.FiliereID,
	}
}

type UpdateClasseRequest struct {
	Nom     *string `json:"nom" validate:"omitempty,max=200"`
	Niveau  *string `json:"niveau" validate:"omitempty,max=100"`
	Session *string `json:"session" validate:"omitempty,max=100"`
}

func (r UpdateClasseRequest) ToPatch() m.ClassePatch {
	return m.ClassePatch{
		Nom:     r.Nom,
		Niveau:  r.Niveau,
		Session: r.Session,
	}
}
