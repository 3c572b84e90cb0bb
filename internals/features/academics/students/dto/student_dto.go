package dto

import (
	m "absenta_backend/internals/features/academics/students/model"
)

type CreateStudentRequest struct {
	Nom           string `json:"nom" validate:"required,max=120"`
	Prenom        string `json:"prenom" validate:"required,max=120"`
	Email         string `json:"email" validate:"omitempty,email"`
	Sexe          string `json:"sexe" validate:"required,oneof=M F"`
	Statut        string `json:"statut" validate:"omitempty,oneof=actif inactif suspendu"`
	ClasseID      string `json:"classeId" validate:"required,uuid4"`
	DateNaissance string `json:"dateNaissance" validate:"omitempty,datetime=2006-01-02"`
	Telephone     string `json:"telephone" validate:"omitempty,max=30"`
	Adresse       string `json:"adresse" validate:"omitempty,max=300"`
}

func (r CreateStudentRequest) ToModel() m.Student {
	statut := r.Statut
	if statut == "" {
		statut = m.StatutActif
	}
	return m.Student{
		Nom:           r.Nom,
		Prenom:        r.Prenom,
		Email:         r.Email,
		Sexe:          r.Sexe,
		Statut:        statut,
		ClasseID:      r.ClasseID,
		DateNaissance: r.DateNaissance,
		Telephone:     r.Telephone,
		Adresse:       r.Adresse,
	}
}

type UpdateStudentRequest struct {
	Nom           *string `json:"nom" validate:"omitempty,max=120"`
	Prenom        *string `json:"prenom" validate:"omitempty,max=120"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Sexe          *string `json:"sexe" validate:"omitempty,oneof=M F"`
	Statut        *string `json:"statut" validate:"omitempty,oneof=actif inactif suspendu"`
	ClasseID      *string `json:"classeId" validate:"omitempty,uuid4"`
	DateNaissance *string `json:"dateNaissance" validate:"omitempty,datetime=2006-01-02"`
	Telephone     *string `json:"telephone" validate:"omitempty,max=30"`
	Adresse       *string `json:"adresse" validate:"omitempty,max=300"`
}

func (r UpdateStudentRequest) ToPatch() m.StudentPatch {
	return m.StudentPatch{
		Nom:           r.Nom,
		Prenom:        r.Prenom,
		Email:         r.Email,
		Sexe:          r.Sexe,
		Statut:        r.Statut,
		ClasseID:      r.ClasseID,
		DateNaissance: r.DateNaissance,
		Telephone:     r.Telephone,
		Adresse:       r.Adresse,
	}
}
