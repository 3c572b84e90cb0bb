package dto

import (
	m "absenta_backend/internals/features/academics/filieres/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateFiliereRequest struct {
	Code        string `json:"code" validate:"required,max=20"`
	Nom         string `json:"nom" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (r CreateFiliereRequest) ToModel() m.Filiere {
	return m.Filiere{
		Code:        r.Code,
		Nom:         r.Nom,
		Description: r.Description,
	}
}

// Update (partial JSON)
type UpdateFiliereRequest struct {
	Code        *string `json:"code" validate:"omitempty,max=20"`
	Nom         *string `json:"nom" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (r UpdateFiliereRequest) ToPatch() m.FilierePatch {
	return m.FilierePatch{
		Code:        r.Code,
		Nom:         r.Nom,
		Description: r.Description,
	}
}
