package storage

import "errors"

// ErrNotFound: la cible d'une opération n'existe pas. Non fatal : les
// lectures renvoient nil plutôt qu'une erreur, seules les opérations
// qui doivent signaler l'échec l'utilisent.
var ErrNotFound = errors.New("enregistrement introuvable")

// DeletionBlockedError: un garde-fou a refusé une suppression parce que
// des enregistrements enfants existent encore. Le message est destiné à
// l'utilisateur.
type DeletionBlockedError struct {
	Reason string
}

func (e *DeletionBlockedError) Error() string { return e.Reason }

// ValidationError: champ requis manquant ou invalide côté appelant
// (ex: justification vide). Le store lui-même ne valide pas les champs
// métier à l'ajout.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
