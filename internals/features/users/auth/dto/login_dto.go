package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Requis uniquement pour le rôle formateur (nom affiché sur les saisies)
	Username string `json:"username" validate:"omitempty,max=120"`
}

type UserInfo struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

type LoginResponse struct {
	User  UserInfo `json:"user"`
	Token string   `json:"token"`
}
