package dto

import "time"

// RegisterRequest entrada para registro de un admin.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangePasswordRequest cambio de contraseña propia o de un client (target_user_id, solo admin).
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password"`
	TargetUserID    string `json:"target_user_id,omitempty"`
}

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Name       string   `json:"name,omitempty"`
	ProjectIDs []string `json:"project_ids"`
}

// UpdateClientRequest body para PUT /api/clients/:id (reemplaza asignaciones).
type UpdateClientRequest struct {
	ProjectIDs []string `json:"project_ids"`
}

// ClientResponse usuario client con sus proyectos asignados.
type ClientResponse struct {
	UserResponse
	ProjectIDs []string `json:"project_ids"`
}
