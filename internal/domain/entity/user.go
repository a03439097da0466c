package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// User representa una cuenta del sistema. Un admin es dueño de sus datos;
// un client pertenece al admin que lo creó (OwnerID) y solo lee los proyectos asignados.
type User struct {
	ID           string
	OwnerID      string // admin: su propio ID; client: ID del admin creador
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, client
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario administra sus propios datos.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TenantID devuelve el ID del owner bajo el que se acotan las consultas del usuario.
func (u *User) TenantID() string {
	if u.Role == RoleAdmin || u.OwnerID == "" {
		return u.ID
	}
	return u.OwnerID
}
