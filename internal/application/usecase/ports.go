package usecase

import (
	"context"

	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

// ClientTxRunner transacción para alta/edición de clients y sus asignaciones de proyectos.
type ClientTxRunner interface {
	RunClients(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		projectRepo repository.ProjectRepository,
	) error) error
}

// Actor identidad del caller resuelta por el middleware de auth.
type Actor struct {
	UserID  string
	OwnerID string
	Role    string
}

// IsAdmin indica si el caller administra los datos de OwnerID.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}
