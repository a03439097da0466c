package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error
	// ListClients devuelve los usuarios con rol client creados por ownerID.
	ListClients(ctx context.Context, ownerID string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	// SetProjects reemplaza las asignaciones de proyectos del usuario.
	SetProjects(ctx context.Context, userID string, projectIDs []string) error
	ProjectIDs(ctx context.Context, userID string) ([]string, error)
}
