package repository

import (
	"context"

	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	Update(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Project, error)
	// ListByClient proyectos asignados a un usuario client.
	ListByClient(ctx context.Context, userID string) ([]*entity.Project, error)
	Delete(ctx context.Context, ownerID, id string) error
}
