package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `p.id, p.owner_id, p.name, p.hourly_rate, p.currency, p.activities, p.created_at, p.updated_at`

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.HourlyRate, &p.Currency, &p.Activities, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Project, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func activitiesOrEmpty(a []string) []string {
	if a == nil {
		return []string{}
	}
	return a
}

// Create persiste un proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (id, owner_id, name, hourly_rate, currency, activities, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.Name, p.HourlyRate, p.Currency, activitiesOrEmpty(p.Activities), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeError("insert project", err)
	}
	return nil
}

// Update reemplaza nombre, tarifa, moneda y actividades.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET name = $3, hourly_rate = $4, currency = $5, activities = $6, updated_at = $7
		WHERE id = $1 AND owner_id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.Name, p.HourlyRate, p.Currency, activitiesOrEmpty(p.Activities), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID proyecto del owner.
func (r *ProjectRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects p WHERE p.id = $1 AND p.owner_id = $2`
	p, err := scanProject(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ListByOwner proyectos del owner por nombre.
func (r *ProjectRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects p WHERE p.owner_id = $1 ORDER BY lower(p.name)`, ownerID)
}

// ListByClient proyectos asignados al usuario.
func (r *ProjectRepo) ListByClient(ctx context.Context, userID string) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects p
		JOIN user_projects up ON up.project_id = p.id
		WHERE up.user_id = $1
		ORDER BY lower(p.name)`
	return r.list(ctx, query, userID)
}

// Delete elimina el proyecto; con registros asociados la FK RESTRICT devuelve ErrConflict.
func (r *ProjectRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return writeError("delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
