package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, owner_id, email, password_hash, name, role, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.OwnerID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.OwnerID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (ya normalizado).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// UpdatePassword reemplaza el hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, id, passwordHash, at)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListClients clients del owner ordenados por email.
func (r *UserRepo) ListClients(ctx context.Context, ownerID string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE owner_id = $1 AND role = $2 ORDER BY email`
	rows, err := r.q.Query(ctx, query, ownerID, entity.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID (las asignaciones caen por cascada).
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return writeError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetProjects reemplaza las asignaciones del usuario.
func (r *UserRepo) SetProjects(ctx context.Context, userID string, projectIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_projects WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user projects: %w", err)
	}
	if len(projectIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_projects (user_id, project_id)
		SELECT $1, unnest($2::text[])`, userID, projectIDs)
	if err != nil {
		return writeError("insert user projects", err)
	}
	return nil
}

// ProjectIDs proyectos asignados (nunca nil).
func (r *UserRepo) ProjectIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT project_id FROM user_projects WHERE user_id = $1 ORDER BY project_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user projects: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan user projects: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
