package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct{ s session }

// NewUserRepository construye el repo sobre el store.
func NewUserRepository(db *Store) *UserRepo { return &UserRepo{s: session{store: db}} }

// Create inserta el usuario; el email es único.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.users[user.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, u := range st.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[user.ID] = *user
		return nil
	})
}

// GetByID retorna nil, nil si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.s.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// GetByEmail búsqueda sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.s.read(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// UpdatePassword reemplaza el hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	return r.s.write(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.PasswordHash = passwordHash
		u.UpdatedAt = at
		st.users[id] = u
		return nil
	})
}

// ListClients clients del owner ordenados por email.
func (r *UserRepo) ListClients(_ context.Context, ownerID string) ([]*entity.User, error) {
	var out []*entity.User
	err := r.s.read(func(st *state) error {
		for _, u := range st.users {
			if u.Role == entity.RoleClient && u.OwnerID == ownerID {
				out = append(out, &u)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.User) int { return strings.Compare(a.Email, b.Email) })
	return out, err
}

// Delete elimina el usuario y sus asignaciones.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.users, id)
		delete(st.assignments, id)
		return nil
	})
}

// SetProjects reemplaza las asignaciones del usuario.
func (r *UserRepo) SetProjects(ctx context.Context, userID string, projectIDs []string) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.users[userID]; !ok {
			return domain.ErrUserNotFound
		}
		st.assignments[userID] = slices.Clone(projectIDs)
		return nil
	})
}

// ProjectIDs proyectos asignados (nunca nil).
func (r *UserRepo) ProjectIDs(_ context.Context, userID string) ([]string, error) {
	out := []string{}
	err := r.s.read(func(st *state) error {
		out = append(out, st.assignments[userID]...)
		return nil
	})
	slices.Sort(out)
	return out, err
}
