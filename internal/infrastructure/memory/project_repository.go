package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación en memoria de ProjectRepository.
type ProjectRepo struct{ s session }

// NewProjectRepository construye el repo sobre el store.
func NewProjectRepository(db *Store) *ProjectRepo { return &ProjectRepo{s: session{store: db}} }

func copyProject(p entity.Project) *entity.Project {
	p.Activities = slices.Clone(p.Activities)
	return &p
}

// Create inserta el proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.projects[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.projects[p.ID] = *copyProject(*p)
		return nil
	})
}

// Update reemplaza los campos editables del proyecto.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	return r.s.write(ctx, func(st *state) error {
		cur, ok := st.projects[p.ID]
		if !ok || cur.OwnerID != p.OwnerID {
			return domain.ErrNotFound
		}
		st.projects[p.ID] = *copyProject(*p)
		return nil
	})
}

// GetByID retorna nil, nil si no existe o es de otro owner.
func (r *ProjectRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Project, error) {
	var out *entity.Project
	err := r.s.read(func(st *state) error {
		if p, ok := st.projects[id]; ok && p.OwnerID == ownerID {
			out = copyProject(p)
		}
		return nil
	})
	return out, err
}

// ListByOwner proyectos del owner por nombre.
func (r *ProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Project, error) {
	var out []*entity.Project
	err := r.s.read(func(st *state) error {
		for _, p := range st.projects {
			if p.OwnerID == ownerID {
				out = append(out, copyProject(p))
			}
		}
		return nil
	})
	sortProjects(out)
	return out, err
}

// ListByClient proyectos asignados al usuario.
func (r *ProjectRepo) ListByClient(_ context.Context, userID string) ([]*entity.Project, error) {
	var out []*entity.Project
	err := r.s.read(func(st *state) error {
		for _, id := range st.assignments[userID] {
			if p, ok := st.projects[id]; ok {
				out = append(out, copyProject(p))
			}
		}
		return nil
	})
	sortProjects(out)
	return out, err
}

// Delete elimina el proyecto; con registros asociados retorna ErrConflict.
func (r *ProjectRepo) Delete(ctx context.Context, ownerID, id string) error {
	return r.s.write(ctx, func(st *state) error {
		p, ok := st.projects[id]
		if !ok || p.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		for _, e := range st.entries {
			if e.ProjectID == id {
				return domain.ErrConflict
			}
		}
		delete(st.projects, id)
		for userID, ids := range st.assignments {
			if slices.Contains(ids, id) {
				st.assignments[userID] = slices.DeleteFunc(slices.Clone(ids), func(v string) bool { return v == id })
			}
		}
		return nil
	})
}

func sortProjects(list []*entity.Project) {
	slices.SortFunc(list, func(a, b *entity.Project) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}
