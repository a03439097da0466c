package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/money"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ProjectUseCase aplica reglas de negocio para proyectos.
type ProjectUseCase struct {
	repo      repository.ProjectRepository
	entryRepo repository.TimeEntryRepository
}

// NewProjectUseCase construye el caso de uso con el puerto de persistencia.
func NewProjectUseCase(repo repository.ProjectRepository, entryRepo repository.TimeEntryRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, entryRepo: entryRepo}
}

// Create crea un proyecto del owner.
func (uc *ProjectUseCase) Create(ctx context.Context, ownerID string, in dto.ProjectRequest) (*dto.ProjectResponse, error) {
	p := &entity.Project{ID: uuid.New().String(), OwnerID: ownerID}
	if err := applyProject(p, in); err != nil {
		return nil, err
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// Update reemplaza nombre, tarifa, moneda y actividades.
// Los registros existentes conservan la tarifa con la que se crearon.
func (uc *ProjectUseCase) Update(ctx context.Context, ownerID, id string, in dto.ProjectRequest) (*dto.ProjectResponse, error) {
	p, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyProject(p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// List admin: proyectos propios; client: proyectos asignados.
func (uc *ProjectUseCase) List(ctx context.Context, actor Actor) ([]dto.ProjectResponse, error) {
	var (
		list []*entity.Project
		err  error
	)
	if actor.IsAdmin() {
		list, err = uc.repo.ListByOwner(ctx, actor.OwnerID)
	} else {
		list, err = uc.repo.ListByClient(ctx, actor.UserID)
	}
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(p *entity.Project, _ int) dto.ProjectResponse { return *toProjectResponse(p) }), nil
}

// Delete elimina un proyecto sin registros (con registros -> ErrConflict).
func (uc *ProjectUseCase) Delete(ctx context.Context, ownerID, id string) error {
	p, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	n, err := uc.entryRepo.CountByProject(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el proyecto tiene %d registros", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, ownerID, id)
}

func applyProject(p *entity.Project, in dto.ProjectRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if !in.HourlyRate.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: hourly_rate debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !money.FitsScale(in.HourlyRate) {
		return fmt.Errorf("%w: hourly_rate admite como máximo %d decimales", domain.ErrInvalidInput, money.Scale)
	}
	currency, err := money.NormalizeCurrency(in.Currency)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	activities := lo.Uniq(lo.Compact(lo.Map(in.Activities, func(a string, _ int) string {
		return strings.TrimSpace(a)
	})))

	p.Name = name
	p.HourlyRate = in.HourlyRate
	p.Currency = currency
	p.Activities = activities
	return nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	activities := p.Activities
	if activities == nil {
		activities = []string{}
	}
	return &dto.ProjectResponse{
		ID:         p.ID,
		Name:       p.Name,
		HourlyRate: p.HourlyRate,
		Currency:   p.Currency,
		Activities: activities,
		CreatedAt:  p.CreatedAt,
	}
}
