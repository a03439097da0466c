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
	"github.com/jhoicas/Timesheet-api/internal/domain/invoicing"
	"github.com/jhoicas/Timesheet-api/internal/domain/money"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// maxHoursPerEntry límite de horas en un único registro (un día).
var maxHoursPerEntry = decimal.NewFromInt(24)

// TimeEntryUseCase registro de horas ("registros").
type TimeEntryUseCase struct {
	repo        repository.TimeEntryRepository
	projectRepo repository.ProjectRepository
}

// NewTimeEntryUseCase construye el caso de uso.
func NewTimeEntryUseCase(repo repository.TimeEntryRepository, projectRepo repository.ProjectRepository) *TimeEntryUseCase {
	return &TimeEntryUseCase{repo: repo, projectRepo: projectRepo}
}

// Create registra horas en un proyecto del owner. Tarifa y moneda se copian del proyecto.
func (uc *TimeEntryUseCase) Create(ctx context.Context, ownerID string, in dto.CreateTimeEntryRequest) (*dto.TimeEntryResponse, error) {
	if !in.Hours.GreaterThan(decimal.Zero) || in.Hours.GreaterThan(maxHoursPerEntry) {
		return nil, fmt.Errorf("%w: hours debe estar entre 0 y 24", domain.ErrInvalidInput)
	}
	if !money.FitsScale(in.Hours) {
		return nil, fmt.Errorf("%w: hours admite como máximo %d decimales", domain.ErrInvalidInput, money.Scale)
	}
	date, err := invoicing.ParseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	project, err := uc.projectRepo.GetByID(ctx, ownerID, strings.TrimSpace(in.ProjectID))
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: proyecto", domain.ErrNotFound)
	}
	activity := strings.TrimSpace(in.Activity)
	if !project.AllowsActivity(activity) {
		return nil, fmt.Errorf("%w: actividad %q no pertenece al proyecto", domain.ErrInvalidInput, activity)
	}

	e := &entity.TimeEntry{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		ProjectID:       project.ID,
		ProjectName:     project.Name,
		Activity:        activity,
		Description:     strings.TrimSpace(in.Description),
		Hours:           in.Hours,
		Date:            date,
		RateAtEntry:     project.HourlyRate,
		CurrencyAtEntry: project.Currency,
		CreatedAt:       time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toTimeEntryResponse(e), nil
}

// List admin: registros propios; client: registros de los proyectos asignados.
func (uc *TimeEntryUseCase) List(ctx context.Context, actor Actor) ([]dto.TimeEntryResponse, error) {
	var (
		list []*entity.TimeEntry
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
	return lo.Map(list, func(e *entity.TimeEntry, _ int) dto.TimeEntryResponse { return *toTimeEntryResponse(e) }), nil
}

// SetPaid cambia el único campo mutable del registro.
// Un registro de una factura pagada no puede volver a pendiente.
func (uc *TimeEntryUseCase) SetPaid(ctx context.Context, ownerID, id string, paid bool) (*dto.TimeEntryResponse, error) {
	e, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if !paid && e.Invoiced() {
		status, err := uc.repo.LinkedInvoiceStatus(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		if status == entity.InvoiceStatusPaid {
			return nil, fmt.Errorf("%w: el registro pertenece a una factura pagada", domain.ErrInvalidState)
		}
	}
	if err := uc.repo.SetPaid(ctx, ownerID, id, paid); err != nil {
		return nil, err
	}
	e.Paid = paid
	return toTimeEntryResponse(e), nil
}

// Delete elimina un registro que nunca fue facturado.
func (uc *TimeEntryUseCase) Delete(ctx context.Context, ownerID, id string) error {
	e, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if e.Invoiced() {
		return fmt.Errorf("%w: el registro ya fue facturado", domain.ErrInvalidState)
	}
	return uc.repo.Delete(ctx, ownerID, id)
}

func toTimeEntryResponse(e *entity.TimeEntry) *dto.TimeEntryResponse {
	return &dto.TimeEntryResponse{
		ID:                  e.ID,
		ProjectID:           e.ProjectID,
		ProjectName:         e.ProjectName,
		Activity:            e.Activity,
		Description:         e.Description,
		Hours:               e.Hours,
		Date:                e.Date.Format(invoicing.DateLayout),
		RateAtEntryTime:     e.RateAtEntry,
		CurrencyAtEntryTime: e.CurrencyAtEntry,
		Amount:              e.Amount().Round(2),
		Paid:                e.Paid,
		Invoiced:            e.Invoiced(),
		CreatedAt:           e.CreatedAt,
	}
}
