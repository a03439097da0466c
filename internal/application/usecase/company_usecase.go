package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

// CompanyUseCase datos del emisor que se copian en las facturas.
type CompanyUseCase struct {
	repo repository.CompanySettingsRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanySettingsRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Get devuelve la configuración del owner (vacía si aún no existe).
func (uc *CompanyUseCase) Get(ctx context.Context, ownerID string) (*dto.CompanySettingsResponse, error) {
	s, err := uc.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &dto.CompanySettingsResponse{}, nil
	}
	return entityToCompanyResponse(s), nil
}

// Upsert crea o reemplaza la configuración del owner.
func (uc *CompanyUseCase) Upsert(ctx context.Context, ownerID string, in dto.CompanySettingsRequest) (*dto.CompanySettingsResponse, error) {
	s := &entity.CompanySettings{
		OwnerID:     ownerID,
		CompanyName: strings.TrimSpace(in.CompanyName),
		Address:     strings.TrimSpace(in.Address),
		TaxID:       strings.TrimSpace(in.TaxID),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		BankInfo:    strings.TrimSpace(in.BankInfo),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(s), nil
}

func entityToCompanyResponse(s *entity.CompanySettings) *dto.CompanySettingsResponse {
	updated := s.UpdatedAt
	return &dto.CompanySettingsResponse{
		CompanyName: s.CompanyName,
		Address:     s.Address,
		TaxID:       s.TaxID,
		Email:       s.Email,
		Phone:       s.Phone,
		BankInfo:    s.BankInfo,
		UpdatedAt:   &updated,
	}
}
