package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.CompanySettingsRepository = (*CompanySettingsRepo)(nil)

// CompanySettingsRepo datos del emisor por owner.
type CompanySettingsRepo struct {
	q Querier
}

// NewCompanySettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanySettingsRepository(q Querier) *CompanySettingsRepo {
	return &CompanySettingsRepo{q: q}
}

// Get configuración del owner; nil si no existe.
func (r *CompanySettingsRepo) Get(ctx context.Context, ownerID string) (*entity.CompanySettings, error) {
	var s entity.CompanySettings
	err := r.q.QueryRow(ctx, `
		SELECT owner_id, company_name, address, tax_id, email, phone, bank_info, updated_at
		FROM company_settings WHERE owner_id = $1`, ownerID).Scan(
		&s.OwnerID, &s.CompanyName, &s.Address, &s.TaxID, &s.Email, &s.Phone, &s.BankInfo, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company settings: %w", err)
	}
	return &s, nil
}

// Upsert crea o reemplaza la configuración.
func (r *CompanySettingsRepo) Upsert(ctx context.Context, s *entity.CompanySettings) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO company_settings (owner_id, company_name, address, tax_id, email, phone, bank_info, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner_id) DO UPDATE
		SET company_name = EXCLUDED.company_name,
		    address      = EXCLUDED.address,
		    tax_id       = EXCLUDED.tax_id,
		    email        = EXCLUDED.email,
		    phone        = EXCLUDED.phone,
		    bank_info    = EXCLUDED.bank_info,
		    updated_at   = EXCLUDED.updated_at`,
		s.OwnerID, s.CompanyName, s.Address, s.TaxID, s.Email, s.Phone, s.BankInfo, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert company settings: %w", err)
	}
	return nil
}
