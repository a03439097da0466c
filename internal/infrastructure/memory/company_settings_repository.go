package memory

import (
	"context"

	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.CompanySettingsRepository = (*CompanySettingsRepo)(nil)

// CompanySettingsRepo implementación en memoria de CompanySettingsRepository.
type CompanySettingsRepo struct{ s session }

// NewCompanySettingsRepository construye el repo sobre el store.
func NewCompanySettingsRepository(db *Store) *CompanySettingsRepo {
	return &CompanySettingsRepo{s: session{store: db}}
}

// Get retorna nil, nil si el owner no tiene configuración.
func (r *CompanySettingsRepo) Get(_ context.Context, ownerID string) (*entity.CompanySettings, error) {
	var out *entity.CompanySettings
	err := r.s.read(func(st *state) error {
		if s, ok := st.settings[ownerID]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// Upsert crea o reemplaza la configuración.
func (r *CompanySettingsRepo) Upsert(ctx context.Context, s *entity.CompanySettings) error {
	return r.s.write(ctx, func(st *state) error {
		st.settings[s.OwnerID] = *s
		return nil
	})
}
