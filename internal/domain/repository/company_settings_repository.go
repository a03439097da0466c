package repository

import (
	"context"

	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
)

// CompanySettingsRepository datos del emisor por owner.
type CompanySettingsRepository interface {
	Get(ctx context.Context, ownerID string) (*entity.CompanySettings, error)
	Upsert(ctx context.Context, settings *entity.CompanySettings) error
}
