package repository

import (
	"context"

	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
)

// PaymentMethodRepository define el puerto de persistencia para PaymentMethod.
type PaymentMethodRepository interface {
	Create(ctx context.Context, pm *entity.PaymentMethod) error
	Update(ctx context.Context, pm *entity.PaymentMethod) error
	// GetByID devuelve el medio aunque esté inactivo (facturas antiguas lo referencian).
	GetByID(ctx context.Context, ownerID, id string) (*entity.PaymentMethod, error)
	// ListActive medios activos del owner: default primero, luego más recientes.
	ListActive(ctx context.Context, ownerID string) ([]*entity.PaymentMethod, error)
	// ClearDefault quita is_default a todos los medios del owner salvo exceptID.
	ClearDefault(ctx context.Context, ownerID, exceptID string) error
	// Deactivate borrado lógico (is_active = false, is_default = false).
	Deactivate(ctx context.Context, ownerID, id string) error
}
