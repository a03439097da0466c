package repository

import (
	"context"

	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice e InvoiceItem.
type InvoiceRepository interface {
	// LockOwner serializa la creación de facturas del owner dentro de la transacción en curso.
	LockOwner(ctx context.Context, ownerID string) error
	Create(ctx context.Context, invoice *entity.Invoice) error
	// CreateItems vincula registros a la factura. Un registro solo puede vincularse una vez
	// (violación -> domain.ErrConflict).
	CreateItems(ctx context.Context, invoiceID string, timeEntryIDs []string) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Invoice, error)
	// ListByOwner facturas del owner, más recientes primero.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Invoice, error)
	// LastNumber número de la última factura creada por el owner ("" si no hay).
	LastNumber(ctx context.Context, ownerID string) (string, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	// Delete elimina la factura y sus items.
	Delete(ctx context.Context, ownerID, id string) error
}
