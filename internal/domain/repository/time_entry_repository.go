package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
)

// TimeEntryRepository define el puerto de persistencia para los registros de horas.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *entity.TimeEntry) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.TimeEntry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.TimeEntry, error)
	// ListByClient registros de los proyectos asignados a un usuario client.
	ListByClient(ctx context.Context, userID string) ([]*entity.TimeEntry, error)
	SetPaid(ctx context.Context, ownerID, id string, paid bool) error
	Delete(ctx context.Context, ownerID, id string) error
	CountByProject(ctx context.Context, ownerID, projectID string) (int, error)

	// ListBillable registros del owner en projectIDs con fecha en [from, to], no pagados
	// y nunca vinculados a una factura. Orden: fecha ascendente.
	ListBillable(ctx context.Context, ownerID string, projectIDs []string, from, to time.Time) ([]*entity.TimeEntry, error)
	// MarkInvoiced fija invoiced_at en los registros que aún no lo tienen; devuelve filas afectadas.
	MarkInvoiced(ctx context.Context, ownerID string, ids []string, at time.Time) (int64, error)
	// MarkPaidByInvoice marca como pagados los registros vinculados a la factura; devuelve cuántos
	// registros vinculados hay, incluidos los que ya estaban pagados.
	MarkPaidByInvoice(ctx context.Context, ownerID, invoiceID string) (int64, error)
	// LinkedInvoiceStatus estado de la factura a la que está vinculado el registro ("" si no hay).
	LinkedInvoiceStatus(ctx context.Context, ownerID, id string) (string, error)
	// ListByInvoice registros vinculados a la factura, por fecha ascendente.
	ListByInvoice(ctx context.Context, ownerID, invoiceID string) ([]*entity.TimeEntry, error)
}
