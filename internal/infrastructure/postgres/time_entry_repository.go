package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.TimeEntryRepository = (*TimeEntryRepo)(nil)

// TimeEntryRepo implementación de TimeEntryRepository (usable con pool o tx).
type TimeEntryRepo struct {
	q Querier
}

// NewTimeEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTimeEntryRepository(q Querier) *TimeEntryRepo {
	return &TimeEntryRepo{q: q}
}

const timeEntrySelect = `
	SELECT e.id, e.owner_id, e.project_id, p.name, e.activity, e.description, e.hours, e.date,
	       e.rate_at_entry_time, e.currency_at_entry_time, e.paid, e.invoiced_at, e.created_at
	FROM time_entries e
	JOIN projects p ON p.id = e.project_id`

func scanTimeEntry(row pgx.Row) (*entity.TimeEntry, error) {
	var e entity.TimeEntry
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.ProjectID, &e.ProjectName, &e.Activity, &e.Description, &e.Hours, &e.Date,
		&e.RateAtEntry, &e.CurrencyAtEntry, &e.Paid, &e.InvoicedAt, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *TimeEntryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.TimeEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Create persiste un registro con la tarifa y moneda ya copiadas del proyecto.
func (r *TimeEntryRepo) Create(ctx context.Context, e *entity.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, owner_id, project_id, activity, description, hours, date,
		                          rate_at_entry_time, currency_at_entry_time, paid, invoiced_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OwnerID, e.ProjectID, e.Activity, e.Description, e.Hours, e.Date,
		e.RateAtEntry, e.CurrencyAtEntry, e.Paid, e.InvoicedAt, e.CreatedAt,
	)
	if err != nil {
		return writeError("insert time entry", err)
	}
	return nil
}

// GetByID registro del owner.
func (r *TimeEntryRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.TimeEntry, error) {
	e, err := scanTimeEntry(r.q.QueryRow(ctx, timeEntrySelect+` WHERE e.id = $1 AND e.owner_id = $2`, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time entry: %w", err)
	}
	return e, nil
}

// ListByOwner registros del owner, fecha descendente.
func (r *TimeEntryRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.TimeEntry, error) {
	return r.list(ctx, timeEntrySelect+`
		WHERE e.owner_id = $1
		ORDER BY e.date DESC, e.created_at DESC, e.id DESC`, ownerID)
}

// ListByClient registros de los proyectos asignados al usuario, fecha descendente.
func (r *TimeEntryRepo) ListByClient(ctx context.Context, userID string) ([]*entity.TimeEntry, error) {
	return r.list(ctx, timeEntrySelect+`
		JOIN user_projects up ON up.project_id = e.project_id
		WHERE up.user_id = $1
		ORDER BY e.date DESC, e.created_at DESC, e.id DESC`, userID)
}

// SetPaid cambia el flag paid.
func (r *TimeEntryRepo) SetPaid(ctx context.Context, ownerID, id string, paid bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE time_entries SET paid = $3 WHERE id = $1 AND owner_id = $2`, id, ownerID, paid)
	if err != nil {
		return fmt.Errorf("update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un registro nunca facturado.
func (r *TimeEntryRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1 AND owner_id = $2 AND invoiced_at IS NULL`, id, ownerID)
	if err != nil {
		return writeError("delete time entry", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByProject cantidad de registros del proyecto.
func (r *TimeEntryRepo) CountByProject(ctx context.Context, ownerID, projectID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM time_entries WHERE owner_id = $1 AND project_id = $2`, ownerID, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count time entries: %w", err)
	}
	return n, nil
}

// ListBillable registros no pagados y nunca vinculados, por fecha ascendente.
// FOR UPDATE bloquea las filas hasta el fin de la transacción de facturación.
func (r *TimeEntryRepo) ListBillable(ctx context.Context, ownerID string, projectIDs []string, from, to time.Time) ([]*entity.TimeEntry, error) {
	return r.list(ctx, timeEntrySelect+`
		WHERE e.owner_id = $1
		  AND e.project_id = ANY($2)
		  AND e.date BETWEEN $3 AND $4
		  AND e.paid = FALSE
		  AND e.invoiced_at IS NULL
		  AND NOT EXISTS (SELECT 1 FROM invoice_items ii WHERE ii.time_entry_id = e.id)
		ORDER BY e.date ASC, e.created_at ASC, e.id ASC
		FOR UPDATE OF e`, ownerID, projectIDs, from, to)
}

// MarkInvoiced fija invoiced_at solo donde aún es NULL.
func (r *TimeEntryRepo) MarkInvoiced(ctx context.Context, ownerID string, ids []string, at time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE time_entries SET invoiced_at = $3
		WHERE owner_id = $1 AND id = ANY($2) AND invoiced_at IS NULL`, ownerID, ids, at)
	if err != nil {
		return 0, fmt.Errorf("mark invoiced: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkPaidByInvoice marca como pagados todos los registros vinculados; devuelve cuántos hay.
func (r *TimeEntryRepo) MarkPaidByInvoice(ctx context.Context, ownerID, invoiceID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE time_entries e SET paid = TRUE
		FROM invoice_items ii
		WHERE ii.time_entry_id = e.id AND ii.invoice_id = $2 AND e.owner_id = $1`, ownerID, invoiceID)
	if err != nil {
		return 0, fmt.Errorf("mark paid by invoice: %w", err)
	}
	return tag.RowsAffected(), nil
}

// LinkedInvoiceStatus estado de la factura vinculada al registro; "" si no está facturado.
func (r *TimeEntryRepo) LinkedInvoiceStatus(ctx context.Context, ownerID, id string) (string, error) {
	var status string
	err := r.q.QueryRow(ctx, `
		SELECT i.status
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		JOIN time_entries e ON e.id = ii.time_entry_id
		WHERE ii.time_entry_id = $1 AND e.owner_id = $2`, id, ownerID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("linked invoice status: %w", err)
	}
	return status, nil
}

// ListByInvoice registros vinculados a la factura, por fecha ascendente.
func (r *TimeEntryRepo) ListByInvoice(ctx context.Context, ownerID, invoiceID string) ([]*entity.TimeEntry, error) {
	return r.list(ctx, timeEntrySelect+`
		JOIN invoice_items ii ON ii.time_entry_id = e.id
		WHERE ii.invoice_id = $1 AND e.owner_id = $2
		ORDER BY e.date ASC, e.created_at ASC, e.id ASC`, invoiceID, ownerID)
}
