package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceSelect = `
	SELECT i.id, i.owner_id, i.client_id, i.invoice_number, i.status,
	       i.date_from, i.date_to, i.issue_date, i.due_date,
	       i.total_hours, i.total_amount, i.currency, i.payment_method_id,
	       i.company_name, i.company_address, i.company_tax_id, i.company_bank_info,
	       i.client_name, i.client_email, i.client_address, i.client_tax_id,
	       i.notes, i.external_payment_link,
	       (SELECT COUNT(*) FROM invoice_items ii WHERE ii.invoice_id = i.id),
	       i.created_at, i.updated_at
	FROM invoices i`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var clientID, paymentMethodID *string
	err := row.Scan(
		&inv.ID, &inv.OwnerID, &clientID, &inv.Number, &inv.Status,
		&inv.DateFrom, &inv.DateTo, &inv.IssueDate, &inv.DueDate,
		&inv.TotalHours, &inv.TotalAmount, &inv.Currency, &paymentMethodID,
		&inv.Company.Name, &inv.Company.Address, &inv.Company.TaxID, &inv.Company.BankInfo,
		&inv.Client.Name, &inv.Client.Email, &inv.Client.Address, &inv.Client.TaxID,
		&inv.Notes, &inv.PaymentLink,
		&inv.ItemsCount,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.ClientID = derefStr(clientID)
	inv.PaymentMethodID = derefStr(paymentMethodID)
	return &inv, nil
}

// LockOwner toma un advisory lock de transacción por owner: serializa numeración y
// selección de registros entre creaciones concurrentes.
func (r *InvoiceRepo) LockOwner(ctx context.Context, ownerID string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, ownerID); err != nil {
		return fmt.Errorf("lock owner invoices: %w", err)
	}
	return nil
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, owner_id, client_id, invoice_number, status,
		                      date_from, date_to, issue_date, due_date,
		                      total_hours, total_amount, currency, payment_method_id,
		                      company_name, company_address, company_tax_id, company_bank_info,
		                      client_name, client_email, client_address, client_tax_id,
		                      notes, external_payment_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.OwnerID, nullIfEmpty(inv.ClientID), inv.Number, inv.Status,
		inv.DateFrom, inv.DateTo, inv.IssueDate, inv.DueDate,
		inv.TotalHours, inv.TotalAmount, inv.Currency, nullIfEmpty(inv.PaymentMethodID),
		inv.Company.Name, inv.Company.Address, inv.Company.TaxID, inv.Company.BankInfo,
		inv.Client.Name, inv.Client.Email, inv.Client.Address, inv.Client.TaxID,
		inv.Notes, inv.PaymentLink, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el número de factura %s ya existe", domain.ErrConflict, inv.Number)
		}
		return writeError("insert invoice", err)
	}
	return nil
}

// CreateItems vincula los registros; un registro ya vinculado viola la PK (ErrConflict).
func (r *InvoiceRepo) CreateItems(ctx context.Context, invoiceID string, timeEntryIDs []string) error {
	if len(timeEntryIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_items (invoice_id, time_entry_id)
		SELECT $1, unnest($2::text[])`, invoiceID, timeEntryIDs)
	if err != nil {
		return writeError("insert invoice items", err)
	}
	return nil
}

// GetByID factura del owner.
func (r *InvoiceRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1 AND i.owner_id = $2`, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListByOwner facturas del owner, más recientes primero.
func (r *InvoiceRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, invoiceSelect+` WHERE i.owner_id = $1 ORDER BY i.created_at DESC, i.invoice_number DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// LastNumber número de la última factura creada por el owner.
func (r *InvoiceRepo) LastNumber(ctx context.Context, ownerID string) (string, error) {
	var number string
	err := r.q.QueryRow(ctx, `
		SELECT invoice_number FROM invoices
		WHERE owner_id = $1
		ORDER BY created_at DESC, invoice_number DESC
		LIMIT 1`, ownerID).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last invoice number: %w", err)
	}
	return number, nil
}

// Update persiste los campos editables y el estado.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET status                = $3,
		    issue_date            = $4,
		    due_date              = $5,
		    payment_method_id     = $6,
		    notes                 = $7,
		    external_payment_link = $8,
		    updated_at            = $9
		WHERE id = $1 AND owner_id = $2`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.OwnerID, inv.Status, inv.IssueDate, inv.DueDate,
		nullIfEmpty(inv.PaymentMethodID), inv.Notes, inv.PaymentLink, inv.UpdatedAt,
	)
	if err != nil {
		return writeError("update invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la factura; los items caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
