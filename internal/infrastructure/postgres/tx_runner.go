package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var (
	_ billing.InvoicingTxRunner     = (*TxRunner)(nil)
	_ billing.PaymentMethodTxRunner = (*TxRunner)(nil)
	_ usecase.ClientTxRunner        = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia la transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInvoicing transacción con repos de facturas y registros (crear, editar, pagar, borrar).
func (r *TxRunner) RunInvoicing(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	entryRepo repository.TimeEntryRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewInvoiceRepository(tx), NewTimeEntryRepository(tx))
	})
}

// RunPaymentMethods transacción para mantener un único default por owner.
func (r *TxRunner) RunPaymentMethods(ctx context.Context, fn func(pmRepo repository.PaymentMethodRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewPaymentMethodRepository(tx))
	})
}

// RunClients transacción para alta de clients y sus asignaciones.
func (r *TxRunner) RunClients(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewProjectRepository(tx))
	})
}
