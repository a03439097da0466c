package memory

import (
	"context"

	"github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var (
	_ billing.InvoicingTxRunner     = (*TxRunner)(nil)
	_ billing.PaymentMethodTxRunner = (*TxRunner)(nil)
	_ usecase.ClientTxRunner        = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks sobre una copia del store que se publica solo si no hay error.
type TxRunner struct {
	db *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(db *Store) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) session(tx *state) session {
	return session{store: r.db, tx: tx}
}

// RunInvoicing transacción con repos de facturas y registros.
func (r *TxRunner) RunInvoicing(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	entryRepo repository.TimeEntryRepository,
) error) error {
	return r.db.transact(ctx, func(tx *state) error {
		return fn(&InvoiceRepo{s: r.session(tx)}, &TimeEntryRepo{s: r.session(tx)})
	})
}

// RunPaymentMethods transacción con el repo de medios de pago.
func (r *TxRunner) RunPaymentMethods(ctx context.Context, fn func(pmRepo repository.PaymentMethodRepository) error) error {
	return r.db.transact(ctx, func(tx *state) error {
		return fn(&PaymentMethodRepo{s: r.session(tx)})
	})
}

// RunClients transacción con repos de usuarios y proyectos.
func (r *TxRunner) RunClients(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
) error) error {
	return r.db.transact(ctx, func(tx *state) error {
		return fn(&UserRepo{s: r.session(tx)}, &ProjectRepo{s: r.session(tx)})
	})
}
