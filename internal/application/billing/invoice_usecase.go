package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/invoicing"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
	"github.com/samber/lo"
)

// InvoiceUseCase consulta y ciclo de vida de facturas (estado, edición, borrado, pago).
type InvoiceUseCase struct {
	txRunner    InvoicingTxRunner
	invoiceRepo repository.InvoiceRepository
	entryRepo   repository.TimeEntryRepository
	pmRepo      repository.PaymentMethodRepository
	cfg         Config
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner InvoicingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	entryRepo repository.TimeEntryRepository,
	pmRepo repository.PaymentMethodRepository,
	cfg Config,
) *InvoiceUseCase {
	if cfg.PaymentLinkDomain == "" {
		cfg.PaymentLinkDomain = "stripe.com"
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		entryRepo:   entryRepo,
		pmRepo:      pmRepo,
		cfg:         cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ListInvoices facturas del owner, más recientes primero.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, ownerID string) ([]dto.InvoiceSummaryResponse, error) {
	list, err := uc.invoiceRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	return lo.Map(list, func(inv *entity.Invoice, _ int) dto.InvoiceSummaryResponse {
		return toSummaryResponse(inv)
	}), nil
}

// GetInvoice factura con su medio de pago y líneas ordenadas por fecha.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, ownerID, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.entryRepo.ListByInvoice(ctx, ownerID, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("obtener items: %w", err)
	}
	var pm *entity.PaymentMethod
	if inv.PaymentMethodID != "" {
		if pm, err = uc.pmRepo.GetByID(ctx, ownerID, inv.PaymentMethodID); err != nil {
			return nil, fmt.Errorf("obtener medio de pago: %w", err)
		}
	}
	return toInvoiceResponse(inv, entries, pm), nil
}

// UpdateInvoice aplica solo los campos presentes en el body.
//
// Orden de validación:
//  1. factura pagada: status distinto de paid, issue_date, due_date o payment_method_id -> ErrImmutableInvoice
//  2. fechas YYYY-MM-DD
//  3. payment_method_id del mismo owner
//  4. external_payment_link en el dominio de la pasarela ("" borra)
//  5. transición de estado
//
// Pasar a paid marca como pagados los registros vinculados en la misma transacción.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, ownerID, invoiceID string, in dto.UpdateInvoiceRequest) error {
	return uc.txRunner.RunInvoicing(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		entryRepo repository.TimeEntryRepository,
	) error {
		if err := invoiceRepo.LockOwner(ctx, ownerID); err != nil {
			return err
		}
		inv, err := invoiceRepo.GetByID(ctx, ownerID, invoiceID)
		if err != nil {
			return fmt.Errorf("obtener factura: %w", err)
		}
		if inv == nil {
			return domain.ErrNotFound
		}

		// 1) Factura pagada: solo notas y enlace de pago
		if inv.IsPaid() {
			if in.Status.Set && (in.Status.Null || strings.TrimSpace(in.Status.Value) != entity.InvoiceStatusPaid) {
				return fmt.Errorf("%w: no se puede cambiar el estado de una factura pagada", domain.ErrImmutableInvoice)
			}
			if in.IssueDate.Set || in.DueDate.Set || in.PaymentMethodID.Set {
				return fmt.Errorf("%w: fechas y medio de pago están bloqueados", domain.ErrImmutableInvoice)
			}
		}

		// 2) Fechas
		if in.IssueDate.Set {
			if in.IssueDate.Null {
				return fmt.Errorf("%w: issue_date no puede ser nula", domain.ErrInvalidInput)
			}
			d, err := invoicing.ParseDate("issue_date", in.IssueDate.Value)
			if err != nil {
				return err
			}
			inv.IssueDate = d
		}
		if in.DueDate.Set {
			if in.DueDate.Null || strings.TrimSpace(in.DueDate.Value) == "" {
				inv.DueDate = nil
			} else {
				d, err := invoicing.ParseDate("due_date", in.DueDate.Value)
				if err != nil {
					return err
				}
				inv.DueDate = &d
			}
		}

		// 3) Medio de pago
		if in.PaymentMethodID.Set {
			id := strings.TrimSpace(in.PaymentMethodID.Value)
			if in.PaymentMethodID.Null || id == "" {
				inv.PaymentMethodID = ""
			} else {
				pm, err := uc.pmRepo.GetByID(ctx, ownerID, id)
				if err != nil {
					return fmt.Errorf("obtener medio de pago: %w", err)
				}
				if pm == nil || !pm.IsActive {
					return fmt.Errorf("%w: medio de pago", domain.ErrNotFound)
				}
				inv.PaymentMethodID = pm.ID
			}
		}

		// 4) Enlace de pago
		if in.PaymentLink.Set {
			link := strings.TrimSpace(in.PaymentLink.Value)
			if in.PaymentLink.Null {
				link = ""
			}
			if err := invoicing.ValidatePaymentLink(link, uc.cfg.PaymentLinkDomain); err != nil {
				return err
			}
			inv.PaymentLink = link
		}

		if in.Notes.Set {
			inv.Notes = strings.TrimSpace(in.Notes.Value)
		}

		// 5) Estado
		wasPaid := inv.IsPaid()
		if in.Status.Set {
			if in.Status.Null {
				return fmt.Errorf("%w: status no puede ser nulo", domain.ErrInvalidInput)
			}
			next := strings.TrimSpace(in.Status.Value)
			if err := invoicing.CheckTransition(inv.Status, next); err != nil {
				return err
			}
			inv.Status = next
		}

		inv.UpdatedAt = uc.now()
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		if inv.IsPaid() && !wasPaid {
			if _, err := entryRepo.MarkPaidByInvoice(ctx, ownerID, inv.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteInvoice elimina una factura en draft o cancelled junto con sus items.
// Los registros vinculados siguen marcados como facturados.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error {
	return uc.txRunner.RunInvoicing(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.TimeEntryRepository,
	) error {
		if err := invoiceRepo.LockOwner(ctx, ownerID); err != nil {
			return err
		}
		inv, err := invoiceRepo.GetByID(ctx, ownerID, invoiceID)
		if err != nil {
			return fmt.Errorf("obtener factura: %w", err)
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if !inv.Deletable() {
			return fmt.Errorf("%w: solo se eliminan facturas en draft o cancelled (actual: %s)", domain.ErrInvalidState, inv.Status)
		}
		return invoiceRepo.Delete(ctx, ownerID, inv.ID)
	})
}

// MarkPaid marca la factura y sus registros como pagados en una sola transacción.
// Sobre una factura ya pagada no hace nada y retorna 0.
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, ownerID, invoiceID string) (int64, error) {
	var updated int64
	err := uc.txRunner.RunInvoicing(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		entryRepo repository.TimeEntryRepository,
	) error {
		if err := invoiceRepo.LockOwner(ctx, ownerID); err != nil {
			return err
		}
		inv, err := invoiceRepo.GetByID(ctx, ownerID, invoiceID)
		if err != nil {
			return fmt.Errorf("obtener factura: %w", err)
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.IsPaid() {
			return nil
		}
		if err := invoicing.CheckTransition(inv.Status, entity.InvoiceStatusPaid); err != nil {
			return err
		}
		inv.Status = entity.InvoiceStatusPaid
		inv.UpdatedAt = uc.now()
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		updated, err = entryRepo.MarkPaidByInvoice(ctx, ownerID, inv.ID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
