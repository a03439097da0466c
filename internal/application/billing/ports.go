package billing

import (
	"context"

	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

// InvoicingTxRunner ejecuta una función dentro de una transacción con los repos de facturación.
// Si fn retorna error no queda ningún cambio persistido.
type InvoicingTxRunner interface {
	RunInvoicing(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		entryRepo repository.TimeEntryRepository,
	) error) error
}

// PaymentMethodTxRunner transacción para mantener un único medio de pago por defecto.
type PaymentMethodTxRunner interface {
	RunPaymentMethods(ctx context.Context, fn func(pmRepo repository.PaymentMethodRepository) error) error
}

// InvoiceDocument datos necesarios para representar una factura (PDF, hoja de cálculo).
type InvoiceDocument struct {
	Invoice       *entity.Invoice
	Entries       []*entity.TimeEntry   // orden por fecha
	PaymentMethod *entity.PaymentMethod // nil si la factura no tiene medio de pago
}

// InvoicePDFGenerator genera la representación imprimible de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// InvoiceSpreadsheetExporter exporta la factura a una hoja de cálculo (xlsx).
type InvoiceSpreadsheetExporter interface {
	ExportInvoiceXLSX(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// Config parámetros de facturación.
type Config struct {
	DefaultCurrency   string // moneda si el registro no tiene una (BRL)
	PaymentLinkDomain string // dominio de la pasarela para external_payment_link (stripe.com)
}
