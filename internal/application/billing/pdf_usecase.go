package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

// DocumentUseCase genera las representaciones de una factura (PDF imprimible y xlsx).
type DocumentUseCase struct {
	invoiceRepo repository.InvoiceRepository
	entryRepo   repository.TimeEntryRepository
	pmRepo      repository.PaymentMethodRepository
	generator   InvoicePDFGenerator
	exporter    InvoiceSpreadsheetExporter
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentUseCase(
	invoiceRepo repository.InvoiceRepository,
	entryRepo repository.TimeEntryRepository,
	pmRepo repository.PaymentMethodRepository,
	generator InvoicePDFGenerator,
	exporter InvoiceSpreadsheetExporter,
) *DocumentUseCase {
	return &DocumentUseCase{
		invoiceRepo: invoiceRepo,
		entryRepo:   entryRepo,
		pmRepo:      pmRepo,
		generator:   generator,
		exporter:    exporter,
	}
}

// DownloadInvoicePDF genera el PDF de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe o es de otro owner.
func (uc *DocumentUseCase) DownloadInvoicePDF(ctx context.Context, ownerID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.load(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, doc.Invoice.Number + ".pdf", nil
}

// ExportInvoiceXLSX genera la hoja de cálculo de la factura.
func (uc *DocumentUseCase) ExportInvoiceXLSX(ctx context.Context, ownerID, invoiceID string) (data []byte, filename string, err error) {
	doc, err := uc.load(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	data, err = uc.exporter.ExportInvoiceXLSX(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: exportación fallida: %w", err)
	}
	return data, doc.Invoice.Number + ".xlsx", nil
}

func (uc *DocumentUseCase) load(ctx context.Context, ownerID, invoiceID string) (*InvoiceDocument, error) {
	// ── 1. Factura (acotada al owner) ─────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	// ── 2. Líneas ─────────────────────────────────────────────────────────────
	entries, err := uc.entryRepo.ListByInvoice(ctx, ownerID, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener items: %w", err)
	}

	// ── 3. Medio de pago (puede estar inactivo) ───────────────────────────────
	var pm *entity.PaymentMethod
	if inv.PaymentMethodID != "" {
		if pm, err = uc.pmRepo.GetByID(ctx, ownerID, inv.PaymentMethodID); err != nil {
			return nil, fmt.Errorf("documento: obtener medio de pago: %w", err)
		}
	}
	return &InvoiceDocument{Invoice: inv, Entries: entries, PaymentMethod: pm}, nil
}
