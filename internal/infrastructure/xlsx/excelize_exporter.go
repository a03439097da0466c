// Package xlsx exporta facturas a hojas de cálculo con excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	appbilling "github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/domain/invoicing"
)

var _ appbilling.InvoiceSpreadsheetExporter = (*ExcelizeExporter)(nil)

// Nombres de las hojas del libro exportado.
const (
	SheetEntries = "Registros"
	SheetSummary = "Resumen"
)

var entryHeaders = []any{"Fecha", "Proyecto", "Actividad", "Descripción", "Horas", "Tarifa", "Moneda", "Importe"}

// ExcelizeExporter implementa billing.InvoiceSpreadsheetExporter.
type ExcelizeExporter struct{}

// NewExcelizeExporter construye el exportador.
func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// ExportInvoiceXLSX genera un libro con los registros de la factura y un resumen.
func (e *ExcelizeExporter) ExportInvoiceXLSX(ctx context.Context, doc *appbilling.InvoiceDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inv := doc.Invoice

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetEntries); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	// ── Registros ─────────────────────────────────────────────────────────────
	if err := f.SetSheetRow(SheetEntries, "A1", &entryHeaders); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	if err := f.SetRowStyle(SheetEntries, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	for i, en := range doc.Entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			en.Date.Format(invoicing.DateLayout),
			en.ProjectName,
			en.Activity,
			en.Description,
			en.Hours.InexactFloat64(),
			en.RateAtEntry.InexactFloat64(),
			en.CurrencyAtEntry,
			en.Amount().InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetEntries, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(SheetEntries, "A", "A", 12)
	_ = f.SetColWidth(SheetEntries, "B", "C", 18)
	_ = f.SetColWidth(SheetEntries, "D", "D", 40)

	// ── Resumen ───────────────────────────────────────────────────────────────
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	summary := [][]any{
		{"Factura", inv.Number},
		{"Estado", inv.Status},
		{"Desde", inv.DateFrom.Format(invoicing.DateLayout)},
		{"Hasta", inv.DateTo.Format(invoicing.DateLayout)},
		{"Emisión", inv.IssueDate.Format(invoicing.DateLayout)},
		{"Emisor", inv.Company.Name},
		{"Cliente", inv.Client.Name},
		{"Moneda", inv.Currency},
		{"Total horas", inv.TotalHours.InexactFloat64()},
		{"Total", inv.TotalAmount.InexactFloat64()},
	}
	if inv.DueDate != nil {
		summary = append(summary, []any{"Vencimiento", inv.DueDate.Format(invoicing.DateLayout)})
	}
	if doc.PaymentMethod != nil {
		summary = append(summary, []any{"Medio de pago", doc.PaymentMethod.Name})
	}
	if inv.PaymentLink != "" {
		summary = append(summary, []any{"Enlace de pago", inv.PaymentLink})
	}
	for i, values := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: resumen fila %d: %w", i+1, err)
		}
	}
	_ = f.SetColStyle(SheetSummary, "A", bold)
	_ = f.SetColWidth(SheetSummary, "A", "A", 18)
	_ = f.SetColWidth(SheetSummary, "B", "B", 36)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
