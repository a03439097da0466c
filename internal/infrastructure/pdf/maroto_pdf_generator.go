// Package pdf genera la factura imprimible de horas con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + Tax ID       │  N° Factura + Estado        │
//	│  EMISOR / DESTINATARIO / PERÍODO                             │
//	│  TABLA: Fecha | Proyecto | Descripción | Horas | Tarifa | $  │
//	│  TOTALES: Horas / Subtotal / Comisión pasarela / TOTAL       │
//	│  PAGO: instrucciones del medio + enlace externo (QR)         │
//	│  NOTAS                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/invoicing"
	"github.com/jhoicas/Timesheet-api/internal/domain/money"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorPaid    = &props.Color{Red: 30, Green: 130, Blue: 60}
)

const displayDate = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(ctx context.Context, doc *appbilling.InvoiceDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inv := doc.Invoice

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.Number, true).
		WithAuthor(nonEmpty(inv.Company.Name, "Timesheet"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(inv))
	m.AddRows(periodRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(doc.Entries, inv.Currency)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(inv, doc.PaymentMethod)...)

	if rows := paymentRows(inv, doc.PaymentMethod); len(rows) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(rows...)
	}
	if inv.Notes != "" {
		m.AddRows(sectionTitle("NOTAS"))
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New(inv.Notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}

	pdf, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return pdf.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor + tax id (izq) y número + estado + fechas (der).
func headerRow(inv *entity.Invoice) core.Row {
	statusColor := colorGray
	if inv.IsPaid() {
		statusColor = colorPaid
	}
	dates := "Emisión: " + inv.IssueDate.Format(displayDate)
	if inv.DueDate != nil {
		dates += "   Vence: " + inv.DueDate.Format(displayDate)
	}

	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(inv.Company.Name, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tax ID: "+nonEmpty(inv.Company.TaxID, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(strings.ToUpper(inv.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 12, Color: statusColor,
			}),
			text.New(dates, props.Text{
				Size: 7, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

// partiesRow: datos del emisor y del destinatario lado a lado.
func partiesRow(inv *entity.Invoice) core.Row {
	block := func(title, name, line1, line2 string) core.Col {
		return col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(name, "-"), props.Text{Style: fontstyle.Bold, Size: 9, Top: 6}),
			text.New(line1, props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(line2, props.Text{Size: 8, Top: 15, Color: colorGray}),
		)
	}
	return row.New(21).Add(
		block("EMISOR", inv.Company.Name,
			nonEmpty(inv.Company.Address, "-"),
			nonEmpty(inv.Company.BankInfo, ""),
		),
		block("FACTURAR A", inv.Client.Name,
			nonEmpty(inv.Client.Email, "-"),
			joinNonEmpty("   |   ", inv.Client.Address, taxLabel(inv.Client.TaxID)),
		),
	)
}

// periodRow: rango de fechas facturado.
func periodRow(inv *entity.Invoice) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Período: %s a %s", inv.DateFrom.Format(displayDate), inv.DateTo.Format(displayDate)),
			props.Text{Size: 8, Top: 1, Style: fontstyle.Italic}),
	))
}

// tableHeaderRow: cabecera de la tabla de items.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Proyecto / actividad", 2, align.Left),
		h("Descripción", 3, align.Left),
		h("Horas", 1, align.Right),
		h("Tarifa", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

// tableItemRows: una fila por registro vinculado, con su tarifa histórica.
func tableItemRows(entries []*entity.TimeEntry, currency string) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, row.New(7).Add(
			cell(e.Date.Format(displayDate), 2, align.Left),
			cell(joinNonEmpty(" / ", e.ProjectName, e.Activity), 2, align.Left),
			cell(e.Description, 3, align.Left),
			cell(money.FormatHours(e.Hours, currency), 1, align.Right),
			cell(money.Format(e.RateAtEntry, e.CurrencyAtEntry), 2, align.Right),
			cell(money.Format(e.Amount(), e.CurrencyAtEntry), 2, align.Right),
		))
	}
	return rows
}

// totalsRows: horas, subtotal, comisión de la pasarela (si aplica) y total.
func totalsRows(inv *entity.Invoice, pm *entity.PaymentMethod) []core.Row {
	totalRow := func(label, value string, grand bool) core.Row {
		style := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		if grand {
			style.Style, style.Size, style.Color = fontstyle.Bold, 10, colorPrimary
		}
		labelStyle := style
		labelStyle.Style = fontstyle.Bold
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, labelStyle)),
			col.New(3).Add(text.New(value, style)),
		)
	}

	rows := []core.Row{
		totalRow("Total horas:", money.FormatHours(inv.TotalHours, inv.Currency), false),
	}
	pct := decimal.Zero
	if pm != nil {
		pct = pm.FeePercentage()
	}
	fee, total := invoicing.GatewayFee(inv.TotalAmount, pct)
	if fee.IsPositive() {
		rows = append(rows,
			totalRow("Subtotal:", money.Format(inv.TotalAmount, inv.Currency), false),
			totalRow(fmt.Sprintf("Comisión %s (%s%%):", pm.Type, pct.String()), money.Format(fee, inv.Currency), false),
		)
	}
	rows = append(rows, totalRow("TOTAL:", money.Format(total, inv.Currency), true))
	return rows
}

// paymentRows: instrucciones del medio de pago y enlace externo.
func paymentRows(inv *entity.Invoice, pm *entity.PaymentMethod) []core.Row {
	var lines []string
	if pm != nil {
		lines = paymentInstructions(pm)
	}
	if len(lines) == 0 && inv.PaymentLink == "" {
		return nil
	}

	rows := []core.Row{sectionTitle("INSTRUCCIONES DE PAGO")}
	for _, l := range lines {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 8, Left: 2, Top: 0.5}),
		)))
	}
	if inv.PaymentLink != "" {
		rows = append(rows, row.New(32).Add(
			col.New(3).Add(code.NewQr(inv.PaymentLink, props.Rect{Percent: 90, Center: true})),
			col.New(9).Add(
				text.New("Pague en línea:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 6, Left: 3}),
				text.New(inv.PaymentLink, props.Text{Size: 8, Top: 12, Left: 3, Color: colorPrimary}),
			),
		))
	}
	return rows
}

// paymentInstructions líneas a imprimir según el tipo de medio.
func paymentInstructions(pm *entity.PaymentMethod) []string {
	var out []string
	add := func(label, value string) {
		if value != "" {
			out = append(out, label+": "+value)
		}
	}
	add("Medio", pm.Name)
	switch pm.Type {
	case entity.PaymentTypePix:
		add("Clave PIX", joinNonEmpty(" ", pm.PixKey, parens(pm.PixKeyType)))
	case entity.PaymentTypeInternational:
		add("Beneficiario", pm.BeneficiaryName)
		add("Cuenta", pm.BeneficiaryAccountNumber)
		add("SWIFT", pm.SwiftCode)
		add("Banco", joinNonEmpty(", ", pm.BankName, pm.BankAddress))
		add("Banco intermediario", joinNonEmpty(", ", pm.IntermediaryBankName, pm.IntermediaryBankAddress))
		add("SWIFT intermediario", pm.IntermediarySwiftCode)
		add("Cuenta intermediario", pm.IntermediaryAccount)
		add("Titular", joinNonEmpty(" ", pm.EntityName, parens(pm.EntityType)))
		add("Tax ID titular", pm.EntityTaxID)
	case entity.PaymentTypePaypal:
		add("PayPal", pm.PaypalEmail)
	case entity.PaymentTypeStripe:
		add("Stripe", pm.StripeEmail)
	}
	add("Notas", pm.Notes)
	return out
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func parens(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

func taxLabel(taxID string) string {
	if taxID == "" {
		return ""
	}
	return "Tax ID: " + taxID
}
