package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/pdf"
)

func sampleDocument(pm *entity.PaymentMethod) *appbilling.InvoiceDocument {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	entries := []*entity.TimeEntry{
		{ID: "e1", ProjectName: "Web", Activity: "dev", Description: "API", Hours: decimal.NewFromInt(2), Date: day(10), RateAtEntry: decimal.NewFromInt(50), CurrencyAtEntry: "USD"},
		{ID: "e2", ProjectName: "Web", Activity: "review", Description: "PR", Hours: decimal.RequireFromString("1.5"), Date: day(12), RateAtEntry: decimal.NewFromInt(50), CurrencyAtEntry: "USD"},
	}
	return &appbilling.InvoiceDocument{
		Invoice: &entity.Invoice{
			Number:      "INV-0001",
			Status:      entity.InvoiceStatusSent,
			DateFrom:    day(1),
			DateTo:      day(31),
			IssueDate:   day(31),
			TotalHours:  decimal.RequireFromString("3.5"),
			TotalAmount: decimal.NewFromInt(175),
			Currency:    "USD",
			Company:     entity.CompanyInfo{Name: "Acme Dev", TaxID: "12.345.678/0001-90", Address: "Rua A, 1"},
			Client:      entity.ClientInfo{Name: "Cliente", Email: "cliente@example.com"},
			Notes:       "Gracias",
			PaymentLink: "https://buy.stripe.com/abc",
		},
		Entries:       entries,
		PaymentMethod: pm,
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator()

	stripe := &entity.PaymentMethod{
		Name: "Stripe", Type: entity.PaymentTypeStripe, Currency: "USD",
		StripeEmail: "billing@example.com", StripeFeePercentage: decimal.NewFromInt(6),
	}
	for name, pm := range map[string]*entity.PaymentMethod{"sin medio": nil, "stripe": stripe} {
		t.Run(name, func(t *testing.T) {
			out, err := gen.GenerateInvoicePDF(context.Background(), sampleDocument(pm))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestGenerateInvoicePDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewMarotoPDFGenerator().GenerateInvoicePDF(ctx, sampleDocument(nil))
	assert.ErrorIs(t, err, context.Canceled)
}
