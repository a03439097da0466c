package invoicing

import (
	"fmt"

	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Totals resultado de agregar los registros de una factura.
type Totals struct {
	Hours    decimal.Decimal
	Amount   decimal.Decimal
	Currency string
	Count    int
}

// Summarize suma horas e importes usando la tarifa histórica de cada registro.
// La moneda es la del primer registro (ordenados por fecha); si falta se usa defaultCurrency.
// Una selección con monedas distintas se rechaza (no hay conversión).
func Summarize(entries []*entity.TimeEntry, defaultCurrency string) (Totals, error) {
	if len(entries) == 0 {
		return Totals{}, domain.ErrNoEligibleEntries
	}
	currency := entries[0].CurrencyAtEntry
	if currency == "" {
		currency = defaultCurrency
	}
	t := Totals{Hours: decimal.Zero, Amount: decimal.Zero, Currency: currency, Count: len(entries)}
	for _, e := range entries {
		c := e.CurrencyAtEntry
		if c == "" {
			c = defaultCurrency
		}
		if c != currency {
			return Totals{}, fmt.Errorf("%w: %s y %s", domain.ErrMixedCurrency, currency, c)
		}
		t.Hours = t.Hours.Add(e.Hours)
		t.Amount = t.Amount.Add(e.Amount())
	}
	t.Hours = t.Hours.Round(2)
	t.Amount = t.Amount.Round(2)
	return t, nil
}

// GatewayFee calcula la comisión de la pasarela y el total a cobrar.
// fee = amount × pct / 100, redondeado a 2 decimales.
func GatewayFee(amount, pct decimal.Decimal) (fee, total decimal.Decimal) {
	if pct.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, amount
	}
	fee = amount.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
	return fee, amount.Add(fee)
}
