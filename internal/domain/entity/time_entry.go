package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry es un registro de horas trabajadas ("registro").
// RateAtEntry y CurrencyAtEntry se copian del proyecto al crear el registro y no cambian después.
type TimeEntry struct {
	ID              string
	OwnerID         string
	ProjectID       string
	ProjectName     string // solo lectura (join con projects)
	Activity        string
	Description     string
	Hours           decimal.Decimal
	Date            time.Time
	RateAtEntry     decimal.Decimal
	CurrencyAtEntry string
	Paid            bool
	// InvoicedAt se fija al vincular el registro a una factura; nunca vuelve a nil.
	InvoicedAt *time.Time
	CreatedAt  time.Time
}

// Amount devuelve horas × tarifa histórica.
func (e *TimeEntry) Amount() decimal.Decimal {
	return e.Hours.Mul(e.RateAtEntry)
}

// Invoiced indica si el registro ya fue incluido en alguna factura.
func (e *TimeEntry) Invoiced() bool {
	return e.InvoicedAt != nil
}
