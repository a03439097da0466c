package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTimeEntryRequest body para POST /api/time-entries.
type CreateTimeEntryRequest struct {
	ProjectID   string          `json:"project_id"`
	Activity    string          `json:"activity"`
	Description string          `json:"description"`
	Hours       decimal.Decimal `json:"hours"`
	Date        string          `json:"date"` // YYYY-MM-DD
}

// UpdateTimeEntryRequest body para PATCH /api/time-entries/:id (solo paid es mutable).
type UpdateTimeEntryRequest struct {
	Paid *bool `json:"paid"`
}

// TimeEntryResponse registro de horas en respuestas.
type TimeEntryResponse struct {
	ID                  string          `json:"id"`
	ProjectID           string          `json:"project_id"`
	ProjectName         string          `json:"project_name,omitempty"`
	Activity            string          `json:"activity"`
	Description         string          `json:"description"`
	Hours               decimal.Decimal `json:"hours"`
	Date                string          `json:"date"`
	RateAtEntryTime     decimal.Decimal `json:"rate_at_entry_time"`
	CurrencyAtEntryTime string          `json:"currency_at_entry_time"`
	Amount              decimal.Decimal `json:"amount"`
	Paid                bool            `json:"paid"`
	Invoiced            bool            `json:"invoiced"`
	CreatedAt           time.Time       `json:"created_at"`
}
