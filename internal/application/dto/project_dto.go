package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectRequest body para POST /api/projects y PUT /api/projects/:id.
type ProjectRequest struct {
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Currency   string          `json:"currency"`
	Activities []string        `json:"activities"`
}

// ProjectResponse proyecto en respuestas.
type ProjectResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Currency   string          `json:"currency"`
	Activities []string        `json:"activities"`
	CreatedAt  time.Time       `json:"created_at"`
}
