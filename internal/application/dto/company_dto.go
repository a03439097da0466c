package dto

import "time"

// CompanySettingsRequest body para PUT /api/settings/company.
type CompanySettingsRequest struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	TaxID       string `json:"tax_id"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	BankInfo    string `json:"bank_info"`
}

// CompanySettingsResponse datos del emisor.
type CompanySettingsResponse struct {
	CompanyName string     `json:"company_name"`
	Address     string     `json:"address"`
	TaxID       string     `json:"tax_id"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	BankInfo    string     `json:"bank_info"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
