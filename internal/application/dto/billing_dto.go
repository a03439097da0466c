package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyInfoDTO datos del emisor copiados en la factura.
type CompanyInfoDTO struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	TaxID    string `json:"tax_id,omitempty"`
	BankInfo string `json:"bank_info,omitempty"`
}

// ClientInfoDTO datos del destinatario copiados en la factura.
type ClientInfoDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// Fechas en formato YYYY-MM-DD.
type CreateInvoiceRequest struct {
	ProjectIDs      []string        `json:"project_ids"`
	DateFrom        string          `json:"date_from"`
	DateTo          string          `json:"date_to"`
	IssueDate       string          `json:"issue_date,omitempty"` // por defecto hoy
	DueDate         string          `json:"due_date,omitempty"`
	PaymentMethodID string          `json:"payment_method_id,omitempty"`
	ClientID        string          `json:"client_id,omitempty"`
	CompanyInfo     *CompanyInfoDTO `json:"company_info,omitempty"` // por defecto la configuración del owner
	ClientInfo      *ClientInfoDTO  `json:"client_info,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status,omitempty"` // draft (defecto) o sent
}

// PreviewInvoiceRequest body para POST /api/invoices/preview.
type PreviewInvoiceRequest struct {
	ProjectIDs []string `json:"project_ids"`
	DateFrom   string   `json:"date_from"`
	DateTo     string   `json:"date_to"`
}

// CreateInvoiceResponse resumen devuelto al crear la factura (201).
type CreateInvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	Status        string          `json:"status"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	ItemsCount    int             `json:"items_count"`
}

// UpdateInvoiceRequest body para PATCH /api/invoices/:id.
// Solo se aplican los campos presentes; "" o null en external_payment_link, due_date
// y payment_method_id borran el valor.
type UpdateInvoiceRequest struct {
	Status          Optional[string] `json:"status"`
	Notes           Optional[string] `json:"notes"`
	IssueDate       Optional[string] `json:"issue_date"`
	DueDate         Optional[string] `json:"due_date"`
	PaymentMethodID Optional[string] `json:"payment_method_id"`
	PaymentLink     Optional[string] `json:"external_payment_link"`
}

// MarkPaidResponse resultado de POST /api/invoices/:id/mark-paid.
type MarkPaidResponse struct {
	Success              bool   `json:"success"`
	Message              string `json:"message"`
	RegistrosAtualizados int64  `json:"registrosAtualizados"`
}

// InvoiceSummaryResponse fila del listado de facturas.
type InvoiceSummaryResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	Status        string          `json:"status"`
	ClientName    string          `json:"client_name,omitempty"`
	DateFrom      string          `json:"date_from"`
	DateTo        string          `json:"date_to"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date,omitempty"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	ItemsCount    int             `json:"items_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceItemResponse línea de la factura (registro vinculado).
type InvoiceItemResponse struct {
	TimeEntryID string          `json:"time_entry_id"`
	Date        string          `json:"date"`
	ProjectID   string          `json:"project_id"`
	ProjectName string          `json:"project_name,omitempty"`
	Activity    string          `json:"activity"`
	Description string          `json:"description"`
	Hours       decimal.Decimal `json:"hours"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Paid        bool            `json:"paid"`
}

// InvoiceResponse factura completa para GET /api/invoices/:id.
type InvoiceResponse struct {
	InvoiceSummaryResponse
	ClientID        string                 `json:"client_id,omitempty"`
	PaymentMethodID string                 `json:"payment_method_id,omitempty"`
	PaymentMethod   *PaymentMethodResponse `json:"payment_method,omitempty"`
	CompanyInfo     CompanyInfoDTO         `json:"company_info"`
	ClientInfo      ClientInfoDTO          `json:"client_info"`
	Notes           string                 `json:"notes,omitempty"`
	PaymentLink     string                 `json:"external_payment_link,omitempty"`
	Items           []InvoiceItemResponse  `json:"items"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// InvoicePreviewResponse registros facturables y totales sin persistir.
type InvoicePreviewResponse struct {
	TotalHours  decimal.Decimal       `json:"total_hours"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	Currency    string                `json:"currency"`
	Items       []InvoiceItemResponse `json:"items"`
}
