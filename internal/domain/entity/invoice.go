package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// CompanyInfo datos del emisor copiados en la factura al crearla.
type CompanyInfo struct {
	Name     string
	Address  string
	TaxID    string
	BankInfo string
}

// ClientInfo datos del destinatario copiados en la factura al crearla.
type ClientInfo struct {
	Name    string
	Email   string
	Address string
	TaxID   string
}

// Invoice representa la cabecera de una factura de horas.
type Invoice struct {
	ID              string
	OwnerID         string
	ClientID        string // opcional
	Number          string // INV-0001, correlativo por owner
	Status          string
	DateFrom        time.Time
	DateTo          time.Time
	IssueDate       time.Time
	DueDate         *time.Time
	TotalHours      decimal.Decimal
	TotalAmount     decimal.Decimal
	Currency        string
	PaymentMethodID string // opcional
	Company         CompanyInfo
	Client          ClientInfo
	Notes           string
	PaymentLink     string // enlace de pago externo (pasarela configurada)
	ItemsCount      int    // solo lectura
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPaid indica si la factura está pagada.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// Deletable indica si la factura puede eliminarse.
func (i *Invoice) Deletable() bool {
	return i.Status == InvoiceStatusDraft || i.Status == InvoiceStatusCancelled
}

// InvoiceItem vincula un registro de horas con la factura que lo cobró.
type InvoiceItem struct {
	InvoiceID   string
	TimeEntryID string
}
