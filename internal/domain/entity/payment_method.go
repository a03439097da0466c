package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de medio de pago.
const (
	PaymentTypePix           = "pix"
	PaymentTypeInternational = "international"
	PaymentTypePaypal        = "paypal"
	PaymentTypeStripe        = "stripe"
)

// PaymentMethod instrucciones de cobro que se imprimen en la factura.
type PaymentMethod struct {
	ID       string
	OwnerID  string
	Name     string
	Type     string
	Currency string

	// PIX
	PixKey     string
	PixKeyType string

	// Transferencia internacional
	BeneficiaryName          string
	BeneficiaryAccountNumber string
	SwiftCode                string
	BankName                 string
	BankAddress              string
	IntermediarySwiftCode    string
	IntermediaryBankName     string
	IntermediaryBankAddress  string
	IntermediaryAccount      string
	EntityType               string
	EntityName               string
	EntityTaxID              string

	// PayPal / Stripe
	PaypalEmail         string
	PaypalFeePercentage decimal.Decimal
	StripeEmail         string
	StripeFeePercentage decimal.Decimal

	IsDefault bool
	IsActive  bool
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FeePercentage comisión de la pasarela (cero para pix e internacional).
func (p *PaymentMethod) FeePercentage() decimal.Decimal {
	switch p.Type {
	case PaymentTypePaypal:
		return p.PaypalFeePercentage
	case PaymentTypeStripe:
		return p.StripeFeePercentage
	default:
		return decimal.Zero
	}
}
